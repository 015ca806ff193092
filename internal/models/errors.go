package models

// ValidationError marks a business-rule violation on otherwise
// well-formed input. Handlers surface it as a 4xx with the message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
