package models

import "time"

// Customer is the shopper profile paired 1:1 with a User. The user row
// owns the lifecycle; the customer is created alongside it and carries
// only profile data.
type Customer struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"userId" db:"user_id"`
	BirthDate *time.Time `json:"birthDate,omitempty" db:"birth_date"`

	FirstName string `json:"firstName,omitempty" db:"-"`
	LastName  string `json:"lastName,omitempty" db:"-"`
}

// UpdateCustomerInput defines the JSON accepted on PUT /customers/me.
type UpdateCustomerInput struct {
	BirthDate *string `json:"birthDate"` // YYYY-MM-DD
}

// ParseBirthDate validates and parses the optional birth date.
func (in *UpdateCustomerInput) ParseBirthDate() (*time.Time, error) {
	if in.BirthDate == nil || *in.BirthDate == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *in.BirthDate)
	if err != nil {
		return nil, &ValidationError{Msg: "birthDate must be formatted as YYYY-MM-DD"}
	}
	return &t, nil
}
