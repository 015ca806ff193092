package models

// Category defines the struct for the 'categories' table
type Category struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`

	// Populated by a join, not stored in the table
	NumberOfProducts int `json:"numberOfProducts" db:"-"`
}

// CreateCategoryInput defines the JSON accepted when creating or updating a category.
type CreateCategoryInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// Validate enforces the business rule on the title. Shape checks
// (required fields) are handled by the binding tags; rules that need a
// human-readable message live here.
func (in *CreateCategoryInput) Validate() error {
	if len(in.Title) < 3 {
		return &ValidationError{Msg: "the length of title must be at least 3 characters"}
	}
	return nil
}
