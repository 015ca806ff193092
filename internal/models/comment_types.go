package models

import "time"

// Comment is a visitor comment attached to a product.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	ProductID int64     `json:"-" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateCommentInput defines the JSON for posting a comment.
type CreateCommentInput struct {
	Name string `json:"name" binding:"required"`
	Body string `json:"body" binding:"required"`
}
