package model

import "time"

// Category represents a product category.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"nombre" db:"nombre"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryRequest represents the payload for creating or updating a category.
type CategoryRequest struct {
	Name string `json:"nombre"`
}
