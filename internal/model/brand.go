package model

import "time"

// Brand represents a product brand.
type Brand struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"nombre" db:"nombre"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BrandRequest represents the payload for creating or updating a brand.
type BrandRequest struct {
	Name string `json:"nombre"`
}
