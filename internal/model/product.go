package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue. Wire field names follow the
// back-office schema (Spanish column names) for API compatibility.
type Product struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"nombre" db:"nombre"`
	Description    string          `json:"descripcion" db:"descripcion"`
	Price          decimal.Decimal `json:"precio" db:"precio"`
	AvailableStock int             `json:"cantidad_disponible" db:"cantidad_disponible"`
	CategoryID     int64           `json:"categoria_id" db:"categoria_id"`
	BrandID        int64           `json:"marca_id" db:"marca_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductRequest represents the payload for creating or updating a product.
type ProductRequest struct {
	Name           string          `json:"nombre"`
	Description    string          `json:"descripcion"`
	Price          decimal.Decimal `json:"precio"`
	AvailableStock int             `json:"cantidad_disponible"`
	CategoryID     int64           `json:"categoria_id"`
	BrandID        int64           `json:"marca_id"`
}
