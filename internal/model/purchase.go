package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents a purchase header with its associated line items.
// Subtotal and Total are always equal at creation time: the system does not
// model discounts or taxes, both columns are kept for schema compatibility.
type Purchase struct {
	ID        int64           `json:"id" db:"id"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Products  []PurchaseItem  `json:"productos,omitempty"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// PurchaseItem is one line of a purchase. UnitPrice is a snapshot of the
// product price at purchase time, Subtotal = UnitPrice * Quantity. Items are
// immutable once created.
type PurchaseItem struct {
	PurchaseID int64           `json:"-" db:"compra_id"`
	ProductID  int64           `json:"producto_id" db:"producto_id"`
	UnitPrice  decimal.Decimal `json:"precio" db:"precio"`
	Quantity   int             `json:"cantidad" db:"cantidad"`
	Subtotal   decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// PurchaseRequest represents the request payload for creating a purchase.
type PurchaseRequest struct {
	Products []PurchaseLine `json:"productos"`
}

// PurchaseLine is a single (product, quantity) pair in a purchase request.
type PurchaseLine struct {
	ProductID int64 `json:"producto_id"`
	Quantity  int   `json:"cantidad"`
}

// PurchaseUpdateRequest represents the payload for updating a purchase.
// Subtotal and total are overwritten verbatim, nothing is recomputed from the
// line items.
type PurchaseUpdateRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}
