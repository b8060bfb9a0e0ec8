package model

import "fmt"

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeEmptyPurchase     = "EMPTY_PURCHASE"
	ErrCodeInvalidLine       = "INVALID_LINE"
	ErrCodeDuplicateProduct  = "DUPLICATE_PRODUCT"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeConflict          = "CONFLICT"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that maps to a user-visible
// response.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyPurchase     = NewDomainError(ErrCodeEmptyPurchase, "No products were provided for the purchase")
	ErrDuplicateProduct  = NewDomainError(ErrCodeDuplicateProduct, "Duplicate products are not allowed in a purchase")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrInsufficientStock = NewDomainError(ErrCodeInsufficientStock, "Not enough stock available")
	ErrCategoryNotFound  = NewDomainError(ErrCodeNotFound, "Category not found")
	ErrBrandNotFound     = NewDomainError(ErrCodeNotFound, "Brand not found")
	ErrPurchaseNotFound  = NewDomainError(ErrCodeNotFound, "Purchase not found")
	ErrProductInUse      = NewDomainError(ErrCodeConflict, "Product is referenced by existing purchases")
)

// ValidationError is a field-level validation failure. Fields maps a wire
// path (e.g. "productos.0.cantidad") to the reason it was rejected; the map
// is surfaced as the data payload of the error envelope.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewLineValidationError builds a ValidationError for one invalid line field.
func NewLineValidationError() *ValidationError {
	return &ValidationError{
		Message: "Invalid data in the product list",
		Fields:  make(map[string]string),
	}
}

// AddField records a rejected field.
func (e *ValidationError) AddField(index int, field, reason string) {
	e.Fields[fmt.Sprintf("productos.%d.%s", index, field)] = reason
}
