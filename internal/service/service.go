package service

import (
	"context"

	"tienda-api/internal/model"
)

// PurchaseService defines operations for purchase management.
type PurchaseService interface {
	// Create validates the requested line items, decrements stock and
	// persists the purchase with its items as one atomic unit of work.
	Create(ctx context.Context, req *model.PurchaseRequest) (*model.Purchase, error)

	// GetAll retrieves all purchases with their line items.
	GetAll(ctx context.Context) ([]model.Purchase, error)

	// GetByID retrieves a purchase by its ID. Returns nil when not found.
	GetByID(ctx context.Context, id int64) (*model.Purchase, error)

	// Update overwrites a purchase's subtotal and total.
	Update(ctx context.Context, id int64, req *model.PurchaseUpdateRequest) (*model.Purchase, error)

	// Delete removes a purchase and its line items.
	Delete(ctx context.Context, id int64) (*model.Purchase, error)
}

// ProductService defines operations for product management.
type ProductService interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	GetByBrand(ctx context.Context, brandID int64) ([]model.Product, error)
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id int64) (*model.Product, error)
}

// CategoryService defines operations for category management.
type CategoryService interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)
	Update(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id int64) (*model.Category, error)
}

// BrandService defines operations for brand management.
type BrandService interface {
	GetAll(ctx context.Context) ([]model.Brand, error)
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	Create(ctx context.Context, req *model.BrandRequest) (*model.Brand, error)
	Update(ctx context.Context, id int64, req *model.BrandRequest) (*model.Brand, error)
	Delete(ctx context.Context, id int64) (*model.Brand, error)
}
