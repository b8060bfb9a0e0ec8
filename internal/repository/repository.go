package repository

import (
	"context"

	"tienda-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByCategory retrieves all products belonging to a category.
	GetByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)

	// GetByBrand retrieves all products belonging to a brand.
	GetByBrand(ctx context.Context, brandID int64) ([]model.Product, error)

	// Create inserts a new product and sets its generated ID.
	Create(ctx context.Context, product *model.Product) error

	// Update overwrites an existing product's fields.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product by its ID.
	Delete(ctx context.Context, id int64) error

	// DecrementStock atomically subtracts quantity from the product's
	// available stock within the provided transaction and returns the
	// product's current price. The decrement only applies when enough stock
	// is available; otherwise model.ErrInsufficientStock is returned (or
	// model.ErrProductNotFound when the product does not exist) and the row
	// is left untouched.
	DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) (decimal.Decimal, error)
}

// PurchaseRepository defines the interface for purchase data access
// operations. Purchase creation is transactional: the caller begins a
// transaction, runs the stock decrements and the inserts against it, and
// commits or rolls back the whole unit of work.
type PurchaseRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreatePurchase inserts a new purchase header within the provided
	// transaction and sets its generated ID.
	CreatePurchase(ctx context.Context, tx pgx.Tx, purchase *model.Purchase) error

	// CreatePurchaseItems inserts the purchase line items within the
	// provided transaction.
	CreatePurchaseItems(ctx context.Context, tx pgx.Tx, items []model.PurchaseItem) error

	// GetAll retrieves all purchase headers with their line items.
	GetAll(ctx context.Context) ([]model.Purchase, error)

	// GetByID retrieves a purchase by its ID along with its line items.
	// Returns nil when the purchase does not exist.
	GetByID(ctx context.Context, id int64) (*model.Purchase, error)

	// Update overwrites the subtotal and total of an existing purchase.
	Update(ctx context.Context, purchase *model.Purchase) error

	// Delete removes a purchase and its line items.
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id int64) error
}

// BrandRepository defines the interface for brand data access operations.
type BrandRepository interface {
	GetAll(ctx context.Context) ([]model.Brand, error)
	GetByID(ctx context.Context, id int64) (*model.Brand, error)
	Create(ctx context.Context, brand *model.Brand) error
	Update(ctx context.Context, brand *model.Brand) error
	Delete(ctx context.Context, id int64) error
}
