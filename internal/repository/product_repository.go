package repository

import (
	"context"
	"errors"
	"fmt"

	"tienda-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, nombre, descripcion, precio, cantidad_disponible, categoria_id, marca_id, created_at, updated_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.AvailableStock,
		&p.CategoryID,
		&p.BrandID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// GetAll retrieves all products.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos
		WHERE id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetByCategory retrieves all products belonging to a category.
func (r *productRepository) GetByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos
		WHERE categoria_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to query products by category")
		return nil, fmt.Errorf("failed to query products by category: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// GetByBrand retrieves all products belonging to a brand.
func (r *productRepository) GetByBrand(ctx context.Context, brandID int64) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos
		WHERE marca_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, brandID)
	if err != nil {
		r.logger.Error().Err(err).Int64("brand_id", brandID).Msg("failed to query products by brand")
		return nil, fmt.Errorf("failed to query products by brand: %w", err)
	}
	defer rows.Close()

	return r.collectProducts(rows)
}

// Create inserts a new product and sets its generated ID.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO productos (nombre, descripcion, precio, cantidad_disponible, categoria_id, marca_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.AvailableStock,
		product.CategoryID,
		product.BrandID,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", product.ID).Msg("product created successfully")

	return nil
}

// Update overwrites an existing product's fields.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE productos
		SET nombre = $2,
		    descripcion = $3,
		    precio = $4,
		    cantidad_disponible = $5,
		    categoria_id = $6,
		    marca_id = $7,
		    updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.AvailableStock,
		product.CategoryID,
		product.BrandID,
		product.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by its ID. Products referenced by purchase line
// items cannot be deleted (foreign key restriction).
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			r.logger.Warn().Int64("product_id", id).Msg("product referenced by purchases, delete rejected")
			return model.ErrProductInUse
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// DecrementStock atomically subtracts quantity from available stock within
// the provided transaction. The WHERE guard makes the check-and-decrement a
// single conditional update, so two concurrent purchases can never drive the
// stock negative.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) (decimal.Decimal, error) {
	query := `
		UPDATE productos
		SET cantidad_disponible = cantidad_disponible - $2,
		    updated_at = now()
		WHERE id = $1 AND cantidad_disponible >= $2
		RETURNING precio
	`

	var price decimal.Decimal
	err := tx.QueryRow(ctx, query, productID, quantity).Scan(&price)
	if err == nil {
		r.logger.Debug().
			Int64("product_id", productID).
			Int("quantity", quantity).
			Msg("stock decremented")
		return price, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to decrement stock")
		return decimal.Zero, fmt.Errorf("failed to decrement stock: %w", err)
	}

	// No row matched: distinguish a missing product from insufficient stock.
	var exists bool
	if probeErr := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM productos WHERE id = $1)`, productID,
	).Scan(&exists); probeErr != nil {
		r.logger.Error().Err(probeErr).Int64("product_id", productID).Msg("failed to probe product existence")
		return decimal.Zero, fmt.Errorf("failed to probe product existence: %w", probeErr)
	}

	if !exists {
		r.logger.Warn().Int64("product_id", productID).Msg("product not found")
		return decimal.Zero, model.ErrProductNotFound
	}

	r.logger.Warn().
		Int64("product_id", productID).
		Int("quantity", quantity).
		Msg("insufficient stock")
	return decimal.Zero, model.ErrInsufficientStock
}

// collectProducts drains rows into a product slice.
func (r *productRepository) collectProducts(rows pgx.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
