package repository

import (
	"context"
	"errors"
	"fmt"

	"tienda-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// purchaseRepository implements the PurchaseRepository interface using PostgreSQL.
type purchaseRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPurchaseRepository creates a new PostgreSQL-backed purchase repository.
func NewPurchaseRepository(pool *pgxpool.Pool, logger zerolog.Logger) PurchaseRepository {
	return &purchaseRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "purchase").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *purchaseRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreatePurchase inserts a new purchase header within the provided transaction.
func (r *purchaseRepository) CreatePurchase(ctx context.Context, tx pgx.Tx, purchase *model.Purchase) error {
	query := `
		INSERT INTO compras (subtotal, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		purchase.Subtotal,
		purchase.Total,
		purchase.CreatedAt,
		purchase.UpdatedAt,
	).Scan(&purchase.ID)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create purchase")
		return fmt.Errorf("failed to create purchase: %w", err)
	}

	r.logger.Debug().
		Int64("purchase_id", purchase.ID).
		Msg("purchase created successfully")

	return nil
}

// CreatePurchaseItems inserts the purchase line items within the provided transaction.
func (r *purchaseRepository) CreatePurchaseItems(ctx context.Context, tx pgx.Tx, items []model.PurchaseItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO compras_productos (compra_id, producto_id, precio, cantidad, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.PurchaseID, item.ProductID, item.UnitPrice, item.Quantity, item.Subtotal)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Int64("purchase_id", items[i].PurchaseID).
				Int64("product_id", items[i].ProductID).
				Msg("failed to create purchase item")
			return fmt.Errorf("failed to create purchase item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("purchase items created successfully")

	return nil
}

// GetAll retrieves all purchase headers with their line items.
func (r *purchaseRepository) GetAll(ctx context.Context) ([]model.Purchase, error) {
	query := `
		SELECT id, subtotal, total, created_at, updated_at
		FROM compras
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query purchases")
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var purchases []model.Purchase
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.ID, &p.Subtotal, &p.Total, &p.CreatedAt, &p.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase row")
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating purchase rows")
		return nil, fmt.Errorf("error iterating purchases: %w", err)
	}

	for i := range purchases {
		items, err := r.getItems(ctx, purchases[i].ID)
		if err != nil {
			return nil, err
		}
		purchases[i].Products = items
	}

	return purchases, nil
}

// GetByID retrieves a purchase by its ID along with its line items.
func (r *purchaseRepository) GetByID(ctx context.Context, id int64) (*model.Purchase, error) {
	query := `
		SELECT id, subtotal, total, created_at, updated_at
		FROM compras
		WHERE id = $1
	`

	var p model.Purchase
	err := r.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Subtotal, &p.Total, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("purchase_id", id).Msg("purchase not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("purchase_id", id).Msg("failed to query purchase")
		return nil, fmt.Errorf("failed to query purchase: %w", err)
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Products = items

	return &p, nil
}

// Update overwrites the subtotal and total of an existing purchase. The line
// items are left untouched, nothing is recomputed.
func (r *purchaseRepository) Update(ctx context.Context, purchase *model.Purchase) error {
	query := `
		UPDATE compras
		SET subtotal = $2,
		    total = $3,
		    updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, purchase.ID, purchase.Subtotal, purchase.Total, purchase.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("purchase_id", purchase.ID).Msg("failed to update purchase")
		return fmt.Errorf("failed to update purchase: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPurchaseNotFound
	}

	return nil
}

// Delete removes a purchase; its line items are removed by the ON DELETE
// CASCADE on compras_productos.
func (r *purchaseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM compras WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("purchase_id", id).Msg("failed to delete purchase")
		return fmt.Errorf("failed to delete purchase: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrPurchaseNotFound
	}

	return nil
}

// getItems retrieves the line items of one purchase in insertion order.
func (r *purchaseRepository) getItems(ctx context.Context, purchaseID int64) ([]model.PurchaseItem, error) {
	query := `
		SELECT compra_id, producto_id, precio, cantidad, subtotal
		FROM compras_productos
		WHERE compra_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, purchaseID)
	if err != nil {
		r.logger.Error().Err(err).Int64("purchase_id", purchaseID).Msg("failed to query purchase items")
		return nil, fmt.Errorf("failed to query purchase items: %w", err)
	}
	defer rows.Close()

	var items []model.PurchaseItem
	for rows.Next() {
		var item model.PurchaseItem
		if err := rows.Scan(&item.PurchaseID, &item.ProductID, &item.UnitPrice, &item.Quantity, &item.Subtotal); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan purchase item row")
			return nil, fmt.Errorf("failed to scan purchase item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating purchase item rows")
		return nil, fmt.Errorf("error iterating purchase items: %w", err)
	}

	return items, nil
}
