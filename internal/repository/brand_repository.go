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

// brandRepository implements the BrandRepository interface using PostgreSQL.
type brandRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(pool *pgxpool.Pool, logger zerolog.Logger) BrandRepository {
	return &brandRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "brand").Logger(),
	}
}

func (r *brandRepository) GetAll(ctx context.Context) ([]model.Brand, error) {
	query := `
		SELECT id, nombre, created_at, updated_at
		FROM marcas
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query brands")
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan brand row")
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating brand rows")
		return nil, fmt.Errorf("error iterating brands: %w", err)
	}

	return brands, nil
}

func (r *brandRepository) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	query := `
		SELECT id, nombre, created_at, updated_at
		FROM marcas
		WHERE id = $1
	`

	var b model.Brand
	err := r.pool.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("brand_id", id).Msg("brand not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("brand_id", id).Msg("failed to query brand")
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}

	return &b, nil
}

func (r *brandRepository) Create(ctx context.Context, brand *model.Brand) error {
	query := `
		INSERT INTO marcas (nombre, created_at, updated_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, brand.Name, brand.CreatedAt, brand.UpdatedAt).Scan(&brand.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", brand.Name).Msg("failed to create brand")
		return fmt.Errorf("failed to create brand: %w", err)
	}

	return nil
}

func (r *brandRepository) Update(ctx context.Context, brand *model.Brand) error {
	query := `
		UPDATE marcas
		SET nombre = $2,
		    updated_at = $3
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, brand.ID, brand.Name, brand.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("brand_id", brand.ID).Msg("failed to update brand")
		return fmt.Errorf("failed to update brand: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrBrandNotFound
	}

	return nil
}

func (r *brandRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM marcas WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("brand_id", id).Msg("failed to delete brand")
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrBrandNotFound
	}

	return nil
}
