package service

import (
	"context"
	"fmt"
	"time"

	"tienda-api/internal/model"
	"tienda-api/internal/repository"

	"github.com/rs/zerolog"
)

// brandService implements BrandService.
type brandService struct {
	brandRepo repository.BrandRepository
	logger    zerolog.Logger
}

// NewBrandService creates a new brand service.
func NewBrandService(brandRepo repository.BrandRepository, logger zerolog.Logger) BrandService {
	return &brandService{
		brandRepo: brandRepo,
		logger:    logger.With().Str("service", "brand").Logger(),
	}
}

func (s *brandService) GetAll(ctx context.Context) ([]model.Brand, error) {
	brands, err := s.brandRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get brands")
		return nil, fmt.Errorf("failed to get brands: %w", err)
	}
	return brands, nil
}

func (s *brandService) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("brand_id", id).Msg("failed to get brand")
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

func (s *brandService) Create(ctx context.Context, req *model.BrandRequest) (*model.Brand, error) {
	now := time.Now()
	brand := &model.Brand{
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create brand")
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	return brand, nil
}

func (s *brandService) Update(ctx context.Context, id int64, req *model.BrandRequest) (*model.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	if brand == nil {
		return nil, model.ErrBrandNotFound
	}

	brand.Name = req.Name
	brand.UpdatedAt = time.Now()

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		s.logger.Error().Err(err).Int64("brand_id", id).Msg("failed to update brand")
		return nil, err
	}

	return brand, nil
}

func (s *brandService) Delete(ctx context.Context, id int64) (*model.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete brand: %w", err)
	}
	if brand == nil {
		return nil, model.ErrBrandNotFound
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("brand_id", id).Msg("failed to delete brand")
		return nil, err
	}

	return brand, nil
}
