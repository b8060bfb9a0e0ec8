package service

import (
	"context"
	"fmt"
	"time"

	"tienda-api/internal/model"
	"tienda-api/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *productService) GetByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	products, err := s.productRepo.GetByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to get products by category")
		return nil, fmt.Errorf("failed to get products by category: %w", err)
	}
	return products, nil
}

func (s *productService) GetByBrand(ctx context.Context, brandID int64) ([]model.Product, error) {
	products, err := s.productRepo.GetByBrand(ctx, brandID)
	if err != nil {
		s.logger.Error().Err(err).Int64("brand_id", brandID).Msg("failed to get products by brand")
		return nil, fmt.Errorf("failed to get products by brand: %w", err)
	}
	return products, nil
}

// Create builds a product from the validated request field by field; the raw
// payload never reaches the persistence layer.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	now := time.Now()
	product := &model.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		AvailableStock: req.AvailableStock,
		CategoryID:     req.CategoryID,
		BrandID:        req.BrandID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product created")

	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.AvailableStock = req.AvailableStock
	product.CategoryID = req.CategoryID
	product.BrandID = req.BrandID
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, err
	}

	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return nil, err
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")

	return product, nil
}
