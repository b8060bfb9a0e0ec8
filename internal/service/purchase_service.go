package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tienda-api/internal/model"
	"tienda-api/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// purchaseService implements PurchaseService.
type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) PurchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "purchase").Logger(),
	}
}

// Create validates the requested line items, decrements stock and persists
// the purchase with its items. The whole workflow runs in one transaction:
// every stock decrement, the header insert and the line-item inserts are
// visible together or not at all. Stock decrements use a conditional update
// guarded by the current stock level, so concurrent purchases for the same
// product can never leave the stock negative.
func (s *purchaseService) Create(ctx context.Context, req *model.PurchaseRequest) (*model.Purchase, error) {
	if err := validatePurchaseRequest(req); err != nil {
		s.logger.Warn().Err(err).Msg("purchase request rejected")
		return nil, err
	}

	tx, err := s.purchaseRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	// Roll back everything, decrements included, on any failure.
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	total := decimal.Zero
	items := make([]model.PurchaseItem, 0, len(req.Products))

	for _, line := range req.Products {
		var price decimal.Decimal
		price, err = s.productRepo.DecrementStock(ctx, tx, line.ProductID, line.Quantity)
		if err != nil {
			var domainErr *model.DomainError
			if errors.As(err, &domainErr) {
				s.logger.Warn().
					Int64("product_id", line.ProductID).
					Int("quantity", line.Quantity).
					Str("code", domainErr.Code).
					Msg("purchase line rejected")
				return nil, err
			}
			return nil, fmt.Errorf("failed to create purchase: %w", err)
		}

		lineSubtotal := price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineSubtotal)

		items = append(items, model.PurchaseItem{
			ProductID: line.ProductID,
			UnitPrice: price,
			Quantity:  line.Quantity,
			Subtotal:  lineSubtotal,
		})
	}

	now := time.Now()
	purchase := &model.Purchase{
		Subtotal:  total,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.purchaseRepo.CreatePurchase(ctx, tx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	for i := range items {
		items[i].PurchaseID = purchase.ID
	}

	if err = s.purchaseRepo.CreatePurchaseItems(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create purchase items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("purchase_id", purchase.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	purchase.Products = items

	s.logger.Info().
		Int64("purchase_id", purchase.ID).
		Int("item_count", len(items)).
		Str("total", total.String()).
		Msg("purchase created successfully")

	return purchase, nil
}

// GetAll retrieves all purchases with their line items.
func (s *purchaseService) GetAll(ctx context.Context) ([]model.Purchase, error) {
	purchases, err := s.purchaseRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get purchases")
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, nil
}

// GetByID retrieves a purchase by its ID.
func (s *purchaseService) GetByID(ctx context.Context, id int64) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("purchase_id", id).Msg("failed to get purchase")
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return purchase, nil
}

// Update overwrites a purchase's subtotal and total verbatim. Line items are
// not recomputed; divergence between the overwritten amounts and the item
// subtotals is not modelled.
func (s *purchaseService) Update(ctx context.Context, id int64, req *model.PurchaseUpdateRequest) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update purchase: %w", err)
	}
	if purchase == nil {
		return nil, model.ErrPurchaseNotFound
	}

	purchase.Subtotal = req.Subtotal
	purchase.Total = req.Total
	purchase.UpdatedAt = time.Now()

	if err := s.purchaseRepo.Update(ctx, purchase); err != nil {
		s.logger.Error().Err(err).Int64("purchase_id", id).Msg("failed to update purchase")
		return nil, err
	}

	return purchase, nil
}

// Delete removes a purchase and returns the deleted record.
func (s *purchaseService) Delete(ctx context.Context, id int64) (*model.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete purchase: %w", err)
	}
	if purchase == nil {
		return nil, model.ErrPurchaseNotFound
	}

	if err := s.purchaseRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("purchase_id", id).Msg("failed to delete purchase")
		return nil, err
	}

	s.logger.Info().Int64("purchase_id", id).Msg("purchase deleted")

	return purchase, nil
}

// validatePurchaseRequest checks the purchase request before any state is
// touched: non-empty list first, then per-line shape, then duplicates.
func validatePurchaseRequest(req *model.PurchaseRequest) error {
	if req == nil || len(req.Products) == 0 {
		return model.ErrEmptyPurchase
	}

	lineErr := model.NewLineValidationError()
	for i, line := range req.Products {
		if line.ProductID < 1 {
			lineErr.AddField(i, "producto_id", "must reference a product")
		}
		if line.Quantity < 1 {
			lineErr.AddField(i, "cantidad", "must be at least 1")
		}
	}
	if len(lineErr.Fields) > 0 {
		return lineErr
	}

	seen := make(map[int64]struct{}, len(req.Products))
	for _, line := range req.Products {
		if _, dup := seen[line.ProductID]; dup {
			return model.ErrDuplicateProduct
		}
		seen[line.ProductID] = struct{}{}
	}

	return nil
}
