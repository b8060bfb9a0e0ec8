package integration

import (
	"context"
	"sync"
	"testing"

	"tienda-api/internal/model"
	"tienda-api/internal/repository"
	"tienda-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newPurchaseService(db *TestDB) service.PurchaseService {
	logger := zerolog.Nop()
	productRepo := repository.NewProductRepository(db.Pool, logger)
	purchaseRepo := repository.NewPurchaseRepository(db.Pool, logger)
	return service.NewPurchaseService(purchaseRepo, productRepo, logger)
}

func TestPurchaseWorkflow_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 5, categoryID, brandID)
	productB := SeedProduct(t, db.Pool, "Producto B", price("2.50"), 100, categoryID, brandID)

	svc := newPurchaseService(db)

	purchase, err := svc.Create(ctx, &model.PurchaseRequest{
		Products: []model.PurchaseLine{
			{ProductID: productA, Quantity: 2},
			{ProductID: productB, Quantity: 4},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, purchase)

	// total = 10.00*2 + 2.50*4 = 30.00, subtotal == total
	assert.True(t, purchase.Total.Equal(price("30.00")), "total = %s", purchase.Total)
	assert.True(t, purchase.Subtotal.Equal(purchase.Total))

	// each product's stock decreased by exactly the requested quantity
	assert.Equal(t, 3, ProductStock(t, db.Pool, productA))
	assert.Equal(t, 96, ProductStock(t, db.Pool, productB))

	// persisted line items carry the price snapshot and per-line subtotal
	items := PurchaseItems(t, db.Pool, purchase.ID)
	require.Len(t, items, 2)
	assert.Equal(t, productA, items[0].ProductID)
	assert.True(t, items[0].UnitPrice.Equal(price("10.00")))
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Subtotal.Equal(price("20.00")))
	assert.Equal(t, productB, items[1].ProductID)
	assert.True(t, items[1].Subtotal.Equal(price("10.00")))

	// reading the purchase back returns header plus items
	fetched, err := svc.GetByID(ctx, purchase.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Len(t, fetched.Products, 2)
}

func TestPurchaseWorkflow_EmptyRequest(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()

	svc := newPurchaseService(db)

	purchase, err := svc.Create(ctx, &model.PurchaseRequest{})

	require.ErrorIs(t, err, model.ErrEmptyPurchase)
	assert.Nil(t, purchase)
	assert.Equal(t, 0, CountPurchases(t, db.Pool))
}

func TestPurchaseWorkflow_DuplicateProduct(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 5, categoryID, brandID)

	svc := newPurchaseService(db)

	purchase, err := svc.Create(ctx, &model.PurchaseRequest{
		Products: []model.PurchaseLine{
			{ProductID: productA, Quantity: 2},
			{ProductID: productA, Quantity: 1},
		},
	})

	require.ErrorIs(t, err, model.ErrDuplicateProduct)
	assert.Nil(t, purchase)

	// no stock mutation, no purchase rows
	assert.Equal(t, 5, ProductStock(t, db.Pool, productA))
	assert.Equal(t, 0, CountPurchases(t, db.Pool))
}

func TestPurchaseWorkflow_InsufficientStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 1, categoryID, brandID)

	svc := newPurchaseService(db)

	purchase, err := svc.Create(ctx, &model.PurchaseRequest{
		Products: []model.PurchaseLine{
			{ProductID: productA, Quantity: 5},
		},
	})

	require.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Nil(t, purchase)
	assert.Equal(t, 1, ProductStock(t, db.Pool, productA))
	assert.Equal(t, 0, CountPurchases(t, db.Pool))
}

func TestPurchaseWorkflow_AllOrNothing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 5, categoryID, brandID)
	productB := SeedProduct(t, db.Pool, "Producto B", price("2.50"), 2, categoryID, brandID)

	svc := newPurchaseService(db)

	// first line succeeds, second fails: the whole batch must roll back
	purchase, err := svc.Create(ctx, &model.PurchaseRequest{
		Products: []model.PurchaseLine{
			{ProductID: productA, Quantity: 2},
			{ProductID: productB, Quantity: 10},
		},
	})

	require.ErrorIs(t, err, model.ErrInsufficientStock)
	assert.Nil(t, purchase)

	// no product in the batch keeps a partial decrement
	assert.Equal(t, 5, ProductStock(t, db.Pool, productA))
	assert.Equal(t, 2, ProductStock(t, db.Pool, productB))
	assert.Equal(t, 0, CountPurchases(t, db.Pool))
}

func TestPurchaseWorkflow_ProductNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 5, categoryID, brandID)

	svc := newPurchaseService(db)

	purchase, err := svc.Create(ctx, &model.PurchaseRequest{
		Products: []model.PurchaseLine{
			{ProductID: productA, Quantity: 1},
			{ProductID: 999999, Quantity: 1},
		},
	})

	require.ErrorIs(t, err, model.ErrProductNotFound)
	assert.Nil(t, purchase)
	assert.Equal(t, 5, ProductStock(t, db.Pool, productA))
	assert.Equal(t, 0, CountPurchases(t, db.Pool))
}

func TestPurchaseWorkflow_ConcurrentPurchases(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	ctx := context.Background()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")

	// stock 10, twenty concurrent buyers of 3 units each: at most three can
	// succeed and the final stock can never go negative
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 10, categoryID, brandID)

	svc := newPurchaseService(db)

	const buyers = 20
	const quantity = 3

	var wg sync.WaitGroup
	results := make(chan error, buyers)

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, &model.PurchaseRequest{
				Products: []model.PurchaseLine{
					{ProductID: productA, Quantity: quantity},
				},
			})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, model.ErrInsufficientStock)
		}
	}

	// 10 / 3 = 3 full purchases fit
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 10-succeeded*quantity, ProductStock(t, db.Pool, productA))
	assert.Equal(t, succeeded, CountPurchases(t, db.Pool))
	assert.GreaterOrEqual(t, ProductStock(t, db.Pool, productA), 0, "stock must never go negative")
}
