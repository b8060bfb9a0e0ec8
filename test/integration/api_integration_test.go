package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tienda-api/internal/handler"
	"tienda-api/internal/model"
	"tienda-api/internal/repository"
	"tienda-api/internal/router"
	"tienda-api/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "integration-test-key"

// newTestServer wires the full stack against the test database.
func newTestServer(db *TestDB) *httptest.Server {
	logger := zerolog.Nop()

	productRepo := repository.NewProductRepository(db.Pool, logger)
	purchaseRepo := repository.NewPurchaseRepository(db.Pool, logger)
	categoryRepo := repository.NewCategoryRepository(db.Pool, logger)
	brandRepo := repository.NewBrandRepository(db.Pool, logger)

	productService := service.NewProductService(productRepo, logger)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	brandService := service.NewBrandService(brandRepo, logger)

	mux := router.New(
		handler.NewPurchaseHandler(purchaseService, logger),
		handler.NewProductHandler(productService, logger),
		handler.NewCategoryHandler(categoryService, productService, logger),
		handler.NewBrandHandler(brandService, productService, logger),
		testAPIKey,
		logger,
	)

	return httptest.NewServer(mux)
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, model.APIResponse) {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var envelope model.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp, envelope
}

func TestAPI_PurchaseLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	server := newTestServer(db)
	defer server.Close()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 5, categoryID, brandID)
	productB := SeedProduct(t, db.Pool, "Producto B", price("2.50"), 100, categoryID, brandID)

	// Create
	body := fmt.Sprintf(`{"productos": [{"producto_id": %d, "cantidad": 2}, {"producto_id": %d, "cantidad": 4}]}`, productA, productB)
	resp, envelope := doRequest(t, http.MethodPost, server.URL+"/api/compras", body)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.False(t, envelope.Error)
	assert.Equal(t, http.StatusCreated, envelope.StatusCode)
	assert.Equal(t, "Purchase completed successfully", envelope.Message)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "30", data["total"])
	assert.Equal(t, data["subtotal"], data["total"])

	// List
	resp, envelope = doRequest(t, http.MethodGet, server.URL+"/api/compras", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	purchases, ok := envelope.Data.([]any)
	require.True(t, ok)
	assert.Len(t, purchases, 1)

	// Show
	purchaseID := int64(data["id"].(float64))
	resp, envelope = doRequest(t, http.MethodGet, fmt.Sprintf("%s/api/compras/%d", server.URL, purchaseID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, envelope.Error)

	// Update overwrites totals verbatim
	resp, envelope = doRequest(t, http.MethodPut, fmt.Sprintf("%s/api/compras/%d", server.URL, purchaseID), `{"subtotal": "99.00", "total": "99.00"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "99", updated["total"])

	// Delete
	resp, _ = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/api/compras/%d", server.URL, purchaseID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, CountPurchases(t, db.Pool))
}

func TestAPI_PurchaseErrorEnvelopes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	server := newTestServer(db)
	defer server.Close()

	categoryID := SeedCategory(t, db.Pool, "Electrónica")
	brandID := SeedBrand(t, db.Pool, "Genérica")
	productA := SeedProduct(t, db.Pool, "Producto A", price("10.00"), 1, categoryID, brandID)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"empty list", `{"productos": []}`, http.StatusBadRequest},
		{"invalid quantity", fmt.Sprintf(`{"productos": [{"producto_id": %d, "cantidad": 0}]}`, productA), http.StatusBadRequest},
		{"duplicate product", fmt.Sprintf(`{"productos": [{"producto_id": %d, "cantidad": 1}, {"producto_id": %d, "cantidad": 1}]}`, productA, productA), http.StatusBadRequest},
		{"unknown product", `{"productos": [{"producto_id": 999999, "cantidad": 1}]}`, http.StatusNotFound},
		{"insufficient stock", fmt.Sprintf(`{"productos": [{"producto_id": %d, "cantidad": 5}]}`, productA), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, envelope := doRequest(t, http.MethodPost, server.URL+"/api/compras", tt.body)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.True(t, envelope.Error)
			assert.Equal(t, tt.wantStatus, envelope.StatusCode)
			assert.NotEmpty(t, envelope.Message)
		})
	}

	// no failed request may have touched the stock
	assert.Equal(t, 1, ProductStock(t, db.Pool, productA))
	assert.Equal(t, 0, CountPurchases(t, db.Pool))
}

func TestAPI_CatalogueCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	server := newTestServer(db)
	defer server.Close()

	// Brand
	resp, envelope := doRequest(t, http.MethodPost, server.URL+"/api/marcas", `{"nombre": "Acme"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	brand := envelope.Data.(map[string]any)
	brandID := int64(brand["id"].(float64))

	// Category
	resp, envelope = doRequest(t, http.MethodPost, server.URL+"/api/categorias", `{"nombre": "Electrónica"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	category := envelope.Data.(map[string]any)
	categoryID := int64(category["id"].(float64))

	// Product
	productBody := fmt.Sprintf(
		`{"nombre": "Teclado", "descripcion": "Mecánico", "precio": "59.99", "cantidad_disponible": 12, "categoria_id": %d, "marca_id": %d}`,
		categoryID, brandID,
	)
	resp, envelope = doRequest(t, http.MethodPost, server.URL+"/api/productos", productBody)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	product := envelope.Data.(map[string]any)
	productID := int64(product["id"].(float64))

	// Products of a category
	resp, envelope = doRequest(t, http.MethodGet, fmt.Sprintf("%s/api/categorias/%d/productos", server.URL, categoryID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products := envelope.Data.([]any)
	assert.Len(t, products, 1)

	// Products of a brand
	resp, envelope = doRequest(t, http.MethodGet, fmt.Sprintf("%s/api/marcas/%d/productos", server.URL, brandID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	products = envelope.Data.([]any)
	assert.Len(t, products, 1)

	// Update product
	updateBody := fmt.Sprintf(
		`{"nombre": "Teclado", "descripcion": "Mecánico", "precio": "49.99", "cantidad_disponible": 10, "categoria_id": %d, "marca_id": %d}`,
		categoryID, brandID,
	)
	resp, envelope = doRequest(t, http.MethodPut, fmt.Sprintf("%s/api/productos/%d", server.URL, productID), updateBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	updated := envelope.Data.(map[string]any)
	assert.Equal(t, "49.99", updated["precio"])

	// Delete product, then the category and brand
	resp, _ = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/api/productos/%d", server.URL, productID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/api/categorias/%d", server.URL, categoryID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, http.MethodDelete, fmt.Sprintf("%s/api/marcas/%d", server.URL, brandID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RequiresAPIKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := SetupTestDB(t)
	server := newTestServer(db)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/compras")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// health stays open
	resp, err = http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
