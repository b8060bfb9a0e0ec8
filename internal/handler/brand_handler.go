package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"tienda-api/internal/model"
	"tienda-api/internal/service"

	"github.com/rs/zerolog"
)

// BrandHandler handles brand-related HTTP requests.
type BrandHandler struct {
	service        service.BrandService
	productService service.ProductService
	logger         zerolog.Logger
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(service service.BrandService, productService service.ProductService, logger zerolog.Logger) *BrandHandler {
	return &BrandHandler{
		service:        service,
		productService: productService,
		logger:         logger.With().Str("handler", "brand").Logger(),
	}
}

// GetAll handles GET /api/marcas requests.
func (h *BrandHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.GetAll(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if brands == nil {
		brands = []model.Brand{}
	}

	writeSuccess(w, "Brands retrieved successfully", http.StatusOK, brands)
}

// Create handles POST /api/marcas requests.
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	brand, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Brand created successfully", http.StatusCreated, brand)
}

// GetByID handles GET /api/marcas/{id} requests.
func (h *BrandHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/marcas")
	if !ok {
		writeError(w, "Invalid brand ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	brand, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if brand == nil {
		writeError(w, model.ErrBrandNotFound.Message, http.StatusNotFound, nil, h.logger)
		return
	}

	writeSuccess(w, "Brand retrieved successfully", http.StatusOK, brand)
}

// Update handles PUT /api/marcas/{id} requests.
func (h *BrandHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/marcas")
	if !ok {
		writeError(w, "Invalid brand ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	var req model.BrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	brand, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Brand updated successfully", http.StatusOK, brand)
}

// Delete handles DELETE /api/marcas/{id} requests.
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/marcas")
	if !ok {
		writeError(w, "Invalid brand ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	brand, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Brand deleted successfully", http.StatusOK, brand)
}

// Products handles GET /api/marcas/{id}/productos requests.
func (h *BrandHandler) Products(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/productos")
	id, ok := idFromPath(path, "/api/marcas")
	if !ok {
		writeError(w, "Invalid brand ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	brand, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	if brand == nil {
		writeError(w, model.ErrBrandNotFound.Message, http.StatusNotFound, nil, h.logger)
		return
	}

	products, err := h.productService.GetByBrand(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	writeSuccess(w, "Brand products retrieved successfully", http.StatusOK, products)
}
