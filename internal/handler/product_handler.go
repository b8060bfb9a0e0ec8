package handler

import (
	"encoding/json"
	"net/http"

	"tienda-api/internal/model"
	"tienda-api/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/productos requests.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	writeSuccess(w, "Products retrieved successfully", http.StatusOK, products)
}

// Create handles POST /api/productos requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Product created successfully", http.StatusCreated, product)
}

// GetByID handles GET /api/productos/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/productos")
	if !ok {
		writeError(w, "Invalid product ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if product == nil {
		writeError(w, model.ErrProductNotFound.Message, http.StatusNotFound, nil, h.logger)
		return
	}

	writeSuccess(w, "Product retrieved successfully", http.StatusOK, product)
}

// Update handles PUT /api/productos/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/productos")
	if !ok {
		writeError(w, "Invalid product ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Product updated successfully", http.StatusOK, product)
}

// Delete handles DELETE /api/productos/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/productos")
	if !ok {
		writeError(w, "Invalid product ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	product, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Product deleted successfully", http.StatusOK, product)
}
