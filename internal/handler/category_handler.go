package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"tienda-api/internal/model"
	"tienda-api/internal/service"

	"github.com/rs/zerolog"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	service        service.CategoryService
	productService service.ProductService
	logger         zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, productService service.ProductService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:        service,
		productService: productService,
		logger:         logger.With().Str("handler", "category").Logger(),
	}
}

// GetAll handles GET /api/categorias requests.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}

	writeSuccess(w, "Categories retrieved successfully", http.StatusOK, categories)
}

// Create handles POST /api/categorias requests.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	category, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Category created successfully", http.StatusCreated, category)
}

// GetByID handles GET /api/categorias/{id} requests.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/categorias")
	if !ok {
		writeError(w, "Invalid category ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if category == nil {
		writeError(w, model.ErrCategoryNotFound.Message, http.StatusNotFound, nil, h.logger)
		return
	}

	writeSuccess(w, "Category retrieved successfully", http.StatusOK, category)
}

// Update handles PUT /api/categorias/{id} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/categorias")
	if !ok {
		writeError(w, "Invalid category ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	var req model.CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	category, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Category updated successfully", http.StatusOK, category)
}

// Delete handles DELETE /api/categorias/{id} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/categorias")
	if !ok {
		writeError(w, "Invalid category ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	category, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Category deleted successfully", http.StatusOK, category)
}

// Products handles GET /api/categorias/{id}/productos requests.
func (h *CategoryHandler) Products(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSuffix(r.URL.Path, "/productos")
	id, ok := idFromPath(path, "/api/categorias")
	if !ok {
		writeError(w, "Invalid category ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	category, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	if category == nil {
		writeError(w, model.ErrCategoryNotFound.Message, http.StatusNotFound, nil, h.logger)
		return
	}

	products, err := h.productService.GetByCategory(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if products == nil {
		products = []model.Product{}
	}

	writeSuccess(w, "Category products retrieved successfully", http.StatusOK, products)
}
