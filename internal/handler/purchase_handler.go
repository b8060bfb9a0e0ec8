package handler

import (
	"encoding/json"
	"net/http"

	"tienda-api/internal/model"
	"tienda-api/internal/service"

	"github.com/rs/zerolog"
)

// PurchaseHandler handles purchase-related HTTP requests.
type PurchaseHandler struct {
	service service.PurchaseService
	logger  zerolog.Logger
}

// NewPurchaseHandler creates a new purchase handler.
func NewPurchaseHandler(service service.PurchaseService, logger zerolog.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		service: service,
		logger:  logger.With().Str("handler", "purchase").Logger(),
	}
}

// GetAll handles GET /api/compras requests.
func (h *PurchaseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.service.GetAll(r.Context())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if purchases == nil {
		purchases = []model.Purchase{}
	}

	writeSuccess(w, "Purchases retrieved successfully", http.StatusOK, purchases)
}

// Create handles POST /api/compras requests: the purchase-creation workflow.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	purchase, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Purchase completed successfully", http.StatusCreated, purchase)
}

// GetByID handles GET /api/compras/{id} requests.
func (h *PurchaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/compras")
	if !ok {
		writeError(w, "Invalid purchase ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	purchase, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if purchase == nil {
		writeError(w, model.ErrPurchaseNotFound.Message, http.StatusNotFound, nil, h.logger)
		return
	}

	writeSuccess(w, "Purchase retrieved successfully", http.StatusOK, purchase)
}

// Update handles PUT /api/compras/{id} requests. Subtotal and total are
// overwritten as provided.
func (h *PurchaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/compras")
	if !ok {
		writeError(w, "Invalid purchase ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	var req model.PurchaseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest, nil, h.logger)
		return
	}

	purchase, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Purchase updated successfully", http.StatusOK, purchase)
}

// Delete handles DELETE /api/compras/{id} requests.
func (h *PurchaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/api/compras")
	if !ok {
		writeError(w, "Invalid purchase ID", http.StatusBadRequest, nil, h.logger)
		return
	}

	purchase, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeSuccess(w, "Purchase deleted successfully", http.StatusOK, purchase)
}
