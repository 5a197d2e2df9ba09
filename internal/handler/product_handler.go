package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"product-catalog/internal/model"
	"product-catalog/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests. Request and response
// bodies are the six-key wire mapping produced by Product.Serialize.
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

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	product, err := h.service.Create(r.Context(), payload)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/products/%d", product.ID))
	writeJSON(w, http.StatusCreated, product.Serialize())
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product.Serialize())
}

// Update handles PUT /api/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	product, err := h.service.Update(r.Context(), id, payload)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product.Serialize())
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/products requests with optional exact-equality
// filters on name, category, available, or price.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := service.ProductFilter{
		Name:      query.Get("name"),
		Category:  query.Get("category"),
		Available: query.Get("available"),
		Price:     query.Get("price"),
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	serialized := make([]map[string]any, 0, len(products))
	for i := range products {
		serialized = append(serialized, products[i].Serialize())
	}

	writeJSON(w, http.StatusOK, serialized)
}

// decodePayload decodes the request body into a wire-level mapping. Numbers
// are kept as json.Number so prices reach the model without passing through
// a binary float.
func (h *ProductHandler) decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON,
			"body of request contained bad or no data", h.logger)
		return nil, false
	}
	return payload, true
}

// productID extracts the integer product ID from the request path.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/products/")
	raw = strings.TrimSuffix(raw, "/")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound,
			"product not found", h.logger)
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto HTTP statuses. Validation failures
// and bad price filters surface their message; anything else is an opaque
// internal error so store details never leak to clients.
func (h *ProductHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *model.DataValidationError
		priceErr      *model.PriceFilterError
	)

	switch {
	case errors.Is(err, model.ErrProductNotFound):
		writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound,
			"product not found", h.logger)
	case errors.As(err, &validationErr):
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation,
			validationErr.Message, h.logger)
	case errors.As(err, &priceErr):
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation,
			priceErr.Error(), h.logger)
	default:
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError,
			"internal server error", h.logger)
	}
}
