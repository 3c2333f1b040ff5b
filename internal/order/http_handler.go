package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookstore/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	Items []Line `json:"items"`
}

// Create handles POST /transactions
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFrom(r)
	if userID == "" {
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	o, err := h.service.Place(r.Context(), userID, req.Items)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	httpx.JSONSuccessCreated(w, o)
}

func writeOrderError(w http.ResponseWriter, err error) {
	var invalidQty *InvalidQuantityError
	var notFound *BookNotFoundError
	var noStock *InsufficientStockError

	switch {
	case errors.Is(err, ErrEmptyOrder):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", "Items must be a non-empty list", nil)
	case errors.As(err, &invalidQty):
		httpx.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", invalidQty.Error(), nil)
	case errors.As(err, &notFound):
		httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", notFound.Error(), nil)
	case errors.As(err, &noStock):
		httpx.JSONError(w, http.StatusConflict, "INSUFFICIENT_STOCK", noStock.Error(), nil)
	case errors.Is(err, ErrMissingIdentity):
		httpx.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// List handles GET /transactions
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, orders, nil)
}

// Detail handles GET /transactions/{transaction_id}
func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("transaction_id")

	o, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Transaction not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, o, nil)
}

// Statistics handles GET /transactions/statistics
func (h *HTTPHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, stats, nil)
}
