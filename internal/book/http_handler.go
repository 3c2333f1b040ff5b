package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bookstore/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createReq struct {
	Title           string  `json:"title" validate:"required,min=1,max=255"`
	Writer          string  `json:"writer" validate:"required"`
	Publisher       string  `json:"publisher" validate:"required"`
	PublicationYear int     `json:"publication_year" validate:"required,gte=1000"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" validate:"gte=0"`
	StockQuantity   int     `json:"stock_quantity" validate:"gte=0"`
	GenreID         string  `json:"genre_id" validate:"required"`
}

// Create handles POST /books
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Title = strings.TrimSpace(req.Title)

	if details := httpx.ValidateStruct(req); len(details) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
		return
	}

	b := &Book{
		Title:           req.Title,
		Writer:          req.Writer,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		GenreID:         req.GenreID,
	}

	if err := h.service.Create(r.Context(), b); err != nil {
		switch {
		case errors.Is(err, ErrTitleTaken):
			httpx.JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Book title already exists", nil)
		case errors.Is(err, ErrGenreNotFound):
			httpx.JSONError(w, http.StatusBadRequest, "INVALID_GENRE", "Invalid genre_id", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccessCreated(w, map[string]any{
		"id":         b.ID,
		"title":      b.Title,
		"created_at": b.CreatedAt,
	})
}

func parseQuery(r *http.Request) (Query, int, int) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	params := Query{
		Search:    query.Get("search"),
		GenreID:   query.Get("genre_id"),
		TitleDesc: query.Get("orderByTitle") != "asc",
		YearDesc:  query.Get("orderByPublishDate") == "desc",
		Limit:     limit,
		Offset:    (page - 1) * limit,
	}
	return params, page, limit
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	params, page, limit := parseQuery(r)

	books, total, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, books, map[string]any{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": (total + limit - 1) / limit,
	})
}

// ListByGenre handles GET /books/genre/{genre_id}
func (h *HTTPHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	params, page, limit := parseQuery(r)

	books, total, err := h.service.ListByGenre(r.Context(), r.PathValue("genre_id"), params)
	if err != nil {
		if errors.Is(err, ErrGenreNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Genre not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, books, map[string]any{
		"page":        page,
		"limit":       limit,
		"total":       total,
		"total_pages": (total + limit - 1) / limit,
	})
}

// Detail handles GET /books/{book_id}
func (h *HTTPHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("book_id")

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, b, nil)
}

// Update handles PATCH /books/{book_id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("book_id")

	var p Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	if p.Price != nil && *p.Price < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "price must not be negative", nil)
		return
	}
	if p.StockQuantity != nil && *p.StockQuantity < 0 {
		httpx.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "stock_quantity must not be negative", nil)
		return
	}

	b, err := h.service.Update(r.Context(), id, p)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, ErrTitleTaken):
			httpx.JSONError(w, http.StatusConflict, "ALREADY_EXISTS", "Book title already exists", nil)
		case errors.Is(err, ErrGenreNotFound):
			httpx.JSONError(w, http.StatusBadRequest, "INVALID_GENRE", "Invalid genre_id", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, map[string]any{
		"id":         b.ID,
		"title":      b.Title,
		"updated_at": b.UpdatedAt,
	}, nil)
}

// Delete handles DELETE /books/{book_id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("book_id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, map[string]any{"message": "Book removed successfully"}, nil)
}
