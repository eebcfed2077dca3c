package handlers

import (
	"net/http"
	"strconv"

	"bistro-api/internal/models"
	"bistro-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type MenuHandler struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func NewMenuHandler(catalogService *services.CatalogService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	h.listProducts(w, r, services.NewProductFilter("", 0))
}

// GetMenuByCategory handles GET /menuCategory?category=&limit=. Both
// parameters are optional.
func (h *MenuHandler) GetMenuByCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := queryInt(w, q.Get("limit"), 0)
	if !ok {
		return
	}
	h.listProducts(w, r, services.NewProductFilter(q.Get("category"), limit))
}

// GetShopMenu handles GET /shopMenu?category=&page=&limit=, with 1-based
// pages.
func (h *MenuHandler) GetShopMenu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, ok := queryInt(w, q.Get("page"), 1)
	if !ok {
		return
	}
	size, ok := queryInt(w, q.Get("limit"), services.DefaultShopPageSize)
	if !ok {
		return
	}
	h.listProducts(w, r, services.Page(q.Get("category"), page, size))
}

func (h *MenuHandler) TotalProducts(w http.ResponseWriter, r *http.Request) {
	n, err := h.catalogService.CountProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to count products")
		return
	}

	respondWithJSON(w, http.StatusOK, CountResponse{Count: n})
}

func (h *MenuHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if !decodeJSON(w, r, &p) {
		return
	}

	created, err := h.catalogService.AddProduct(r.Context(), &p)
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to add product")
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *MenuHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogService.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondWithAppError(w, h.logger, err, "Failed to delete product")
		return
	}

	respondWithJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted"})
}

func (h *MenuHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.catalogService.ListReviews(r.Context())
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to list reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, reviews)
}

func (h *MenuHandler) listProducts(w http.ResponseWriter, r *http.Request, f models.ProductFilter) {
	products, err := h.catalogService.ListProducts(r.Context(), f)
	if err != nil {
		respondWithAppError(w, h.logger, err, "Failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func queryInt(w http.ResponseWriter, raw string, def int64) (int64, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Query parameters must be non-negative integers")
		return 0, false
	}
	return n, true
}
