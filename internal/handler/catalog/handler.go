// Package catalog exposes product browsing endpoints.
package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	model "github.com/issac8080/aurashop/internal/model/catalog"
	catalogService "github.com/issac8080/aurashop/internal/service/catalog"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Handler serves the product catalog.
type Handler struct {
	store catalogService.Store
}

// New builds the handler.
func New(store catalogService.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the catalog endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.HandleList)
	r.Get("/products/{productID}", h.HandleGet)
	r.Get("/categories", h.HandleCategories)
}

// HandleList returns products matching the query filters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalogService.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Color:    q.Get("color"),
	}
	if v, ok := parseFloat(q.Get("min_price")); ok {
		filter.MinPrice = &v
	}
	if v, ok := parseFloat(q.Get("max_price")); ok {
		filter.MaxPrice = &v
	}
	if v, ok := parseFloat(q.Get("min_rating")); ok {
		filter.MinRating = &v
	}
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			filter.Limit = v
		}
	}

	products := h.store.List(filter)
	if products == nil {
		products = []model.Product{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

// HandleGet returns one product by id.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	product, ok := h.store.Get(id)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "product not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, product)
}

// HandleCategories lists the distinct categories in the catalog.
func (h *Handler) HandleCategories(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"categories": h.store.Categories()})
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
