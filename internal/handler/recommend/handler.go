// Package recommend exposes the session-aware product recommendation
// endpoint.
package recommend

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	recommendService "github.com/issac8080/aurashop/internal/service/recommend"
	"github.com/issac8080/aurashop/pkg/utils"
)

// Handler serves recommendations.
type Handler struct {
	svc *recommendService.Service
}

// New builds the handler.
func New(svc *recommendService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the recommendation endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/recommendations", h.HandleRecommend)
}

// HandleRecommend returns ranked products for a session. exclude_product_ids
// is comma separated.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := recommendService.Query{
		SessionID: q.Get("session_id"),
		Category:  q.Get("category"),
	}
	if raw := q.Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			query.Limit = v
		}
	}
	if raw := q.Get("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			query.MaxPrice = &v
		}
	}
	if raw := q.Get("exclude_product_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				query.ExcludeIDs = append(query.ExcludeIDs, id)
			}
		}
	}

	recs := h.svc.Recommend(query)
	if recs == nil {
		recs = []recommendService.Recommendation{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}
