// Package recommend ranks catalog products for a session using its tracked
// browsing context.
package recommend

import (
	"fmt"

	model "github.com/issac8080/aurashop/internal/model/catalog"
	catalogService "github.com/issac8080/aurashop/internal/service/catalog"
	"github.com/issac8080/aurashop/internal/service/track"
)

const (
	defaultLimit = 5
	maxLimit     = 20
)

// Query narrows the candidate set. Zero values are unconstrained.
type Query struct {
	SessionID  string
	Limit      int
	MaxPrice   *float64
	Category   string
	ExcludeIDs []string
}

// Recommendation pairs a product with the reason it was picked.
type Recommendation struct {
	ProductID  string        `json:"product_id"`
	Reason     string        `json:"reason"`
	Confidence float64       `json:"confidence"`
	Product    model.Product `json:"product"`
}

// Service ranks products by rating and price fit.
type Service struct {
	catalog catalogService.Store
	tracker *track.Service
}

// NewService builds the recommender.
func NewService(catalog catalogService.Store, tracker *track.Service) *Service {
	return &Service{catalog: catalog, tracker: tracker}
}

// Recommend returns up to q.Limit products ordered by rating, falling back to
// the unfiltered catalog when the filters match nothing. The session's most
// recent budget signal only shapes the reason text, it never filters.
func (s *Service) Recommend(q Query) []Recommendation {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	exclude := make(map[string]struct{}, len(q.ExcludeIDs))
	for _, id := range q.ExcludeIDs {
		exclude[id] = struct{}{}
	}

	candidates := s.candidates(catalogService.Filter{
		Category: q.Category,
		MaxPrice: q.MaxPrice,
	}, exclude)
	if len(candidates) == 0 {
		candidates = s.candidates(catalogService.Filter{Limit: maxLimit}, exclude)
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	budget := s.lastBudget(q.SessionID)
	out := make([]Recommendation, 0, len(candidates))
	for _, p := range candidates {
		reason := fmt.Sprintf("High rating (%.1f)", p.Rating)
		if budget > 0 && p.Price <= budget {
			reason = "Within your budget, high rating"
		}
		out = append(out, Recommendation{
			ProductID:  p.ID,
			Reason:     reason,
			Confidence: 0.75,
			Product:    p,
		})
	}
	return out
}

// candidates lists matching products minus the excluded ids, keeping the
// store's rating ordering.
func (s *Service) candidates(f catalogService.Filter, exclude map[string]struct{}) []model.Product {
	var out []model.Product
	for _, p := range s.catalog.List(f) {
		if _, drop := exclude[p.ID]; drop {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Service) lastBudget(sessionID string) float64 {
	if sessionID == "" {
		return 0
	}
	signals := s.tracker.Context(sessionID).BudgetSignals
	if len(signals) == 0 {
		return 0
	}
	return signals[len(signals)-1]
}
