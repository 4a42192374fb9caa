// Package catalog provides product lookup for HTTP handlers and the
// assistant responder.
package catalog

import (
	"sort"
	"strings"

	model "github.com/issac8080/aurashop/internal/model/catalog"
)

// Filter narrows a product listing. Nil numeric bounds are unconstrained.
type Filter struct {
	Category  string
	Query     string
	Color     string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Limit     int
}

// Store exposes catalog retrieval.
type Store interface {
	List(f Filter) []model.Product
	Get(id string) (model.Product, bool)
	Categories() []string
}

// MemoryStore implements Store with an in-memory slice, suitable for the
// seeded demo catalog.
type MemoryStore struct {
	items []model.Product
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied products.
func NewMemoryStore(items []model.Product) *MemoryStore {
	return &MemoryStore{items: append([]model.Product(nil), items...)}
}

// List returns products matching the filter, ordered by rating descending.
func (s *MemoryStore) List(f Filter) []model.Product {
	out := make([]model.Product, 0, len(s.items))
	for _, p := range s.items {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.MinRating != nil && p.Rating < *f.MinRating {
			continue
		}
		if f.Color != "" && !hasFold(p.Colors, f.Color) {
			continue
		}
		if f.Query != "" && !matchesQuery(p, f.Query) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].Price < out[j].Price
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

// Get looks up a product by identifier.
func (s *MemoryStore) Get(id string) (model.Product, bool) {
	for _, p := range s.items {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Categories returns the distinct category names in catalog order.
func (s *MemoryStore) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.items {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// matchesQuery reports whether any query word appears in the product's name,
// category, tags, colors, or description.
func matchesQuery(p model.Product, query string) bool {
	hay := strings.ToLower(strings.Join([]string{
		p.Name, p.Category, p.Subcategory, p.Brand, p.Description,
		strings.Join(p.Tags, " "), strings.Join(p.Colors, " "),
	}, " "))
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) < 3 {
			continue
		}
		if strings.Contains(hay, word) {
			return true
		}
	}
	return false
}

func hasFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
