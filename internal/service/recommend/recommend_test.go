package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	model "github.com/issac8080/aurashop/internal/model/catalog"
	catalogService "github.com/issac8080/aurashop/internal/service/catalog"
	"github.com/issac8080/aurashop/internal/service/track"
)

func setup(t *testing.T) (*Service, *track.Service) {
	t.Helper()
	store := catalogService.NewMemoryStore([]model.Product{
		{ID: "P001", Name: "Runner", Category: "Shoes", Price: 899, Rating: 4.6},
		{ID: "P002", Name: "Loafer", Category: "Shoes", Price: 1499, Rating: 4.2},
		{ID: "P003", Name: "Tee", Category: "Clothing", Price: 499, Rating: 4.8},
		{ID: "P004", Name: "Watch", Category: "Accessories", Price: 2999, Rating: 3.9},
	})
	tracker, err := track.New(context.Background(), zerolog.Nop())
	if err != nil {
		t.Fatalf("track.New: %v", err)
	}
	t.Cleanup(func() { tracker.Close() })
	return NewService(store, tracker), tracker
}

func TestRecommendOrdersByRating(t *testing.T) {
	svc, _ := setup(t)

	recs := svc.Recommend(Query{SessionID: "s1"})
	if len(recs) != 4 {
		t.Fatalf("got %d recommendations, want 4", len(recs))
	}
	if recs[0].ProductID != "P003" || recs[1].ProductID != "P001" {
		t.Fatalf("ordering = %s, %s", recs[0].ProductID, recs[1].ProductID)
	}
	for _, r := range recs {
		if r.Confidence != 0.75 {
			t.Fatalf("confidence = %v", r.Confidence)
		}
		if r.Product.ID != r.ProductID {
			t.Fatalf("product %q attached to %q", r.Product.ID, r.ProductID)
		}
	}
}

func TestRecommendFilters(t *testing.T) {
	svc, _ := setup(t)

	maxPrice := 1000.0
	recs := svc.Recommend(Query{Category: "Shoes", MaxPrice: &maxPrice})
	if len(recs) != 1 || recs[0].ProductID != "P001" {
		t.Fatalf("recs = %+v", recs)
	}

	recs = svc.Recommend(Query{ExcludeIDs: []string{"P003"}, Limit: 2})
	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	for _, r := range recs {
		if r.ProductID == "P003" {
			t.Fatal("excluded product recommended")
		}
	}
}

func TestRecommendFallsBackWhenNothingMatches(t *testing.T) {
	svc, _ := setup(t)

	recs := svc.Recommend(Query{Category: "Furniture"})
	if len(recs) == 0 {
		t.Fatal("no fallback recommendations")
	}
}

func TestRecommendBudgetShapesReason(t *testing.T) {
	svc, tracker := setup(t)
	ev := track.Event{SessionID: "s1", EventType: track.EventBudgetSignal, Amount: 1000}
	if err := tracker.Track(context.Background(), ev); err != nil {
		t.Fatalf("Track: %v", err)
	}

	recs := svc.Recommend(Query{SessionID: "s1"})
	for _, r := range recs {
		within := r.Product.Price <= 1000
		if within && r.Reason != "Within your budget, high rating" {
			t.Fatalf("reason for %s = %q", r.ProductID, r.Reason)
		}
		if !within && r.Reason == "Within your budget, high rating" {
			t.Fatalf("over-budget %s marked within budget", r.ProductID)
		}
	}
}
