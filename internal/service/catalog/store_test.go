package catalog

import (
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestListFilters(t *testing.T) {
	store := NewMemoryStore(Seed())

	t.Run("query with budget", func(t *testing.T) {
		products := store.List(Filter{Query: "black shoes", MaxPrice: floatPtr(1000)})
		if len(products) == 0 {
			t.Fatal("expected matches for black shoes under 1000")
		}
		for _, p := range products {
			if p.Price > 1000 {
				t.Fatalf("%s at ₹%.0f exceeds max price", p.ID, p.Price)
			}
		}
	})

	t.Run("category", func(t *testing.T) {
		products := store.List(Filter{Category: "footwear"})
		if len(products) == 0 {
			t.Fatal("expected footwear products")
		}
		for _, p := range products {
			if p.Category != "Footwear" {
				t.Fatalf("%s has category %s", p.ID, p.Category)
			}
		}
	})

	t.Run("min rating", func(t *testing.T) {
		for _, p := range store.List(Filter{MinRating: floatPtr(4.5)}) {
			if p.Rating < 4.5 {
				t.Fatalf("%s rated %.1f below the floor", p.ID, p.Rating)
			}
		}
	})

	t.Run("limit", func(t *testing.T) {
		if got := store.List(Filter{Limit: 3}); len(got) != 3 {
			t.Fatalf("limit 3 returned %d products", len(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := store.List(Filter{Query: "submarine"}); len(got) != 0 {
			t.Fatalf("expected no matches, got %d", len(got))
		}
	})
}

func TestListOrderedByRating(t *testing.T) {
	store := NewMemoryStore(Seed())
	products := store.List(Filter{})
	for i := 1; i < len(products); i++ {
		if products[i].Rating > products[i-1].Rating {
			t.Fatalf("products out of rating order at %d: %.1f after %.1f",
				i, products[i].Rating, products[i-1].Rating)
		}
	}
}

func TestGet(t *testing.T) {
	store := NewMemoryStore(Seed())
	p, ok := store.Get("P006")
	if !ok {
		t.Fatal("P006 missing from seed catalog")
	}
	if p.Price > 1000 || p.Category != "Footwear" {
		t.Fatalf("P006 = %+v", p)
	}
	if _, ok := store.Get("P999"); ok {
		t.Fatal("unexpected product P999")
	}
}

func TestCategories(t *testing.T) {
	store := NewMemoryStore(Seed())
	cats := store.Categories()
	if len(cats) == 0 {
		t.Fatal("no categories")
	}
	seen := make(map[string]bool)
	for _, c := range cats {
		if seen[c] {
			t.Fatalf("duplicate category %s", c)
		}
		seen[c] = true
	}
	if !seen["Footwear"] {
		t.Fatal("Footwear missing from categories")
	}
}
