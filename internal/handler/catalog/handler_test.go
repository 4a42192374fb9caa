package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	model "github.com/issac8080/aurashop/internal/model/catalog"
	catalogService "github.com/issac8080/aurashop/internal/service/catalog"
)

func setupRouter() *chi.Mux {
	r := chi.NewRouter()
	New(catalogService.NewMemoryStore(catalogService.Seed())).RegisterRoutes(r)
	return r
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestListProductsFiltered(t *testing.T) {
	r := setupRouter()

	resp := get(t, r, "/products?q=shoes&max_price=1000&limit=5")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Products []model.Product `json:"products"`
		Total    int             `json:"total"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total == 0 || body.Total != len(body.Products) {
		t.Fatalf("total = %d, products = %d", body.Total, len(body.Products))
	}
	for _, p := range body.Products {
		if p.Price > 1000 {
			t.Fatalf("%s at ₹%.0f exceeds max_price", p.ID, p.Price)
		}
	}
}

func TestListProductsBadParamsIgnored(t *testing.T) {
	r := setupRouter()
	resp := get(t, r, "/products?max_price=banana")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestGetProduct(t *testing.T) {
	r := setupRouter()

	resp := get(t, r, "/products/P006")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var p model.Product
	if err := json.Unmarshal(resp.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.ID != "P006" {
		t.Fatalf("got product %s", p.ID)
	}

	if resp := get(t, r, "/products/P999"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCategories(t *testing.T) {
	r := setupRouter()

	resp := get(t, r, "/categories")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Categories) == 0 {
		t.Fatal("no categories")
	}
}
