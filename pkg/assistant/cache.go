package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
)

// ProductSummary is the resolved card data for one referenced product.
type ProductSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ProductFetcher resolves a product id to its summary.
type ProductFetcher interface {
	FetchProduct(ctx context.Context, id string) (ProductSummary, error)
}

// productCache memoizes resolved products for the lifetime of a chat session.
// Entries are append-only: the first successful write for an id wins and is
// never evicted or overwritten. Failed fetches are not recorded, so an id may
// be retried when it reappears in a later turn.
type productCache struct {
	mu       sync.Mutex
	products map[string]ProductSummary
	inflight map[string]chan struct{}
}

func newProductCache() *productCache {
	return &productCache{
		products: make(map[string]ProductSummary),
		inflight: make(map[string]chan struct{}),
	}
}

// Get returns the cached summary for id, if resolved.
func (c *productCache) Get(id string) (ProductSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[id]
	return p, ok
}

// Resolve returns the summary for id, fetching at most once per id even under
// concurrent callers. Concurrent resolvers of the same id wait for the first
// fetch instead of issuing their own.
func (c *productCache) Resolve(ctx context.Context, fetcher ProductFetcher, id string) (ProductSummary, bool) {
	for {
		c.mu.Lock()
		if p, ok := c.products[id]; ok {
			c.mu.Unlock()
			return p, true
		}
		if wait, ok := c.inflight[id]; ok {
			c.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return ProductSummary{}, false
			}
		}
		done := make(chan struct{})
		c.inflight[id] = done
		c.mu.Unlock()

		p, err := fetcher.FetchProduct(ctx, id)

		c.mu.Lock()
		delete(c.inflight, id)
		if err == nil {
			if _, exists := c.products[id]; !exists {
				c.products[id] = p
			}
			p = c.products[id]
		}
		c.mu.Unlock()
		close(done)

		if err != nil {
			return ProductSummary{}, false
		}
		return p, true
	}
}

// HTTPProductFetcher resolves products against GET {base}/products/{id}.
type HTTPProductFetcher struct {
	base string
	hc   *http.Client
}

// NewHTTPProductFetcher builds a fetcher for the given API base URL. A nil
// client falls back to http.DefaultClient.
func NewHTTPProductFetcher(base string, hc *http.Client) *HTTPProductFetcher {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPProductFetcher{base: base, hc: hc}
}

// FetchProduct implements ProductFetcher.
func (f *HTTPProductFetcher) FetchProduct(ctx context.Context, id string) (ProductSummary, error) {
	u := fmt.Sprintf("%s/products/%s", f.base, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ProductSummary{}, err
	}
	resp, err := f.hc.Do(req)
	if err != nil {
		return ProductSummary{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ProductSummary{}, fmt.Errorf("product %s: unexpected status %d", id, resp.StatusCode)
	}
	var p ProductSummary
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return ProductSummary{}, fmt.Errorf("product %s: decode: %w", id, err)
	}
	return p, nil
}
