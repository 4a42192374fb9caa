// Package catalog defines the product model served by the storefront API.
package catalog

// Product is one catalog entry. Prices are rupees.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	ImageURL    string   `json:"image_url,omitempty"`
	Tags        []string `json:"tags"`
	InStock     bool     `json:"in_stock"`
	StockCount  int      `json:"stock_count,omitempty"`
}
