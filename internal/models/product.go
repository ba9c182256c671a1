package models

import "github.com/shopspring/decimal"

// Product is a single storefront item as returned by the backend.
// Price is always >= 0; OldPrice >= Price is a display convention the
// backend follows but the client never enforces.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OldPrice      *decimal.Decimal `json:"old_price,omitempty"`
	Discount      *float64         `json:"discount,omitempty"`
	CategoryID    int64            `json:"category_id"`
	SubcategoryID *int64           `json:"subcategory_id,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Platform      string           `json:"platform,omitempty"`
	PlatformURL   string           `json:"platform_url,omitempty"`
}

// PricePoint is one entry of a product's price history series.
type PricePoint struct {
	Date  string          `json:"date"`
	Price decimal.Decimal `json:"price"`
}

// PlatformListing is a cross-platform offer for the same product,
// used by the comparison view.
type PlatformListing struct {
	Platform string          `json:"platform"`
	Price    decimal.Decimal `json:"price"`
	URL      string          `json:"url"`
	ImageURL string          `json:"image,omitempty"`
}
