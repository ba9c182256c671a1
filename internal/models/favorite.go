package models

import "github.com/shopspring/decimal"

// FavoriteState is the client-side cached copy of a product's
// favorite/alert status. The authoritative copy lives server-side;
// this one is updated optimistically and reconciled on response.
type FavoriteState struct {
	ProductID  int64
	IsFavorite bool
	PriceAlert *decimal.Decimal
}

// Toggle statuses reported by the backend.
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
	ToggleAlready = "already"
)

// ToggleResult is the backend's answer to a favorite toggle.
type ToggleResult struct {
	Status     string `json:"status"`
	IsFavorite bool   `json:"is_favorite"`
}

// FavoriteProduct is one row of the favorites list.
type FavoriteProduct struct {
	FavoriteID int64            `json:"favorite_id"`
	ProductID  int64            `json:"id"`
	Title      string           `json:"title"`
	Image      string           `json:"image,omitempty"`
	Price      decimal.Decimal  `json:"price"`
	PriceAlert *decimal.Decimal `json:"price_alert,omitempty"`
}

// PriceAlertEntry is one row of the price-alerts list.
type PriceAlertEntry struct {
	ProductID  int64           `json:"product_id"`
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	PriceAlert decimal.Decimal `json:"price_alert"`
}
