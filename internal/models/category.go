package models

import "github.com/shopspring/decimal"

// Category is fetched read-only per page load; the storefront never
// mutates it.
type Category struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
}

type Subcategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Preference is a saved browsing preference (category scope plus an
// optional price band).
type Preference struct {
	ID            int64   `json:"id"`
	CategoryID    int64   `json:"category_id"`
	SubcategoryID *int64  `json:"subcategory_id,omitempty"`
	MinPrice      *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice      *decimal.Decimal `json:"max_price,omitempty"`
}
