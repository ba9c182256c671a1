package models

import "github.com/shopspring/decimal"

// SortOrder selects how a filtered product list is ordered.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "priceAsc"
	SortPriceDesc SortOrder = "priceDesc"
	SortNameAsc   SortOrder = "nameAsc"
	SortNameDesc  SortOrder = "nameDesc"
)

// ParseSortOrder maps a request value to a SortOrder. The legacy UI
// values "name-a-z"/"name-z-a" are still accepted; anything unknown
// falls back to SortNone (preserve fetch order).
func ParseSortOrder(s string) SortOrder {
	switch s {
	case string(SortPriceAsc):
		return SortPriceAsc
	case string(SortPriceDesc):
		return SortPriceDesc
	case string(SortNameAsc), "name-a-z":
		return SortNameAsc
	case string(SortNameDesc), "name-z-a":
		return SortNameDesc
	default:
		return SortNone
	}
}

// FilterCriteria is the combined set of category, price-range,
// text-search and sort parameters governing the visible product subset.
// Nil pointer fields mean "not active".
type FilterCriteria struct {
	CategoryID    *int64
	SubcategoryID *int64
	MinPrice      *decimal.Decimal
	MaxPrice      *decimal.Decimal
	SearchText    string
	Sort          SortOrder
}

// DefaultPageSize matches the storefront grid (48 products per page).
const DefaultPageSize = 48

// Page is a derived pagination window, never stored.
type Page struct {
	Number int
	Size   int
}
