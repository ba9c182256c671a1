package catalog

import (
	"sort"
	"strings"

	"github.com/Emansafdar26/buysmart-client/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Engine derives the visible page of a product collection from a
// FilterCriteria. It is pure: inputs are never mutated, and the same
// inputs always produce the same outputs.
type Engine struct {
	collator *collate.Collator
	pageSize int
}

// Result is the derived slice to display plus the page arithmetic the
// pagination controls need.
type Result struct {
	Visible    []models.Product
	TotalPages int
	TotalCount int
}

func NewEngine(tag language.Tag, pageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = models.DefaultPageSize
	}
	return &Engine{
		collator: collate.New(tag),
		pageSize: pageSize,
	}
}

// Filter returns the products matching every active predicate of the
// criteria, ordered per its sort order.
func (e *Engine) Filter(products []models.Product, criteria models.FilterCriteria) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	search := strings.ToLower(criteria.SearchText)
	for _, p := range products {
		if matches(p, criteria, search) {
			filtered = append(filtered, p)
		}
	}
	e.sortProducts(filtered, criteria.Sort)
	return filtered
}

// Apply filters, sorts and slices out the requested page.
//
// An out-of-range page yields an empty Visible slice; resetting to
// page 1 after a criteria change is the caller's obligation, the
// engine never clamps for it.
func (e *Engine) Apply(products []models.Product, criteria models.FilterCriteria, page models.Page) Result {
	filtered := e.Filter(products, criteria)

	size := page.Size
	if size <= 0 {
		size = e.pageSize
	}
	number := page.Number
	if number < 1 {
		number = 1
	}

	total := len(filtered)
	totalPages := (total + size - 1) / size

	start := (number - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Result{
		Visible:    filtered[start:end],
		TotalPages: totalPages,
		TotalCount: total,
	}
}

func matches(p models.Product, c models.FilterCriteria, search string) bool {
	if c.CategoryID != nil && p.CategoryID != *c.CategoryID {
		return false
	}
	if c.SubcategoryID != nil && (p.SubcategoryID == nil || *p.SubcategoryID != *c.SubcategoryID) {
		return false
	}
	if c.MinPrice != nil && p.Price.Cmp(*c.MinPrice) < 0 {
		return false
	}
	if c.MaxPrice != nil && p.Price.Cmp(*c.MaxPrice) > 0 {
		return false
	}
	if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
		return false
	}
	return true
}

func (e *Engine) sortProducts(products []models.Product, order models.SortOrder) {
	switch order {
	case models.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) < 0
		})
	case models.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) > 0
		})
	case models.SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return e.collator.CompareString(products[i].Name, products[j].Name) < 0
		})
	case models.SortNameDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return e.collator.CompareString(products[i].Name, products[j].Name) > 0
		})
	}
	// SortNone preserves fetch order
}

// SortListings orders cross-platform listings for the comparison view.
// Name orders compare the platform name.
func (e *Engine) SortListings(listings []models.PlatformListing, order models.SortOrder) []models.PlatformListing {
	sorted := make([]models.PlatformListing, len(listings))
	copy(sorted, listings)

	switch order {
	case models.SortPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.Cmp(sorted[j].Price) < 0
		})
	case models.SortPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.Cmp(sorted[j].Price) > 0
		})
	case models.SortNameAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return e.collator.CompareString(sorted[i].Platform, sorted[j].Platform) < 0
		})
	case models.SortNameDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return e.collator.CompareString(sorted[i].Platform, sorted[j].Platform) > 0
		})
	}
	return sorted
}
