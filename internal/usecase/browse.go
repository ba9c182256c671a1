package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Emansafdar26/buysmart-client/internal/catalog"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
)

// BrowseScope selects which backend collection feeds the browse view.
type BrowseScope string

const (
	ScopeAll         BrowseScope = "all"
	ScopeCategory    BrowseScope = "category"
	ScopePreferences BrowseScope = "preferences"
	ScopeSearch      BrowseScope = "search"
)

// BrowseView is the fully derived state of the product listing screen.
type BrowseView struct {
	Products   []models.Product      `json:"products"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"total_pages"`
	TotalCount int                   `json:"total"`
	Criteria   models.FilterCriteria `json:"-"`
}

// BrowseUsecase drives product listing: it owns the fetched collection,
// the active criteria and the current page, and derives the visible
// slice through the catalog engine.
//
// Responses from superseded fetches are discarded: every fetch is
// stamped with a generation, and only the result matching the current
// generation may replace the collection.
type BrowseUsecase interface {
	Load(ctx context.Context, scope BrowseScope, categoryID, subcategoryID *int64) error
	Search(ctx context.Context, text string) error
	SetCriteria(criteria models.FilterCriteria)
	SetPage(page int)
	View() BrowseView
}

type browseUsecase struct {
	api    storefront.Client
	engine *catalog.Engine

	generation atomic.Uint64

	mu       sync.Mutex
	products []models.Product
	criteria models.FilterCriteria
	page     int
}

func NewBrowseUsecase(api storefront.Client, engine *catalog.Engine) BrowseUsecase {
	return &browseUsecase{
		api:    api,
		engine: engine,
		page:   1,
	}
}

// Load replaces the collection from the requested scope. Starting a
// load invalidates any fetch still in flight.
func (u *browseUsecase) Load(ctx context.Context, scope BrowseScope, categoryID, subcategoryID *int64) error {
	gen := u.generation.Add(1)

	var (
		products []models.Product
		err      error
	)
	switch scope {
	case ScopeCategory:
		if categoryID == nil {
			return fmt.Errorf("category scope needs a category id")
		}
		products, err = u.api.ListCategoryProducts(ctx, *categoryID, subcategoryID)
	case ScopePreferences:
		products, err = u.api.ProductsByPreferences(ctx)
	default:
		products, err = u.api.ListProducts(ctx)
	}
	if err != nil {
		return fmt.Errorf("load %s products: %w", scope, err)
	}

	return u.install(gen, products, func(c *models.FilterCriteria) {
		c.CategoryID = categoryID
		c.SubcategoryID = subcategoryID
		c.SearchText = ""
	})
}

// Search replaces the collection with the backend's name matches.
func (u *browseUsecase) Search(ctx context.Context, text string) error {
	gen := u.generation.Add(1)

	products, err := u.api.SearchProducts(ctx, text)
	if err != nil {
		return fmt.Errorf("search products: %w", err)
	}

	return u.install(gen, products, func(c *models.FilterCriteria) {
		c.SearchText = ""
	})
}

// install swaps in a fetched collection unless a newer fetch has
// started since, and resets paging to the first page. The generation
// check and the swap happen under one lock: a stale fetch that loses
// the race can never land after the newer install.
func (u *browseUsecase) install(gen uint64, products []models.Product, adjust func(*models.FilterCriteria)) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.generation.Load() != gen {
		return models.ErrStaleResponse
	}

	u.products = products
	adjust(&u.criteria)
	u.page = 1
	return nil
}

// SetCriteria replaces the active criteria. Any criteria change resets
// the view to page 1; a stale page against a reshaped list would show
// arbitrary products.
func (u *browseUsecase) SetCriteria(criteria models.FilterCriteria) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.criteria = criteria
	u.page = 1
}

func (u *browseUsecase) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.page = page
}

// View derives the visible page from the current collection, criteria
// and page number.
func (u *browseUsecase) View() BrowseView {
	u.mu.Lock()
	products := u.products
	criteria := u.criteria
	page := u.page
	u.mu.Unlock()

	res := u.engine.Apply(products, criteria, models.Page{Number: page})
	return BrowseView{
		Products:   res.Visible,
		Page:       page,
		TotalPages: res.TotalPages,
		TotalCount: res.TotalCount,
		Criteria:   criteria,
	}
}
