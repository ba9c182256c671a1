package usecase

import (
	"context"
	"testing"

	"github.com/Emansafdar26/buysmart-client/internal/catalog"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
	"github.com/Emansafdar26/buysmart-client/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

// fakeStorefront overrides only the routes a test exercises; calling
// anything else panics through the embedded nil interface.
type fakeStorefront struct {
	storefront.Client
	listProducts         func(ctx context.Context) ([]models.Product, error)
	listCategoryProducts func(ctx context.Context, categoryID int64, subcategoryID *int64) ([]models.Product, error)
	searchProducts       func(ctx context.Context, name string) ([]models.Product, error)
}

func (f *fakeStorefront) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.listProducts(ctx)
}

func (f *fakeStorefront) ListCategoryProducts(ctx context.Context, categoryID int64, subcategoryID *int64) ([]models.Product, error) {
	return f.listCategoryProducts(ctx, categoryID, subcategoryID)
}

func (f *fakeStorefront) SearchProducts(ctx context.Context, name string) ([]models.Product, error) {
	return f.searchProducts(ctx, name)
}

func testProducts(n int) []models.Product {
	products := make([]models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, models.Product{
			ID:         int64(i),
			Name:       "Item",
			Price:      decimal.NewFromInt(int64(i * 10)),
			CategoryID: 1,
		})
	}
	return products
}

func newBrowse(api storefront.Client) BrowseUsecase {
	return NewBrowseUsecase(api, catalog.NewEngine(language.English, models.DefaultPageSize))
}

func TestBrowseLoadAndPaging(t *testing.T) {
	t.Parallel()
	api := &fakeStorefront{
		listProducts: func(context.Context) ([]models.Product, error) {
			return testProducts(100), nil
		},
	}
	browse := newBrowse(api)

	require.NoError(t, browse.Load(context.Background(), ScopeAll, nil, nil))

	view := browse.View()
	assert.Equal(t, 1, view.Page)
	assert.Len(t, view.Products, 48)
	assert.Equal(t, 3, view.TotalPages)

	browse.SetPage(2)
	view = browse.View()
	assert.Equal(t, int64(49), view.Products[0].ID)
	assert.Equal(t, int64(96), view.Products[47].ID)
}

func TestBrowseCriteriaChangeResetsPage(t *testing.T) {
	t.Parallel()
	api := &fakeStorefront{
		listProducts: func(context.Context) ([]models.Product, error) {
			return testProducts(100), nil
		},
	}
	browse := newBrowse(api)
	require.NoError(t, browse.Load(context.Background(), ScopeAll, nil, nil))

	browse.SetPage(3)
	require.Equal(t, 3, browse.View().Page)

	browse.SetCriteria(models.FilterCriteria{Sort: models.SortPriceDesc})
	view := browse.View()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, int64(100), view.Products[0].ID)
}

func TestBrowseReloadResetsPage(t *testing.T) {
	t.Parallel()
	api := &fakeStorefront{
		listProducts: func(context.Context) ([]models.Product, error) {
			return testProducts(100), nil
		},
		listCategoryProducts: func(_ context.Context, categoryID int64, _ *int64) ([]models.Product, error) {
			assert.Equal(t, int64(2), categoryID)
			return testProducts(5), nil
		},
	}
	browse := newBrowse(api)
	require.NoError(t, browse.Load(context.Background(), ScopeAll, nil, nil))
	browse.SetPage(2)

	require.NoError(t, browse.Load(context.Background(), ScopeCategory, util.Ptr(int64(2)), nil))
	view := browse.View()
	assert.Equal(t, 1, view.Page)
	assert.Equal(t, 5, view.TotalCount)
}

func TestBrowseCategoryScopeRequiresID(t *testing.T) {
	t.Parallel()
	browse := newBrowse(&fakeStorefront{})
	require.Error(t, browse.Load(context.Background(), ScopeCategory, nil, nil))
}

func TestBrowseDiscardsSupersededFetch(t *testing.T) {
	t.Parallel()

	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})
	api := &fakeStorefront{
		listProducts: func(context.Context) ([]models.Product, error) {
			close(slowEntered)
			<-slowRelease
			return testProducts(100), nil
		},
		searchProducts: func(context.Context, string) ([]models.Product, error) {
			return testProducts(3), nil
		},
	}
	browse := newBrowse(api)

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- browse.Load(context.Background(), ScopeAll, nil, nil)
	}()
	<-slowEntered

	// a newer fetch supersedes the one still in flight
	require.NoError(t, browse.Search(context.Background(), "tv"))
	close(slowRelease)

	require.ErrorIs(t, <-slowDone, models.ErrStaleResponse)

	// the view still reflects the newer fetch
	view := browse.View()
	assert.Equal(t, 3, view.TotalCount)
}

func TestBrowseOutOfOrderLoadsKeepNewestCollection(t *testing.T) {
	t.Parallel()

	slowEntered := make(chan struct{})
	slowRelease := make(chan struct{})
	api := &fakeStorefront{
		listProducts: func(context.Context) ([]models.Product, error) {
			close(slowEntered)
			<-slowRelease
			return testProducts(100), nil
		},
		listCategoryProducts: func(context.Context, int64, *int64) ([]models.Product, error) {
			return testProducts(5), nil
		},
	}
	browse := newBrowse(api)

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- browse.Load(context.Background(), ScopeAll, nil, nil)
	}()
	<-slowEntered

	require.NoError(t, browse.Load(context.Background(), ScopeCategory, util.Ptr(int64(2)), nil))

	// the first load completes only after the second has installed
	close(slowRelease)
	require.ErrorIs(t, <-slowDone, models.ErrStaleResponse)

	view := browse.View()
	assert.Equal(t, 5, view.TotalCount)
	assert.Equal(t, 1, view.Page)
}
