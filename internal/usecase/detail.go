package usecase

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"golang.org/x/sync/errgroup"

	"github.com/Emansafdar26/buysmart-client/internal/catalog"
	"github.com/Emansafdar26/buysmart-client/internal/favorites"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
)

// DetailView is everything the product page shows: the product itself,
// its price history, the same product on other platforms, and the
// viewer's favorite flag.
type DetailView struct {
	Product      *models.Product          `json:"product"`
	PriceHistory []models.PricePoint      `json:"price_history"`
	Listings     []models.PlatformListing `json:"listings"`
	IsFavorite   bool                     `json:"is_favorite"`
}

type DetailUsecase interface {
	Load(ctx context.Context, productID int64) (*DetailView, error)
	SortedListings(view *DetailView, order models.SortOrder) []models.PlatformListing
}

type detailUsecase struct {
	api        storefront.Client
	engine     *catalog.Engine
	reconciler *favorites.Reconciler
}

func NewDetailUsecase(api storefront.Client, engine *catalog.Engine, reconciler *favorites.Reconciler) DetailUsecase {
	return &detailUsecase{
		api:        api,
		engine:     engine,
		reconciler: reconciler,
	}
}

// Load fetches the page concurrently. The product itself is required;
// history, cross-platform listings and the favorite flag degrade
// individually when their fetch fails.
func (u *detailUsecase) Load(ctx context.Context, productID int64) (*DetailView, error) {
	view := &DetailView{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		product, err := u.api.GetProduct(gctx, productID)
		if err != nil {
			return fmt.Errorf("load product %d: %w", productID, err)
		}
		view.Product = product
		return nil
	})
	g.Go(func() error {
		history, err := u.api.PriceHistory(gctx, productID)
		if err != nil {
			log.Warnw(gctx, "price history unavailable", "product_id", productID, "error", err.Error())
			return nil
		}
		view.PriceHistory = history
		return nil
	})
	g.Go(func() error {
		listings, err := u.api.RelatedListings(gctx, productID)
		if err != nil {
			log.Warnw(gctx, "related listings unavailable", "product_id", productID, "error", err.Error())
			return nil
		}
		view.Listings = listings
		return nil
	})
	g.Go(func() error {
		view.IsFavorite = u.reconciler.CheckStatus(gctx, productID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

// SortedListings reorders the comparison table without touching the
// loaded view.
func (u *detailUsecase) SortedListings(view *DetailView, order models.SortOrder) []models.PlatformListing {
	return u.engine.SortListings(view.Listings, order)
}
