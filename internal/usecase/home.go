package usecase

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"golang.org/x/sync/errgroup"

	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
)

// HomeView aggregates the three sections of the landing screen.
type HomeView struct {
	Categories    []models.Category `json:"categories"`
	TrendingDeals []models.Product  `json:"trending_deals"`
	RecentUpdates []models.Product  `json:"recent_updates"`
}

type HomeUsecase interface {
	Load(ctx context.Context) (*HomeView, error)
}

type homeUsecase struct {
	api storefront.Client
}

func NewHomeUsecase(api storefront.Client) HomeUsecase {
	return &homeUsecase{api: api}
}

// Load fetches all sections concurrently. A failed section degrades to
// empty rather than sinking the whole screen; Load errors only when
// every section failed.
func (u *homeUsecase) Load(ctx context.Context) (*HomeView, error) {
	view := &HomeView{}
	failures := 0

	g, gctx := errgroup.WithContext(ctx)
	results := make([]error, 3)

	g.Go(func() error {
		var err error
		view.Categories, err = u.api.ListCategories(gctx)
		results[0] = err
		return nil
	})
	g.Go(func() error {
		var err error
		view.TrendingDeals, err = u.api.TrendingDeals(gctx)
		results[1] = err
		return nil
	})
	g.Go(func() error {
		var err error
		view.RecentUpdates, err = u.api.RecentUpdates(gctx)
		results[2] = err
		return nil
	})
	_ = g.Wait()

	for _, err := range results {
		if err != nil {
			failures++
			log.Warnw(ctx, "home section failed", "error", err.Error())
		}
	}
	if failures == len(results) {
		return nil, fmt.Errorf("load home: all sections failed")
	}
	return view, nil
}
