package usecase

import (
	"context"
	"fmt"

	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
	"github.com/Emansafdar26/buysmart-client/internal/session"
)

// ProfileUsecase covers the logged-in account screens: the favorites
// list, the active price alerts and the saved browsing preferences.
type ProfileUsecase interface {
	Favorites(ctx context.Context, search string) ([]models.FavoriteProduct, error)
	PriceAlerts(ctx context.Context) ([]models.PriceAlertEntry, error)
	Preferences(ctx context.Context) ([]models.Preference, error)
	SavePreferences(ctx context.Context, prefs []models.Preference) error
	RemovePreference(ctx context.Context, preferenceID int64) error
}

type profileUsecase struct {
	api     storefront.Client
	session *session.Session
}

func NewProfileUsecase(api storefront.Client, sess *session.Session) ProfileUsecase {
	return &profileUsecase{api: api, session: sess}
}

func (u *profileUsecase) requireAuth() error {
	if !u.session.IsAuthenticated() {
		return models.ErrNotAuthenticated
	}
	return nil
}

func (u *profileUsecase) Favorites(ctx context.Context, search string) ([]models.FavoriteProduct, error) {
	if err := u.requireAuth(); err != nil {
		return nil, err
	}
	return u.api.ListFavorites(ctx, search)
}

func (u *profileUsecase) PriceAlerts(ctx context.Context) ([]models.PriceAlertEntry, error) {
	if err := u.requireAuth(); err != nil {
		return nil, err
	}
	return u.api.ListPriceAlerts(ctx)
}

func (u *profileUsecase) Preferences(ctx context.Context) ([]models.Preference, error) {
	if err := u.requireAuth(); err != nil {
		return nil, err
	}
	return u.api.GetPreferences(ctx)
}

// SavePreferences validates price bounds before writing: a preference
// whose minimum exceeds its maximum can never match a product.
func (u *profileUsecase) SavePreferences(ctx context.Context, prefs []models.Preference) error {
	if err := u.requireAuth(); err != nil {
		return err
	}
	for _, p := range prefs {
		if p.MinPrice != nil && p.MaxPrice != nil && p.MinPrice.Cmp(*p.MaxPrice) > 0 {
			return fmt.Errorf("preference %d: min price above max price", p.ID)
		}
	}
	return u.api.UpdatePreferences(ctx, prefs)
}

func (u *profileUsecase) RemovePreference(ctx context.Context, preferenceID int64) error {
	if err := u.requireAuth(); err != nil {
		return err
	}
	return u.api.RemovePreference(ctx, preferenceID)
}
