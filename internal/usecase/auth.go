package usecase

import (
	"context"
	"fmt"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/Emansafdar26/buysmart-client/internal/favorites"
	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
	"github.com/Emansafdar26/buysmart-client/internal/session"
)

type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser() (*models.User, bool)
	IsAuthenticated() bool
}

type authUsecase struct {
	api        storefront.Client
	session    *session.Session
	reconciler *favorites.Reconciler
}

func NewAuthUsecase(api storefront.Client, sess *session.Session, reconciler *favorites.Reconciler) AuthUsecase {
	return &authUsecase{
		api:        api,
		session:    sess,
		reconciler: reconciler,
	}
}

// Login exchanges credentials for a token, caches the profile, then
// replays the action the user attempted before being sent to log in.
// A failed replay never fails the login itself.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*models.User, error) {
	token, err := u.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := u.session.SetToken(token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	user, err := u.api.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := u.session.SetUser(user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	if err := u.reconciler.ReplayPending(ctx); err != nil {
		log.Warnw(ctx, "pending action replay failed", "error", err.Error())
	}
	return user, nil
}

func (u *authUsecase) Logout(_ context.Context) error {
	if err := u.session.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (u *authUsecase) CurrentUser() (*models.User, bool) {
	return u.session.User()
}

func (u *authUsecase) IsAuthenticated() bool {
	return u.session.IsAuthenticated()
}
