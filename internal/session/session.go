package session

import (
	"encoding/json"
	"fmt"

	"github.com/Emansafdar26/buysmart-client/internal/models"
)

// Session wraps a Store with typed accessors for the three values the
// storefront keeps: access token, serialized user, pending action.
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the cached access token, empty when logged out.
func (s *Session) Token() string {
	tok, _ := s.store.Get(KeyAccessToken)
	return tok
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) SetToken(token string) error {
	return s.store.Set(KeyAccessToken, token)
}

func (s *Session) User() (*models.User, bool) {
	raw, ok := s.store.Get(KeyUser)
	if !ok || raw == "" {
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (s *Session) SetUser(user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.store.Set(KeyUser, string(data))
}

func (s *Session) PendingAction() (*models.PendingAction, bool) {
	raw, ok := s.store.Get(KeyPendingAction)
	if !ok || raw == "" {
		return nil, false
	}

	var action models.PendingAction
	if err := json.Unmarshal([]byte(raw), &action); err != nil {
		return nil, false
	}
	return &action, true
}

func (s *Session) SetPendingAction(action *models.PendingAction) error {
	data, err := json.Marshal(action)
	if err != nil {
		return fmt.Errorf("encode pending action: %w", err)
	}
	return s.store.Set(KeyPendingAction, string(data))
}

func (s *Session) ClearPendingAction() error {
	return s.store.Delete(KeyPendingAction)
}

// Clear wipes the whole session, the logout path.
func (s *Session) Clear() error {
	return s.store.Clear()
}
