package favorites

import (
	"context"
	"fmt"
	"sync"

	log "github.com/carousell/ct-go/pkg/logger/log_context"

	"github.com/Emansafdar26/buysmart-client/internal/models"
	"github.com/Emansafdar26/buysmart-client/internal/session"
	"github.com/shopspring/decimal"
)

// API is the slice of the backend surface the reconciler needs.
type API interface {
	IsFavorite(ctx context.Context, productID int64) (bool, error)
	ToggleFavorite(ctx context.Context, productID int64) (*models.ToggleResult, error)
	RemoveFavorite(ctx context.Context, productID int64) error
	SetPriceAlert(ctx context.Context, productID int64, price decimal.Decimal) error
	UpdatePriceAlert(ctx context.Context, productID int64, price decimal.Decimal) error
	RemovePriceAlert(ctx context.Context, productID int64) error
}

// Reconciler keeps the per-product favorite/alert cache consistent
// with the server while giving the UI immediate feedback. Every
// mutation is optimistic: local state flips first, a snapshot is
// restored if the request fails.
type Reconciler struct {
	api     API
	session *session.Session

	mu       sync.Mutex
	states   map[int64]models.FavoriteState
	inflight map[int64]bool
}

func NewReconciler(api API, sess *session.Session) *Reconciler {
	return &Reconciler{
		api:      api,
		session:  sess,
		states:   make(map[int64]models.FavoriteState),
		inflight: make(map[int64]bool),
	}
}

// State returns the cached favorite state for a product.
func (r *Reconciler) State(productID int64) (models.FavoriteState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.states[productID]
	return st, ok
}

// CheckStatus refreshes the cached favorite flag from the server. A
// failed check keeps the prior local state untouched and is only
// logged; the caller always gets a usable value.
func (r *Reconciler) CheckStatus(ctx context.Context, productID int64) bool {
	isFavorite, err := r.api.IsFavorite(ctx, productID)
	if err != nil {
		log.Warnw(ctx, "favorite status check failed",
			"product_id", productID,
			"error", err.Error(),
		)
		st, _ := r.State(productID)
		return st.IsFavorite
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	st := r.states[productID]
	st.ProductID = productID
	st.IsFavorite = isFavorite
	r.states[productID] = st
	return isFavorite
}

// Toggle flips a product's favorite flag. Without a session it stashes
// the action, with the path to return to after login, for replay and
// reports ErrNotAuthenticated. At most one toggle per product may be
// in flight; a concurrent second call is rejected with
// ErrToggleInFlight.
func (r *Reconciler) Toggle(ctx context.Context, productID int64, returnPath string) (*models.ToggleResult, error) {
	if !r.session.IsAuthenticated() {
		action := &models.PendingAction{
			Type:       models.ActionToggleFavorite,
			ProductID:  productID,
			ReturnPath: returnPath,
		}
		if err := r.session.SetPendingAction(action); err != nil {
			log.Errorw(ctx, "stash pending toggle failed", "product_id", productID, "error", err.Error())
		}
		return nil, models.ErrNotAuthenticated
	}

	r.mu.Lock()
	if r.inflight[productID] {
		r.mu.Unlock()
		return nil, models.ErrToggleInFlight
	}
	r.inflight[productID] = true

	prev, had := r.states[productID]
	next := prev
	next.ProductID = productID
	next.IsFavorite = !prev.IsFavorite
	r.states[productID] = next
	r.mu.Unlock()

	result, err := r.api.ToggleFavorite(ctx, productID)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, productID)

	if err != nil {
		r.restore(productID, prev, had)
		return nil, fmt.Errorf("toggle favorite %d: %w", productID, err)
	}

	// reconcile with what the server actually did
	st := r.states[productID]
	st.IsFavorite = result.IsFavorite
	if !result.IsFavorite {
		st.PriceAlert = nil
	}
	r.states[productID] = st
	return result, nil
}

// SetPriceAlert validates the target locally, then persists it. Zero
// or negative targets never reach the network.
func (r *Reconciler) SetPriceAlert(ctx context.Context, productID int64, target decimal.Decimal) error {
	if target.Sign() <= 0 {
		return models.ErrInvalidPriceAlert
	}

	prev, had := r.snapshotAlert(productID, &target)
	if err := r.api.SetPriceAlert(ctx, productID, target); err != nil {
		r.rollbackAlert(productID, prev, had)
		return fmt.Errorf("set price alert %d: %w", productID, err)
	}
	return nil
}

// UpdatePriceAlert changes an existing alert target, same validation
// and rollback rules as SetPriceAlert.
func (r *Reconciler) UpdatePriceAlert(ctx context.Context, productID int64, target decimal.Decimal) error {
	if target.Sign() <= 0 {
		return models.ErrInvalidPriceAlert
	}

	prev, had := r.snapshotAlert(productID, &target)
	if err := r.api.UpdatePriceAlert(ctx, productID, target); err != nil {
		r.rollbackAlert(productID, prev, had)
		return fmt.Errorf("update price alert %d: %w", productID, err)
	}
	return nil
}

// RemovePriceAlert clears the alert for a product.
func (r *Reconciler) RemovePriceAlert(ctx context.Context, productID int64) error {
	prev, had := r.snapshotAlert(productID, nil)
	if err := r.api.RemovePriceAlert(ctx, productID); err != nil {
		r.rollbackAlert(productID, prev, had)
		return fmt.Errorf("remove price alert %d: %w", productID, err)
	}
	return nil
}

// RemoveFavorite drops a product from the favorites list.
func (r *Reconciler) RemoveFavorite(ctx context.Context, productID int64) error {
	if !r.session.IsAuthenticated() {
		return models.ErrNotAuthenticated
	}

	r.mu.Lock()
	prev, had := r.states[productID]
	st := prev
	st.ProductID = productID
	st.IsFavorite = false
	st.PriceAlert = nil
	r.states[productID] = st
	r.mu.Unlock()

	if err := r.api.RemoveFavorite(ctx, productID); err != nil {
		r.mu.Lock()
		r.restore(productID, prev, had)
		r.mu.Unlock()
		return fmt.Errorf("remove favorite %d: %w", productID, err)
	}
	return nil
}

// ReplayPending re-runs the action stashed before a login redirect.
// Called once authentication succeeds; a missing stash is a no-op.
func (r *Reconciler) ReplayPending(ctx context.Context) error {
	action, ok := r.session.PendingAction()
	if !ok {
		return nil
	}
	if err := r.session.ClearPendingAction(); err != nil {
		return fmt.Errorf("clear pending action: %w", err)
	}
	if action.Type != models.ActionToggleFavorite {
		return nil
	}

	if _, err := r.Toggle(ctx, action.ProductID, ""); err != nil {
		return fmt.Errorf("replay pending toggle: %w", err)
	}
	return nil
}

// restore must be called with the lock held.
func (r *Reconciler) restore(productID int64, prev models.FavoriteState, had bool) {
	if had {
		r.states[productID] = prev
	} else {
		delete(r.states, productID)
	}
}

func (r *Reconciler) snapshotAlert(productID int64, target *decimal.Decimal) (models.FavoriteState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, had := r.states[productID]
	st := prev
	st.ProductID = productID
	st.PriceAlert = target
	r.states[productID] = st
	return prev, had
}

func (r *Reconciler) rollbackAlert(productID int64, prev models.FavoriteState, had bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restore(productID, prev, had)
}

// ParseAlertPrice turns raw user input into a validated alert target.
// Non-numeric input fails with the same validation error as a
// non-positive number.
func ParseAlertPrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, models.ErrInvalidPriceAlert
	}
	if price.Sign() <= 0 {
		return decimal.Decimal{}, models.ErrInvalidPriceAlert
	}
	return price, nil
}
