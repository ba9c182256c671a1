package models

// User is the profile blob persisted alongside the access token. The
// core treats it as opaque except for Role, which picks the post-login
// landing path.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Pending action types.
const ActionToggleFavorite = "toggleFavorite"

// PendingAction is a privileged action stashed before a redirect to
// login, replayed automatically once authentication succeeds.
type PendingAction struct {
	Type       string `json:"type"`
	ProductID  int64  `json:"product_id"`
	ReturnPath string `json:"return_path,omitempty"`
}
