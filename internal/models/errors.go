package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrNotAuthenticated  = errors.New("authentication required")
	ErrToggleInFlight    = errors.New("favorite toggle already in flight")
	ErrInvalidPriceAlert = errors.New("price alert must be a positive number")
	ErrStaleResponse     = errors.New("stale response discarded")
)

// AppError is an application-level failure reported inside a success
// HTTP response (envelope code 0). Message carries the server-supplied
// error string verbatim so the UI can show it inline.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("application error (code %d)", e.Code)
	}
	return e.Message
}
