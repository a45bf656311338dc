package services

import "errors"

var (
	// ErrInvalidInput marks malformed coordinates, negative distances
	// or a missing origin. A caller contract violation: surfaced
	// immediately, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoViableRoute means every candidate order failed evaluation
	// or there were no reachable destinations. Callers fall back to
	// the unmodified input order with a warning instead of showing
	// nothing.
	ErrNoViableRoute = errors.New("no viable route")
)
