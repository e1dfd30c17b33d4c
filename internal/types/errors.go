package types

import "errors"

var (
	// ErrNotFound signals a missing row or an unknown attraction ID.
	ErrNotFound = errors.New("requested item not found")
	// ErrValidation signals a request rejected before any work was done.
	ErrValidation = errors.New("invalid request")
	// ErrUnavailable signals a dependency (catalog, recommender) that is not ready.
	ErrUnavailable = errors.New("service unavailable")
)
