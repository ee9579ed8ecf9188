package domain

import "errors"

var (
	// ErrNotFound indicates no article exists for the requested slug.
	ErrNotFound = errors.New("article not found")

	// ErrDuplicateSlug indicates the store's unique index on slug rejected an
	// insert. Treated as a retryable validation-class failure, not a fault.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrForbidden indicates an authenticated caller who is not the author
	// attempted a mutation. The store is left untouched.
	ErrForbidden = errors.New("requester is not the author")

	// ErrUnauthenticated indicates a protected operation was called without
	// valid credentials.
	ErrUnauthenticated = errors.New("authentication required")
)
