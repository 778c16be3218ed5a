package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a file type no reader can extract.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrSearchUnavailable indicates the search provider is not configured.
	ErrSearchUnavailable = errors.New("search provider unavailable")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderResponse indicates the provider returned a non-2xx status or an unreadable payload.
	ErrProviderResponse = errors.New("bad provider response")

	// ErrCancelled marks chunks that were never searched because the run was aborted.
	ErrCancelled = errors.New("search cancelled")
)
