package client

import "errors"

// Sentinel errors classifying API failures. Callers switch on these with
// errors.Is; the wrapped message carries the server's human-readable detail.
var (
	// ErrInvalidInput is returned when the server rejects a request with a
	// validation error (HTTP 400).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when the requested movie does not exist
	// (HTTP 404).
	ErrNotFound = errors.New("movie not found")

	// ErrRateLimited is returned when the server throttles the client
	// (HTTP 429).
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrServer is returned for any 5xx response.
	ErrServer = errors.New("server error")

	// ErrNotLoaded is returned by cache operations before the first
	// successful load of the collection.
	ErrNotLoaded = errors.New("watchlist not loaded")
)
