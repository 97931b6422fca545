package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingCredentials is returned when the API key or access token is empty.
	ErrMissingCredentials = errors.New("tmdb API key and access token are required")
	// ErrUnknownCategory is returned for categories without a provider genre.
	ErrUnknownCategory = errors.New("unknown category")
)

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tmdb API error: %s: status %d", e.Endpoint, e.StatusCode)
}

// IsNotFound reports whether the provider answered 404.
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether the credentials were rejected.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
