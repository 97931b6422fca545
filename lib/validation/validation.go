package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/icco/cinevault/models"
)

// DefaultViewportWidth is assumed when the client does not report one.
const DefaultViewportWidth = 1280

var (
	ErrInvalidFilmID   = errors.New("invalid film id")
	ErrInvalidCategory = errors.New("invalid category")
)

// ParseFilmID parses a positive integer film id from a path segment.
func ParseFilmID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFilmID, s)
	}
	return id, nil
}

// ParseCategory parses a category path segment.
func ParseCategory(s string) (models.Category, error) {
	c, err := models.ParseCategory(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// ViewportWidth reads the vw query parameter, falling back to
// DefaultViewportWidth when it is missing or not a positive integer.
func ViewportWidth(q url.Values) int {
	w, err := strconv.Atoi(q.Get("vw"))
	if err != nil || w <= 0 {
		return DefaultViewportWidth
	}
	return w
}

// SafeReturn returns target if it is a local absolute path, else fallback.
// It rejects scheme-relative and absolute URLs so redirects stay on site.
func SafeReturn(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return target
}

// WriteError writes a validation error response to the HTTP response writer.
// It takes a response writer, error message, and HTTP status code.
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		slog.Error("Failed to encode error response", slog.Any("error", err))
	}
}
