package handlers

import (
	"log/slog"
	"net/http"

	"github.com/icco/cinevault/lib/notify"
	"github.com/icco/cinevault/lib/session"
	"github.com/icco/cinevault/lib/types"
	"github.com/icco/cinevault/models"
)

type wishlistResponse struct {
	Items []models.WishlistItem `json:"items"`
	Stats types.WishlistStats   `json:"stats"`
}

// HandleAPIWishlist returns the session's wishlist as JSON.
func HandleAPIWishlist(sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		items := s.Wishlist.List()
		if items == nil {
			items = []models.WishlistItem{}
		}
		writeJSON(w, http.StatusOK, wishlistResponse{Items: items, Stats: s.Wishlist.Stats()}, logger)
	}
}

// HandleAPIToasts returns the session's active toasts as JSON.
func HandleAPIToasts(sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		toasts := s.Toasts.Active()
		if toasts == nil {
			toasts = []notify.Toast{}
		}
		writeJSON(w, http.StatusOK, toasts, logger)
	}
}
