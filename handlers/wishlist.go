package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/icco/cinevault/lib/catalog"
	"github.com/icco/cinevault/lib/notify"
	"github.com/icco/cinevault/lib/session"
	"github.com/icco/cinevault/lib/validation"
	"github.com/icco/cinevault/models"
)

func filmID(r *http.Request) (int, error) {
	return validation.ParseFilmID(chi.URLParam(r, "id"))
}

func addedToast(n *notify.Notifier, title string) {
	n.Notify("Added to wishlist", fmt.Sprintf("%s has been added to your wishlist.", title), 0)
}

func removedToast(n *notify.Notifier, title string) {
	n.Notify("Removed from wishlist", fmt.Sprintf("%s has been removed from your wishlist.", title), 0)
}

// stored returns the wishlist entry for id, if any.
func stored(s *session.Session, id int) (models.Film, bool) {
	for _, it := range s.Wishlist.List() {
		if it.Film.ID == id {
			return it.Film, true
		}
	}
	return models.Film{}, false
}

// toggle removes a stored film or fetches and adds a new one. It reports
// false when the film could not be fetched.
func toggle(r *http.Request, src catalog.Source, s *session.Session, id int, category models.Category) bool {
	if f, ok := stored(s, id); ok {
		s.Wishlist.Remove(id)
		removedToast(s.Toasts, f.Title)
		return true
	}

	details, ok := src.GetDetails(r.Context(), id)
	if !ok {
		return false
	}
	film := details.Film
	if category != "" {
		film.Category = category
	}
	s.Wishlist.Add(film)
	addedToast(s.Toasts, film.Title)
	return true
}

// HandleFilmToggle toggles wishlist membership from the detail page.
func HandleFilmToggle(src catalog.Source, sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		id, err := filmID(r)
		if err != nil {
			logger.Warn("Invalid film id", slog.Any("error", err))
			renderFilmNotFound(w, s)
			return
		}

		if !toggle(r, src, s, id, "") {
			renderFilmNotFound(w, s)
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/film/%d", id), http.StatusSeeOther)
	}
}

// HandleCardToggle toggles wishlist membership from a film card and sends
// the browser back to the page the card was on.
func HandleCardToggle(src catalog.Source, sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		if err := r.ParseForm(); err != nil {
			validation.WriteError(w, err, http.StatusBadRequest)
			return
		}
		back := validation.SafeReturn(r.PostForm.Get("return"), "/")

		id, err := filmID(r)
		if err != nil {
			logger.Warn("Invalid film id", slog.Any("error", err))
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		}

		var category models.Category
		if raw := r.PostForm.Get("category"); raw != "" {
			if c, err := validation.ParseCategory(raw); err == nil {
				category = c
			}
		}

		if !toggle(r, src, s, id, category) {
			s.Toasts.Notify("Something went wrong", "We couldn't update your wishlist. Please try again.", 0)
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

// HandleRemove drops a film from the wishlist page.
func HandleRemove(sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		id, err := filmID(r)
		if err != nil {
			logger.Warn("Invalid film id", slog.Any("error", err))
			http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
			return
		}

		if f, ok := stored(s, id); ok {
			s.Wishlist.Remove(id)
			removedToast(s.Toasts, f.Title)
		}
		http.Redirect(w, r, "/wishlist", http.StatusSeeOther)
	}
}
