package handlers

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/icco/cinevault/lib/catalog"
	"github.com/icco/cinevault/lib/health"
	"github.com/icco/cinevault/lib/metrics"
	"github.com/icco/cinevault/lib/session"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Source   catalog.Source
	Pinger   health.Pinger
	Sessions *session.Manager
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// NewRouter builds the application's routes.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", HandleHome(d.Source, d.Sessions, d.Logger))
	r.Get("/film/{id}", HandleFilm(d.Source, d.Sessions, d.Logger))
	r.Post("/film/{id}/wishlist", HandleFilmToggle(d.Source, d.Sessions, d.Logger))

	r.Get("/wishlist", HandleWishlist(d.Source, d.Sessions))
	r.Post("/wishlist/{id}/toggle", HandleCardToggle(d.Source, d.Sessions, d.Logger))
	r.Post("/wishlist/{id}/remove", HandleRemove(d.Sessions, d.Logger))

	r.Route("/carousel/{category}", func(r chi.Router) {
		r.Post("/next", HandleCarouselStep(d.Sessions, 1))
		r.Post("/prev", HandleCarouselStep(d.Sessions, -1))
		r.Post("/drag", HandleCarouselDrag(d.Sessions, d.Logger))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/wishlist", HandleAPIWishlist(d.Sessions, d.Logger))
		r.Get("/toasts", HandleAPIToasts(d.Sessions, d.Logger))
	})

	if d.Pinger != nil {
		r.Get("/health", health.Check(d.Pinger))
	}
	r.Handle("/metrics", d.Metrics.Handler())

	r.NotFound(HandleNotFound(d.Sessions, d.Logger))

	return r
}
