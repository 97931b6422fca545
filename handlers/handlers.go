package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/icco/cinevault/handlers/templates"
	"github.com/icco/cinevault/lib/carousel"
	"github.com/icco/cinevault/lib/catalog"
	"github.com/icco/cinevault/lib/notify"
	"github.com/icco/cinevault/lib/session"
	"github.com/icco/cinevault/lib/types"
	"github.com/icco/cinevault/lib/validation"
	"github.com/icco/cinevault/models"
)

// maxCompanies caps the production companies shown on the detail page.
const maxCompanies = 2

// Layout is the data every page's header and toast area needs.
type Layout struct {
	Title         string
	Nav           string
	WishlistCount int
	Toasts        []notify.Toast
}

func newLayout(s *session.Session, title, nav string) Layout {
	return Layout{
		Title:         title,
		Nav:           nav,
		WishlistCount: s.Wishlist.Len(),
		Toasts:        s.Toasts.Active(),
	}
}

type errorData struct {
	Layout
	Message string
}

type card struct {
	Film       models.Film
	Poster     *string
	InWishlist bool
	Return     string
}

type shelfView struct {
	Category models.Category
	Title    string
	Cards    []card
	View     carousel.View
}

type homePage struct {
	Layout
	Shelves  []shelfView
	AllEmpty bool
	Width    int
}

type filmPage struct {
	Layout
	Details    *models.FilmDetails
	Poster     *string
	InWishlist bool
	Companies  []models.Company
}

type wishlistItem struct {
	Card    card
	AddedAt time.Time
}

type wishlistPage struct {
	Layout
	Items []wishlistItem
	Stats types.WishlistStats
}

func render(w http.ResponseWriter, status int, data any, page string) {
	tmpl, err := templates.ParseTemplates("base.html", "card.html", page)
	if err != nil {
		slog.Error("Failed to parse template", slog.String("page", page), slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		slog.Error("Failed to execute template", slog.String("page", page), slog.Any("error", err))
	}
}

func renderError(w http.ResponseWriter, l Layout, message string, status int) {
	render(w, status, errorData{Layout: l, Message: message}, "error.html")
}

func toCard(src catalog.Source, s *session.Session, f models.Film, ret string) card {
	return card{
		Film:       f,
		Poster:     src.ImageURL(f.PosterPath),
		InWishlist: s.Wishlist.Contains(f.ID),
		Return:     ret,
	}
}

// HandleHome renders one carousel per category that has films.
func HandleHome(src catalog.Source, sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		width := validation.ViewportWidth(r.URL.Query())
		shelves := catalog.LoadShelves(r.Context(), src, logger)

		ret := "/?" + url.Values{"vw": {fmt.Sprint(width)}}.Encode()
		page := homePage{Width: width, AllEmpty: catalog.Empty(shelves)}
		for _, sh := range shelves {
			if len(sh.Films) == 0 {
				continue
			}
			cr := s.Carousel(sh.Category)
			cr.SetWidth(width)
			cr.SetLength(len(sh.Films))

			visible := carousel.Window(cr, sh.Films)
			cards := make([]card, 0, len(visible))
			for _, f := range visible {
				cards = append(cards, toCard(src, s, f, ret+"#"+string(sh.Category)))
			}
			page.Shelves = append(page.Shelves, shelfView{
				Category: sh.Category,
				Title:    sh.Title,
				Cards:    cards,
				View:     cr.View(),
			})
		}
		if page.AllEmpty {
			logger.Warn("No shelves loaded")
		}

		page.Layout = newLayout(s, "", "home")
		render(w, http.StatusOK, page, "home.html")
	}
}

// HandleFilm renders the detail page for one film.
func HandleFilm(src catalog.Source, sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		id, err := filmID(r)
		if err != nil {
			logger.Warn("Invalid film id", slog.Any("error", err))
			renderFilmNotFound(w, s)
			return
		}

		details, ok := src.GetDetails(r.Context(), id)
		if !ok {
			renderFilmNotFound(w, s)
			return
		}

		companies := details.ProductionCompanies
		if len(companies) > maxCompanies {
			companies = companies[:maxCompanies]
		}
		page := filmPage{
			Details:    details,
			Poster:     src.ImageURL(details.PosterPath),
			InWishlist: s.Wishlist.Contains(details.ID),
			Companies:  companies,
		}
		page.Layout = newLayout(s, details.Title, "")
		render(w, http.StatusOK, page, "film.html")
	}
}

func renderFilmNotFound(w http.ResponseWriter, s *session.Session) {
	page := filmPage{Layout: newLayout(s, "Film not found", "")}
	render(w, http.StatusNotFound, page, "film.html")
}

// HandleWishlist renders the session's wishlist.
func HandleWishlist(src catalog.Source, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := sessions.Get(w, r)
		items := s.Wishlist.List()

		page := wishlistPage{Stats: s.Wishlist.Stats()}
		for _, it := range items {
			page.Items = append(page.Items, wishlistItem{
				Card:    toCard(src, s, it.Film, "/wishlist"),
				AddedAt: it.AddedAt,
			})
		}
		page.Layout = newLayout(s, "My Wishlist", "wishlist")
		render(w, http.StatusOK, page, "wishlist.html")
	}
}

// HandleNotFound renders the 404 page for unknown routes.
func HandleNotFound(sessions *session.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("Route not found", slog.String("path", r.URL.Path))
		s := sessions.Get(w, r)
		render(w, http.StatusNotFound, errorData{Layout: newLayout(s, "Page Not Found", "")}, "notfound.html")
	}
}
