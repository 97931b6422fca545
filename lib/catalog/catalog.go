// Package catalog loads the home page shelves from a metadata provider.
package catalog

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/icco/cinevault/models"
)

// Source is the subset of the metadata provider the web layer uses.
type Source interface {
	ListByCategory(ctx context.Context, category models.Category) []models.Film
	GetDetails(ctx context.Context, id int) (*models.FilmDetails, bool)
	ImageURL(path *string) *string
}

// Shelf is one category row on the home page.
type Shelf struct {
	Category models.Category
	Title    string
	Films    []models.Film
}

var shelfTitles = map[models.Category]string{
	models.CategoryAction: "Action & Adventure",
	models.CategoryDrama:  "Drama & Stories",
	models.CategoryComedy: "Comedy & Fun",
}

// Title returns the shelf heading for a category.
func Title(c models.Category) string {
	if t, ok := shelfTitles[c]; ok {
		return t
	}
	return string(c)
}

// LoadShelves fetches every category concurrently and returns one shelf
// per category in display order. A category that fails to load yields an
// empty shelf; the others are unaffected.
func LoadShelves(ctx context.Context, src Source, logger *slog.Logger) []Shelf {
	cats := models.Categories()
	shelves := make([]Shelf, len(cats))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cats {
		i, c := i, c
		shelves[i] = Shelf{Category: c, Title: Title(c)}
		g.Go(func() error {
			films := src.ListByCategory(gctx, c)
			if films == nil {
				films = []models.Film{}
			}
			shelves[i].Films = films
			return nil
		})
	}
	// Every goroutine returns nil; Wait only joins.
	_ = g.Wait()

	logger.Debug("Loaded shelves",
		slog.Int("categories", len(cats)),
		slog.Duration("elapsed", time.Since(start)))
	return shelves
}

// Empty reports whether no shelf has any films.
func Empty(shelves []Shelf) bool {
	for _, s := range shelves {
		if len(s.Films) > 0 {
			return false
		}
	}
	return true
}
