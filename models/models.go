package models

import (
	"fmt"
	"strconv"
	"time"
)

// Category is the coarse genre bucket a film is shelved under.
type Category string

const (
	CategoryAction Category = "action"
	CategoryDrama  Category = "drama"
	CategoryComedy Category = "comedy"
)

// Provider genre ids backing each category.
const (
	GenreAction = 28
	GenreDrama  = 18
	GenreComedy = 35
)

// Categories returns the categories in display order.
func Categories() []Category {
	return []Category{CategoryAction, CategoryDrama, CategoryComedy}
}

// ParseCategory converts a label into a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryAction, CategoryDrama, CategoryComedy:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// GenreID returns the provider genre id for the category.
func (c Category) GenreID() (int, bool) {
	switch c {
	case CategoryAction:
		return GenreAction, true
	case CategoryDrama:
		return GenreDrama, true
	case CategoryComedy:
		return GenreComedy, true
	}
	return 0, false
}

// CategoryFromGenres picks the category for a set of genre ids.
// Action wins over drama, drama over comedy, and anything else is comedy.
func CategoryFromGenres(ids []int) Category {
	var drama bool
	for _, id := range ids {
		if id == GenreAction {
			return CategoryAction
		}
		if id == GenreDrama {
			drama = true
		}
	}
	if drama {
		return CategoryDrama
	}
	return CategoryComedy
}

// Film is a single movie as shown on shelves and in the wishlist.
type Film struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	PosterPath   *string  `json:"poster_path,omitempty"`
	BackdropPath *string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string   `json:"release_date"`
	VoteAverage  float64  `json:"vote_average"`
	GenreIDs     []int    `json:"genre_ids"`
	Category     Category `json:"category,omitempty"`
}

// Year returns the release year, or 0 when the date is missing or malformed.
func (f Film) Year() int {
	if len(f.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(f.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// ShortOverview truncates the overview to n runes.
func (f Film) ShortOverview(n int) string {
	r := []rune(f.Overview)
	if len(r) <= n {
		return f.Overview
	}
	return string(r[:n]) + "..."
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Company struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path,omitempty"`
}

type Language struct {
	ISO6391 string `json:"iso_639_1"`
	Name    string `json:"name"`
}

// FilmDetails is the full record behind the film detail page.
type FilmDetails struct {
	Film
	Runtime             int        `json:"runtime"`
	Genres              []Genre    `json:"genres"`
	ProductionCompanies []Company  `json:"production_companies"`
	SpokenLanguages     []Language `json:"spoken_languages"`
}

// WishlistItem is a film saved by the user and when it was saved.
type WishlistItem struct {
	Film    Film      `json:"film"`
	AddedAt time.Time `json:"added_at"`
}
