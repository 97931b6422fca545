package tmdb

import "github.com/icco/cinevault/models"

type discoverResponse struct {
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type movieResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   *string `json:"poster_path"`
	BackdropPath *string `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int   `json:"genre_ids"`
}

type detailsResponse struct {
	ID                  int              `json:"id"`
	Title               string           `json:"title"`
	Overview            string           `json:"overview"`
	PosterPath          *string          `json:"poster_path"`
	BackdropPath        *string          `json:"backdrop_path"`
	ReleaseDate         string           `json:"release_date"`
	VoteAverage         float64          `json:"vote_average"`
	Runtime             int              `json:"runtime"`
	Genres              []models.Genre   `json:"genres"`
	ProductionCompanies []companyResult  `json:"production_companies"`
	SpokenLanguages     []languageResult `json:"spoken_languages"`
}

type companyResult struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	LogoPath *string `json:"logo_path"`
}

type languageResult struct {
	ISO6391     string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

func (m movieResult) toFilm(category models.Category) models.Film {
	genres := m.GenreIDs
	if genres == nil {
		genres = []int{}
	}
	return models.Film{
		ID:           m.ID,
		Title:        m.Title,
		Overview:     m.Overview,
		PosterPath:   nonEmpty(m.PosterPath),
		BackdropPath: nonEmpty(m.BackdropPath),
		ReleaseDate:  m.ReleaseDate,
		VoteAverage:  m.VoteAverage,
		GenreIDs:     genres,
		Category:     category,
	}
}

func (d detailsResponse) toDetails() *models.FilmDetails {
	genres := make([]models.Genre, 0, len(d.Genres))
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		genres = append(genres, g)
		ids = append(ids, g.ID)
	}

	companies := make([]models.Company, 0, len(d.ProductionCompanies))
	for _, c := range d.ProductionCompanies {
		companies = append(companies, models.Company{
			ID:       c.ID,
			Name:     c.Name,
			LogoPath: nonEmpty(c.LogoPath),
		})
	}

	languages := make([]models.Language, 0, len(d.SpokenLanguages))
	for _, l := range d.SpokenLanguages {
		languages = append(languages, models.Language{
			ISO6391: l.ISO6391,
			Name:    languageName(l),
		})
	}

	runtime := d.Runtime
	if runtime < 0 {
		runtime = 0
	}

	return &models.FilmDetails{
		Film: models.Film{
			ID:           d.ID,
			Title:        d.Title,
			Overview:     d.Overview,
			PosterPath:   nonEmpty(d.PosterPath),
			BackdropPath: nonEmpty(d.BackdropPath),
			ReleaseDate:  d.ReleaseDate,
			VoteAverage:  d.VoteAverage,
			GenreIDs:     ids,
			Category:     models.CategoryFromGenres(ids),
		},
		Runtime:             runtime,
		Genres:              genres,
		ProductionCompanies: companies,
		SpokenLanguages:     languages,
	}
}

// nonEmpty treats null and "" paths the same way.
func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}
