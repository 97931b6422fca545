package tmdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icco/cinevault/lib/metrics"
	"github.com/icco/cinevault/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(Config{
		BaseURL:      server.URL,
		ImageBaseURL: "https://img.example/w500",
		APIKey:       "test-key",
		AccessToken:  "test-token",
	}, testLogger(), opts...)
	require.NoError(t, err)
	return c
}

// discoverHandler serves pages of perPage results; failPage > 0 answers that page with a 500.
func discoverHandler(t *testing.T, perPage, failPage int, calls *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/discover/movie", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.URL.Query().Get("api_key"))
		assert.Equal(t, "popularity.desc", r.URL.Query().Get("sort_by"))
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		if page == failPage {
			http.Error(w, `{"status_message":"boom"}`, http.StatusInternalServerError)
			return
		}

		results := make([]map[string]any, 0, perPage)
		for i := 0; i < perPage; i++ {
			results = append(results, map[string]any{
				"id":           page*1000 + i,
				"title":        fmt.Sprintf("Film %d-%d", page, i),
				"overview":     "overview",
				"poster_path":  "/p.jpg",
				"release_date": "2024-01-01",
				"vote_average": 7.5,
				"genre_ids":    []int{28, 18},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{
			"page":          page,
			"results":       results,
			"total_pages":   500,
			"total_results": 10000,
		})
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{APIKey: "k"}, testLogger())
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewClient(Config{AccessToken: "t"}, testLogger())
	assert.ErrorIs(t, err, ErrMissingCredentials)

	c, err := NewClient(Config{APIKey: "k", AccessToken: "t", BaseURL: "http://x/3/"}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, "http://x/3", c.baseURL)
	assert.Equal(t, DefaultImageBaseURL, c.imageBaseURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Equal(t, defaultPages, c.pages)
}

func TestListByCategory(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(discoverHandler(t, 20, 0, &calls))
	defer server.Close()

	c := newTestClient(t, server)
	films := c.ListByCategory(context.Background(), models.CategoryAction)

	require.Len(t, films, 100)
	assert.EqualValues(t, 5, calls.Load())
	for _, f := range films {
		assert.Equal(t, models.CategoryAction, f.Category)
	}
	assert.Equal(t, 1000, films[0].ID)
	assert.Equal(t, 5019, films[99].ID)
	require.NotNil(t, films[0].PosterPath)
	assert.Equal(t, "/p.jpg", *films[0].PosterPath)
}

func TestListByCategoryTruncates(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(discoverHandler(t, 20, 0, &calls))
	defer server.Close()

	c := newTestClient(t, server, WithPages(6))
	films := c.ListByCategory(context.Background(), models.CategoryDrama)

	assert.Len(t, films, 100)
	assert.EqualValues(t, 6, calls.Load())
}

func TestListByCategoryGenreQuery(t *testing.T) {
	tests := []struct {
		category models.Category
		genre    string
	}{
		{models.CategoryAction, "28"},
		{models.CategoryDrama, "18"},
		{models.CategoryComedy, "35"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.genre, r.URL.Query().Get("with_genres"))
				w.Write([]byte(`{"page":1,"results":[{"id":1,"title":"x"}]}`))
			}))
			defer server.Close()

			films := newTestClient(t, server, WithPages(1)).ListByCategory(context.Background(), tt.category)
			require.Len(t, films, 1)
			assert.Equal(t, tt.category, films[0].Category)
		})
	}
}

func TestListByCategoryFailsSoft(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(discoverHandler(t, 20, 3, &calls))
	defer server.Close()

	films := newTestClient(t, server).ListByCategory(context.Background(), models.CategoryComedy)

	assert.NotNil(t, films)
	assert.Empty(t, films)
	assert.EqualValues(t, 3, calls.Load(), "later pages are not requested after a failure")
}

func TestListByCategoryUnknown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))
	defer server.Close()

	films := newTestClient(t, server).ListByCategory(context.Background(), models.Category("horror"))
	assert.Empty(t, films)
}

func TestListByCategoryToleratesMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"page":1,"results":[{"id":7,"title":"No Poster","poster_path":null,"genre_ids":null},{"id":8,"title":"Empty","poster_path":""}]}`))
	}))
	defer server.Close()

	films := newTestClient(t, server, WithPages(1)).ListByCategory(context.Background(), models.CategoryAction)
	require.Len(t, films, 2)
	assert.Nil(t, films[0].PosterPath)
	assert.NotNil(t, films[0].GenreIDs)
	assert.Nil(t, films[1].PosterPath)
}

func TestGetDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/550", r.URL.Path)
		assert.Equal(t, "en-US", r.URL.Query().Get("language"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"id": 550,
			"title": "Fight Club",
			"overview": "An insomniac office worker...",
			"poster_path": "/fc.jpg",
			"release_date": "1999-10-15",
			"vote_average": 8.4,
			"runtime": 139,
			"genres": [{"id": 35, "name": "Comedy"}, {"id": 18, "name": "Drama"}, {"id": 28, "name": "Action"}],
			"production_companies": [{"id": 508, "name": "Regency", "logo_path": null}, {"id": 711, "name": "Fox 2000", "logo_path": "/fox.png"}],
			"spoken_languages": [{"iso_639_1": "en", "name": "English", "english_name": "English"}, {"iso_639_1": "fr", "name": ""}]
		}`))
	}))
	defer server.Close()

	d, ok := newTestClient(t, server).GetDetails(context.Background(), 550)
	require.True(t, ok)
	require.NotNil(t, d)

	assert.Equal(t, 550, d.ID)
	assert.Equal(t, models.CategoryAction, d.Category)
	assert.Equal(t, 139, d.Runtime)
	assert.Equal(t, []int{35, 18, 28}, d.GenreIDs)
	require.Len(t, d.Genres, 3)
	assert.Equal(t, "Comedy", d.Genres[0].Name)
	require.Len(t, d.ProductionCompanies, 2)
	assert.Nil(t, d.ProductionCompanies[0].LogoPath)
	require.NotNil(t, d.ProductionCompanies[1].LogoPath)
	require.Len(t, d.SpokenLanguages, 2)
	assert.Equal(t, "English", d.SpokenLanguages[0].Name)
	assert.Equal(t, "French", d.SpokenLanguages[1].Name)
}

func TestGetDetailsCategoryPrecedence(t *testing.T) {
	tests := []struct {
		genres string
		want   models.Category
	}{
		{`[{"id":28,"name":"Action"}]`, models.CategoryAction},
		{`[{"id":18,"name":"Drama"},{"id":28,"name":"Action"}]`, models.CategoryAction},
		{`[{"id":35,"name":"Comedy"},{"id":18,"name":"Drama"}]`, models.CategoryDrama},
		{`[{"id":27,"name":"Horror"}]`, models.CategoryComedy},
		{`null`, models.CategoryComedy},
	}

	for _, tt := range tests {
		t.Run(tt.genres, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"id":1,"title":"x","runtime":-5,"genres":%s}`, tt.genres)
			}))
			defer server.Close()

			d, ok := newTestClient(t, server).GetDetails(context.Background(), 1)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Category)
			assert.Equal(t, 0, d.Runtime)
			assert.NotNil(t, d.Genres)
			assert.NotNil(t, d.ProductionCompanies)
		})
	}
}

func TestGetDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status_code":34}`, http.StatusNotFound)
	}))
	defer server.Close()

	d, ok := newTestClient(t, server).GetDetails(context.Background(), 999999)
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestGetDetailsMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	d, ok := newTestClient(t, server).GetDetails(context.Background(), 1)
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "28", r.URL.Query().Get("with_genres"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page":1,"results":[]}`))
	}))
	defer server.Close()

	good, err := NewClient(Config{BaseURL: server.URL, APIKey: "k", AccessToken: "good"}, testLogger())
	require.NoError(t, err)
	assert.NoError(t, good.Ping(context.Background()))

	bad, err := NewClient(Config{BaseURL: server.URL, APIKey: "k", AccessToken: "bad"}, testLogger())
	require.NoError(t, err)
	err = bad.Ping(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnauthorized())
	assert.False(t, apiErr.IsNotFound())
}

func TestTransportErrorsOmitAPIKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	var buf bytes.Buffer
	const key = "SECRETKEY123"
	c, err := NewClient(Config{BaseURL: addr, APIKey: key, AccessToken: "tok"},
		slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, err)

	assert.Empty(t, c.ListByCategory(context.Background(), models.CategoryAction))
	_, ok := c.GetDetails(context.Background(), 1)
	assert.False(t, ok)

	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), key)
	assert.Contains(t, buf.String(), "Failed to list films")
	assert.NotContains(t, buf.String(), key)
}

func TestImageURL(t *testing.T) {
	c, err := NewClient(Config{APIKey: "k", AccessToken: "t", ImageBaseURL: "https://img.example/w500"}, testLogger())
	require.NoError(t, err)

	assert.Nil(t, c.ImageURL(nil))

	empty := ""
	assert.Nil(t, c.ImageURL(&empty))

	for _, p := range []string{"/a.jpg", "/nested/b.png", "c"} {
		got := c.ImageURL(&p)
		require.NotNil(t, got)
		assert.Equal(t, "https://img.example/w500"+p, *got)
	}
}

func TestClientRecordsMetrics(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(discoverHandler(t, 1, 0, &calls))
	defer server.Close()

	m := metrics.New()
	c := newTestClient(t, server, WithPages(2), WithMetrics(m))
	c.ListByCategory(context.Background(), models.CategoryAction)

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "cinevault_provider_requests_total" {
			found = true
			require.Len(t, f.GetMetric(), 1)
			assert.Equal(t, 2.0, f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}
