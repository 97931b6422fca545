package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/icco/cinevault/lib/metrics"
	"github.com/icco/cinevault/models"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultTimeout      = 30 * time.Second

	defaultPages   = 5
	maxListResults = 100
	apiLanguage    = "en-US"
)

// Config holds the provider connection settings.
type Config struct {
	BaseURL      string
	ImageBaseURL string
	APIKey       string
	AccessToken  string
	Timeout      time.Duration
}

// Client talks to the TMDB v3 API.
type Client struct {
	accessToken  string
	baseURL      string
	imageBaseURL string
	pages        int
	httpClient   *http.Client
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPages sets how many discover pages ListByCategory walks.
func WithPages(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pages = n
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a Client. Both credentials are required, but only the
// access token travels with requests, as a bearer header.
func NewClient(cfg Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" || cfg.AccessToken == "" {
		return nil, ErrMissingCredentials
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	imageBaseURL := cfg.ImageBaseURL
	if imageBaseURL == "" {
		imageBaseURL = DefaultImageBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		accessToken:  cfg.AccessToken,
		baseURL:      baseURL,
		imageBaseURL: imageBaseURL,
		pages:        defaultPages,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListByCategory returns up to 100 of the most popular films for a category.
// Pages are fetched one after another. Any failure is logged and yields an
// empty list; the caller never sees the error.
func (c *Client) ListByCategory(ctx context.Context, category models.Category) []models.Film {
	genreID, ok := category.GenreID()
	if !ok {
		c.logger.Error("Failed to list films",
			slog.String("category", string(category)),
			slog.Any("error", ErrUnknownCategory))
		return []models.Film{}
	}

	var results []movieResult
	for page := 1; page <= c.pages; page++ {
		resp, err := c.discover(ctx, genreID, page)
		if err != nil {
			c.logger.Error("Failed to list films",
				slog.String("category", string(category)),
				slog.Int("page", page),
				slog.Any("error", err))
			return []models.Film{}
		}
		results = append(results, resp.Results...)

		c.logger.Debug("Fetched discover page",
			slog.String("category", string(category)),
			slog.Int("page", resp.Page),
			slog.Int("results", len(resp.Results)),
			slog.Int("total_pages", resp.TotalPages),
			slog.Int("total_results", resp.TotalResults))
	}

	if len(results) > maxListResults {
		results = results[:maxListResults]
	}

	films := make([]models.Film, 0, len(results))
	for _, r := range results {
		films = append(films, r.toFilm(category))
	}

	c.logger.Debug("Listed films",
		slog.String("category", string(category)),
		slog.Int("count", len(films)))
	return films
}

// GetDetails fetches one film. The second return is false when the provider
// could not supply it, for any reason.
func (c *Client) GetDetails(ctx context.Context, id int) (*models.FilmDetails, bool) {
	var resp detailsResponse
	path := "/movie/" + strconv.Itoa(id)
	if err := c.get(ctx, "movie", path, url.Values{}, &resp); err != nil {
		c.logger.Error("Failed to get film details",
			slog.Int("id", id),
			slog.Any("error", err))
		return nil, false
	}
	return resp.toDetails(), true
}

// Ping checks that the provider accepts our credentials.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.discover(ctx, models.GenreAction, 1); err != nil {
		return fmt.Errorf("failed to reach tmdb: %w", err)
	}
	return nil
}

// ImageURL joins a poster or logo path onto the image base URL.
func (c *Client) ImageURL(path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := c.imageBaseURL + *path
	return &u
}

func (c *Client) discover(ctx context.Context, genreID, page int) (*discoverResponse, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var resp discoverResponse
	if err := c.get(ctx, "discover", "/discover/movie", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs an authenticated GET and decodes the JSON body into dst.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, dst any) error {
	params.Set("language", apiLanguage)
	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveProvider(endpoint, 0, time.Since(start))
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()
	c.metrics.ObserveProvider(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
