package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/icco/cinevault/handlers"
	"github.com/icco/cinevault/lib/health"
	"github.com/icco/cinevault/lib/session"
	"github.com/icco/cinevault/models"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Ping the provider and exercise every page in-process",
	RunE:  runCheck,
}

type endpointCheck struct {
	name   string
	method string
	path   string
	form   url.Values
	want   int
	marker string
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger.Info("=== CHECKING PROVIDER ===")

	h, status := health.Probe(ctx, client)
	logger.Info("Provider ping",
		slog.Int("status", status),
		slog.String("provider", h.Provider.Status))
	if status != http.StatusOK {
		return fmt.Errorf("provider ping failed: %s", h.Provider.Message)
	}

	router := handlers.NewRouter(handlers.Deps{
		Source:   client,
		Pinger:   client,
		Sessions: newSessions(),
		Metrics:  mtr,
		Logger:   logger,
	})

	filmID := firstFilmID(ctx)
	if filmID == 0 {
		return fmt.Errorf("provider listed no films in any category")
	}
	film := fmt.Sprintf("/film/%d", filmID)

	checks := []endpointCheck{
		{name: "Home page", method: http.MethodGet, path: "/?vw=1280", want: http.StatusOK, marker: "Action &amp; Adventure"},
		{name: "Film page", method: http.MethodGet, path: film, want: http.StatusOK, marker: "Overview"},
		{name: "Add to wishlist", method: http.MethodPost, path: film + "/wishlist", want: http.StatusSeeOther},
		{name: "Wishlist page", method: http.MethodGet, path: "/wishlist", want: http.StatusOK, marker: "in your wishlist"},
		{name: "Wishlist API", method: http.MethodGet, path: "/api/wishlist", want: http.StatusOK, marker: fmt.Sprintf(`"id":%d`, filmID)},
		{name: "Remove from wishlist", method: http.MethodPost, path: fmt.Sprintf("/wishlist/%d/remove", filmID), form: url.Values{}, want: http.StatusSeeOther},
		{name: "Carousel next", method: http.MethodPost, path: "/carousel/action/next", form: url.Values{"vw": {"1280"}}, want: http.StatusSeeOther},
		{name: "Invalid film", method: http.MethodGet, path: "/film/not-a-number", want: http.StatusNotFound, marker: "Film not found"},
		{name: "Unknown route", method: http.MethodGet, path: "/nowhere", want: http.StatusNotFound, marker: "Page Not Found"},
		{name: "Health", method: http.MethodGet, path: "/health", want: http.StatusOK},
		{name: "Metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK, marker: "cinevault_provider_requests_total"},
	}
	logger.Info("=== CHECKING ENDPOINTS ===")
	var cookie *http.Cookie
	failed := 0
	for _, c := range checks {
		var ok bool
		ok, cookie = runEndpoint(router, c, cookie)
		if !ok {
			failed++
		}
	}
	logger.Info("=== ENDPOINT CHECKS COMPLETED ===",
		slog.Int("total", len(checks)),
		slog.Int("failed", failed))

	if failed > 0 {
		return fmt.Errorf("%d of %d endpoint checks failed", failed, len(checks))
	}
	return nil
}

func firstFilmID(ctx context.Context) int {
	for _, c := range models.Categories() {
		if films := client.ListByCategory(ctx, c); len(films) > 0 {
			return films[0].ID
		}
	}
	return 0
}

func runEndpoint(router http.Handler, c endpointCheck, cookie *http.Cookie) (bool, *http.Cookie) {
	var req *http.Request
	if c.form != nil {
		req = httptest.NewRequest(c.method, c.path, strings.NewReader(c.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(c.method, c.path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			cookie = ck
		}
	}

	body := w.Body.String()
	logger.Info(c.name+" response",
		slog.String("path", c.path),
		slog.Int("status", w.Code),
		slog.String("content_type", w.Header().Get("Content-Type")),
		slog.Int("body_length", len(body)))

	ok := true
	if w.Code != c.want {
		logger.Error("Unexpected status code",
			slog.String("check", c.name),
			slog.Int("status", w.Code),
			slog.Int("want", c.want))
		ok = false
	}
	if c.marker != "" && !strings.Contains(body, c.marker) {
		logger.Warn("Expected content missing",
			slog.String("check", c.name),
			slog.String("marker", c.marker),
			slog.String("body_preview", body[:min(200, len(body))]))
		ok = false
	}
	if strings.Contains(body, "template:") || strings.Contains(body, "error executing template") {
		logger.Error("Template error detected",
			slog.String("check", c.name),
			slog.String("body_preview", body[:min(500, len(body))]))
		ok = false
	}
	return ok, cookie
}
