// Package session ties per-browser UI state to a cookie.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/icco/cinevault/lib/carousel"
	"github.com/icco/cinevault/lib/metrics"
	"github.com/icco/cinevault/lib/notify"
	"github.com/icco/cinevault/lib/wishlist"
	"github.com/icco/cinevault/models"
)

const (
	CookieName = "cinevault_session"
	DefaultTTL = 12 * time.Hour
)

// Session is the state one browser accumulates while using the app.
type Session struct {
	ID       string
	Wishlist *wishlist.Store
	Toasts   *notify.Notifier

	mu        sync.Mutex
	carousels map[models.Category]*carousel.Carousel
	lastSeen  time.Time
}

// Carousel returns the session's carousel for a category, creating it on
// first use.
func (s *Session) Carousel(c models.Category) *carousel.Carousel {
	s.mu.Lock()
	defer s.mu.Unlock()
	cr, ok := s.carousels[c]
	if !ok {
		cr = carousel.New(0)
		s.carousels[c] = cr
	}
	return cr
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Manager owns every live session. Sessions exist only in memory.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	secure   bool
	logger   *slog.Logger
	metrics  *metrics.Metrics
	notify   []notify.Option
}

type Option func(*Manager)

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// WithNotifyOptions passes options to every session's Notifier.
func WithNotifyOptions(opts ...notify.Option) Option {
	return func(m *Manager) {
		m.notify = append(m.notify, opts...)
	}
}

func NewManager(logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      DefaultTTL,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the request's session, starting a new one and setting the
// cookie when the request carries no known session id.
func (m *Manager) Get(w http.ResponseWriter, r *http.Request) *Session {
	now := m.now()
	if c, err := r.Cookie(CookieName); err == nil {
		// Touch under m.mu so a concurrent Sweep cannot drop the session
		// between the lookup and the refresh.
		m.mu.Lock()
		s, ok := m.sessions[c.Value]
		if ok {
			s.touch(now)
		}
		m.mu.Unlock()
		if ok {
			return s
		}
	}

	s := m.create(now)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Lookup finds a session by id without creating one.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) create(now time.Time) *Session {
	notifyOpts := append([]notify.Option{notify.WithMetrics(m.metrics)}, m.notify...)
	s := &Session{
		ID:        uuid.NewString(),
		Wishlist:  wishlist.New(wishlist.WithMetrics(m.metrics)),
		Toasts:    notify.New(notifyOpts...),
		carousels: make(map[models.Category]*carousel.Carousel),
		lastSeen:  now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetSessions(n)
	m.logger.Debug("Started session", slog.String("session", s.ID))
	return s
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	removed := 0
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.SetSessions(n)
	if removed > 0 {
		m.logger.Info("Expired idle sessions",
			slog.Int("removed", removed),
			slog.Int("remaining", n))
	}
	return removed
}

// Run sweeps on every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}
