// Package wishlist keeps the films a user has saved during a session.
package wishlist

import (
	"sync"
	"time"

	"github.com/icco/cinevault/lib/metrics"
	"github.com/icco/cinevault/lib/types"
	"github.com/icco/cinevault/models"
)

// Wishlist is the contract views depend on.
type Wishlist interface {
	Add(film models.Film)
	Remove(filmID int)
	Contains(filmID int) bool
	List() []models.WishlistItem
	Len() int
}

// Store is an in-memory wishlist with set semantics keyed by film id.
// Items keep the order in which they were added.
type Store struct {
	mu      sync.RWMutex
	items   []models.WishlistItem
	index   map[int]struct{}
	now     func() time.Time
	metrics *metrics.Metrics
}

var _ Wishlist = (*Store)(nil)

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		index: make(map[int]struct{}),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add saves the film unless a film with the same id is already present.
func (s *Store) Add(film models.Film) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLocked(film)
}

func (s *Store) addLocked(film models.Film) bool {
	if _, ok := s.index[film.ID]; ok {
		return false
	}
	s.index[film.ID] = struct{}{}
	s.items = append(s.items, models.WishlistItem{Film: film, AddedAt: s.now()})
	s.metrics.WishlistMutation("add")
	return true
}

// Remove deletes the film with the given id if present.
func (s *Store) Remove(filmID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(filmID)
}

func (s *Store) removeLocked(filmID int) bool {
	if _, ok := s.index[filmID]; !ok {
		return false
	}
	delete(s.index, filmID)
	for i, item := range s.items {
		if item.Film.ID == filmID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.metrics.WishlistMutation("remove")
	return true
}

// Toggle removes the film when present and adds it otherwise.
// It reports whether the film is in the wishlist afterwards.
func (s *Store) Toggle(film models.Film) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.removeLocked(film.ID) {
		return false
	}
	return s.addLocked(film)
}

func (s *Store) Contains(filmID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[filmID]
	return ok
}

// List returns a copy of the items in insertion order.
func (s *Store) List() []models.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.WishlistItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Stats summarises the wishlist by category. Films without a category are
// counted under comedy, matching the category fallback.
func (s *Store) Stats() types.WishlistStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := types.WishlistStats{Total: len(s.items)}
	counts := make(map[models.Category]int)
	for _, item := range s.items {
		c := item.Film.Category
		if c == "" {
			c = models.CategoryFromGenres(item.Film.GenreIDs)
		}
		counts[c]++
	}
	for _, c := range models.Categories() {
		if counts[c] == 0 {
			continue
		}
		stats.ByCategory = append(stats.ByCategory, types.CategoryCount{Category: c, Count: counts[c]})
	}
	if len(s.items) > 0 {
		stats.FirstAdded = s.items[0].AddedAt
		stats.LastAdded = s.items[len(s.items)-1].AddedAt
	}
	return stats
}
