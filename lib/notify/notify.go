// Package notify holds short-lived toast messages shown after user actions.
package notify

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/icco/cinevault/lib/metrics"
)

// DefaultDuration is how long a toast stays up when no duration is given.
const DefaultDuration = 5000 * time.Millisecond

// Toast is one notification.
type Toast struct {
	ID          uint64        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Duration    time.Duration `json:"duration"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ExpiresAt is when the toast leaves the active set.
func (t Toast) ExpiresAt() time.Time {
	return t.CreatedAt.Add(t.Duration)
}

// Scheduler runs f once after d.
type Scheduler func(d time.Duration, f func())

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// ids is shared by every Notifier so toast ids never repeat within a process.
var ids atomic.Uint64

// Notifier owns the active toast set for one session.
type Notifier struct {
	mu      sync.Mutex
	active  []Toast
	after   Scheduler
	now     func() time.Time
	metrics *metrics.Metrics
}

type Option func(*Notifier)

func WithScheduler(s Scheduler) Option {
	return func(n *Notifier) {
		n.after = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Notifier) {
		n.metrics = m
	}
}

func New(opts ...Option) *Notifier {
	n := &Notifier{
		after: afterFunc,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify shows a toast and schedules its removal. A zero or negative
// duration means DefaultDuration. Toasts cannot be cancelled.
func (n *Notifier) Notify(title, description string, duration time.Duration) Toast {
	if duration <= 0 {
		duration = DefaultDuration
	}
	t := Toast{
		ID:          ids.Add(1),
		Title:       title,
		Description: description,
		Duration:    duration,
		CreatedAt:   n.now(),
	}

	n.mu.Lock()
	n.active = append(n.active, t)
	n.mu.Unlock()
	n.metrics.ToastShown()

	n.after(duration, func() { n.expire(t.ID) })
	return t
}

// Active returns the visible toasts, oldest first.
func (n *Notifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.active))
	copy(out, n.active)
	return out
}

func (n *Notifier) expire(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, t := range n.active {
		if t.ID == id {
			n.active = append(n.active[:i], n.active[i+1:]...)
			n.metrics.ToastExpired()
			return
		}
	}
}
