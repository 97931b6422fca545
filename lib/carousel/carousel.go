// Package carousel models a horizontally paged window over a list of films.
package carousel

import "sync"

// DefaultSlides is the slide count before any viewport width is known.
const DefaultSlides = 4

// SlidesForWidth maps a viewport width in CSS pixels to the number of
// visible slides.
func SlidesForWidth(px int) int {
	switch {
	case px < 768:
		return 1
	case px < 1024:
		return 2
	case px < 1280:
		return 3
	default:
		return 4
	}
}

// Carousel tracks the first visible index of a window of Slides() items over
// a sequence of Length() items. The start index stays within
// [0, max(0, length-slides)].
type Carousel struct {
	mu     sync.Mutex
	start  int
	slides int
	length int
	drag   Drag
}

func New(length int) *Carousel {
	if length < 0 {
		length = 0
	}
	return &Carousel{slides: DefaultSlides, length: length}
}

// View is a snapshot of the carousel for rendering.
type View struct {
	Start   int
	Slides  int
	Length  int
	CanPrev bool
	CanNext bool
}

func (c *Carousel) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		Start:   c.start,
		Slides:  c.slides,
		Length:  c.length,
		CanPrev: c.start > 0,
		CanNext: c.start < c.maxStartLocked(),
	}
}

// SetSlides changes the slide count. Any change moves the window back to 0.
func (c *Carousel) SetSlides(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == c.slides {
		return
	}
	c.slides = n
	c.start = 0
}

// SetWidth is SetSlides(SlidesForWidth(px)).
func (c *Carousel) SetWidth(px int) {
	c.SetSlides(SlidesForWidth(px))
}

// SetLength updates the number of items and pulls the window back in bounds.
func (c *Carousel) SetLength(n int) {
	if n < 0 {
		n = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.length = n
	if limit := c.maxStartLocked(); c.start > limit {
		c.start = limit
	}
}

func (c *Carousel) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = min(c.maxStartLocked(), c.start+1)
}

func (c *Carousel) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = max(0, c.start-1)
}

func (c *Carousel) Start() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.start
}

func (c *Carousel) Slides() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slides
}

func (c *Carousel) maxStartLocked() int {
	return max(0, c.length-c.slides)
}

// BeginDrag, MoveDrag and EndDrag drive the carousel's drag gesture.
func (c *Carousel) BeginDrag(x, scrollLeft int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag.Begin(x, scrollLeft)
}

func (c *Carousel) MoveDrag(x int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag.Move(x)
}

func (c *Carousel) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drag.End()
}

func (c *Carousel) DragState() DragState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drag.State()
}

// Window returns the items visible in the carousel's current window.
func Window[T any](c *Carousel, items []T) []T {
	v := c.View()
	if v.Start >= len(items) {
		return nil
	}
	end := min(len(items), v.Start+v.Slides)
	return items[v.Start:end]
}
