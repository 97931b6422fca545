package carousel

// DragState is the phase of a drag-to-scroll gesture.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	switch s {
	case Dragging:
		return "dragging"
	default:
		return "idle"
	}
}

// dragFactor amplifies pointer movement into scroll distance.
const dragFactor = 2

// Drag is the idle -> dragging -> idle state machine behind drag-to-scroll.
// The zero value is idle.
type Drag struct {
	state      DragState
	startX     int
	scrollLeft int
}

// Begin anchors a new gesture at pointer x with the track scrolled to
// scrollLeft. Calling Begin while dragging restarts the gesture.
func (d *Drag) Begin(x, scrollLeft int) {
	d.state = Dragging
	d.startX = x
	d.scrollLeft = scrollLeft
}

// Move returns the scroll position for pointer x. ok is false when idle.
func (d *Drag) Move(x int) (scrollLeft int, ok bool) {
	if d.state != Dragging {
		return 0, false
	}
	walk := (x - d.startX) * dragFactor
	return d.scrollLeft - walk, true
}

// End finishes the gesture and forgets its anchor.
func (d *Drag) End() {
	*d = Drag{}
}

func (d *Drag) State() DragState {
	return d.state
}
