package platform

// Event is the closed set of loop events. The variant set is known at
// design time, so dispatch is a plain type switch rather than handler
// registration.
type Event interface{ isEvent() }

// EventRedrawRequested asks for one frame to be built and presented.
type EventRedrawRequested struct{}

func (EventRedrawRequested) isEvent() {}

// EventMainEventsCleared marks the end of one poll batch.
type EventMainEventsCleared struct{}

func (EventMainEventsCleared) isEvent() {}

// EventResized carries the new drawable size in framebuffer pixels.
type EventResized struct{ Width, Height int }

func (EventResized) isEvent() {}

// EventScaleChanged carries a new content scale factor.
type EventScaleChanged struct{ Scale float32 }

func (EventScaleChanged) isEvent() {}

// EventCloseRequested is the terminal close signal.
type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

// EventCursorMoved carries the cursor position in framebuffer pixels.
type EventCursorMoved struct{ X, Y float64 }

func (EventCursorMoved) isEvent() {}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// EventMouseButton is a press or release of a pointer button.
type EventMouseButton struct {
	Button  MouseButton
	Pressed bool
}

func (EventMouseButton) isEvent() {}

// EventKey is a raw key press or release. The frame core ignores these,
// but they still pass through the input bridge so the UI sees them.
type EventKey struct {
	Key     int
	Pressed bool
}

func (EventKey) isEvent() {}

// EventScroll is a scroll wheel delta.
type EventScroll struct{ X, Y float64 }

func (EventScroll) isEvent() {}

// Queue buffers events between the OS callback side and the dispatch side
// of one loop iteration. The loop is single threaded; callbacks fire
// inside PollEvents on the same thread.
type Queue struct {
	events []Event
}

func NewQueue() *Queue {
	return &Queue{events: make([]Event, 0, 64)}
}

// Push appends one event.
func (q *Queue) Push(ev Event) {
	q.events = append(q.events, ev)
}

// Drain returns the buffered events and resets the queue. The returned
// slice is only valid until the next Push.
func (q *Queue) Drain() []Event {
	out := q.events
	q.events = q.events[len(q.events):]
	return out
}
