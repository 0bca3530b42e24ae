package platform_test

import (
	"testing"

	"heaven/internal/platform"
)

func TestQueueDrainOrder(t *testing.T) {
	q := platform.NewQueue()
	q.Push(platform.EventCursorMoved{X: 1, Y: 2})
	q.Push(platform.EventMouseButton{Button: platform.MouseButtonLeft, Pressed: true})
	q.Push(platform.EventCloseRequested{})

	evs := q.Drain()
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}
	if _, ok := evs[0].(platform.EventCursorMoved); !ok {
		t.Errorf("event 0: expected EventCursorMoved, got %T", evs[0])
	}
	if _, ok := evs[1].(platform.EventMouseButton); !ok {
		t.Errorf("event 1: expected EventMouseButton, got %T", evs[1])
	}
	if _, ok := evs[2].(platform.EventCloseRequested); !ok {
		t.Errorf("event 2: expected EventCloseRequested, got %T", evs[2])
	}
}

func TestQueueDrainResets(t *testing.T) {
	q := platform.NewQueue()
	q.Push(platform.EventRedrawRequested{})
	first := q.Drain()
	if len(first) != 1 {
		t.Fatalf("expected 1 event, got %d", len(first))
	}
	if evs := q.Drain(); len(evs) != 0 {
		t.Errorf("second drain should be empty, got %d events", len(evs))
	}

	q.Push(platform.EventMainEventsCleared{})
	if evs := q.Drain(); len(evs) != 1 {
		t.Errorf("push after drain should yield 1 event, got %d", len(evs))
	}
	// The previously drained slice must not have been overwritten.
	if _, ok := first[0].(platform.EventRedrawRequested); !ok {
		t.Errorf("drained slice was clobbered: got %T", first[0])
	}
}
