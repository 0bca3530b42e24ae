package game

import "time"

// Pacer caps the event loop rate when vsync is not doing the pacing.
// It keeps an absolute schedule so timing jitter does not accumulate,
// and resyncs after a hitch to avoid a catch-up burst.
type Pacer struct {
	limit int
	next  time.Time
}

// NewPacer returns a pacer capped at limit frames per second. A limit of
// 0 disables pacing.
func NewPacer(limit int) *Pacer {
	return &Pacer{limit: limit}
}

// Wait blocks until the next frame slot.
func (p *Pacer) Wait() {
	if p.limit <= 0 {
		return
	}
	target := time.Second / time.Duration(p.limit)

	if p.next.IsZero() {
		p.next = time.Now().Add(target)
	} else {
		p.next = p.next.Add(target)
	}

	if remaining := time.Until(p.next); remaining > 0 {
		time.Sleep(remaining)
	}
	if late := -time.Until(p.next); late > target {
		p.next = time.Now().Add(target)
	}
}
