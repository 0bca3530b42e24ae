package game

import "heaven/internal/platform"

// Bridge fans one platform event out to its consumers in a fixed order:
// the overlay sees input first so the frame that consumes a click is the
// frame that was built after it.
type Bridge struct {
	overlay Overlay
	orch    *Orchestrator
}

func NewBridge(ov Overlay, orch *Orchestrator) *Bridge {
	return &Bridge{overlay: ov, orch: orch}
}

func (b *Bridge) Deliver(ev platform.Event) {
	b.overlay.HandleEvent(ev)
	b.orch.HandleEvent(ev)
}
