package game

import (
	"log"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"heaven/internal/platform"
	"heaven/internal/profiling"
)

const slowFrameThreshold = 16 * time.Millisecond

// Run is the event loop. Each iteration polls the platform, delivers the
// drained events in arrival order, then synthesizes the end-of-batch and
// redraw events. It returns when the session terminates or the window is
// closed.
func Run(window *glfw.Window, queue *platform.Queue, bridge *Bridge, orch *Orchestrator, pacer *Pacer) {
	for orch.State() != StateTerminated && !window.ShouldClose() {
		profiling.ResetFrame()
		start := time.Now()

		glfw.PollEvents()
		for _, ev := range queue.Drain() {
			bridge.Deliver(ev)
		}
		bridge.Deliver(platform.EventMainEventsCleared{})
		if orch.TakeRedrawRequest() {
			bridge.Deliver(platform.EventRedrawRequested{})
		}

		if d := time.Since(start); d > slowFrameThreshold {
			log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
		}
		pacer.Wait()
	}
}
