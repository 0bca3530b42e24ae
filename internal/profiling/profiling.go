// Package profiling is a small per-frame CPU profiler used by the slow
// frame log.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("game.Redraw")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// TopN formats the n largest totals of the current frame, largest first.
func TopN(n int) string {
	mu.Lock()
	type entry struct {
		name string
		dur  time.Duration
	}
	list := make([]entry, 0, len(totals))
	for k, v := range totals {
		list = append(list, entry{name: k, dur: v})
	}
	mu.Unlock()

	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for _, e := range list[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", e.name, float64(e.dur.Microseconds())/1000))
	}
	return strings.Join(parts, ", ")
}
