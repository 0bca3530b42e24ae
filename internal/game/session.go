package game

import (
	"time"

	"heaven/internal/overlay"
	"heaven/internal/scene"
)

// Session is the per-run aggregate: the scene, surface geometry and the
// UI-driven state. It lives from Setup until Close.
type Session struct {
	Scene *scene.Manager
	Start time.Time

	Width  int
	Height int
	Scale  float32

	UI overlay.State
}

// Close releases the scene's renderer handles.
func (s *Session) Close() {
	s.Scene.Release()
}
