// Package game drives the frame lifecycle: it owns the session state,
// turns platform events into scene and overlay updates, and builds and
// submits one render graph per redraw.
package game

import (
	"time"

	"heaven/internal/mesh"
	"heaven/internal/overlay"
	"heaven/internal/platform"
	"heaven/internal/profiling"
	"heaven/internal/renderer"
	"heaven/internal/scene"
	"heaven/internal/ui"
)

// State is the orchestrator lifecycle. Terminated is terminal.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateTerminated
)

// Service is the renderer surface the orchestrator drives.
type Service interface {
	scene.Renderer

	Ready() (renderer.CommandBuffers, *renderer.ReadyState)
	LockRoutines() *renderer.RoutineGuard
	AcquireFrame() renderer.Frame
	Execute(g *renderer.RenderGraph, frame renderer.Frame, bufs renderer.CommandBuffers, ready *renderer.ReadyState)
	Resize(w, h int)
}

// Overlay is the UI overlay surface the orchestrator drives.
type Overlay interface {
	HandleEvent(ev platform.Event)
	BeginFrame(elapsed float64)
	Build(s *overlay.State) []overlay.Effect
	EndFrame() []ui.PaintMesh
	Resize(width, height int, scale float32)
	AddToGraph(g *renderer.RenderGraph, meshes []ui.PaintMesh, target renderer.SurfaceTarget)
}

// Orchestrator advances the session one event at a time. It is
// single-threaded; all methods must run on the event loop goroutine.
type Orchestrator struct {
	service Service
	overlay Overlay

	state        State
	session      *Session
	sampleCount  int
	redrawWanted bool
}

func NewOrchestrator(service Service, ov Overlay, sampleCount int) *Orchestrator {
	return &Orchestrator{service: service, overlay: ov, sampleCount: sampleCount}
}

func (o *Orchestrator) State() State { return o.state }

// Setup builds the scene and the session. It must run exactly once,
// before any event is delivered.
func (o *Orchestrator) Setup(data mesh.Data, width, height int, scale float32) {
	if o.state != StateUninitialized {
		panic("game: Setup called twice")
	}

	sc := scene.NewManager()
	sc.Initialize(o.service, data)

	o.session = &Session{
		Scene:  sc,
		Start:  time.Now(),
		Width:  width,
		Height: height,
		Scale:  scale,
		UI:     overlay.State{Color: sc.Color()},
	}
	o.state = StateReady
	o.redrawWanted = true
}

// Session returns the live session, or nil before Setup.
func (o *Orchestrator) Session() *Session { return o.session }

// HandleEvent advances the session by one event. Events before Setup are
// a programming error; events after termination are ignored.
func (o *Orchestrator) HandleEvent(ev platform.Event) {
	switch o.state {
	case StateUninitialized:
		panic("game: event delivered before Setup")
	case StateTerminated:
		return
	}

	switch e := ev.(type) {
	case platform.EventMainEventsCleared:
		o.redrawWanted = true
	case platform.EventRedrawRequested:
		o.redraw()
	case platform.EventResized:
		o.session.Width, o.session.Height = e.Width, e.Height
		o.service.Resize(e.Width, e.Height)
		o.overlay.Resize(e.Width, e.Height, o.session.Scale)
	case platform.EventScaleChanged:
		o.session.Scale = e.Scale
		o.overlay.Resize(o.session.Width, o.session.Height, e.Scale)
	case platform.EventCloseRequested:
		o.state = StateTerminated
	}
}

// TakeRedrawRequest consumes the pending redraw request, if any.
func (o *Orchestrator) TakeRedrawRequest() bool {
	v := o.redrawWanted
	o.redrawWanted = false
	return v
}

// redraw runs one full frame: UI build, at most one scene mutation, then
// graph construction and submission. The routine guard is released before
// the graph executes.
func (o *Orchestrator) redraw() {
	stop := profiling.Track("game.Redraw")
	defer stop()

	elapsed := time.Since(o.session.Start).Seconds()
	o.overlay.BeginFrame(elapsed)
	effects := o.overlay.Build(&o.session.UI)

	var color [4]float32
	colorSet := false
	for _, ef := range effects {
		if ch, ok := ef.(overlay.ColorChanged); ok {
			color, colorSet = ch.Color, true
		}
	}
	if colorSet {
		o.session.Scene.UpdateMaterialColor(o.service, color)
	}
	meshes := o.overlay.EndFrame()

	frame := o.service.AcquireFrame()
	bufs, ready := o.service.Ready()

	guard := o.service.LockRoutines()
	g := renderer.NewGraph()
	renderer.AddDefaultGraph(g, ready, guard.PBR, guard.Tonemap, o.sampleCount)
	target := g.AddSurfaceTexture()
	o.overlay.AddToGraph(g, meshes, target)
	guard.Release()

	o.service.Execute(g, frame, bufs, ready)
}
