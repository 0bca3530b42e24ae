// Package overlay is the UI overlay: it owns the immediate-mode context,
// feeds it raw platform events, rebuilds the UI tree every frame and hands
// the tessellated result to the render graph.
package overlay

import (
	"heaven/internal/platform"
	"heaven/internal/renderer"
	"heaven/internal/ui"
)

// State is the UI-driven state. It is mutated only by widget interaction
// during a build pass.
type State struct {
	MenuVisible    bool
	AlternateScene bool
	Color          [4]float32
}

// Effect is a UI-driven side effect reported from a build pass. The
// overlay never reaches into the scene itself; the caller consumes these.
type Effect interface{ isEffect() }

// ColorChanged reports that the color control produced a new value.
type ColorChanged struct{ Color [4]float32 }

func (ColorChanged) isEffect() {}

// Painter owns the GPU-side overlay resources sized to the surface.
type Painter interface {
	Init(format renderer.TextureFormat, sampleCount, width, height int, scale float32, atlas *ui.Atlas) error
	Resize(width, height int, scale float32)
	AddToGraph(g *renderer.RenderGraph, meshes []ui.PaintMesh, target renderer.SurfaceTarget)
	Dispose()
}

// Overlay drives one UI context against one surface.
type Overlay struct {
	ctx     *ui.Context
	painter Painter

	width, height int
	scale         float32
}

// New allocates the overlay for the current surface.
func New(painter Painter, format renderer.TextureFormat, sampleCount, width, height int, scale float32) (*Overlay, error) {
	atlas := ui.BuildAtlas()
	ctx := ui.NewContext(atlas)
	ctx.SetSurface(float32(width)/scale, float32(height)/scale, scale)

	if err := painter.Init(format, sampleCount, width, height, scale, atlas); err != nil {
		return nil, err
	}
	return &Overlay{ctx: ctx, painter: painter, width: width, height: height, scale: scale}, nil
}

// HandleEvent feeds one raw platform event into the UI input state. It
// must run before the build pass of the frame the event belongs to.
// Cursor positions arrive in framebuffer pixels and are converted to the
// logical points the context lays out in.
func (o *Overlay) HandleEvent(ev platform.Event) {
	switch e := ev.(type) {
	case platform.EventCursorMoved:
		o.ctx.PointerMoved(float32(e.X)/o.scale, float32(e.Y)/o.scale)
	case platform.EventMouseButton:
		if e.Button == platform.MouseButtonLeft {
			o.ctx.PointerButton(e.Pressed)
		}
	}
}

// BeginFrame starts a build pass at the given elapsed time.
func (o *Overlay) BeginFrame(elapsed float64) {
	o.ctx.BeginFrame(elapsed)
}

// Build declares this frame's UI tree against the given state and returns
// the side effects the interaction produced.
func (o *Overlay) Build(s *State) []Effect {
	var effects []Effect

	o.ctx.TopBar("taskbar", func() {
		if o.ctx.Button("menu", "Menu") {
			s.MenuVisible = !s.MenuVisible
		}
	})

	if s.MenuVisible {
		o.ctx.Window("change-color", "Change color", 3, 30, func() {
			if o.ctx.Button("alt-scene", "Alt scene") {
				s.AlternateScene = !s.AlternateScene
			}
			o.ctx.Label("Change the color of the cube")
			if o.ctx.ColorEdit("albedo", &s.Color) {
				effects = append(effects, ColorChanged{Color: s.Color})
			}
		})
	}
	return effects
}

// EndFrame closes the build pass and tessellates this frame's draw list.
// The result is immutable for the remainder of the frame.
func (o *Overlay) EndFrame() []ui.PaintMesh {
	return o.ctx.Tessellate(o.ctx.EndFrame())
}

// Resize retargets surface-sized resources. Identical dimensions are a
// no-op.
func (o *Overlay) Resize(width, height int, scale float32) {
	if width == o.width && height == o.height && scale == o.scale {
		return
	}
	o.width, o.height, o.scale = width, height, scale
	o.ctx.SetSurface(float32(width)/scale, float32(height)/scale, scale)
	o.painter.Resize(width, height, scale)
}

// AddToGraph appends the UI pass consuming this frame's tessellated
// meshes, targeting the surface.
func (o *Overlay) AddToGraph(g *renderer.RenderGraph, meshes []ui.PaintMesh, target renderer.SurfaceTarget) {
	o.painter.AddToGraph(g, meshes, target)
}

// Context exposes the UI context for widget-level queries.
func (o *Overlay) Context() *ui.Context {
	return o.ctx
}

// Dispose frees the painter's GPU resources.
func (o *Overlay) Dispose() {
	o.painter.Dispose()
}
