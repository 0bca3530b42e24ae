package overlay_test

import (
	"testing"

	"heaven/internal/overlay"
	"heaven/internal/platform"
	"heaven/internal/renderer"
	"heaven/internal/ui"
)

type stubPainter struct {
	initCalls    int
	resizeCalls  int
	disposeCalls int
	passMeshes   []ui.PaintMesh
	width        int
	height       int
	scale        float32
}

func (p *stubPainter) Init(format renderer.TextureFormat, sampleCount, width, height int, scale float32, atlas *ui.Atlas) error {
	p.initCalls++
	p.width, p.height, p.scale = width, height, scale
	return nil
}

func (p *stubPainter) Resize(width, height int, scale float32) {
	p.resizeCalls++
	p.width, p.height, p.scale = width, height, scale
}

func (p *stubPainter) AddToGraph(g *renderer.RenderGraph, meshes []ui.PaintMesh, target renderer.SurfaceTarget) {
	p.passMeshes = meshes
	g.AddPass("ui overlay", func() {})
}

func (p *stubPainter) Dispose() { p.disposeCalls++ }

func newOverlay(t *testing.T) (*overlay.Overlay, *stubPainter) {
	t.Helper()
	p := &stubPainter{}
	o, err := overlay.New(p, renderer.TextureFormatSrgba8, 1, 900, 600, 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return o, p
}

// runFrame builds one frame against the state and returns its effects.
func runFrame(o *overlay.Overlay, s *overlay.State, elapsed float64) []overlay.Effect {
	o.BeginFrame(elapsed)
	effects := o.Build(s)
	o.EndFrame()
	return effects
}

func clickAt(o *overlay.Overlay, x, y float32) {
	o.HandleEvent(platform.EventCursorMoved{X: float64(x), Y: float64(y)})
	o.HandleEvent(platform.EventMouseButton{Button: platform.MouseButtonLeft, Pressed: true})
}

func releaseButton(o *overlay.Overlay) {
	o.HandleEvent(platform.EventMouseButton{Button: platform.MouseButtonLeft, Pressed: false})
}

func TestMenuButtonTogglesPanel(t *testing.T) {
	o, _ := newOverlay(t)
	s := &overlay.State{Color: [4]float32{0, 0.5, 0.5, 1}}

	// First frame places the widgets.
	runFrame(o, s, 0)
	menu, ok := o.Context().WidgetRect("menu")
	if !ok {
		t.Fatal("menu button not placed")
	}
	if _, ok := o.Context().WidgetRect("change-color"); ok {
		t.Fatal("panel visible before menu toggled")
	}

	clickAt(o, menu.X+1, menu.Y+1)
	runFrame(o, s, 0.016)
	releaseButton(o)
	if !s.MenuVisible {
		t.Fatal("click on menu did not open panel")
	}
	runFrame(o, s, 0.032)
	if _, ok := o.Context().WidgetRect("alt-scene"); !ok {
		t.Error("panel contents not placed while menu visible")
	}

	clickAt(o, menu.X+1, menu.Y+1)
	runFrame(o, s, 0.048)
	releaseButton(o)
	if s.MenuVisible {
		t.Error("second click did not close panel")
	}
	runFrame(o, s, 0.064)
	if _, ok := o.Context().WidgetRect("alt-scene"); ok {
		t.Error("panel contents still placed after close")
	}
}

func TestAlternateToggleHasNoOtherEffect(t *testing.T) {
	o, _ := newOverlay(t)
	s := &overlay.State{MenuVisible: true, Color: [4]float32{0, 0.5, 0.5, 1}}

	runFrame(o, s, 0)
	alt, ok := o.Context().WidgetRect("alt-scene")
	if !ok {
		t.Fatal("alt-scene button not placed")
	}

	clickAt(o, alt.X+1, alt.Y+1)
	effects := runFrame(o, s, 0.016)
	releaseButton(o)

	if !s.AlternateScene {
		t.Error("toggle did not flip")
	}
	if len(effects) != 0 {
		t.Errorf("toggle produced effects: %v", effects)
	}
	if s.Color != [4]float32{0, 0.5, 0.5, 1} {
		t.Errorf("toggle changed the color: %v", s.Color)
	}
}

func TestColorEditEmitsColorChanged(t *testing.T) {
	o, _ := newOverlay(t)
	s := &overlay.State{MenuVisible: true, Color: [4]float32{0, 0.5, 0.5, 1}}

	runFrame(o, s, 0)
	track, ok := o.Context().WidgetRect("albedo.R")
	if !ok {
		t.Fatal("red channel slider not placed")
	}

	// Press at the right edge of the red track.
	clickAt(o, track.X+track.W, track.Y+track.H/2)
	effects := runFrame(o, s, 0.016)

	if len(effects) != 1 {
		t.Fatalf("expected one effect, got %d", len(effects))
	}
	ch, ok := effects[0].(overlay.ColorChanged)
	if !ok {
		t.Fatalf("expected ColorChanged, got %T", effects[0])
	}
	if ch.Color[0] < 0.99 {
		t.Errorf("red channel = %v, want ~1", ch.Color[0])
	}
	if ch.Color != s.Color {
		t.Errorf("effect color %v diverged from state %v", ch.Color, s.Color)
	}

	// Holding without moving reports nothing new.
	effects = runFrame(o, s, 0.032)
	if len(effects) != 0 {
		t.Errorf("idle hold produced effects: %v", effects)
	}
	releaseButton(o)
}

func TestResizeIdenticalDimensionsIsNoop(t *testing.T) {
	o, p := newOverlay(t)

	o.Resize(900, 600, 1)
	if p.resizeCalls != 0 {
		t.Errorf("identical resize reached painter %d times", p.resizeCalls)
	}

	o.Resize(1280, 720, 1)
	if p.resizeCalls != 1 {
		t.Fatalf("resize calls = %d, want 1", p.resizeCalls)
	}
	if p.width != 1280 || p.height != 720 {
		t.Errorf("painter sized %dx%d, want 1280x720", p.width, p.height)
	}

	// Scale change alone still counts.
	o.Resize(1280, 720, 2)
	if p.resizeCalls != 2 {
		t.Errorf("scale-only resize calls = %d, want 2", p.resizeCalls)
	}
}

func TestScaledSurfaceLayoutAndPointer(t *testing.T) {
	p := &stubPainter{}
	o, err := overlay.New(p, renderer.TextureFormatSrgba8, 1, 1800, 1200, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s := &overlay.State{}

	// Layout happens in logical points: framebuffer / scale.
	runFrame(o, s, 0)
	bar, ok := o.Context().WidgetRect("taskbar")
	if !ok {
		t.Fatal("top bar not placed")
	}
	if bar.W != 900 {
		t.Errorf("top bar width = %v, want 900 (1800px at scale 2)", bar.W)
	}

	// Pointer events arrive in framebuffer pixels and must land on the
	// widget's logical rect.
	menu, ok := o.Context().WidgetRect("menu")
	if !ok {
		t.Fatal("menu button not placed")
	}
	o.HandleEvent(platform.EventCursorMoved{X: float64((menu.X + 1) * 2), Y: float64((menu.Y + 1) * 2)})
	o.HandleEvent(platform.EventMouseButton{Button: platform.MouseButtonLeft, Pressed: true})
	runFrame(o, s, 0.016)
	if !s.MenuVisible {
		t.Error("click delivered in framebuffer pixels missed the menu button")
	}
	releaseButton(o)

	// A resize keeps the same unit: new framebuffer size, same scale.
	o.Resize(2560, 1440, 2)
	runFrame(o, s, 0.032)
	bar, _ = o.Context().WidgetRect("taskbar")
	if bar.W != 1280 {
		t.Errorf("top bar width after resize = %v, want 1280", bar.W)
	}
}

func TestAddToGraphAppendsOverlayPass(t *testing.T) {
	o, p := newOverlay(t)
	s := &overlay.State{}

	o.BeginFrame(0)
	o.Build(s)
	meshes := o.EndFrame()
	if len(meshes) == 0 {
		t.Fatal("top bar produced no geometry")
	}

	g := renderer.NewGraph()
	target := g.AddSurfaceTexture()
	o.AddToGraph(g, meshes, target)

	names := g.PassNames()
	if len(names) != 1 || names[0] != "ui overlay" {
		t.Errorf("pass names = %v, want [ui overlay]", names)
	}
	if len(p.passMeshes) != len(meshes) {
		t.Errorf("painter got %d meshes, want %d", len(p.passMeshes), len(meshes))
	}
}
