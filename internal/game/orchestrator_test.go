package game_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"heaven/internal/game"
	"heaven/internal/mesh"
	"heaven/internal/overlay"
	"heaven/internal/platform"
	"heaven/internal/renderer"
	"heaven/internal/ui"
)

type execution struct {
	passNames     []string
	guardReleased bool
	frame         renderer.Frame
}

type fakeService struct {
	routines renderer.RoutineSet

	updates    []renderer.PbrMaterial
	resizes    [][2]int
	executions []execution

	lastGuard *renderer.RoutineGuard
}

func (f *fakeService) AddMesh(data mesh.Data) renderer.MeshHandle { return renderer.MeshHandle{} }
func (f *fakeService) AddMaterial(m renderer.PbrMaterial) renderer.MaterialHandle {
	return renderer.MaterialHandle{}
}
func (f *fakeService) UpdateMaterial(h renderer.MaterialHandle, m renderer.PbrMaterial) {
	f.updates = append(f.updates, m)
}
func (f *fakeService) AddObject(o renderer.Object) renderer.ObjectHandle {
	return renderer.ObjectHandle{}
}
func (f *fakeService) AddDirectionalLight(l renderer.DirectionalLight) renderer.LightHandle {
	return renderer.LightHandle{}
}
func (f *fakeService) SetCameraData(c renderer.Camera) {}

func (f *fakeService) Ready() (renderer.CommandBuffers, *renderer.ReadyState) {
	return nil, &renderer.ReadyState{}
}

func (f *fakeService) LockRoutines() *renderer.RoutineGuard {
	f.lastGuard = f.routines.Lock()
	return f.lastGuard
}

type fakeFrame struct{ presented int }

func (f *fakeFrame) Present() { f.presented++ }

func (f *fakeService) AcquireFrame() renderer.Frame { return &fakeFrame{} }

func (f *fakeService) Execute(g *renderer.RenderGraph, frame renderer.Frame, bufs renderer.CommandBuffers, ready *renderer.ReadyState) {
	f.executions = append(f.executions, execution{
		passNames:     g.PassNames(),
		guardReleased: f.lastGuard.Released(),
		frame:         frame,
	})
}

func (f *fakeService) Resize(w, h int) {
	f.resizes = append(f.resizes, [2]int{w, h})
}

type resize struct {
	w, h  int
	scale float32
}

type fakeOverlay struct {
	effects []overlay.Effect // emitted by the next Build
	builds  int
	events  []platform.Event
	resizes []resize
	graphed bool
}

func (f *fakeOverlay) HandleEvent(ev platform.Event) { f.events = append(f.events, ev) }
func (f *fakeOverlay) BeginFrame(elapsed float64)    {}

func (f *fakeOverlay) Build(s *overlay.State) []overlay.Effect {
	f.builds++
	out := f.effects
	f.effects = nil
	return out
}

func (f *fakeOverlay) EndFrame() []ui.PaintMesh { return nil }

func (f *fakeOverlay) Resize(width, height int, scale float32) {
	f.resizes = append(f.resizes, resize{w: width, h: height, scale: scale})
}

func (f *fakeOverlay) AddToGraph(g *renderer.RenderGraph, meshes []ui.PaintMesh, target renderer.SurfaceTarget) {
	f.graphed = true
	g.AddPass("ui overlay", func() {})
}

func newOrchestrator() (*game.Orchestrator, *fakeService, *fakeOverlay) {
	svc := &fakeService{}
	ov := &fakeOverlay{}
	orch := game.NewOrchestrator(svc, ov, 1)
	orch.Setup(mesh.CreateMesh(), 900, 600, 1)
	return orch, svc, ov
}

func TestRedrawBuildsGraphInOrder(t *testing.T) {
	orch, svc, _ := newOrchestrator()

	orch.HandleEvent(platform.EventRedrawRequested{})
	if len(svc.executions) != 1 {
		t.Fatalf("executions = %d, want 1", len(svc.executions))
	}
	ex := svc.executions[0]

	want := []string{"pbr scene", "tonemap", "ui overlay"}
	if len(ex.passNames) != len(want) {
		t.Fatalf("pass names = %v, want %v", ex.passNames, want)
	}
	for i := range want {
		if ex.passNames[i] != want[i] {
			t.Errorf("pass[%d] = %q, want %q", i, ex.passNames[i], want[i])
		}
	}
	if !ex.guardReleased {
		t.Error("routine guard still held when graph executed")
	}
	if ex.frame == nil {
		t.Error("acquired frame not threaded through to Execute")
	}
}

func TestLastColorEffectWinsWithOneUpdate(t *testing.T) {
	orch, svc, ov := newOrchestrator()

	ov.effects = []overlay.Effect{
		overlay.ColorChanged{Color: [4]float32{1, 0, 0, 1}},
		overlay.ColorChanged{Color: [4]float32{0, 1, 0, 1}},
	}
	orch.HandleEvent(platform.EventRedrawRequested{})

	if len(svc.updates) != 1 {
		t.Fatalf("material updates = %d, want 1", len(svc.updates))
	}
	if svc.updates[0].Albedo != (mgl32.Vec4{0, 1, 0, 1}) {
		t.Errorf("albedo = %v, want last effect's color", svc.updates[0].Albedo)
	}
	if orch.Session().Scene.Color() != [4]float32{0, 1, 0, 1} {
		t.Errorf("scene color = %v", orch.Session().Scene.Color())
	}
}

func TestRedrawWithoutEffectsTouchesNoMaterial(t *testing.T) {
	orch, svc, _ := newOrchestrator()

	orch.HandleEvent(platform.EventRedrawRequested{})
	orch.HandleEvent(platform.EventRedrawRequested{})
	if len(svc.updates) != 0 {
		t.Errorf("material updates = %d, want 0", len(svc.updates))
	}
}

func TestCloseIsTerminal(t *testing.T) {
	orch, svc, _ := newOrchestrator()

	orch.HandleEvent(platform.EventCloseRequested{})
	if orch.State() != game.StateTerminated {
		t.Fatalf("state = %v, want terminated", orch.State())
	}

	orch.HandleEvent(platform.EventRedrawRequested{})
	orch.HandleEvent(platform.EventMainEventsCleared{})
	orch.HandleEvent(platform.EventCloseRequested{})
	if len(svc.executions) != 0 {
		t.Errorf("events after termination executed %d frames", len(svc.executions))
	}
	if orch.State() != game.StateTerminated {
		t.Errorf("state left terminated: %v", orch.State())
	}
}

func TestEventBeforeSetupPanics(t *testing.T) {
	orch := game.NewOrchestrator(&fakeService{}, &fakeOverlay{}, 1)

	defer func() {
		if recover() == nil {
			t.Error("event before Setup did not panic")
		}
	}()
	orch.HandleEvent(platform.EventRedrawRequested{})
}

func TestRedrawRequestLifecycle(t *testing.T) {
	orch, _, _ := newOrchestrator()

	// Setup leaves an initial request pending.
	if !orch.TakeRedrawRequest() {
		t.Fatal("no redraw pending after Setup")
	}
	if orch.TakeRedrawRequest() {
		t.Fatal("request not consumed")
	}

	orch.HandleEvent(platform.EventMainEventsCleared{})
	if !orch.TakeRedrawRequest() {
		t.Error("batch end did not request a redraw")
	}
}

func TestResizeForwarding(t *testing.T) {
	orch, svc, ov := newOrchestrator()

	orch.HandleEvent(platform.EventResized{Width: 1280, Height: 720})
	if len(svc.resizes) != 1 || svc.resizes[0] != [2]int{1280, 720} {
		t.Fatalf("service resizes = %v", svc.resizes)
	}
	if len(ov.resizes) != 1 || ov.resizes[0] != (resize{w: 1280, h: 720, scale: 1}) {
		t.Fatalf("overlay resizes = %v", ov.resizes)
	}

	// Scale change retargets the overlay at the current size.
	orch.HandleEvent(platform.EventScaleChanged{Scale: 2})
	if len(svc.resizes) != 1 {
		t.Errorf("scale change resized the renderer: %v", svc.resizes)
	}
	if len(ov.resizes) != 2 || ov.resizes[1] != (resize{w: 1280, h: 720, scale: 2}) {
		t.Errorf("overlay resizes = %v", ov.resizes)
	}
}

func TestBridgeDeliversOverlayFirst(t *testing.T) {
	svc := &fakeService{}
	ov := &fakeOverlay{}
	orch := game.NewOrchestrator(svc, ov, 1)
	orch.Setup(mesh.CreateMesh(), 900, 600, 1)
	bridge := game.NewBridge(ov, orch)

	// A click followed by the synthesized redraw: the overlay must have
	// seen the click by the time the frame builds.
	bridge.Deliver(platform.EventMouseButton{Button: platform.MouseButtonLeft, Pressed: true})
	if len(ov.events) != 1 {
		t.Fatalf("overlay events = %d, want 1", len(ov.events))
	}
	bridge.Deliver(platform.EventRedrawRequested{})
	if ov.builds != 1 {
		t.Errorf("builds = %d, want 1", ov.builds)
	}
	if len(svc.executions) != 1 {
		t.Errorf("executions = %d, want 1", len(svc.executions))
	}
}
