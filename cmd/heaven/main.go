package main

import (
	"log"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"heaven/internal/config"
	"heaven/internal/game"
	"heaven/internal/mesh"
	"heaven/internal/overlay"
	"heaven/internal/platform"
	"heaven/internal/renderer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Load("heaven.toml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("init glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg)
	if err != nil {
		log.Fatalf("setup window: %v", err)
	}

	r, err := renderer.New(window, cfg)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer r.Dispose()

	width, height := window.GetFramebufferSize()
	scale, _ := window.GetContentScale()

	ov, err := overlay.New(overlay.NewGLRoutine(), renderer.TextureFormatSrgba8,
		cfg.SampleCount, width, height, scale)
	if err != nil {
		log.Fatalf("overlay: %v", err)
	}
	defer ov.Dispose()

	orch := game.NewOrchestrator(r, ov, cfg.SampleCount)
	orch.Setup(mesh.CreateMesh(), width, height, scale)
	defer orch.Session().Close()

	queue := platform.NewQueue()
	platform.Attach(window, queue)
	bridge := game.NewBridge(ov, orch)

	// VSync paces the loop; the pacer only matters with vsync off.
	limit := cfg.FPSLimit
	if cfg.VSync {
		limit = 0
	}
	game.Run(window, queue, bridge, orch, game.NewPacer(limit))
}
