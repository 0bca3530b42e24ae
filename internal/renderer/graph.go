package renderer

// RenderGraph is an ordered pass list built per frame and submitted as one
// unit. Passes run strictly in insertion order.
type RenderGraph struct {
	passes  []Pass
	targets int
}

// Pass is one graph node. Run does the GPU work when the graph executes;
// nothing GPU-side happens at insertion time.
type Pass struct {
	Name string
	Run  func()
}

func NewGraph() *RenderGraph {
	return &RenderGraph{passes: make([]Pass, 0, 4)}
}

func (g *RenderGraph) AddPass(name string, run func()) {
	g.passes = append(g.passes, Pass{Name: name, Run: run})
}

// SurfaceTarget marks the acquired surface texture as a graph output.
type SurfaceTarget struct {
	index int
}

// AddSurfaceTexture registers the surface frame as the target for passes
// added after this point.
func (g *RenderGraph) AddSurfaceTexture() SurfaceTarget {
	g.targets++
	return SurfaceTarget{index: g.targets}
}

// PassNames lists the passes in execution order.
func (g *RenderGraph) PassNames() []string {
	names := make([]string, len(g.passes))
	for i, p := range g.passes {
		names[i] = p.Name
	}
	return names
}

func (g *RenderGraph) run() {
	for _, p := range g.passes {
		p.Run()
	}
}
