package renderer

import (
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// RoutineSet holds the shared render routines. Graph construction takes a
// short read lock on them; the lock must be released before the graph
// executes and never held across frames.
type RoutineSet struct {
	mu      sync.RWMutex
	pbr     *PbrRoutine
	tonemap *TonemapRoutine
}

// RoutineGuard is a scoped read lock over the routines. Release is
// idempotent and must be called at the end of graph construction.
type RoutineGuard struct {
	PBR      *PbrRoutine
	Tonemap  *TonemapRoutine
	mu       *sync.RWMutex
	released bool
}

// Lock acquires the routines under a read lock.
func (s *RoutineSet) Lock() *RoutineGuard {
	s.mu.RLock()
	return &RoutineGuard{PBR: s.pbr, Tonemap: s.tonemap, mu: &s.mu}
}

func (g *RoutineGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.mu.RUnlock()
}

// Released reports whether the guard has been released.
func (g *RoutineGuard) Released() bool {
	return g.released
}

// AddDefaultGraph appends the default scene subgraph: opaque PBR geometry
// into the HDR target, then a tonemap pass. No skybox.
func AddDefaultGraph(g *RenderGraph, ready *ReadyState, pbr *PbrRoutine, tonemap *TonemapRoutine, sampleCount int) {
	pbr.AddToGraph(g, ready, sampleCount)
	tonemap.AddToGraph(g)
}

// PbrRoutine draws the opaque scene into the HDR target.
type PbrRoutine struct {
	r      *Renderer
	shader *Shader
}

// AddToGraph appends the scene pass. GPU work happens only when the pass
// runs.
func (p *PbrRoutine) AddToGraph(g *RenderGraph, ready *ReadyState, sampleCount int) {
	g.AddPass("pbr scene", func() { p.draw(ready) })
}

func (p *PbrRoutine) draw(ready *ReadyState) {
	r := p.r
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.hdr.fbo)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	c := r.clearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)

	p.shader.Use()

	view := ready.Camera.View
	proj := ready.Proj
	p.shader.SetMatrix4("view", &view[0])
	p.shader.SetMatrix4("projection", &proj[0])

	camPos := view.Inv().Col(3).Vec3()
	p.shader.SetVector3("camPos", camPos.X(), camPos.Y(), camPos.Z())

	if len(ready.Lights) > 0 {
		l := ready.Lights[0]
		dir := l.Direction.Normalize()
		p.shader.SetVector3("lightDir", dir.X(), dir.Y(), dir.Z())
		p.shader.SetVector3("lightColor", l.Color.X(), l.Color.Y(), l.Color.Z())
		p.shader.SetFloat("lightIntensity", l.Intensity)
	} else {
		p.shader.SetFloat("lightIntensity", 0)
	}

	for _, o := range ready.Objects {
		m, ok := r.materials.get(o.MaterialID)
		if !ok {
			continue
		}
		model := o.Transform
		p.shader.SetMatrix4("model", &model[0])
		p.shader.SetVector4("albedo", m.Albedo.X(), m.Albedo.Y(), m.Albedo.Z(), m.Albedo.W())
		p.shader.SetFloat("roughness", m.Roughness)
		p.shader.SetFloat("metallic", m.Metallic)

		gl.BindVertexArray(o.VAO)
		gl.DrawElementsWithOffset(gl.TRIANGLES, o.IndexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// TonemapRoutine converts the HDR target to display range on the surface.
type TonemapRoutine struct {
	r      *Renderer
	shader *Shader
	vao    uint32
}

// AddToGraph appends the tonemap pass.
func (t *TonemapRoutine) AddToGraph(g *RenderGraph) {
	g.AddPass("tonemap", func() { t.draw() })
}

func (t *TonemapRoutine) draw() {
	r := t.r

	src := r.hdr.colorTex
	if r.hdr.samples > 1 {
		// Resolve the multisampled target before sampling it.
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.hdr.fbo)
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, r.hdr.resolveFbo)
		gl.BlitFramebuffer(0, 0, int32(r.width), int32(r.height),
			0, 0, int32(r.width), int32(r.height),
			gl.COLOR_BUFFER_BIT, gl.NEAREST)
		src = r.hdr.resolveTex
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	t.shader.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, src)
	t.shader.SetInt("hdrColor", 0)

	gl.BindVertexArray(t.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
}
