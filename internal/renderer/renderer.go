package renderer

import (
	"fmt"

	"heaven/internal/config"
	"heaven/internal/mesh"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const farPlane = 1000.0

// Renderer is the GPU service: it owns all GPU-resident scene resources
// and executes render graphs against the window surface. Construction
// requires a current OpenGL context.
type Renderer struct {
	window *glfw.Window

	width, height int
	sampleCount   int
	clearColor    [4]float32

	table     *handleTable
	meshes    map[uint64]*glMesh
	materials *materialStore
	objects   map[uint64]objectEntry
	objOrder  []uint64
	lights    map[uint64]DirectionalLight
	lightOrd  []uint64
	camera    Camera

	routines RoutineSet
	hdr      hdrTarget
}

type glMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

type objectEntry struct {
	meshID     uint64
	materialID uint64
	transform  mgl32.Mat4
}

// New builds the renderer against the window's current GL context.
func New(window *glfw.Window, cfg config.Config) (*Renderer, error) {
	w, h := window.GetFramebufferSize()

	r := &Renderer{
		window:      window,
		width:       w,
		height:      h,
		sampleCount: cfg.SampleCount,
		clearColor:  cfg.ClearColor,
		table:       newHandleTable(),
		meshes:      make(map[uint64]*glMesh),
		materials:   newMaterialStore(),
		objects:     make(map[uint64]objectEntry),
		lights:      make(map[uint64]DirectionalLight),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	pbrShader, err := NewShader(pbrVertexSrc, pbrFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("pbr shader: %w", err)
	}
	tonemapShader, err := NewShader(tonemapVertexSrc, tonemapFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("tonemap shader: %w", err)
	}

	if err := r.hdr.create(w, h, cfg.SampleCount); err != nil {
		return nil, err
	}

	tonemap := &TonemapRoutine{r: r, shader: tonemapShader}
	// Empty VAO for the fullscreen triangle; core profile requires one
	// bound even without attributes.
	gl.GenVertexArrays(1, &tonemap.vao)

	r.routines.pbr = &PbrRoutine{r: r, shader: pbrShader}
	r.routines.tonemap = tonemap

	return r, nil
}

// AddMesh uploads geometry and returns its handle. Missing normals are
// synthesized before upload.
func (r *Renderer) AddMesh(d mesh.Data) MeshHandle {
	if len(d.Normals) == 0 {
		d.ComputeNormals()
	}
	if err := d.Validate(); err != nil {
		panic(fmt.Sprintf("renderer: AddMesh: %v", err))
	}

	m := &glMesh{indexCount: int32(len(d.Indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	flat := d.Interleave()
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(flat)*4, gl.Ptr(flat), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(d.Indices)*4, gl.Ptr(d.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	id := r.table.alloc(func(id uint64) {
		gm := r.meshes[id]
		gl.DeleteBuffers(1, &gm.vbo)
		gl.DeleteBuffers(1, &gm.ebo)
		gl.DeleteVertexArrays(1, &gm.vao)
		delete(r.meshes, id)
	})
	r.meshes[id] = m
	return MeshHandle{Handle{id: id, table: r.table}}
}

// AddMaterial registers a material and returns its handle.
func (r *Renderer) AddMaterial(m PbrMaterial) MaterialHandle {
	id := r.table.alloc(func(id uint64) {
		r.materials.remove(id)
	})
	r.materials.add(id, m)
	return MaterialHandle{Handle{id: id, table: r.table}}
}

// UpdateMaterial re-submits the material under the same handle. The change
// becomes visible when the next graph executes.
func (r *Renderer) UpdateMaterial(h MaterialHandle, m PbrMaterial) {
	r.materials.update(h.id, m)
}

// AddObject binds a mesh and a material into one renderable. The object
// retains both for its own lifetime.
func (r *Renderer) AddObject(o Object) ObjectHandle {
	id := r.table.alloc(func(id uint64) {
		delete(r.objects, id)
		for i, oid := range r.objOrder {
			if oid == id {
				r.objOrder = append(r.objOrder[:i], r.objOrder[i+1:]...)
				break
			}
		}
	}, o.Mesh.id, o.Material.id)
	r.objects[id] = objectEntry{meshID: o.Mesh.id, materialID: o.Material.id, transform: o.Transform}
	r.objOrder = append(r.objOrder, id)
	return ObjectHandle{Handle{id: id, table: r.table}}
}

// AddDirectionalLight registers a directional light.
func (r *Renderer) AddDirectionalLight(l DirectionalLight) LightHandle {
	id := r.table.alloc(func(id uint64) {
		delete(r.lights, id)
		for i, lid := range r.lightOrd {
			if lid == id {
				r.lightOrd = append(r.lightOrd[:i], r.lightOrd[i+1:]...)
				break
			}
		}
	})
	r.lights[id] = l
	r.lightOrd = append(r.lightOrd, id)
	return LightHandle{Handle{id: id, table: r.table}}
}

// SetCameraData replaces the scene camera.
func (r *Renderer) SetCameraData(c Camera) {
	r.camera = c
}

// Ready flushes queued updates into command buffers and snapshots the
// submission-ready scene state for one frame.
func (r *Renderer) Ready() (CommandBuffers, *ReadyState) {
	bufs := r.materials.flush()

	ready := &ReadyState{
		Camera: r.camera,
		Proj: mgl32.Perspective(
			mgl32.DegToRad(r.camera.Projection.VFOVDegrees),
			float32(r.width)/float32(r.height),
			r.camera.Projection.Near, farPlane),
	}
	for _, id := range r.objOrder {
		o := r.objects[id]
		gm, ok := r.meshes[o.meshID]
		if !ok {
			continue
		}
		ready.Objects = append(ready.Objects, RenderObject{
			VAO:        gm.vao,
			IndexCount: gm.indexCount,
			MaterialID: o.materialID,
			Transform:  o.transform,
		})
	}
	for _, id := range r.lightOrd {
		ready.Lights = append(ready.Lights, r.lights[id])
	}
	return bufs, ready
}

// LockRoutines takes the short-lived shared lock over the render routines.
func (r *Renderer) LockRoutines() *RoutineGuard {
	return r.routines.Lock()
}

// AcquireFrame requests the surface frame for this redraw.
func (r *Renderer) AcquireFrame() Frame {
	return &surfaceFrame{window: r.window}
}

// Execute runs the queued command buffers, then the graph passes in order,
// then presents the frame.
func (r *Renderer) Execute(g *RenderGraph, frame Frame, bufs CommandBuffers, ready *ReadyState) {
	bufs.run()
	g.run()
	frame.Present()
}

// Resize retargets the HDR chain to a new drawable size. Idempotent for
// identical dimensions.
func (r *Renderer) Resize(w, h int) {
	if w == r.width && h == r.height {
		return
	}
	r.width, r.height = w, h
	r.hdr.destroy()
	if err := r.hdr.create(w, h, r.sampleCount); err != nil {
		panic(fmt.Sprintf("renderer: resize HDR target: %v", err))
	}
}

// Dispose frees routine and target resources. Scene handles must already
// have been released by their owners.
func (r *Renderer) Dispose() {
	r.hdr.destroy()
	if r.routines.pbr != nil {
		r.routines.pbr.shader.Delete()
	}
	if r.routines.tonemap != nil {
		r.routines.tonemap.shader.Delete()
		gl.DeleteVertexArrays(1, &r.routines.tonemap.vao)
	}
}

type surfaceFrame struct {
	window *glfw.Window
}

func (f *surfaceFrame) Present() {
	f.window.SwapBuffers()
}

// hdrTarget is the RGBA16F scene target plus depth, with an extra resolve
// chain when multisampled.
type hdrTarget struct {
	fbo      uint32
	colorTex uint32 // sampled directly when samples == 1
	colorRbo uint32 // multisampled storage otherwise
	depthRbo uint32

	resolveFbo uint32
	resolveTex uint32

	samples int
	w, h    int
}

func (t *hdrTarget) create(w, h, samples int) error {
	t.samples, t.w, t.h = samples, w, h

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	if samples > 1 {
		gl.GenRenderbuffers(1, &t.colorRbo)
		gl.BindRenderbuffer(gl.RENDERBUFFER, t.colorRbo)
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, int32(samples), gl.RGBA16F, int32(w), int32(h))
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.colorRbo)
	} else {
		gl.GenTextures(1, &t.colorTex)
		gl.BindTexture(gl.TEXTURE_2D, t.colorTex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(w), int32(h), 0, gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.colorTex, 0)
	}

	gl.GenRenderbuffers(1, &t.depthRbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRbo)
	if samples > 1 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, int32(samples), gl.DEPTH_COMPONENT24, int32(w), int32(h))
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(w), int32(h))
	}
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRbo)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("HDR framebuffer incomplete: 0x%x", status)
	}

	if samples > 1 {
		gl.GenFramebuffers(1, &t.resolveFbo)
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.resolveFbo)
		gl.GenTextures(1, &t.resolveTex)
		gl.BindTexture(gl.TEXTURE_2D, t.resolveTex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, int32(w), int32(h), 0, gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.resolveTex, 0)

		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			return fmt.Errorf("resolve framebuffer incomplete: 0x%x", status)
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (t *hdrTarget) destroy() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
	}
	if t.colorTex != 0 {
		gl.DeleteTextures(1, &t.colorTex)
	}
	if t.colorRbo != 0 {
		gl.DeleteRenderbuffers(1, &t.colorRbo)
	}
	if t.depthRbo != 0 {
		gl.DeleteRenderbuffers(1, &t.depthRbo)
	}
	if t.resolveFbo != 0 {
		gl.DeleteFramebuffers(1, &t.resolveFbo)
	}
	if t.resolveTex != 0 {
		gl.DeleteTextures(1, &t.resolveTex)
	}
	*t = hdrTarget{}
}
