package renderer

import "github.com/go-gl/mathgl/mgl32"

// TextureFormat names the surface formats the overlay can target.
type TextureFormat uint8

const (
	TextureFormatSrgba8 TextureFormat = iota
	TextureFormatRgba16F
)

// PbrMaterial is a physically based material. Only the albedo is scene
// driven; the rest stay at their defaults.
type PbrMaterial struct {
	Albedo    mgl32.Vec4
	Roughness float32
	Metallic  float32
}

// NewPbrMaterial returns a material with the given albedo and default
// surface parameters.
func NewPbrMaterial(albedo mgl32.Vec4) PbrMaterial {
	return PbrMaterial{Albedo: albedo, Roughness: 0.5, Metallic: 0}
}

// Object binds a mesh and a material at a transform.
type Object struct {
	Mesh      MeshHandle
	Material  MaterialHandle
	Transform mgl32.Mat4
}

// DirectionalLight is a sun-style light. Direction is normalized by the
// renderer; Distance is the shadow falloff range.
type DirectionalLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Direction mgl32.Vec3
	Distance  float32
}

// CameraProjection is a perspective projection; the far plane is owned by
// the renderer.
type CameraProjection struct {
	VFOVDegrees float32
	Near        float32
}

// Camera is the scene camera: projection parameters plus a view matrix.
type Camera struct {
	Projection CameraProjection
	View       mgl32.Mat4
}

// RenderObject is one submission-ready draw: GPU buffer names plus the
// material and transform to draw them with.
type RenderObject struct {
	VAO        uint32
	IndexCount int32
	MaterialID uint64
	Transform  mgl32.Mat4
}

// ReadyState is the per-frame snapshot of submission-ready scene state,
// produced by Ready and immutable while the graph runs.
type ReadyState struct {
	Objects []RenderObject
	Camera  Camera
	Proj    mgl32.Mat4
	Lights  []DirectionalLight
}

// CommandBuffers is deferred GPU-side work (queued material updates)
// flushed by Ready and executed at the head of graph execution.
type CommandBuffers []func()

func (c CommandBuffers) run() {
	for _, f := range c {
		f()
	}
}

// Frame is one acquired surface frame; Present hands it to the display.
type Frame interface {
	Present()
}
