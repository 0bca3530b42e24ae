// Package scene owns the 3D scene content: one lit cube, one directional
// light and a fixed orbit camera. It talks to the renderer only through
// handles and keeps the authoritative copy of the cube's material.
package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"heaven/internal/mesh"
	"heaven/internal/renderer"
)

// Renderer is the slice of the renderer the scene needs.
type Renderer interface {
	AddMesh(data mesh.Data) renderer.MeshHandle
	AddMaterial(mat renderer.PbrMaterial) renderer.MaterialHandle
	UpdateMaterial(h renderer.MaterialHandle, mat renderer.PbrMaterial)
	AddObject(obj renderer.Object) renderer.ObjectHandle
	AddDirectionalLight(light renderer.DirectionalLight) renderer.LightHandle
	SetCameraData(cam renderer.Camera)
}

// Initial scene constants.
var (
	initialAlbedo = mgl32.Vec4{0, 0.5, 0.5, 1}

	lightDirection = mgl32.Vec3{-1, -4, 2}
	cameraLocation = mgl32.Vec3{5, 7.5, -5}
)

const (
	lightIntensity = 10
	lightDistance  = 400

	cameraPitch = math.Pi / 4
	cameraYaw   = -math.Pi / 4
	cameraVFOV  = 60
	cameraNear  = 0.1
)

// Manager builds the scene once and keeps the handles alive for the life
// of the session.
type Manager struct {
	meshHandle     renderer.MeshHandle
	materialHandle renderer.MaterialHandle
	objectHandle   renderer.ObjectHandle
	lightHandle    renderer.LightHandle

	material    renderer.PbrMaterial
	initialized bool
}

func NewManager() *Manager {
	return &Manager{}
}

// Initialize submits the scene to the renderer: mesh, material, object,
// light and camera. It must run exactly once before any frame.
func (m *Manager) Initialize(r Renderer, data mesh.Data) {
	if m.initialized {
		panic("scene: Initialize called twice")
	}
	m.initialized = true

	m.meshHandle = r.AddMesh(data)

	m.material = renderer.NewPbrMaterial(initialAlbedo)
	m.materialHandle = r.AddMaterial(m.material)

	m.objectHandle = r.AddObject(renderer.Object{
		Mesh:      m.meshHandle,
		Material:  m.materialHandle,
		Transform: mgl32.Ident4(),
	})

	m.lightHandle = r.AddDirectionalLight(renderer.DirectionalLight{
		Color:     mgl32.Vec3{1, 1, 1},
		Intensity: lightIntensity,
		Direction: lightDirection,
		Distance:  lightDistance,
	})

	r.SetCameraData(renderer.Camera{
		Projection: renderer.CameraProjection{VFOVDegrees: cameraVFOV, Near: cameraNear},
		View:       cameraView(),
	})
}

// cameraView builds the fixed orbit view: pitch then yaw applied to the
// inverted camera location.
func cameraView() mgl32.Mat4 {
	pitch := mgl32.HomogRotate3DX(-cameraPitch)
	yaw := mgl32.HomogRotate3DY(-cameraYaw)
	translate := mgl32.Translate3D(-cameraLocation.X(), -cameraLocation.Y(), -cameraLocation.Z())
	return pitch.Mul4(yaw).Mul4(translate)
}

// UpdateMaterialColor re-submits the cube's material with a new albedo
// under the same handle. Other material fields are preserved.
func (m *Manager) UpdateMaterialColor(r Renderer, color [4]float32) {
	if !m.initialized {
		panic("scene: UpdateMaterialColor before Initialize")
	}
	m.material.Albedo = mgl32.Vec4(color)
	r.UpdateMaterial(m.materialHandle, m.material)
}

// Color returns the current albedo of the cube's material.
func (m *Manager) Color() [4]float32 {
	return [4]float32(m.material.Albedo)
}

// Release drops the scene's handles. The object goes first so its
// retained mesh and material can actually free.
func (m *Manager) Release() {
	if !m.initialized {
		return
	}
	m.objectHandle.Release()
	m.materialHandle.Release()
	m.meshHandle.Release()
	m.lightHandle.Release()
	m.initialized = false
}
