package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Data is raw geometry handed to the renderer: positions, per-vertex
// normals and a triangle index list. Producers that have no normals can
// leave them nil and call ComputeNormals.
type Data struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// Validate checks that the geometry is internally consistent before it is
// uploaded to the GPU.
func (d *Data) Validate() error {
	if len(d.Positions) == 0 {
		return fmt.Errorf("mesh has no vertices")
	}
	if len(d.Normals) != 0 && len(d.Normals) != len(d.Positions) {
		return fmt.Errorf("mesh has %d normals for %d positions", len(d.Normals), len(d.Positions))
	}
	if len(d.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(d.Indices))
	}
	for _, i := range d.Indices {
		if int(i) >= len(d.Positions) {
			return fmt.Errorf("index %d out of range (%d vertices)", i, len(d.Positions))
		}
	}
	return nil
}

// ComputeNormals synthesizes per-vertex normals by accumulating the face
// normal of every triangle a vertex participates in, then normalizing.
// Shared vertices end up with smooth normals, unshared ones stay flat.
func (d *Data) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(d.Positions))
	for i := 0; i+2 < len(d.Indices); i += 3 {
		a, b, c := d.Indices[i], d.Indices[i+1], d.Indices[i+2]
		e1 := d.Positions[b].Sub(d.Positions[a])
		e2 := d.Positions[c].Sub(d.Positions[a])
		face := e1.Cross(e2)
		normals[a] = normals[a].Add(face)
		normals[b] = normals[b].Add(face)
		normals[c] = normals[c].Add(face)
	}
	for i, n := range normals {
		if n.Len() > 0 {
			normals[i] = n.Normalize()
		}
	}
	d.Normals = normals
}

// Interleave flattens the mesh into position+normal pairs (stride 6 floats)
// ready for a single vertex buffer upload.
func (d *Data) Interleave() []float32 {
	out := make([]float32, 0, len(d.Positions)*6)
	for i, p := range d.Positions {
		out = append(out, p.X(), p.Y(), p.Z())
		if i < len(d.Normals) {
			n := d.Normals[i]
			out = append(out, n.X(), n.Y(), n.Z())
		} else {
			out = append(out, 0, 0, 0)
		}
	}
	return out
}

// CreateMesh builds the unit cube the scene starts with. Each face has its
// own four vertices so the synthesized normals come out flat per face.
func CreateMesh() Data {
	faces := [6][4]mgl32.Vec3{
		// +Z
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
		// -Z
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
		// +X
		{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
		// -X
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
		// +Y
		{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
		// -Y
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	}

	var d Data
	for _, f := range faces {
		base := uint32(len(d.Positions))
		d.Positions = append(d.Positions, f[0], f[1], f[2], f[3])
		d.Indices = append(d.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	d.ComputeNormals()
	return d
}
