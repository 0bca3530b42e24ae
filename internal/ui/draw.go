package ui

// Rect is an axis-aligned box in logical UI coordinates, top-left origin.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// CommandKind tags a draw command.
type CommandKind uint8

const (
	CommandRect CommandKind = iota
	CommandText
)

// DrawCommand is one deferred paint operation recorded during a build
// pass. Commands are resolved back-to-front in recording order.
type DrawCommand struct {
	Kind  CommandKind
	Rect  Rect // for text, X/Y is the top-left of the line
	Color [4]float32
	Text  string
}

// Vertex is one tessellated UI vertex: position in logical points, atlas
// texture coordinates and a straight-alpha color.
type Vertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

// PaintMesh is a GPU-paintable batch of UI triangles. All vertices sample
// the shared atlas; solid quads use its white region.
type PaintMesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Tessellate converts draw commands into paintable meshes. The whole frame
// batches into one mesh since every command shares the atlas texture.
func Tessellate(cmds []DrawCommand, atlas *Atlas) []PaintMesh {
	if len(cmds) == 0 {
		return nil
	}

	var m PaintMesh
	for _, cmd := range cmds {
		switch cmd.Kind {
		case CommandRect:
			quad(&m, cmd.Rect, atlas.WhiteUV[0], atlas.WhiteUV[1], atlas.WhiteUV[0], atlas.WhiteUV[1], cmd.Color)
		case CommandText:
			x := cmd.Rect.X
			for _, r := range cmd.Text {
				g := atlas.Glyph(r)
				quad(&m, Rect{X: x, Y: cmd.Rect.Y, W: g.W, H: g.H}, g.U0, g.V0, g.U1, g.V1, cmd.Color)
				x += g.Advance
			}
		}
	}
	if len(m.Vertices) == 0 {
		return nil
	}
	return []PaintMesh{m}
}

func quad(m *PaintMesh, r Rect, u0, v0, u1, v1 float32, col [4]float32) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Pos: [2]float32{r.X, r.Y}, UV: [2]float32{u0, v0}, Color: col},
		Vertex{Pos: [2]float32{r.X + r.W, r.Y}, UV: [2]float32{u1, v0}, Color: col},
		Vertex{Pos: [2]float32{r.X + r.W, r.Y + r.H}, UV: [2]float32{u1, v1}, Color: col},
		Vertex{Pos: [2]float32{r.X, r.Y + r.H}, UV: [2]float32{u0, v1}, Color: col},
	)
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
