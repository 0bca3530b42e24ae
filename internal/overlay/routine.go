package overlay

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"heaven/internal/renderer"
	"heaven/internal/ui"
)

const uiVertexSrc = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in vec4 aColor;

uniform mat4 projection;

out vec2 UV;
out vec4 Color;

void main() {
	UV = aUV;
	Color = aColor;
	gl_Position = projection * vec4(aPos, 0.0, 1.0);
}`

const uiFragmentSrc = `#version 410 core
in vec2 UV;
in vec4 Color;

uniform sampler2D atlas;

out vec4 FragColor;

void main() {
	FragColor = Color * texture(atlas, UV);
}`

// 2 pos + 2 uv + 4 color floats per vertex.
const uiVertexStride = 8

// GLRoutine renders tessellated UI meshes over the resolved surface. It
// draws in logical coordinates with an orthographic projection and maps
// to physical pixels through the viewport.
type GLRoutine struct {
	shader *renderer.Shader
	vao    uint32
	vbo    uint32
	ebo    uint32
	atlas  uint32

	width, height int
	scale         float32
}

func NewGLRoutine() *GLRoutine {
	return &GLRoutine{}
}

func (r *GLRoutine) Init(format renderer.TextureFormat, sampleCount, width, height int, scale float32, atlas *ui.Atlas) error {
	shader, err := renderer.NewShader(uiVertexSrc, uiFragmentSrc)
	if err != nil {
		return fmt.Errorf("ui shader: %w", err)
	}
	r.shader = shader
	r.width, r.height, r.scale = width, height, scale

	gl.GenTextures(1, &r.atlas)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(atlas.Width), int32(atlas.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Pix))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	stride := int32(uiVertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	return nil
}

func (r *GLRoutine) Resize(width, height int, scale float32) {
	r.width, r.height, r.scale = width, height, scale
}

// AddToGraph appends the overlay pass. The meshes slice is captured as-is;
// it must stay untouched until the graph executes.
func (r *GLRoutine) AddToGraph(g *renderer.RenderGraph, meshes []ui.PaintMesh, target renderer.SurfaceTarget) {
	g.AddPass("ui overlay", func() {
		r.draw(meshes)
	})
}

func (r *GLRoutine) draw(meshes []ui.PaintMesh) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.shader.Use()
	logicalW := float32(r.width) / r.scale
	logicalH := float32(r.height) / r.scale
	projection := mgl32.Ortho2D(0, logicalW, logicalH, 0)
	r.shader.SetMatrix4("projection", &projection[0])
	r.shader.SetInt("atlas", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlas)
	gl.BindVertexArray(r.vao)

	for _, m := range meshes {
		if len(m.Indices) == 0 {
			continue
		}
		verts := flattenVertices(m.Vertices)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STREAM_DRAW)
		gl.DrawElements(gl.TRIANGLES, int32(len(m.Indices)), gl.UNSIGNED_INT, nil)
	}

	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

func flattenVertices(vs []ui.Vertex) []float32 {
	out := make([]float32, 0, len(vs)*uiVertexStride)
	for _, v := range vs {
		out = append(out,
			v.Pos[0], v.Pos[1],
			v.UV[0], v.UV[1],
			v.Color[0], v.Color[1], v.Color[2], v.Color[3])
	}
	return out
}

func (r *GLRoutine) Dispose() {
	if r.shader != nil {
		r.shader.Delete()
	}
	gl.DeleteTextures(1, &r.atlas)
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteBuffers(1, &r.ebo)
	gl.DeleteVertexArrays(1, &r.vao)
}
