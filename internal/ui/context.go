package ui

// Context is an immediate-mode UI context: the widget tree is rebuilt
// every frame from current state, recording draw commands and resolving
// interaction against the pointer state fed in between frames.
type Context struct {
	atlas *Atlas

	width, height float32
	scale         float32

	time float64

	mouseX, mouseY float32
	mouseDown      bool
	mousePressed   bool
	mouseReleased  bool

	// id of the widget holding a drag, empty when none
	active string

	cmds    []DrawCommand
	rects   map[string]Rect
	layouts []layoutState
}

type layoutState struct {
	x, y float32
	row  bool
}

func NewContext(atlas *Atlas) *Context {
	return &Context{
		atlas: atlas,
		scale: 1,
		cmds:  make([]DrawCommand, 0, 64),
		rects: make(map[string]Rect, 16),
	}
}

// SetSurface records the logical surface size and scale factor the next
// build pass lays out against.
func (c *Context) SetSurface(w, h, scale float32) {
	c.width, c.height, c.scale = w, h, scale
}

func (c *Context) Scale() float32 { return c.scale }

// PointerMoved updates the pointer position in logical coordinates.
func (c *Context) PointerMoved(x, y float32) {
	c.mouseX, c.mouseY = x, y
}

// PointerButton feeds a primary-button transition. Edges are detected here
// and consumed at EndFrame.
func (c *Context) PointerButton(pressed bool) {
	if pressed && !c.mouseDown {
		c.mousePressed = true
	}
	if !pressed && c.mouseDown {
		c.mouseReleased = true
		c.active = ""
	}
	c.mouseDown = pressed
}

// BeginFrame starts a build pass at a monotonically increasing time.
func (c *Context) BeginFrame(now float64) {
	c.time = now
	c.cmds = c.cmds[:0]
	c.layouts = c.layouts[:0]
	clear(c.rects)
}

// Time returns the timestamp of the current build pass.
func (c *Context) Time() float64 { return c.time }

// EndFrame closes the build pass and returns this frame's draw commands.
// The returned slice is valid until the next BeginFrame. Pointer edge
// flags are consumed here so one click feeds exactly one build pass.
func (c *Context) EndFrame() []DrawCommand {
	c.mousePressed = false
	c.mouseReleased = false
	return c.cmds
}

// Tessellate converts draw commands into paintable meshes against this
// context's atlas.
func (c *Context) Tessellate(cmds []DrawCommand) []PaintMesh {
	return Tessellate(cmds, c.atlas)
}

// WidgetRect reports the rect a widget occupied during the current build
// pass.
func (c *Context) WidgetRect(id string) (Rect, bool) {
	r, ok := c.rects[id]
	return r, ok
}

func (c *Context) pushLayout(x, y float32, row bool) {
	c.layouts = append(c.layouts, layoutState{x: x, y: y, row: row})
}

func (c *Context) popLayout() {
	c.layouts = c.layouts[:len(c.layouts)-1]
}

func (c *Context) layout() *layoutState {
	return &c.layouts[len(c.layouts)-1]
}

// place claims a w×h box at the cursor and advances along the layout axis.
func (c *Context) place(w, h float32) Rect {
	l := c.layout()
	r := Rect{X: l.x, Y: l.y, W: w, H: h}
	if l.row {
		l.x += w + widgetSpacing
	} else {
		l.y += h + widgetSpacing
	}
	return r
}

func (c *Context) pushRect(r Rect, col [4]float32) {
	c.cmds = append(c.cmds, DrawCommand{Kind: CommandRect, Rect: r, Color: col})
}

func (c *Context) pushText(x, y float32, text string, col [4]float32) {
	c.cmds = append(c.cmds, DrawCommand{Kind: CommandText, Rect: Rect{X: x, Y: y}, Color: col, Text: text})
}
