package ui

// Layout metrics, logical points.
const (
	barHeight     = 30
	titleHeight   = 20
	buttonHeight  = 22
	buttonPadX    = 10
	panelWidth    = 230
	panelPad      = 8
	widgetSpacing = 6
	sliderWidth   = 180
	sliderHeight  = 14
	swatchHeight  = 18
)

var (
	colBar        = [4]float32{0.12, 0.12, 0.13, 1}
	colPanel      = [4]float32{0.16, 0.16, 0.18, 0.96}
	colTitle      = [4]float32{0.10, 0.10, 0.11, 1}
	colButton     = [4]float32{0.27, 0.27, 0.30, 1}
	colButtonHot  = [4]float32{0.36, 0.36, 0.40, 1}
	colTrack      = [4]float32{0.30, 0.30, 0.30, 1}
	colText       = [4]float32{0.92, 0.92, 0.92, 1}
	colSliderFill = [4]float32{0.55, 0.55, 0.60, 1}
)

// TopBar lays out a full-width bar at the top of the surface and runs body
// with a horizontal cursor inside it.
func (c *Context) TopBar(id string, body func()) {
	r := Rect{X: 0, Y: 0, W: c.width, H: barHeight}
	c.pushRect(r, colBar)
	c.rects[id] = r

	c.pushLayout(widgetSpacing, (barHeight-buttonHeight)/2, true)
	body()
	c.popLayout()
}

// Window lays out an anchored floating panel at (x, y) and runs body with
// a vertical cursor inside it. The panel background is patched to the
// final content height once body returns.
func (c *Context) Window(id, title string, x, y float32, body func()) {
	bgIdx := len(c.cmds)
	c.pushRect(Rect{X: x, Y: y, W: panelWidth}, colPanel)
	c.pushRect(Rect{X: x, Y: y, W: panelWidth, H: titleHeight}, colTitle)
	tw, th := c.atlas.MeasureText(title)
	c.pushText(x+(panelWidth-tw)/2, y+(titleHeight-th)/2, title, colText)

	c.pushLayout(x+panelPad, y+titleHeight+panelPad, false)
	body()
	bottom := c.layout().y
	c.popLayout()

	h := bottom - y + panelPad - widgetSpacing
	c.cmds[bgIdx].Rect.H = h
	c.rects[id] = Rect{X: x, Y: y, W: panelWidth, H: h}
}

// Button draws a labeled button and reports whether it was clicked this
// frame.
func (c *Context) Button(id, label string) bool {
	tw, th := c.atlas.MeasureText(label)
	r := c.place(tw+2*buttonPadX, buttonHeight)
	c.rects[id] = r

	hovered := r.Contains(c.mouseX, c.mouseY)
	clicked := hovered && c.mousePressed

	bg := colButton
	if hovered {
		bg = colButtonHot
	}
	c.pushRect(r, bg)
	c.pushText(r.X+(r.W-tw)/2, r.Y+(r.H-th)/2, label, colText)
	return clicked
}

// Label draws one line of text at the cursor.
func (c *Context) Label(text string) {
	_, th := c.atlas.MeasureText(text)
	r := c.place(0, th)
	c.pushText(r.X, r.Y, text, colText)
}

var channelNames = [4]string{"R", "G", "B", "A"}

// ColorEdit draws four channel sliders plus a swatch bound to an
// unmultiplied RGBA value. It reports whether any channel changed this
// frame; dragging is captured per channel so a fast pointer cannot hop
// sliders mid-drag.
func (c *Context) ColorEdit(id string, rgba *[4]float32) bool {
	changed := false
	for i := range rgba {
		sid := id + "." + channelNames[i]
		r := c.place(sliderWidth, sliderHeight)
		c.rects[sid] = r

		if c.mousePressed && r.Contains(c.mouseX, c.mouseY) {
			c.active = sid
		}
		if c.active == sid && c.mouseDown {
			v := (c.mouseX - r.X) / r.W
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			if v != rgba[i] {
				rgba[i] = v
				changed = true
			}
		}

		c.pushRect(r, colTrack)
		c.pushRect(Rect{X: r.X, Y: r.Y, W: r.W * rgba[i], H: r.H}, colSliderFill)
		c.pushText(r.X+r.W+widgetSpacing, r.Y, channelNames[i], colText)
	}

	swatch := c.place(sliderWidth, swatchHeight)
	c.rects[id] = swatch
	c.pushRect(swatch, *rgba)
	return changed
}
