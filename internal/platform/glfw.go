package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Attach installs GLFW callbacks that translate raw window callbacks into
// queued events. Callbacks run inside glfw.PollEvents on the main thread.
// Sizes and cursor positions are normalized to framebuffer pixels; screen
// coordinates only equal them on displays where the two units match.
func Attach(window *glfw.Window, q *Queue) {
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		fx, fy := screenToFramebuffer(w, x, y)
		q.Push(EventCursorMoved{X: fx, Y: fy})
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		q.Push(EventMouseButton{Button: b, Pressed: action == glfw.Press})
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		q.Push(EventKey{Key: int(key), Pressed: action == glfw.Press})
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		q.Push(EventScroll{X: xoff, Y: yoff})
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		if width < 1 || height < 1 {
			return
		}
		q.Push(EventResized{Width: width, Height: height})
	})

	window.SetContentScaleCallback(func(w *glfw.Window, x, y float32) {
		q.Push(EventScaleChanged{Scale: x})
	})

	window.SetCloseCallback(func(w *glfw.Window) {
		q.Push(EventCloseRequested{})
	})
}

// screenToFramebuffer maps screen-coordinate cursor positions to
// framebuffer pixels. The two differ on displays where the framebuffer is
// denser than the screen coordinate space.
func screenToFramebuffer(w *glfw.Window, x, y float64) (float64, float64) {
	winW, winH := w.GetSize()
	fbW, fbH := w.GetFramebufferSize()
	if winW > 0 && fbW != winW {
		x *= float64(fbW) / float64(winW)
	}
	if winH > 0 && fbH != winH {
		y *= float64(fbH) / float64(winH)
	}
	return x, y
}

func translateButton(b glfw.MouseButton) (MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return MouseButtonMiddle, true
	default:
		return 0, false
	}
}
