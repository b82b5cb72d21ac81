// Package platform connects the gizmo to a GLFW window: window creation,
// per-frame input polling and frame timing.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	defaultTitle  = "Gizmo"
)

// Window is a GLFW window without a client API, ready for a WebGPU surface.
type Window struct {
	Glfw  *glfw.Window
	Title string
}

// NewWindow initializes GLFW and opens a resizable window. Zero sizes and
// an empty title fall back to defaults. The calling goroutine stays locked
// to its OS thread, as GLFW requires.
func NewWindow(width, height int, title string) (*Window, error) {
	width, height, title = windowDefaults(width, height, title)

	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	return &Window{Glfw: win, Title: title}, nil
}

func windowDefaults(width, height int, title string) (int, int, string) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if title == "" {
		title = defaultTitle
	}
	return width, height, title
}

func (w *Window) ShouldClose() bool { return w.Glfw.ShouldClose() }

// Close requests the main loop to stop.
func (w *Window) Close() { w.Glfw.SetShouldClose(true) }

// Size returns the window size in screen coordinates.
func (w *Window) Size() (int, int) { return w.Glfw.GetSize() }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (int, int) { return w.Glfw.GetFramebufferSize() }

func (w *Window) Destroy() {
	w.Glfw.Destroy()
	glfw.Terminate()
}
