// Package window owns the GLFW window and its OpenGL context.
//
// GLFW must be driven from the main OS thread. Programs using this package
// lock the main goroutine in init:
//
//	func init() {
//		runtime.LockOSThread()
//	}
package window

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/glrender"
)

// ErrClosed is returned when using a window after Close.
var ErrClosed = errors.New("window: closed")

// Window is a GLFW window with a current OpenGL context.
type Window struct {
	win  *glfw.Window
	opts options

	onResize func(width, height int)
}

// Open initializes GLFW, creates the window, makes its context current on
// the calling thread and applies the swap interval. Any failure leaves GLFW
// terminated.
func Open(opts ...Option) (*Window, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: init glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, o.major)
	glfw.WindowHint(glfw.ContextVersionMinor, o.minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolHint(o.resizable))

	win, err := glfw.CreateWindow(o.width, o.height, o.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(o.swapInterval())

	w := &Window{win: win, opts: o}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	if o.closeOnEsc {
		win.SetKeyCallback(func(gw *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
			if key == glfw.KeyEscape && action == glfw.Press {
				gw.SetShouldClose(true)
			}
		})
	}

	w.log().Info("window opened",
		"width", o.width, "height", o.height,
		"gl", fmt.Sprintf("%d.%d core", o.major, o.minor),
		"vsync", o.vsync)
	return w, nil
}

// ShouldClose reports whether the user asked to close the window.
// A closed window always reports true.
func (w *Window) ShouldClose() bool {
	if w.win == nil {
		return true
	}
	return w.win.ShouldClose()
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() error {
	if w.win == nil {
		return ErrClosed
	}
	w.win.SwapBuffers()
	return nil
}

// PollEvents processes pending input and window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// FramebufferSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) FramebufferSize() (width, height int) {
	if w.win == nil {
		return 0, 0
	}
	return w.win.GetFramebufferSize()
}

// OnResize registers fn to run when the framebuffer is resized.
func (w *Window) OnResize(fn func(width, height int)) {
	w.onResize = fn
}

// Title returns the window title.
func (w *Window) Title() string { return w.opts.title }

// Close destroys the window and terminates GLFW. GL objects must be
// released before Close. Calling Close again is a no-op.
func (w *Window) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
	w.log().Info("window closed")
}

func (w *Window) log() *slog.Logger {
	if w.opts.logger != nil {
		return w.opts.logger
	}
	return glrender.Logger()
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
