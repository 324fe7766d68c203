package opengl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"cloudscape/core"
	"cloudscape/harness"
)

// WindowConfig describes the window the harness draws into
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	VSync  bool
}

// Window is the GLFW window owning the GL context
type Window struct {
	window *glfw.Window
	title  string
}

var _ harness.Surface = (*Window)(nil)

// Acquire creates the window and an OpenGL 4.1 core context and makes it
// current on the calling thread, which must be the main OS thread.
// Every failure wraps core.ErrContextUnavailable.
func Acquire(cfg WindowConfig, logger *slog.Logger) (*Device, *Window, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("%w: failed to initialize GLFW: %w", core.ErrContextUnavailable, err)
	}

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("%w: failed to create window: %w", core.ErrContextUnavailable, err)
	}
	window.MakeContextCurrent()
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, nil, fmt.Errorf("%w: failed to initialize OpenGL: %w", core.ErrContextUnavailable, err)
	}

	logger.Info("OpenGL context created",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	gl.ClearColor(0, 0, 0, 1)

	return &Device{logger: logger}, &Window{window: window, title: cfg.Title}, nil
}

func (w *Window) FramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// SetResizeCallback reports framebuffer size changes in pixels
func (w *Window) SetResizeCallback(f func(width, height int)) {
	w.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		f(width, height)
	})
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.window.SwapBuffers()
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

// Notify shows a message in the window title
func (w *Window) Notify(message string) {
	w.window.SetTitle(w.title + " - " + message)
}

// Terminate destroys the window and with it the GL context
func (w *Window) Terminate() {
	w.window.Destroy()
	glfw.Terminate()
}

// WaitClose blocks, processing window events only, until the window is
// closed or ctx is done. Used to keep a failure notice on screen.
func (w *Window) WaitClose(ctx context.Context) {
	for !w.window.ShouldClose() && ctx.Err() == nil {
		glfw.WaitEventsTimeout(0.25)
	}
}
