package harness

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cloudscape/core"
)

// Defaults are the uniform values pushed once the program is ready
type Defaults struct {
	NoiseScale  float32
	FOV         float32
	CloudSpeed  float32
	CloudType   int32
	LightPreset int32
	Camera      core.Camera
}

// DefaultValues returns the stock startup values
func DefaultValues() Defaults {
	return Defaults{
		NoiseScale:  core.DefaultNoiseScale,
		FOV:         core.DefaultFOV,
		CloudSpeed:  core.DefaultCloudSpeed,
		CloudType:   core.DefaultCloudType,
		LightPreset: core.DefaultLightPreset,
		Camera:      core.DefaultCamera(),
	}
}

// ViewportSize mirrors the framebuffer size in pixels
type ViewportSize struct {
	Width  int
	Height int
}

// Harness owns every GPU object and all mutable render state.
// OnParameter, OnResize and OnFrame must be called from the render thread.
type Harness struct {
	dev      Device
	program  Program
	uniforms *Registry
	writer   uniformWriter

	camera   core.Camera
	viewport ViewportSize
	start    time.Time

	state  atomic.Int32
	logger *slog.Logger
}

// init wires the harness around an already linked program.
// It resolves the uniform registry and pushes the initial values.
func (h *Harness) init(dev Device, program Program, defaults Defaults) {
	h.dev = dev
	h.program = program

	dev.UseProgram(program)
	h.uniforms = ResolveUniforms(dev, program, h.logger)
	h.writer = uniformWriter{dev: dev, reg: h.uniforms}

	h.writer.int(core.UniformNoise, core.NoiseTextureUnit)
	dev.SetupQuad(program)
	dev.EnableBlend()

	h.writer.float(core.UniformNoiseScale, defaults.NoiseScale)
	h.writer.float(core.UniformFOV, defaults.FOV)
	h.writer.float(core.UniformCloudSpeed, defaults.CloudSpeed)
	h.writer.int(core.UniformCloudType, defaults.CloudType)
	h.writer.int(core.UniformLightPreset, defaults.LightPreset)

	h.camera = defaults.Camera
	h.updateCamera()
}

// State returns the lifecycle state. Safe from any goroutine.
func (h *Harness) State() core.State {
	if h == nil {
		return core.StateUninitialized
	}
	return core.State(h.state.Load())
}

func (h *Harness) setState(s core.State) {
	cur := h.State()
	if !cur.CanTransition(s) {
		h.logger.Warn("ignoring state transition", "from", cur.String(), "to", s.String())
		return
	}
	h.state.Store(int32(s))
	h.logger.Debug("state", "from", cur.String(), "to", s.String())
}

// Camera returns the current orbit parameters
func (h *Harness) Camera() core.Camera {
	return h.camera
}

// Viewport returns the last synchronized framebuffer size
func (h *Harness) Viewport() ViewportSize {
	return h.viewport
}

// Uniforms returns the resolved registry
func (h *Harness) Uniforms() *Registry {
	return h.uniforms
}

// updateCamera recomputes the eye position and writes both camera uniforms
func (h *Harness) updateCamera() {
	if h.camera.Distance <= 0 {
		h.logger.Warn("camera distance is not positive", "distance", h.camera.Distance)
	}
	h.writer.vec3(core.UniformCameraPos, h.camera.Position())
	h.writer.vec3(core.UniformCameraTarget, h.camera.Target())
}

// OnParameter applies one controller change. Unknown names are ignored.
// Values are passed through without clamping.
func (h *Harness) OnParameter(p core.Param) {
	h.logger.Info("property changed", "name", p.Name, "value", p.Value)

	if p.Kind.IsCamera() {
		h.camera.Apply(p)
		h.updateCamera()
		return
	}

	u, ok := p.Kind.Uniform()
	if !ok {
		return
	}
	switch p.Kind {
	case core.ParamCloudType, core.ParamLightPreset:
		h.writer.int(u, int32(p.Value))
	default:
		h.writer.float(u, float32(p.Value))
	}
}

// SetParameter is OnParameter for a raw (name, value) pair
func (h *Harness) SetParameter(name string, value float64) {
	h.OnParameter(core.ParseParam(name, value))
}

// OnResize mirrors a new framebuffer size into the viewport
func (h *Harness) OnResize(width, height int) {
	h.viewport = ViewportSize{Width: width, Height: height}
	h.dev.Viewport(0, 0, int32(width), int32(height))
	h.logger.Debug("viewport resized", "width", width, "height", height)
}

// AttachViewport syncs the viewport to the surface now and on every resize
func (h *Harness) AttachViewport(s Surface) {
	h.OnResize(s.FramebufferSize())
	s.SetResizeCallback(h.OnResize)
}

// StartClock records the time the frame clock counts from
func (h *Harness) StartClock(now time.Time) {
	h.start = now
}

// Elapsed returns seconds since StartClock
func (h *Harness) Elapsed(now time.Time) float64 {
	return now.Sub(h.start).Seconds()
}

// OnFrame writes time and resolution and draws the full-screen quad
func (h *Harness) OnFrame(now time.Time) {
	h.writer.float(core.UniformTime, float32(h.Elapsed(now)))
	h.writer.vec3(core.UniformResolution, mgl32.Vec3{float32(h.viewport.Width), float32(h.viewport.Height), 1.0})
	h.dev.DrawQuad()
}
