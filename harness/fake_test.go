package harness

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"cloudscape/core"
)

type uniformWrite struct {
	loc   Location
	value any
}

// recordingDevice stands in for the GL device and records every call
type recordingDevice struct {
	active map[string]Location

	compileLogs map[core.Stage]string
	linkLog     string

	volume      *core.Volume
	volumeUnit  int32
	compiled    []core.Stage
	linked      bool
	used        Program
	lookups     []string
	writes      []uniformWrite
	viewports   [][4]int32
	quadProgram Program
	blend       bool
	draws       int

	// drawViewports records the viewport in effect at each draw
	drawViewports [][4]int32
}

func newRecordingDevice() *recordingDevice {
	d := &recordingDevice{
		active:      make(map[string]Location),
		compileLogs: make(map[core.Stage]string),
	}
	for i, u := range core.Uniforms() {
		d.active[u.Name()] = Location(i + 1)
	}
	return d
}

func (d *recordingDevice) UploadVolume(v *core.Volume, unit int32) {
	d.volume = v
	d.volumeUnit = unit
}

func (d *recordingDevice) CompileShader(stage core.Stage, source string) (Shader, error) {
	d.compiled = append(d.compiled, stage)
	if log, ok := d.compileLogs[stage]; ok {
		return 0, errors.New(log)
	}
	return Shader(10 + int(stage)), nil
}

func (d *recordingDevice) LinkProgram(vertex, fragment Shader) (Program, error) {
	if d.linkLog != "" {
		return 0, errors.New(d.linkLog)
	}
	d.linked = true
	return 7, nil
}

func (d *recordingDevice) UseProgram(p Program) { d.used = p }

func (d *recordingDevice) UniformLocation(p Program, name string) Location {
	d.lookups = append(d.lookups, name)
	if loc, ok := d.active[name]; ok {
		return loc
	}
	return NoLocation
}

func (d *recordingDevice) Uniform1f(loc Location, v float32) {
	d.writes = append(d.writes, uniformWrite{loc, v})
}

func (d *recordingDevice) Uniform1i(loc Location, v int32) {
	d.writes = append(d.writes, uniformWrite{loc, v})
}

func (d *recordingDevice) Uniform3f(loc Location, v mgl32.Vec3) {
	d.writes = append(d.writes, uniformWrite{loc, v})
}

func (d *recordingDevice) SetupQuad(p Program) { d.quadProgram = p }
func (d *recordingDevice) EnableBlend()        { d.blend = true }

func (d *recordingDevice) Viewport(x, y, width, height int32) {
	d.viewports = append(d.viewports, [4]int32{x, y, width, height})
}

func (d *recordingDevice) DrawQuad() {
	d.draws++
	if n := len(d.viewports); n > 0 {
		d.drawViewports = append(d.drawViewports, d.viewports[n-1])
	}
}

// last returns the most recent value written to the named uniform
func (d *recordingDevice) last(name string) (any, bool) {
	loc := d.active[name]
	for i := len(d.writes) - 1; i >= 0; i-- {
		if d.writes[i].loc == loc {
			return d.writes[i].value, true
		}
	}
	return nil, false
}

// fakeSurface is a window whose size and close state the test controls
type fakeSurface struct {
	width, height int
	onResize      func(width, height int)

	// pending resize delivered on the next PollEvents
	pending    *[2]int
	polls      int
	swaps      int
	closeAfter int
}

func (s *fakeSurface) FramebufferSize() (int, int) { return s.width, s.height }

func (s *fakeSurface) SetResizeCallback(f func(width, height int)) { s.onResize = f }

func (s *fakeSurface) PollEvents() {
	s.polls++
	if s.pending != nil && s.onResize != nil {
		s.width, s.height = s.pending[0], s.pending[1]
		s.pending = nil
		s.onResize(s.width, s.height)
	}
}

func (s *fakeSurface) SwapBuffers() { s.swaps++ }

func (s *fakeSurface) ShouldClose() bool {
	return s.closeAfter > 0 && s.swaps >= s.closeAfter
}

func (s *fakeSurface) resize(width, height int) {
	s.pending = &[2]int{width, height}
}
