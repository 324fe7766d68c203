package harness

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"cloudscape/core"
)

// Registry maps every semantic uniform to its location in one program.
// It is filled once and read-only afterwards.
type Registry struct {
	locations [core.UniformCount]Location
}

// ResolveUniforms looks up every uniform the harness drives.
// Missing uniforms are logged at debug level and left as NoLocation.
func ResolveUniforms(dev Device, p Program, logger *slog.Logger) *Registry {
	logger = orNop(logger)

	r := &Registry{}
	for _, u := range core.Uniforms() {
		loc := dev.UniformLocation(p, u.Name())
		if loc < 0 {
			loc = NoLocation
			logger.Debug("uniform not used by shader", "uniform", u.Name())
		}
		r.locations[u] = loc
	}
	return r
}

// Location returns the resolved location of u
func (r *Registry) Location(u core.Uniform) Location {
	if r == nil || u < 0 || u >= core.UniformCount {
		return NoLocation
	}
	return r.locations[u]
}

// uniformWriter skips writes to uniforms the program does not use
type uniformWriter struct {
	dev Device
	reg *Registry
}

func (w uniformWriter) float(u core.Uniform, v float32) {
	if loc := w.reg.Location(u); loc != NoLocation {
		w.dev.Uniform1f(loc, v)
	}
}

func (w uniformWriter) int(u core.Uniform, v int32) {
	if loc := w.reg.Location(u); loc != NoLocation {
		w.dev.Uniform1i(loc, v)
	}
}

func (w uniformWriter) vec3(u core.Uniform, v mgl32.Vec3) {
	if loc := w.reg.Location(u); loc != NoLocation {
		w.dev.Uniform3f(loc, v)
	}
}
