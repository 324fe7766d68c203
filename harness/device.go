package harness

import (
	"github.com/go-gl/mathgl/mgl32"

	"cloudscape/core"
)

// Location is a resolved uniform location. Absent uniforms resolve to
// NoLocation and writes to them are dropped.
type Location int32

// NoLocation is what the driver reports for a uniform the program does not use
const NoLocation Location = -1

// Shader and Program are opaque driver handles
type (
	Shader  uint32
	Program uint32
)

// Device is the part of the graphics API the harness drives.
// All methods are called from the render thread only.
type Device interface {
	// UploadVolume creates the 3D noise texture and leaves it bound to unit
	UploadVolume(v *core.Volume, unit int32)

	// CompileShader returns the driver info log as the error on failure
	CompileShader(stage core.Stage, source string) (Shader, error)
	// LinkProgram returns the driver info log as the error on failure
	LinkProgram(vertex, fragment Shader) (Program, error)
	UseProgram(p Program)

	UniformLocation(p Program, name string) Location
	Uniform1f(loc Location, v float32)
	Uniform1i(loc Location, v int32)
	Uniform3f(loc Location, v mgl32.Vec3)

	// SetupQuad uploads the full-screen quad and binds it to the
	// program's position attribute
	SetupQuad(p Program)
	EnableBlend()
	Viewport(x, y, width, height int32)
	// DrawQuad draws the quad as a 4 vertex triangle strip
	DrawQuad()
}

// Surface is the window the harness draws into
type Surface interface {
	FramebufferSize() (width, height int)
	SetResizeCallback(func(width, height int))
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
}

// Notifier presents a fatal error message to the user
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }
