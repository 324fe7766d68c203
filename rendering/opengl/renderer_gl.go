package opengl

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"cloudscape/core"
	"cloudscape/harness"
	"cloudscape/rendering/opengl/shaders"
)

// quadVertices covers the viewport as a 4 vertex triangle strip
var quadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	1, 1,
}

// Device issues the harness's GPU commands through OpenGL 4.1 core.
// It must only be used on the thread that owns the context.
type Device struct {
	logger *slog.Logger

	noiseTexture uint32
	quadVAO      uint32
	quadVBO      uint32
}

var _ harness.Device = (*Device)(nil)

// UploadVolume creates the R8 3D noise texture with linear filtering and
// repeat wrapping, and leaves it bound to the given unit
func (d *Device) UploadVolume(v *core.Volume, unit int32) {
	gl.GenTextures(1, &d.noiseTexture)
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_3D, d.noiseTexture)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	size := int32(v.Size)
	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.R8, size, size, size, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(v.Data))

	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.REPEAT)
}

func (d *Device) CompileShader(stage core.Stage, source string) (harness.Shader, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == core.StageFragment {
		shaderType = gl.FRAGMENT_SHADER
	}
	shader, err := shaders.CompileShader(source, shaderType)
	return harness.Shader(shader), err
}

func (d *Device) LinkProgram(vertex, fragment harness.Shader) (harness.Program, error) {
	program, err := shaders.LinkProgram(uint32(vertex), uint32(fragment))
	return harness.Program(program), err
}

func (d *Device) UseProgram(p harness.Program) {
	gl.UseProgram(uint32(p))
}

func (d *Device) UniformLocation(p harness.Program, name string) harness.Location {
	return harness.Location(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *Device) Uniform1f(loc harness.Location, v float32) {
	gl.Uniform1f(int32(loc), v)
}

func (d *Device) Uniform1i(loc harness.Location, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (d *Device) Uniform3f(loc harness.Location, v mgl32.Vec3) {
	gl.Uniform3f(int32(loc), v[0], v[1], v[2])
}

// SetupQuad uploads the quad and binds it to the program's position attribute
func (d *Device) SetupQuad(p harness.Program) {
	gl.GenVertexArrays(1, &d.quadVAO)
	gl.BindVertexArray(d.quadVAO)

	gl.GenBuffers(1, &d.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	attrib := gl.GetAttribLocation(uint32(p), gl.Str("position\x00"))
	if attrib < 0 {
		d.logger.Warn("vertex shader has no position attribute")
		return
	}
	gl.EnableVertexAttribArray(uint32(attrib))
	gl.VertexAttribPointerWithOffset(uint32(attrib), 2, gl.FLOAT, false, 0, 0)
}

func (d *Device) EnableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

// DrawQuad clears the back buffer and draws the full-screen quad
func (d *Device) DrawQuad() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(d.quadVAO)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}
