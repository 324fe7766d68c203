package shaders

import (
	"errors"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileShader compiles a single shader. The error text is the
// driver's info log.
func CompileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLength, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, errors.New(log)
	}

	return shader, nil
}

// LinkProgram links vertex and fragment shaders into a program.
// The shaders are released once linking has been attempted.
func LinkProgram(vertShader, fragShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertShader)
	gl.DetachShader(program, fragShader)
	gl.DeleteShader(vertShader)
	gl.DeleteShader(fragShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := infoLog(logLength, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLength, nil, buf)
		})
		gl.DeleteProgram(program)
		return 0, errors.New(log)
	}

	return program, nil
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 1 {
		return "no info log"
	}
	log := make([]byte, length)
	read(&log[0])
	return strings.TrimRight(string(log), "\x00\n ")
}
