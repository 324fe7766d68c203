package harness

import (
	"log/slog"

	"cloudscape/core"
)

// QuadVertexShader passes the full-screen quad straight through to clip space
const QuadVertexShader = `#version 410 core
in vec2 position;
void main() {
    gl_Position = vec4(position, 0.0, 1.0);
}
`

// BuildProgram compiles both stages and links them. On any failure the
// driver log is written to logger and no program is returned.
func BuildProgram(dev Device, vertexSource, fragmentSource string, logger *slog.Logger) (Program, error) {
	logger = orNop(logger)

	vs, err := compileStage(dev, core.StageVertex, vertexSource, logger)
	if err != nil {
		return 0, err
	}
	fs, err := compileStage(dev, core.StageFragment, fragmentSource, logger)
	if err != nil {
		return 0, err
	}

	program, err := dev.LinkProgram(vs, fs)
	if err != nil {
		linkErr := &core.ProgramLinkError{Log: err.Error()}
		logger.Error("program link error", "log", linkErr.Log)
		return 0, linkErr
	}

	logger.Debug("shader program linked", "program", program)
	return program, nil
}

func compileStage(dev Device, stage core.Stage, source string, logger *slog.Logger) (Shader, error) {
	shader, err := dev.CompileShader(stage, source)
	if err != nil {
		compileErr := &core.ShaderCompileError{Stage: stage, Log: err.Error()}
		logger.Error("shader compile error", "stage", stage.String(), "log", compileErr.Log)
		return 0, compileErr
	}
	return shader, nil
}
