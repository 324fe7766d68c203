package core

import (
	"errors"
	"fmt"
)

// ErrContextUnavailable means no GL-capable drawing surface could be created
var ErrContextUnavailable = errors.New("graphics context unavailable")

// Stage names a programmable pipeline stage
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ShaderCompileError carries the driver's info log for a failed stage
type ShaderCompileError struct {
	Stage Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("%s shader compile error: %s", e.Stage, e.Log)
}

// ProgramLinkError carries the driver's info log for a failed link
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return fmt.Sprintf("program link error: %s", e.Log)
}

// ResourceFetchError names a resource that could not be loaded
type ResourceFetchError struct {
	Resource string
	Err      error
}

func (e *ResourceFetchError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Resource, e.Err)
}

func (e *ResourceFetchError) Unwrap() error {
	return e.Err
}

// Notice returns the user-facing message shown for a fatal startup error
func Notice(err error) string {
	var compileErr *ShaderCompileError
	var linkErr *ProgramLinkError
	var fetchErr *ResourceFetchError

	switch {
	case errors.Is(err, ErrContextUnavailable):
		return "OpenGL 4.1 is not supported. Try updating your graphics drivers."
	case errors.As(err, &compileErr):
		return "Shader compilation error. See console."
	case errors.As(err, &linkErr):
		return "Program linking error"
	case errors.As(err, &fetchErr):
		return "Failed to load or compile shader. Check console."
	}
	return "Initialization error. Check console."
}
