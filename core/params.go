package core

import "sort"

// ParamKind enumerates the parameters the controller can change.
// Anything the harness does not know maps to ParamUnknown.
type ParamKind int

const (
	ParamUnknown ParamKind = iota
	ParamNoiseScale
	ParamFOV
	ParamCloudSpeed
	ParamCloudType
	ParamLightPreset
	ParamCameraAzimuth
	ParamCameraElevation
	ParamCameraDistance
)

var paramNames = map[string]ParamKind{
	"noiseScale":      ParamNoiseScale,
	"fov":             ParamFOV,
	"cloudSpeed":      ParamCloudSpeed,
	"cloudType":       ParamCloudType,
	"lightPreset":     ParamLightPreset,
	"cameraAzimuth":   ParamCameraAzimuth,
	"cameraElevation": ParamCameraElevation,
	"cameraDistance":  ParamCameraDistance,
}

// ParamKindFromName looks up the controller name of a parameter
func ParamKindFromName(name string) ParamKind {
	if kind, ok := paramNames[name]; ok {
		return kind
	}
	return ParamUnknown
}

func (k ParamKind) String() string {
	for name, kind := range paramNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// IsCamera reports whether the parameter moves the orbit camera
func (k ParamKind) IsCamera() bool {
	return k == ParamCameraAzimuth || k == ParamCameraElevation || k == ParamCameraDistance
}

// Uniform returns the uniform written directly by this parameter.
// Camera parameters and unknown names have none.
func (k ParamKind) Uniform() (Uniform, bool) {
	switch k {
	case ParamNoiseScale:
		return UniformNoiseScale, true
	case ParamFOV:
		return UniformFOV, true
	case ParamCloudSpeed:
		return UniformCloudSpeed, true
	case ParamCloudType:
		return UniformCloudType, true
	case ParamLightPreset:
		return UniformLightPreset, true
	}
	return 0, false
}

// Param is one named change sent by the controller
type Param struct {
	Name  string // name as received, kept for logging
	Kind  ParamKind
	Value float64
}

// ParseParam classifies a raw (name, value) pair. It never fails:
// unrecognized names yield a ParamUnknown that callers ignore.
func ParseParam(name string, value float64) Param {
	return Param{Name: name, Kind: ParamKindFromName(name), Value: value}
}

// Apply folds a camera parameter into the orbit state.
// It reports false for parameters that do not move the camera.
func (c *Camera) Apply(p Param) bool {
	switch p.Kind {
	case ParamCameraAzimuth:
		c.Azimuth = p.Value
	case ParamCameraElevation:
		c.Elevation = p.Value
	case ParamCameraDistance:
		c.Distance = p.Value
	default:
		return false
	}
	return true
}

// ParamNames lists every recognized controller name, sorted
func ParamNames() []string {
	names := make([]string, 0, len(paramNames))
	for name := range paramNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
