package core

// Uniform is a semantic shader parameter the harness drives
type Uniform int

const (
	UniformTime Uniform = iota
	UniformResolution
	UniformNoise
	UniformCameraPos
	UniformCameraTarget
	UniformNoiseScale
	UniformFOV
	UniformCloudSpeed
	UniformCloudType
	UniformLightPreset

	UniformCount
)

// GLSL names of the uniforms, indexed by Uniform
var uniformNames = [UniformCount]string{
	UniformTime:         "iTime",
	UniformResolution:   "iResolution",
	UniformNoise:        "u_noise",
	UniformCameraPos:    "u_cameraPos",
	UniformCameraTarget: "u_cameraTarget",
	UniformNoiseScale:   "u_noiseScale",
	UniformFOV:          "u_fov",
	UniformCloudSpeed:   "u_cloudSpeed",
	UniformCloudType:    "u_cloudType",
	UniformLightPreset:  "u_lightPreset",
}

// Name returns the identifier declared in the fragment shader
func (u Uniform) Name() string {
	if u < 0 || u >= UniformCount {
		return ""
	}
	return uniformNames[u]
}

func (u Uniform) String() string {
	return u.Name()
}

// Uniforms lists every uniform in registry order
func Uniforms() []Uniform {
	all := make([]Uniform, 0, UniformCount)
	for u := Uniform(0); u < UniformCount; u++ {
		all = append(all, u)
	}
	return all
}

// Initial uniform values pushed right after the registry is resolved
const (
	DefaultNoiseScale  float32 = 0.15
	DefaultFOV         float32 = 1.5
	DefaultCloudSpeed  float32 = 1.0
	DefaultCloudType   int32   = 0
	DefaultLightPreset int32   = 0

	// NoiseTextureUnit is the texture unit the noise volume stays bound to
	NoiseTextureUnit int32 = 0
)
