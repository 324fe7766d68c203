package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloudscape/core"
	"cloudscape/harness"
)

// DefaultPath is where LoadSettings looks when no path is given
const DefaultPath = "settings.json"

type Settings struct {
	Window   WindowSettings  `json:"window"`
	Shader   ShaderSettings  `json:"shader"`
	Server   ServerSettings  `json:"server"`
	Defaults DefaultSettings `json:"defaults"`
	LogLevel string          `json:"logLevel"`
}

type WindowSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	VSync  bool   `json:"vsync"`
}

type ShaderSettings struct {
	// FragmentPath is a file path or an http(s) URL
	FragmentPath   string `json:"fragmentPath"`
	FetchTimeoutMs int    `json:"fetchTimeoutMs"`
}

type ServerSettings struct {
	Enabled bool   `json:"enabled"`
	Listen  string `json:"listen"`
}

// DefaultSettings are the uniform values pushed at startup
type DefaultSettings struct {
	NoiseScale      float32 `json:"noiseScale"`
	FOV             float32 `json:"fov"`
	CloudSpeed      float32 `json:"cloudSpeed"`
	CloudType       int32   `json:"cloudType"`
	LightPreset     int32   `json:"lightPreset"`
	CameraAzimuth   float64 `json:"cameraAzimuth"`
	CameraElevation float64 `json:"cameraElevation"`
	CameraDistance  float64 `json:"cameraDistance"`
}

// Default returns the settings used when no file is present
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Cloudscape",
			VSync:  true,
		},
		Shader: ShaderSettings{
			FragmentPath:   "res/shader.frag",
			FetchTimeoutMs: 10000,
		},
		Server: ServerSettings{
			Enabled: true,
			Listen:  "127.0.0.1:8080",
		},
		Defaults: DefaultSettings{
			NoiseScale:      core.DefaultNoiseScale,
			FOV:             core.DefaultFOV,
			CloudSpeed:      core.DefaultCloudSpeed,
			CloudType:       core.DefaultCloudType,
			LightPreset:     core.DefaultLightPreset,
			CameraAzimuth:   core.DefaultCameraAzimuth,
			CameraElevation: core.DefaultCameraElevation,
			CameraDistance:  core.DefaultCameraDistance,
		},
		LogLevel: "info",
	}
}

// LoadSettings reads path on top of the defaults. A missing file is not
// an error; the defaults are returned as they are.
func LoadSettings(path string) (Settings, bool, error) {
	settings := Default()
	if path == "" {
		path = DefaultPath
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, false, nil
		}
		return settings, false, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return settings, false, fmt.Errorf("error parsing %s: %w", path, err)
	}

	return settings, true, nil
}

// Validate rejects settings the harness cannot start with
func (s Settings) Validate() error {
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", s.Window.Width, s.Window.Height)
	}
	if strings.TrimSpace(s.Shader.FragmentPath) == "" {
		return errors.New("shader.fragmentPath is empty")
	}
	if s.Shader.FetchTimeoutMs < 0 {
		return fmt.Errorf("invalid fetch timeout %dms", s.Shader.FetchTimeoutMs)
	}
	if s.Server.Enabled && s.Server.Listen == "" {
		return errors.New("server.listen is empty")
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// FetchTimeout returns the shader fetch timeout
func (s Settings) FetchTimeout() time.Duration {
	return time.Duration(s.Shader.FetchTimeoutMs) * time.Millisecond
}

// HarnessDefaults converts the default block for the harness
func (s Settings) HarnessDefaults() harness.Defaults {
	d := s.Defaults
	return harness.Defaults{
		NoiseScale:  d.NoiseScale,
		FOV:         d.FOV,
		CloudSpeed:  d.CloudSpeed,
		CloudType:   d.CloudType,
		LightPreset: d.LightPreset,
		Camera: core.Camera{
			Azimuth:   d.CameraAzimuth,
			Elevation: d.CameraElevation,
			Distance:  d.CameraDistance,
		},
	}
}

// ParseLevel maps a level name to a slog level
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}
