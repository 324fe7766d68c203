package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Seed values for the orbit camera at startup
const (
	DefaultCameraAzimuth   = 45.0
	DefaultCameraElevation = 20.0
	DefaultCameraDistance  = 6.0
)

// CameraTarget is the fixed look-at point of the orbit camera
var CameraTarget = mgl32.Vec3{0, -0.5, 0}

// Camera holds the spherical orbit parameters driven by the controller.
// Angles are in degrees and are not clamped; trigonometry wraps them.
type Camera struct {
	Azimuth   float64 // degrees around the Y axis, 0 = +Z
	Elevation float64 // degrees above the XZ plane
	Distance  float64 // distance from the origin
}

// DefaultCamera returns the startup seed (45°, 20°, 6)
func DefaultCamera() Camera {
	return Camera{
		Azimuth:   DefaultCameraAzimuth,
		Elevation: DefaultCameraElevation,
		Distance:  DefaultCameraDistance,
	}
}

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// OrbitToCartesian converts spherical orbit coordinates to a Y-up Cartesian
// position. Elevation is measured from the horizontal plane.
func OrbitToCartesian(azimuthDeg, elevationDeg, distance float64) (x, y, z float64) {
	az := DegreesToRadians(azimuthDeg)
	el := DegreesToRadians(elevationDeg)
	cosEl := math.Cos(el)

	x = distance * cosEl * math.Sin(az)
	y = distance * math.Sin(el)
	z = distance * cosEl * math.Cos(az)
	return x, y, z
}

// Position returns the eye position for the current orbit parameters
func (c Camera) Position() mgl32.Vec3 {
	x, y, z := OrbitToCartesian(c.Azimuth, c.Elevation, c.Distance)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// Target returns the look-at point, which never changes
func (c Camera) Target() mgl32.Vec3 {
	return CameraTarget
}
