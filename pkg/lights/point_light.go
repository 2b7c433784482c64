package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight represents an infinitesimal light source at a position
type PointLight struct {
	Position  core.Vec3  // Position of the light
	Color     core.Color // Light color
	Intensity float32    // Scalar intensity (>= 0)
}

// NewPointLight creates a new point light, clamping negative intensities to zero
func NewPointLight(position core.Vec3, color core.Color, intensity float32) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     color,
		Intensity: max(0, intensity),
	}
}

// DirectionFrom returns the unit direction from point toward the light and the distance to it
func (pl *PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float32) {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	return toLight.Normalize(), distance
}
