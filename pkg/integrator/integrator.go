package integrator

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene is the read-only snapshot the integrator traces against.
// Implementations must not change while a frame is rendering.
type Scene interface {
	// GetShapes returns every primitive in a stable order
	GetShapes() []geometry.Shape
	// GetShadowCasters returns the primitives that can occlude a light
	GetShadowCasters() []geometry.Shape
	GetLights() []*lights.PointLight
	GetEnvironment() lights.Environment
}

// Config controls the shading engine
type Config struct {
	MaxDepth         int     // Deepest recursion level that still shades; deeper casts return black
	AmbientIntensity float32 // Fraction of the surface color always visible
	ShadowBias       float32 // Normal offset for shadow ray origins
	RayBias          float32 // Normal offset for reflection and refraction ray origins
}

// DefaultConfig returns the standard Whitted settings
func DefaultConfig() Config {
	return Config{
		MaxDepth:         5,
		AmbientIntensity: 0.1,
		ShadowBias:       1e-5,
		RayBias:          1e-3,
	}
}

// FindClosest returns the nearest hit among shapes within [tMin, tMax].
// Ties keep the shape that appears first.
func FindClosest(ray core.Ray, shapes []geometry.Shape, tMin, tMax float32) (*geometry.HitRecord, bool) {
	var closest *geometry.HitRecord
	closestT := math32.Inf(1)

	for _, shape := range shapes {
		hit, isHit := shape.Hit(ray, tMin, tMax)
		if isHit && hit.T < closestT {
			closest = hit
			closestT = hit.T
		}
	}

	return closest, closest != nil
}

// Occluded reports whether any shape blocks the ray before maxDistance
func Occluded(ray core.Ray, shapes []geometry.Shape, maxDistance float32) bool {
	for _, shape := range shapes {
		if hit, isHit := shape.Hit(ray, 0, maxDistance); isHit && hit.T < maxDistance {
			return true
		}
	}
	return false
}

// offsetOrigin nudges point off the surface along normal, onto the side direction points to
func offsetOrigin(point, normal, direction core.Vec3, bias float32) core.Vec3 {
	if direction.Dot(normal) < 0 {
		return point.Subtract(normal.Multiply(bias))
	}
	return point.Add(normal.Multiply(bias))
}
