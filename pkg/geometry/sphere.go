package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere.
// Roots at or below tMin are skipped in favor of the far root.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32) (*HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return nil, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-b - sqrtD) / (2 * a)
	if root <= tMin {
		// Origin is inside the sphere or the sphere is partly behind it
		root = (-b + sqrtD) / (2 * a)
		if root <= tMin {
			return nil, false
		}
	}
	if root > tMax {
		return nil, false
	}

	point := ray.At(root)
	normal := point.Subtract(s.Center).Normalize()
	u, v := s.uv(normal)

	return &HitRecord{
		Point:    point,
		Normal:   normal,
		T:        root,
		U:        u,
		V:        v,
		Color:    s.Material.ColorAt(u, v),
		Material: s.Material,
		Shape:    s,
	}, true
}

// uv maps the outward normal to spherical texture coordinates
func (s *Sphere) uv(normal core.Vec3) (float32, float32) {
	u := 0.5 + math32.Atan2(normal.Z, normal.X)/(2*math32.Pi)
	v := 0.5 - math32.Asin(max(-1, min(1, normal.Y)))/math32.Pi
	return material.Fract(u), material.Fract(v)
}
