package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// parallelEpsilon below which a ray is treated as parallel to the plane
const parallelEpsilon = 1e-6

// Plane represents a plane defined by a point and normal, optionally bounded
type Plane struct {
	Point      core.Vec3 // A point on the plane
	Normal     core.Vec3 // Unit normal
	Material   *material.Material
	HalfExtent float32 // Half side of the square bound on the tangent axes; 0 means infinite
	UVScale    float32 // Texture repeats per world unit

	tangent   core.Vec3
	bitangent core.Vec3
}

// NewPlane creates a new infinite plane
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	n := normal.Normalize()
	tangent, bitangent := core.OrthonormalBasis(n)
	return &Plane{
		Point:     point,
		Normal:    n,
		Material:  mat,
		UVScale:   1,
		tangent:   tangent,
		bitangent: bitangent,
	}
}

// NewBoundedPlane creates a square plane of side 2*halfExtent centered on point
func NewBoundedPlane(point, normal core.Vec3, halfExtent float32, mat *material.Material) *Plane {
	p := NewPlane(point, normal, mat)
	p.HalfExtent = halfExtent
	return p
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float32) (*HitRecord, bool) {
	denominator := p.Normal.Dot(ray.Direction)

	// Ray parallel to the plane never hits it
	if math32.Abs(denominator) <= parallelEpsilon {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)

	// Project onto the plane's local axes
	local := point.Subtract(p.Point)
	s := local.Dot(p.tangent)
	r := local.Dot(p.bitangent)
	if p.HalfExtent > 0 && (math32.Abs(s) > p.HalfExtent || math32.Abs(r) > p.HalfExtent) {
		return nil, false
	}

	scale := p.UVScale
	if scale == 0 {
		scale = 1
	}
	u := material.Fract(s * scale)
	v := material.Fract(r * scale)

	normal := p.Normal
	if p.Material.NormalMap != nil {
		normal = normal.Add(p.Material.NormalMap.GetNormal(u, v)).Normalize()
	}

	return &HitRecord{
		Point:    point,
		Normal:   normal,
		T:        t,
		U:        u,
		V:        v,
		Color:    p.Material.ColorAt(u, v),
		Material: p.Material,
		Shape:    p,
	}, true
}
