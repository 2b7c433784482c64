package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// faceEpsilon is the tolerance for deciding which face a hit point lies on
const faceEpsilon = 1e-5

// Cube represents an axis-aligned cube
type Cube struct {
	Center   core.Vec3
	Size     float32 // Full edge length
	Material *material.Material
}

// NewCube creates an axis-aligned cube with the given edge length
func NewCube(center core.Vec3, size float32, mat *material.Material) *Cube {
	return &Cube{
		Center:   center,
		Size:     size,
		Material: mat,
	}
}

// Bounds returns the minimum and maximum corners
func (c *Cube) Bounds() (core.Vec3, core.Vec3) {
	half := c.Size / 2
	extent := core.NewVec3(half, half, half)
	return c.Center.Subtract(extent), c.Center.Add(extent)
}

// Hit tests if a ray intersects with the cube using the slab method
func (c *Cube) Hit(ray core.Ray, tMin, tMax float32) (*HitRecord, bool) {
	minBound, maxBound := c.Bounds()

	tNear := math32.Inf(-1)
	tFar := math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Avoid division by zero for rays parallel to this slab
		invDir := math32.Inf(1)
		if direction != 0 {
			invDir = 1 / direction
		}

		t1 := (minBound.Axis(axis) - origin) * invDir
		t2 := (maxBound.Axis(axis) - origin) * invDir
		if t1 != t1 || t2 != t2 {
			// 0*Inf: origin lies exactly on a boundary of a slab it runs parallel to
			continue
		}
		tNear = max(tNear, min(t1, t2))
		tFar = min(tFar, max(t1, t2))
	}

	if tFar < 0 || tNear > tFar {
		return nil, false
	}

	// Origin inside the cube hits the exit face
	t := tNear
	if tNear < 0 {
		t = tFar
	}
	if t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	face := faceAt(point, minBound, maxBound)
	if face == faceNone {
		return nil, false
	}
	normal := faceNormals[face]
	u, v := c.uv(point, normal)

	return &HitRecord{
		Point:    point,
		Normal:   normal,
		T:        t,
		U:        u,
		V:        v,
		Color:    c.Material.ColorAt(u, v),
		Material: c.Material,
		Shape:    c,
	}, true
}

var faceNormals = [6]core.Vec3{
	faceNegX: core.NewVec3(-1, 0, 0),
	facePosX: core.NewVec3(1, 0, 0),
	faceNegY: core.NewVec3(0, -1, 0),
	facePosY: core.NewVec3(0, 1, 0),
	faceNegZ: core.NewVec3(0, 0, -1),
	facePosZ: core.NewVec3(0, 0, 1),
}

// faceAt finds the face plane the point lies on, testing x-, x+, y-, y+, z-, z+ in order
func faceAt(point, minBound, maxBound core.Vec3) int {
	for axis := 0; axis < 3; axis++ {
		if math32.Abs(point.Axis(axis)-minBound.Axis(axis)) < faceEpsilon {
			return 2 * axis
		}
		if math32.Abs(point.Axis(axis)-maxBound.Axis(axis)) < faceEpsilon {
			return 2*axis + 1
		}
	}
	return faceNone
}

// uv projects the hit point onto the face selected by the normal's dominant axis
func (c *Cube) uv(point, normal core.Vec3) (float32, float32) {
	half := c.Size / 2
	local := point.Subtract(c.Center)

	var u, v float32
	switch dominantAxis(normal) {
	case 0:
		u, v = local.Z+half, local.Y+half
	case 1:
		u, v = local.X+half, local.Z+half
	default:
		u, v = local.X+half, local.Y+half
	}
	return material.Fract(u / c.Size), material.Fract(v / c.Size)
}
