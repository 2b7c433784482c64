package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point    core.Vec3          // Point of intersection
	Normal   core.Vec3          // Outward unit surface normal
	T        float32            // Parameter t along the ray
	U, V     float32            // Texture coordinates in [0,1)
	Color    core.Color         // Diffuse color after texture lookup
	Material *material.Material // Material of the surface that was hit
	Shape    Shape              // The primitive that was hit
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float32) (*HitRecord, bool)
}

// Faces of an axis-aligned box, in normal test priority order
const (
	faceNegX = iota
	facePosX
	faceNegY
	facePosY
	faceNegZ
	facePosZ
	faceNone
)

// dominantAxis returns the axis (0=X, 1=Y, 2=Z) a face normal points along
func dominantAxis(normal core.Vec3) int {
	switch {
	case normal.X > 0.99 || normal.X < -0.99:
		return 0
	case normal.Y > 0.99 || normal.Y < -0.99:
		return 1
	default:
		return 2
	}
}
