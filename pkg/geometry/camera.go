package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera limits
const (
	MinRadius   = 0.001
	MaxRadius   = 150.0
	polarMargin = 0.1
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Position core.Vec3 // Eye position
	Target   core.Vec3 // Point the camera orbits and looks at
	Up       core.Vec3 // Up direction
	VFov     float32   // Vertical field of view in radians (0 = π/3)
}

// Camera is an orbiting pinhole camera.
// It is mutated by input handling between frames and only read while rendering.
type Camera struct {
	Position core.Vec3
	Target   core.Vec3
	Up       core.Vec3
	VFov     float32

	azimuth float32
	polar   float32
	radius  float32
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	if config.VFov <= 0 {
		config.VFov = math32.Pi / 3
	}
	if config.Up == (core.Vec3{}) {
		config.Up = core.NewVec3(0, 1, 0)
	}

	c := &Camera{
		Position: config.Position,
		Target:   config.Target,
		Up:       config.Up,
		VFov:     config.VFov,
	}
	c.syncSpherical()
	return c
}

// Basis returns the camera's forward, right and up unit vectors
func (c *Camera) Basis() (forward, right, up core.Vec3) {
	forward = c.Target.Subtract(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// RayDirection returns the unit direction through pixel (x, y) of a width×height image.
// jx and jy in [0,1) pick the sample position inside the pixel; 0.5 is the center.
func (c *Camera) RayDirection(x, y, width, height int, jx, jy float32) core.Vec3 {
	forward, right, up := c.Basis()

	aspect := float32(width) / float32(height)
	scale := math32.Tan(c.VFov / 2)

	u := (float32(x) + jx) / float32(width)
	v := (float32(y) + jy) / float32(height)

	i := (2*u - 1) * scale * aspect
	j := (1 - 2*v) * scale

	return right.Multiply(i).Add(up.Multiply(j)).Add(forward).Normalize()
}

// GetRay returns the primary ray through pixel (x, y)
func (c *Camera) GetRay(x, y, width, height int, jx, jy float32) core.Ray {
	return core.NewRay(c.Position, c.RayDirection(x, y, width, height, jx, jy))
}

// Orbit rotates the camera around its target by the given angle deltas
func (c *Camera) Orbit(deltaAzimuth, deltaPolar float32) {
	c.azimuth += deltaAzimuth
	limit := math32.Pi/2 - polarMargin
	c.polar = max(-limit, min(limit, c.polar+deltaPolar))
	c.updatePosition()
}

// SetOrbit places the camera at absolute spherical coordinates around the target
func (c *Camera) SetOrbit(azimuth, polar, radius float32) {
	c.azimuth = 0
	c.polar = 0
	c.radius = max(MinRadius, min(MaxRadius, radius))
	c.Orbit(azimuth, polar)
}

// Zoom moves the camera toward (positive) or away from (negative) the target
func (c *Camera) Zoom(amount float32) {
	c.radius = max(MinRadius, min(MaxRadius, c.radius-amount))
	c.updatePosition()
}

// MoveRightGlobal moves the camera along the world X axis
func (c *Camera) MoveRightGlobal(amount float32) {
	c.Position = c.Position.Add(core.NewVec3(amount, 0, 0))
	c.syncSpherical()
}

// MoveUpGlobal moves the camera along the world Y axis, never below the ground
func (c *Camera) MoveUpGlobal(amount float32) {
	c.Position = c.Position.Add(core.NewVec3(0, amount, 0))
	c.Position.Y = max(0, c.Position.Y)
	c.syncSpherical()
}

// Spherical returns the current azimuth, polar angle and radius
func (c *Camera) Spherical() (azimuth, polar, radius float32) {
	return c.azimuth, c.polar, c.radius
}

// updatePosition recomputes the position from spherical coordinates
func (c *Camera) updatePosition() {
	c.Position = core.NewVec3(
		c.Target.X+c.radius*math32.Cos(c.polar)*math32.Cos(c.azimuth),
		max(0, c.Target.Y+c.radius*math32.Sin(c.polar)),
		c.Target.Z+c.radius*math32.Cos(c.polar)*math32.Sin(c.azimuth),
	)
}

// syncSpherical recomputes spherical coordinates from the position
func (c *Camera) syncSpherical() {
	offset := c.Position.Subtract(c.Target)
	c.radius = offset.Length()
	c.azimuth = math32.Atan2(offset.Z, offset.X)
	if c.radius > 0 {
		c.polar = math32.Asin(max(-1, min(1, offset.Y/c.radius)))
	}
}
