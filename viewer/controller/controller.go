// Package controller maps window input onto camera and scene changes.
// Input arrives between frames; changes take effect on the next render.
package controller

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config holds input sensitivities
type Config struct {
	OrbitSensitivity float32 // Radians per pixel of drag
	ZoomStep         float32 // World units per scroll notch
	MoveSpeed        float32 // World units per second for WASD
}

// DefaultConfig returns sensitivities that suit the built-in scenes
func DefaultConfig() Config {
	return Config{
		OrbitSensitivity: 0.005,
		ZoomStep:         0.5,
		MoveSpeed:        4.0,
	}
}

// Controller accumulates input for one scene
type Controller struct {
	scene  *scene.Scene
	config Config

	dragging     bool
	lastX, lastY float64

	toggleRequested bool
	dirty           bool
}

// New creates a controller; the first frame is always dirty
func New(s *scene.Scene, config Config) *Controller {
	return &Controller{scene: s, config: config, dirty: true}
}

// BeginDrag starts an orbit drag at the cursor position
func (c *Controller) BeginDrag(x, y float64) {
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// EndDrag stops orbiting
func (c *Controller) EndDrag() {
	c.dragging = false
}

// Dragging reports whether an orbit drag is in progress
func (c *Controller) Dragging() bool {
	return c.dragging
}

// CursorMoved orbits the camera by the cursor delta while dragging
func (c *Controller) CursorMoved(x, y float64) {
	if !c.dragging {
		return
	}
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	// Screen y grows downward; dragging up raises the camera
	c.scene.Camera.Orbit(dx*c.config.OrbitSensitivity, -dy*c.config.OrbitSensitivity)
	c.dirty = true
}

// Scroll zooms toward the target for positive offsets
func (c *Controller) Scroll(yoff float64) {
	if yoff == 0 {
		return
	}
	c.scene.Camera.Zoom(float32(yoff) * c.config.ZoomStep)
	c.dirty = true
}

// Move translates the camera along world axes; right and up are in [-1, 1]
func (c *Controller) Move(right, up float32, dt time.Duration) {
	if right == 0 && up == 0 {
		return
	}
	step := c.config.MoveSpeed * float32(dt.Seconds())
	if right != 0 {
		c.scene.Camera.MoveRightGlobal(right * step)
	}
	if up != 0 {
		c.scene.Camera.MoveUpGlobal(up * step)
	}
	c.dirty = true
}

// RequestToggle queues a day/night switch for the next frame boundary
func (c *Controller) RequestToggle() {
	c.toggleRequested = true
}

// ResetCamera restores the scene's initial viewpoint
func (c *Controller) ResetCamera() {
	c.scene.ResetCamera()
	c.dirty = true
}

// BeginFrame applies queued scene changes and reports whether the frame
// needs to be re-rendered. Call it only while no render is in flight.
func (c *Controller) BeginFrame() bool {
	if c.toggleRequested {
		c.scene.ToggleDayNight()
		c.toggleRequested = false
		c.dirty = true
	}
	dirty := c.dirty
	c.dirty = false
	return dirty
}
