package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// It is assembled and mutated (day/night swaps, camera moves) only between frames.
type Scene struct {
	Name          string
	Camera        *geometry.Camera
	CameraConfig  geometry.CameraConfig
	Shapes        []geometry.Shape     // Objects in the scene, in insertion order
	ShadowCasters []geometry.Shape     // Objects that block light
	Lights        []*lights.PointLight // Lights in the scene
	Sky           *lights.Skybox

	suns []*Sun
}

// SunPhase describes a sun's look in one sky mode
type SunPhase struct {
	Material  *material.Material
	Intensity float32
}

// Sun is an emissive sphere with a point light at its center.
// The sphere does not cast shadows, otherwise it would block its own light.
type Sun struct {
	Sphere *geometry.Sphere
	Light  *lights.PointLight
	Day    SunPhase
	Night  SunPhase
}

// NewScene creates an empty day-time scene viewed through the given camera
func NewScene(name string, cameraConfig geometry.CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		Camera:       geometry.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Sky:          lights.NewSkybox(lights.Day),
	}
}

// AddShape appends a shape; castsShadow controls whether it occludes lights
func (s *Scene) AddShape(shape geometry.Shape, castsShadow bool) {
	s.Shapes = append(s.Shapes, shape)
	if castsShadow {
		s.ShadowCasters = append(s.ShadowCasters, shape)
	}
}

// AddSphere adds a shadow-casting sphere
func (s *Scene) AddSphere(center core.Vec3, radius float32, mat *material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.AddShape(sphere, true)
	return sphere
}

// AddCube adds a shadow-casting axis-aligned cube with the given edge length
func (s *Scene) AddCube(center core.Vec3, size float32, mat *material.Material) *geometry.Cube {
	cube := geometry.NewCube(center, size, mat)
	s.AddShape(cube, true)
	return cube
}

// AddPlane adds a shadow-casting plane; halfExtent 0 makes it infinite
func (s *Scene) AddPlane(point, normal core.Vec3, halfExtent float32, mat *material.Material) *geometry.Plane {
	plane := geometry.NewBoundedPlane(point, normal, halfExtent, mat)
	s.AddShape(plane, true)
	return plane
}

// AddLight adds a point light
func (s *Scene) AddLight(position core.Vec3, color core.Color, intensity float32) *lights.PointLight {
	light := lights.NewPointLight(position, color, intensity)
	s.Lights = append(s.Lights, light)
	return light
}

// AddSun adds an emissive sphere lit from its center that swaps look with the sky mode
func (s *Scene) AddSun(center core.Vec3, radius float32, day, night SunPhase) *Sun {
	phase := day
	if !s.Sky.IsDay() {
		phase = night
	}

	sphere := geometry.NewSphere(center, radius, phase.Material)
	s.AddShape(sphere, false)
	light := s.AddLight(center, phase.Material.Emissive, phase.Intensity)

	sun := &Sun{Sphere: sphere, Light: light, Day: day, Night: night}
	s.suns = append(s.suns, sun)
	return sun
}

// Suns returns the scene's suns
func (s *Scene) Suns() []*Sun {
	return s.suns
}

// SetNight switches sky palette, sun materials and sun intensities.
// Must not be called while a frame is rendering.
func (s *Scene) SetNight(night bool) {
	if night {
		s.Sky.SetMode(lights.Night)
	} else {
		s.Sky.SetMode(lights.Day)
	}

	for _, sun := range s.suns {
		phase := sun.Day
		if night {
			phase = sun.Night
		}
		sun.Sphere.Material = phase.Material
		sun.Light.Color = phase.Material.Emissive
		sun.Light.Intensity = phase.Intensity
	}
}

// ToggleDayNight flips between day and night
func (s *Scene) ToggleDayNight() {
	s.SetNight(s.IsDay())
}

// IsDay reports whether the scene is in day mode
func (s *Scene) IsDay() bool {
	return s.Sky.IsDay()
}

// ResetCamera restores the scene's initial viewpoint in place,
// so renderers holding the camera pointer see the reset
func (s *Scene) ResetCamera() {
	*s.Camera = *geometry.NewCamera(s.CameraConfig)
}

// GetShapes returns all shapes in insertion order
func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

// GetShadowCasters returns the shapes that occlude lights
func (s *Scene) GetShadowCasters() []geometry.Shape {
	return s.ShadowCasters
}

// GetLights returns all point lights
func (s *Scene) GetLights() []*lights.PointLight {
	return s.Lights
}

// GetEnvironment returns the skybox
func (s *Scene) GetEnvironment() lights.Environment {
	return s.Sky
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *geometry.Camera {
	return s.Camera
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
