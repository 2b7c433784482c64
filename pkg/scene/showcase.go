package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShowcaseScene creates a scene exercising every material feature:
// glass refraction, mirror reflection, specular highlights and a textured floor
func NewShowcaseScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Position: core.NewVec3(0, 2, 6),
		Target:   core.NewVec3(0, 0.75, 0),
		Up:       core.NewVec3(0, 1, 0),
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = cameraOverrides[0]
	}

	s := NewScene("showcase", cameraConfig)

	s.AddSun(core.NewVec3(-4, 8, -6), 1,
		SunPhase{Material: material.NewYellowSun(), Intensity: 1.8},
		SunPhase{Material: material.NewRedGiant(), Intensity: 0.9},
	)
	s.AddSphere(core.NewVec3(-1.5, 1, 0), 1, material.NewGlass())
	s.AddSphere(core.NewVec3(1.5, 1, 0), 1, material.NewMirror())
	s.AddSphere(core.NewVec3(0, 0.5, 1.8), 0.5, material.NewMetal())

	s.AddCube(core.NewVec3(0, 0.75, -2.5), 1.5, material.NewWood())
	s.AddCube(core.NewVec3(-3.5, 0.5, -1.5), 1, material.NewClay())
	s.AddCube(core.NewVec3(3.5, 0.5, -1.5), 1, material.NewSandstone())

	s.AddLight(core.NewVec3(4, 6, 6), core.White, 0.6)

	// Checkered floor, one texture repeat every two units
	checker := material.NewCheckerTexture(64, 32, core.NewColor(230, 230, 230), core.NewColor(40, 40, 40))
	floor := s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 20, material.NewConcrete().WithTexture(checker))
	floor.UVScale = 0.5

	return s
}
