package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// groundHalfExtent bounds the desert floor
const groundHalfExtent = 50

// NewTatooineScene creates a desert with a sandstone dome, two metal crates and two suns
func NewTatooineScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	cameraConfig := geometry.CameraConfig{
		Position: core.NewVec3(0, 1, 5),
		Target:   core.NewVec3(0.5, 0.5, 0.5),
		Up:       core.NewVec3(0, 1, 0),
	}
	if len(cameraOverrides) > 0 {
		cameraConfig = cameraOverrides[0]
	}

	s := NewScene("tatooine", cameraConfig)

	// Shapes go in as spheres, cubes, planes; equal-distance hits keep the earlier shape.

	// Binary suns: the first becomes a red giant at night
	s.AddSun(core.NewVec3(1, 7, -6), 1,
		SunPhase{Material: material.NewYellowSun(), Intensity: 2.0},
		SunPhase{Material: material.NewRedGiant(), Intensity: 1.0},
	)
	s.AddSun(core.NewVec3(6, 5, -7.5), 0.7,
		SunPhase{Material: material.NewYellowSun(), Intensity: 1.5},
		SunPhase{Material: material.NewYellowSun(), Intensity: 0.8},
	)

	// Sandstone base in a plus shape
	sandstone := material.NewSandstone()
	for _, center := range []core.Vec3{
		core.NewVec3(0, 0.5, 0),
		core.NewVec3(1, 0.5, 0),
		core.NewVec3(-1, 0.5, 0),
		core.NewVec3(0, 0.5, 1),
		core.NewVec3(0, 0.5, -1),
	} {
		s.AddCube(center, 1, sandstone)
	}

	// Clay dome layer
	clay := material.NewClay()
	for _, center := range []core.Vec3{
		core.NewVec3(0.5, 1, 0),
		core.NewVec3(-0.5, 1, 0),
		core.NewVec3(0, 1, 0.5),
		core.NewVec3(0, 1, -0.5),
	} {
		s.AddCube(center, 1, clay)
	}

	// Crates
	s.AddCube(core.NewVec3(2.5, 0.25, 0), 0.5, material.NewMetal())
	s.AddCube(core.NewVec3(-2.5, 0.25, 0), 0.5, material.NewRustedMetal())

	// Desert floor
	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), groundHalfExtent, material.NewSand())

	return s
}
