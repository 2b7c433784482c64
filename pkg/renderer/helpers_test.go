package renderer

import (
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// MockCaster returns a fixed color and counts calls
type MockCaster struct {
	returnColor core.Color
	callCount   atomic.Int64
}

func (m *MockCaster) Cast(ray core.Ray, scene integrator.Scene, depth int) core.Color {
	m.callCount.Add(1)
	return m.returnColor
}

// sequenceCaster returns colors from a list in order; single goroutine only
type sequenceCaster struct {
	colors []core.Color
	next   int
}

func (s *sequenceCaster) Cast(ray core.Ray, scene integrator.Scene, depth int) core.Color {
	c := s.colors[s.next%len(s.colors)]
	s.next++
	return c
}

// MockScene for renderer testing
type MockScene struct {
	shapes []geometry.Shape
	lights []*lights.PointLight
	sky    lights.Environment
}

func (m *MockScene) GetShapes() []geometry.Shape         { return m.shapes }
func (m *MockScene) GetShadowCasters() []geometry.Shape  { return m.shapes }
func (m *MockScene) GetLights() []*lights.PointLight     { return m.lights }
func (m *MockScene) GetEnvironment() lights.Environment { return m.sky }

func createMockScene() *MockScene {
	return &MockScene{sky: lights.NewSkybox(lights.Day)}
}

func createTestCamera() *geometry.Camera {
	return geometry.NewCamera(geometry.CameraConfig{
		Position: core.NewVec3(0, 1, 5),
		Target:   core.NewVec3(0, 0, 0),
	})
}

// skyCaster colors rays by direction so pixel placement is observable
type skyCaster struct{}

func (skyCaster) Cast(ray core.Ray, scene integrator.Scene, depth int) core.Color {
	return scene.GetEnvironment().Color(ray.Direction)
}
