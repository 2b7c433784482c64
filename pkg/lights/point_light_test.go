package lights

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewPointLight_ClampsIntensity(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 5, 0), core.White, -2)
	if light.Intensity != 0 {
		t.Errorf("Expected negative intensity clamped to 0, got %f", light.Intensity)
	}
}

func TestPointLight_DirectionFrom(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 5, 0), core.White, 1)

	direction, distance := light.DirectionFrom(core.NewVec3(0, 1, 0))
	if math32.Abs(distance-4) > 1e-5 {
		t.Errorf("Expected distance 4, got %f", distance)
	}
	if direction != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected direction (0,1,0), got %v", direction)
	}
}
