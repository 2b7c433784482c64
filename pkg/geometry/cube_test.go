package geometry

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCube_Hit(t *testing.T) {
	// Unit cube centered at origin: half-extent 0.5
	cube := NewCube(core.NewVec3(0, 0, 0), 1.0, testMaterial())

	tests := []struct {
		name           string
		ray            core.Ray
		shouldHit      bool
		expectedT      float32
		expectedNormal core.Vec3
	}{
		{
			name:           "Ray hits +X face",
			ray:            core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(-1, 0, 0)),
			shouldHit:      true,
			expectedT:      1.5,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "Ray hits -X face",
			ray:            core.NewRay(core.NewVec3(-3, 0.2, 0.1), core.NewVec3(1, 0, 0)),
			shouldHit:      true,
			expectedT:      2.5,
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
		{
			name:           "Ray hits +Y face",
			ray:            core.NewRay(core.NewVec3(0.1, 4, -0.2), core.NewVec3(0, -1, 0)),
			shouldHit:      true,
			expectedT:      3.5,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:           "Ray hits -Z face",
			ray:            core.NewRay(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      1.5,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "Ray inside cube hits exit face",
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      0.5,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:      "Ray misses cube",
			ray:       core.NewRay(core.NewVec3(0, 3, -3), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Cube behind ray",
			ray:       core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Parallel ray outside slab",
			ray:       core.NewRay(core.NewVec3(0, 0.7, -5), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := cube.Hit(tt.ray, 0, infinity)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if !near(hit.T, tt.expectedT) {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Shape != cube {
				t.Error("Hit record does not identify the cube")
			}
		})
	}
}

func TestCube_Hit_RespectsRange(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 1.0, testMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(-1, 0, 0))

	if _, isHit := cube.Hit(ray, 0, 1.0); isHit {
		t.Error("Expected miss when face lies beyond tMax")
	}
}

func TestCube_UV(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 2.0, testMaterial())

	// Hit the +Z face at local (0.5, -0.5): u = (x+1)/2, v = (y+1)/2
	ray := core.NewRay(core.NewVec3(0.5, -0.5, 5), core.NewVec3(0, 0, -1))
	hit, isHit := cube.Hit(ray, 0, infinity)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if !near(hit.U, 0.75) || !near(hit.V, 0.25) {
		t.Errorf("Expected UV (0.75,0.25), got (%f,%f)", hit.U, hit.V)
	}

	// +X face uses (z, y)
	ray = core.NewRay(core.NewVec3(5, 0.5, -0.5), core.NewVec3(-1, 0, 0))
	hit, isHit = cube.Hit(ray, 0, infinity)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if !near(hit.U, 0.25) || !near(hit.V, 0.75) {
		t.Errorf("Expected UV (0.25,0.75), got (%f,%f)", hit.U, hit.V)
	}
}

func TestFaceAt_PriorityOrder(t *testing.T) {
	minBound := core.NewVec3(-1, -1, -1)
	maxBound := core.NewVec3(1, 1, 1)

	// A corner lies on x-, y- and z-; x- wins
	if face := faceAt(core.NewVec3(-1, -1, -1), minBound, maxBound); face != faceNegX {
		t.Errorf("Expected x- face, got %d", face)
	}
	// An edge on y+ and z+; y+ wins
	if face := faceAt(core.NewVec3(0, 1, 1), minBound, maxBound); face != facePosY {
		t.Errorf("Expected y+ face, got %d", face)
	}
	// An interior point lies on no face
	if face := faceAt(core.NewVec3(0, 0, 0), minBound, maxBound); face != faceNone {
		t.Errorf("Expected no face, got %d", face)
	}
}
