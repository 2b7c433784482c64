package geometry

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const tolerance = 1e-4

var infinity = math32.Inf(1)

func testMaterial() *material.Material {
	return &material.Material{
		Color:           core.NewColor(200, 100, 50),
		Albedo:          [4]float32{1, 0, 0, 0},
		RefractiveIndex: 1,
	}
}

func near(a, b float32) bool {
	return math32.Abs(a-b) <= tolerance
}

func vecNear(a, b core.Vec3) bool {
	return a.Subtract(b).Length() <= tolerance
}
