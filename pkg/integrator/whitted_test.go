package integrator

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// testScene is a minimal Scene where every shape casts shadows unless overridden
type testScene struct {
	shapes  []geometry.Shape
	casters []geometry.Shape
	lights  []*lights.PointLight
	sky     lights.Environment
}

func newTestScene(shapes ...geometry.Shape) *testScene {
	return &testScene{
		shapes:  shapes,
		casters: shapes,
		sky:     lights.NewSkybox(lights.Day),
	}
}

func (s *testScene) GetShapes() []geometry.Shape         { return s.shapes }
func (s *testScene) GetShadowCasters() []geometry.Shape  { return s.casters }
func (s *testScene) GetLights() []*lights.PointLight     { return s.lights }
func (s *testScene) GetEnvironment() lights.Environment { return s.sky }

func diffuseMaterial(c core.Color) *material.Material {
	return &material.Material{
		Color:           c,
		Albedo:          [4]float32{1, 0, 0, 0},
		RefractiveIndex: 1,
	}
}

var grey = core.NewColor(100, 100, 100)

func TestFindClosest(t *testing.T) {
	near := geometry.NewSphere(core.NewVec3(0, 0, -4), 1, diffuseMaterial(grey))
	far := geometry.NewSphere(core.NewVec3(0, 0, -8), 1, diffuseMaterial(grey))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	tests := []struct {
		name   string
		shapes []geometry.Shape
	}{
		{"Near first", []geometry.Shape{near, far}},
		{"Far first", []geometry.Shape{far, near}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := FindClosest(ray, tt.shapes, 0, math32.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math32.Abs(hit.T-3) > 1e-4 {
				t.Errorf("Expected t=3, got t=%f", hit.T)
			}
			if hit.Shape != near {
				t.Error("Expected the nearer sphere")
			}
		})
	}
}

func TestFindClosest_TieKeepsFirst(t *testing.T) {
	first := geometry.NewSphere(core.NewVec3(0, 0, -4), 1, diffuseMaterial(grey))
	second := geometry.NewSphere(core.NewVec3(0, 0, -4), 1, diffuseMaterial(grey))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := FindClosest(ray, []geometry.Shape{first, second}, 0, math32.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Shape != first {
		t.Error("Expected tie to keep the first shape")
	}
}

func TestFindClosest_Empty(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit, isHit := FindClosest(ray, nil, 0, math32.Inf(1)); isHit || hit != nil {
		t.Error("Expected no hit for empty shape list")
	}
}

func TestCast_DepthGuard(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -3), 1, diffuseMaterial(grey))
	scene := newTestScene(sphere)
	scene.lights = []*lights.PointLight{lights.NewPointLight(core.NewVec3(0, 5, 0), core.White, 1)}

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), // hits the sphere
		core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),  // escapes to the sky
	}
	for _, ray := range rays {
		got := integrator.Cast(ray, scene, integrator.Config().MaxDepth+1)
		if got != core.Black {
			t.Errorf("Expected black beyond max depth, got %v", got)
		}
	}
}

func TestCast_MissReturnsSky(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	scene := newTestScene()

	direction := core.NewVec3(0, 1, 0)
	got := integrator.Cast(core.NewRay(core.NewVec3(0, 0, 0), direction.Multiply(3)), scene, 0)
	expected := scene.sky.Color(direction)
	if got != expected {
		t.Errorf("Expected sky color %v, got %v", expected, got)
	}
}

func TestCast_LitSphereTop(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, diffuseMaterial(grey))
	scene := newTestScene(sphere)
	scene.lights = []*lights.PointLight{lights.NewPointLight(core.NewVec3(0, 5, 0), core.White, 1)}

	ray := core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0))

	hit, isHit := FindClosest(ray, scene.GetShapes(), 0, math32.Inf(1))
	if !isHit {
		t.Fatal("Expected hit on top of sphere")
	}
	if hit.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-4 {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal)
	}

	// ambient 10% plus full-intensity diffuse
	got := integrator.Cast(ray, scene, 0)
	expected := core.NewColor(110, 110, 110)
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestCast_ShadowedLightContributesNothing(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, diffuseMaterial(grey))
	blocker := geometry.NewCube(core.NewVec3(0, 3, 0), 1, diffuseMaterial(grey))
	scene := newTestScene(sphere)
	scene.casters = []geometry.Shape{sphere, blocker}
	scene.lights = []*lights.PointLight{lights.NewPointLight(core.NewVec3(0, 5, 0), core.White, 1)}

	got := integrator.Cast(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0)), scene, 0)
	// The camera ray ignores the caster-only cube, the shadow ray does not
	expected := core.NewColor(10, 10, 10)
	if got != expected {
		t.Errorf("Expected ambient only %v, got %v", expected, got)
	}
}

func TestCast_NonCasterDoesNotShadow(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	ground := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), diffuseMaterial(grey))
	sun := geometry.NewSphere(core.NewVec3(0, 5, 0), 1, diffuseMaterial(grey))

	scene := newTestScene(ground, sun)
	scene.casters = []geometry.Shape{ground}
	scene.lights = []*lights.PointLight{lights.NewPointLight(sun.Center, core.White, 1)}

	// Look straight down at the ground below the sun, from beside it
	ray := core.NewRay(core.NewVec3(0.01, 2, 0), core.NewVec3(0, -1, 0))
	got := integrator.Cast(ray, scene, 0)
	if got.R < 100 {
		t.Errorf("Expected ground lit through the sun sphere, got %v", got)
	}
}

func TestCast_EmissiveAdded(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	mat := diffuseMaterial(grey)
	mat.Emissive = core.NewColor(50, 0, 0)
	scene := newTestScene(geometry.NewSphere(core.NewVec3(0, 0, -3), 1, mat))

	got := integrator.Cast(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), scene, 0)
	expected := core.NewColor(60, 10, 10)
	if got != expected {
		t.Errorf("Expected ambient plus emissive %v, got %v", expected, got)
	}
}

func TestCast_Specular(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	mat := &material.Material{
		Color:           core.Black,
		Albedo:          [4]float32{0, 1, 0, 0},
		Specular:        10,
		RefractiveIndex: 1,
	}
	scene := newTestScene(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))
	scene.lights = []*lights.PointLight{lights.NewPointLight(core.NewVec3(0, 5, 0), core.White, 1)}

	got := integrator.Cast(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0)), scene, 0)
	if got != core.White {
		t.Errorf("Expected full highlight, got %v", got)
	}
}

func TestCast_MirrorReflectsSky(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	mirror := &material.Material{
		Color:           grey,
		Albedo:          [4]float32{0, 0, 1, 0},
		RefractiveIndex: 1,
	}
	scene := newTestScene(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mirror))

	got := integrator.Cast(core.NewRay(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0)), scene, 0)
	expected := scene.sky.Color(core.NewVec3(0, 1, 0))
	if got != expected {
		t.Errorf("Expected reflected zenith %v, got %v", expected, got)
	}
}

func TestCast_FacingMirrorsTerminate(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	mirror := &material.Material{
		Color:           grey,
		Albedo:          [4]float32{0, 0, 1, 0},
		RefractiveIndex: 1,
	}
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), mirror)
	ceiling := geometry.NewPlane(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), mirror)
	scene := newTestScene(floor, ceiling)

	got := integrator.Cast(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), scene, 0)
	if got != core.Black {
		t.Errorf("Expected energy lost at max depth, got %v", got)
	}
}

func TestCast_ClearGlassPassesThrough(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	glass := &material.Material{
		Color:           grey,
		Albedo:          [4]float32{0, 0, 0, 1},
		RefractiveIndex: 1,
	}
	scene := newTestScene(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, glass))
	scene.sky = lights.NewSkybox(lights.Night)

	direction := core.NewVec3(0, 0, -1)
	got := integrator.Cast(core.NewRay(core.NewVec3(0, 0, 5), direction), scene, 0)
	expected := scene.sky.Color(direction)
	if got != expected {
		t.Errorf("Expected sky behind glass %v, got %v", expected, got)
	}
}

// recordingSky remembers the last escaping direction
type recordingSky struct {
	last  core.Vec3
	calls int
}

func (r *recordingSky) Color(direction core.Vec3) core.Color {
	r.last = direction
	r.calls++
	return core.NewColor(10, 20, 30)
}

func TestCast_GlassSphereBendsThroughBothSurfaces(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	glass := &material.Material{
		Albedo:          [4]float32{0, 0, 0, 1},
		RefractiveIndex: 1.5,
	}
	sky := &recordingSky{}
	scene := newTestScene(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, glass))
	scene.sky = sky

	// Parallel ray offset by h: enters at asin(h), travels inside at asin(h/n),
	// leaves again at asin(h) away from the normal. Total deviation is 2(θi - θr) toward the axis.
	const h = 0.5
	got := integrator.Cast(core.NewRay(core.NewVec3(h, 0, 5), core.NewVec3(0, 0, -1)), scene, 0)

	if got != core.NewColor(10, 20, 30) {
		t.Errorf("Expected the sky color seen through the glass, got %v", got)
	}
	if sky.calls != 1 {
		t.Fatalf("Expected exactly one escaping ray, got %d", sky.calls)
	}

	thetaI := math32.Asin(h)
	thetaR := math32.Asin(h / 1.5)
	deviation := 2 * (thetaI - thetaR)
	expected := core.NewVec3(-math32.Sin(deviation), 0, -math32.Cos(deviation))
	if expected.Subtract(sky.last).Length() > 1e-3 {
		t.Errorf("Expected exit direction %v, got %v", expected, sky.last)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	integrator := NewWhitted(DefaultConfig())
	scene := newTestScene()
	glass := &material.Material{Albedo: [4]float32{0, 0, 0, 1}, RefractiveIndex: 1.5}

	// Grazing ray leaving glass through a surface facing +Y
	direction := core.NewVec3(0.9, 0.2, 0).Normalize()
	hit := &geometry.HitRecord{
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 1, 0),
		Material: glass,
	}

	got := integrator.refract(core.NewRay(core.NewVec3(0, -1, 0), direction), hit, scene, 0)
	if got != core.Black {
		t.Errorf("Expected black on total internal reflection, got %v", got)
	}
}

func TestOccluded(t *testing.T) {
	blocker := geometry.NewSphere(core.NewVec3(0, 3, 0), 0.5, diffuseMaterial(grey))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	if !Occluded(ray, []geometry.Shape{blocker}, 5) {
		t.Error("Expected blocker before the light to occlude")
	}
	if Occluded(ray, []geometry.Shape{blocker}, 2) {
		t.Error("Expected blocker beyond the light not to occlude")
	}
}
