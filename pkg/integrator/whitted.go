package integrator

import (
	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Whitted implements recursive Whitted-style ray tracing:
// local Phong illumination with hard shadows plus perfect reflection and refraction.
type Whitted struct {
	config Config
}

// NewWhitted creates a new Whitted integrator
func NewWhitted(config Config) *Whitted {
	return &Whitted{config: config}
}

// Config returns the integrator settings
func (w *Whitted) Config() Config {
	return w.config
}

// Cast computes the color seen along ray. depth starts at 0 for primary rays.
func (w *Whitted) Cast(ray core.Ray, scene Scene, depth int) core.Color {
	if depth > w.config.MaxDepth {
		return core.Black
	}

	direction := ray.Direction.Normalize()
	ray = core.NewRay(ray.Origin, direction)

	hit, isHit := FindClosest(ray, scene.GetShapes(), 0, math32.Inf(1))
	if !isHit {
		return scene.GetEnvironment().Color(direction)
	}

	mat := hit.Material
	local := w.localIllumination(ray, hit, scene)

	reflectivity, transparency := mat.ReflectTransmit()
	canRecurse := depth < w.config.MaxDepth

	reflected := core.Black
	if reflectivity > 0 && canRecurse {
		reflected = w.reflect(ray, hit, scene, depth)
	}

	refracted := core.Black
	if transparency > 0 && canRecurse {
		refracted = w.refract(ray, hit, scene, depth)
	}

	return local.Scale(1 - reflectivity - transparency).
		Add(reflected.Scale(reflectivity)).
		Add(refracted.Scale(transparency)).
		Add(mat.Emissive)
}

// localIllumination sums ambient, then diffuse and specular from every unshadowed light
func (w *Whitted) localIllumination(ray core.Ray, hit *geometry.HitRecord, scene Scene) core.Color {
	mat := hit.Material
	result := hit.Color.Scale(w.config.AmbientIntensity)

	for _, light := range scene.GetLights() {
		lightDir, lightDistance := light.DirectionFrom(hit.Point)

		shadowOrigin := offsetOrigin(hit.Point, hit.Normal, lightDir, w.config.ShadowBias)
		shadowRay := core.NewRay(shadowOrigin, lightDir)
		if Occluded(shadowRay, scene.GetShadowCasters(), lightDistance) {
			continue
		}

		lambert := max(0, hit.Normal.Dot(lightDir))
		diffuse := hit.Color.Scale(lambert * light.Intensity * mat.Albedo[material.AlbedoDiffuse])

		mirror := lightDir.Negate().Reflect(hit.Normal)
		highlight := math32.Pow(max(0, mirror.Dot(ray.Direction.Negate())), mat.Specular)
		specular := core.White.Scale(highlight * light.Intensity * mat.Albedo[material.AlbedoSpecular])

		result = result.Add(diffuse).Add(specular)
	}

	return result
}

// reflect traces the mirror ray off the hit surface
func (w *Whitted) reflect(ray core.Ray, hit *geometry.HitRecord, scene Scene, depth int) core.Color {
	reflectDir := ray.Direction.Reflect(hit.Normal).Normalize()
	origin := offsetOrigin(hit.Point, hit.Normal, reflectDir, w.config.RayBias)
	return w.Cast(core.NewRay(origin, reflectDir), scene, depth+1)
}

// refract traces the transmitted ray through the hit surface.
// Total internal reflection yields black.
func (w *Whitted) refract(ray core.Ray, hit *geometry.HitRecord, scene Scene, depth int) core.Color {
	ior := hit.Material.RefractiveIndex
	if ior <= 0 {
		ior = 1
	}

	normal := hit.Normal
	eta := 1 / ior
	if ray.Direction.Dot(normal) > 0 {
		// Leaving the medium
		normal = normal.Negate()
		eta = ior
	}

	refractDir, ok := ray.Direction.Refract(normal, eta)
	if !ok {
		return core.Black
	}
	refractDir = refractDir.Normalize()

	origin := offsetOrigin(hit.Point, normal, refractDir, w.config.RayBias)
	return w.Cast(core.NewRay(origin, refractDir), scene, depth+1)
}
