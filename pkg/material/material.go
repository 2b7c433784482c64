package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Indices into Material.Albedo
const (
	AlbedoDiffuse     = 0
	AlbedoSpecular    = 1
	AlbedoReflective  = 2
	AlbedoTransparent = 3
)

// Material describes how a surface responds to light.
// Materials are shared by pointer between shapes and must not be mutated while rendering.
type Material struct {
	Name            string
	Color           core.Color // Base diffuse color
	Albedo          [4]float32 // [diffuse, specular, reflective, transparent]
	Specular        float32    // Phong specular exponent
	RefractiveIndex float32    // 1.0 means no bending
	Emissive        core.Color // Non-black marks a light-emitting surface
	Texture         *Texture   // Optional diffuse texture
	NormalMap       *Texture   // Optional tangent-space normal perturbation
}

// ColorAt returns the diffuse color at the given texture coordinates
func (m *Material) ColorAt(u, v float32) core.Color {
	if m.Texture != nil {
		return m.Texture.GetColor(u, v)
	}
	return m.Color
}

// IsEmissive reports whether the surface emits light
func (m *Material) IsEmissive() bool {
	return !m.Emissive.IsBlack()
}

// ReflectTransmit returns the reflective and transparent weights, scaled down
// proportionally when their sum exceeds 1. Diffuse and specular are untouched.
func (m *Material) ReflectTransmit() (reflectivity, transparency float32) {
	reflectivity = max(0, m.Albedo[AlbedoReflective])
	transparency = max(0, m.Albedo[AlbedoTransparent])
	if total := reflectivity + transparency; total > 1 {
		reflectivity /= total
		transparency /= total
	}
	return reflectivity, transparency
}

// WithTexture returns a copy of the material using the given diffuse texture
func (m *Material) WithTexture(texture *Texture) *Material {
	clone := *m
	clone.Texture = texture
	return &clone
}

// WithNormalMap returns a copy of the material using the given normal map
func (m *Material) WithNormalMap(normalMap *Texture) *Material {
	clone := *m
	clone.NormalMap = normalMap
	return &clone
}
