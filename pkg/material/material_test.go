package material

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestMaterial_ReflectTransmit(t *testing.T) {
	tests := []struct {
		name                 string
		albedo               [4]float32
		expectedReflectivity float32
		expectedTransparency float32
	}{
		{"Below one is untouched", [4]float32{0.5, 0.5, 0.2, 0.3}, 0.2, 0.3},
		{"Exactly one is untouched", [4]float32{0, 0, 0.4, 0.6}, 0.4, 0.6},
		{"Above one is renormalized", [4]float32{0.9, 0.9, 0.5, 1.5}, 0.25, 0.75},
		{"Negative weights are ignored", [4]float32{1, 0, -0.5, 0.5}, 0, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Material{Albedo: tt.albedo}
			reflectivity, transparency := m.ReflectTransmit()
			if math32.Abs(reflectivity-tt.expectedReflectivity) > 1e-6 {
				t.Errorf("Expected reflectivity %f, got %f", tt.expectedReflectivity, reflectivity)
			}
			if math32.Abs(transparency-tt.expectedTransparency) > 1e-6 {
				t.Errorf("Expected transparency %f, got %f", tt.expectedTransparency, transparency)
			}
			// Diffuse and specular weights are never rescaled
			if m.Albedo[AlbedoDiffuse] != tt.albedo[AlbedoDiffuse] || m.Albedo[AlbedoSpecular] != tt.albedo[AlbedoSpecular] {
				t.Errorf("Diffuse/specular weights changed: %v", m.Albedo)
			}
		})
	}
}

func TestMaterial_ColorAt(t *testing.T) {
	plain := NewSand()
	if got := plain.ColorAt(0.3, 0.7); got != plain.Color {
		t.Errorf("Expected base color %v, got %v", plain.Color, got)
	}

	red := core.Color{R: 255}
	textured := plain.WithTexture(NewTexture(1, 1, []core.Color{red}))
	if got := textured.ColorAt(0.3, 0.7); got != red {
		t.Errorf("Expected texture color %v, got %v", red, got)
	}

	// WithTexture must not modify the shared original
	if plain.Texture != nil {
		t.Error("WithTexture mutated the original material")
	}
}

func TestMaterial_IsEmissive(t *testing.T) {
	if NewSand().IsEmissive() {
		t.Error("Sand should not be emissive")
	}
	if !NewYellowSun().IsEmissive() {
		t.Error("Yellow sun should be emissive")
	}
}

func TestPreset(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			m, err := Preset(name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if m.Name != name {
				t.Errorf("Expected name %q, got %q", name, m.Name)
			}
			if m.RefractiveIndex <= 0 {
				t.Errorf("Refractive index must be positive, got %f", m.RefractiveIndex)
			}
			for i, w := range m.Albedo {
				if w < 0 {
					t.Errorf("Albedo[%d] must be non-negative, got %f", i, w)
				}
			}
		})
	}

	if _, err := Preset("unobtainium"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestPreset_ReturnsFreshCopies(t *testing.T) {
	a, _ := Preset("glass")
	b, _ := Preset("glass")
	a.Color = core.Black
	if b.Color == core.Black {
		t.Error("Preset returned shared material instance")
	}
}
