package material

import (
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewBlack creates a fully absorbing material
func NewBlack() *Material {
	return &Material{
		Name:            "black",
		Color:           core.Black,
		RefractiveIndex: 1.0,
	}
}

// NewSand creates a matte sand material
func NewSand() *Material {
	return &Material{
		Name:            "sand",
		Color:           core.NewColor(194, 178, 128),
		Albedo:          [4]float32{0.9, 0.1, 0.0, 0.0},
		Specular:        10.0,
		RefractiveIndex: 1.0,
	}
}

// NewMetal creates a shiny, slightly reflective metal
func NewMetal() *Material {
	return &Material{
		Name:            "metal",
		Color:           core.NewColor(192, 192, 192),
		Albedo:          [4]float32{0.6, 0.3, 0.1, 0.0},
		Specular:        250.0,
		RefractiveIndex: 1.0,
	}
}

// NewSandstone creates a rough sandstone material
func NewSandstone() *Material {
	return &Material{
		Name:            "sandstone",
		Color:           core.NewColor(205, 170, 125),
		Albedo:          [4]float32{0.9, 0.2, 0.0, 0.0},
		Specular:        50.0,
		RefractiveIndex: 1.0,
	}
}

// NewClay creates a reddish clay material
func NewClay() *Material {
	return &Material{
		Name:            "clay",
		Color:           core.NewColor(160, 82, 45),
		Albedo:          [4]float32{0.7, 0.3, 0.0, 0.0},
		Specular:        15.0,
		RefractiveIndex: 1.0,
	}
}

// NewWood creates a wood material
func NewWood() *Material {
	return &Material{
		Name:            "wood",
		Color:           core.NewColor(139, 69, 19),
		Albedo:          [4]float32{0.8, 0.2, 0.0, 0.0},
		Specular:        50.0,
		RefractiveIndex: 1.0,
	}
}

// NewRustedMetal creates a dull rusted metal
func NewRustedMetal() *Material {
	return &Material{
		Name:            "rusted-metal",
		Color:           core.NewColor(139, 69, 19),
		Albedo:          [4]float32{0.6, 0.3, 0.1, 0.0},
		Specular:        100.0,
		RefractiveIndex: 1.0,
	}
}

// NewGlass creates a mostly transparent refracting material
func NewGlass() *Material {
	return &Material{
		Name:            "glass",
		Color:           core.NewColor(200, 200, 255),
		Albedo:          [4]float32{0.0, 0.5, 0.1, 0.8},
		Specular:        250.0,
		RefractiveIndex: 1.5,
	}
}

// NewMirror creates an almost perfect mirror
func NewMirror() *Material {
	return &Material{
		Name:            "mirror",
		Color:           core.NewColor(230, 230, 230),
		Albedo:          [4]float32{0.1, 0.6, 0.9, 0.0},
		Specular:        1000.0,
		RefractiveIndex: 1.0,
	}
}

// NewConcrete creates a grey concrete material
func NewConcrete() *Material {
	return &Material{
		Name:            "concrete",
		Color:           core.NewColor(130, 130, 130),
		Albedo:          [4]float32{0.8, 0.2, 0.0, 0.0},
		Specular:        10.0,
		RefractiveIndex: 1.0,
	}
}

// NewYellowSun creates the emissive material of a yellow star
func NewYellowSun() *Material {
	return &Material{
		Name:            "yellow-sun",
		Color:           core.NewColor(255, 255, 102),
		Albedo:          [4]float32{0.9, 0.1, 0.0, 0.0},
		Specular:        250.0,
		RefractiveIndex: 1.0,
		Emissive:        core.NewColor(255, 255, 102),
	}
}

// NewRedGiant creates the emissive material of a red giant star
func NewRedGiant() *Material {
	return &Material{
		Name:            "red-giant",
		Color:           core.NewColor(255, 69, 0),
		Albedo:          [4]float32{0.8, 0.2, 0.0, 0.0},
		Specular:        200.0,
		RefractiveIndex: 1.0,
		Emissive:        core.NewColor(255, 69, 0),
	}
}

var presets = map[string]func() *Material{
	"black":        NewBlack,
	"sand":         NewSand,
	"metal":        NewMetal,
	"sandstone":    NewSandstone,
	"clay":         NewClay,
	"wood":         NewWood,
	"rusted-metal": NewRustedMetal,
	"glass":        NewGlass,
	"mirror":       NewMirror,
	"concrete":     NewConcrete,
	"yellow-sun":   NewYellowSun,
	"red-giant":    NewRedGiant,
}

// Preset returns a fresh copy of the named preset material
func Preset(name string) (*Material, error) {
	constructor, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown material preset: %q", name)
	}
	return constructor(), nil
}

// PresetNames returns the sorted names of all preset materials
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
