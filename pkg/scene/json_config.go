package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Vec3Cfg is a JSON [x, y, z] triple
type Vec3Cfg [3]float32

// Vec3 converts to a core vector
func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ColorCfg is a JSON [r, g, b] triple in 0-255
type ColorCfg [3]uint32

// Color converts to a clamped core color
func (c ColorCfg) Color() core.Color {
	return core.NewColor(c[0], c[1], c[2])
}

// CameraCfg places the camera; angles are in degrees
type CameraCfg struct {
	Position Vec3Cfg  `json:"position"`
	Target   Vec3Cfg  `json:"target"`
	Up       *Vec3Cfg `json:"up,omitempty"`     // defaults to +Y
	FovDeg   float32  `json:"fovDeg,omitempty"` // vertical; defaults to 60
}

// MaterialCfg starts from an optional preset and overrides the fields that are set
type MaterialCfg struct {
	Preset          string      `json:"preset,omitempty"`
	Color           *ColorCfg   `json:"color,omitempty"`
	Albedo          *[4]float32 `json:"albedo,omitempty"`
	Specular        *float32    `json:"specular,omitempty"`
	RefractiveIndex *float32    `json:"refractiveIndex,omitempty"`
	Emissive        *ColorCfg   `json:"emissive,omitempty"`
	Texture         string      `json:"texture,omitempty"`   // image path relative to the scene file
	NormalMap       string      `json:"normalMap,omitempty"` // image path relative to the scene file
}

// LightCfg is a point light
type LightCfg struct {
	Position  Vec3Cfg   `json:"position"`
	Color     *ColorCfg `json:"color,omitempty"` // defaults to white
	Intensity float32   `json:"intensity"`
}

// SunPhaseCfg names a sun's material and light intensity for one sky mode
type SunPhaseCfg struct {
	Material  string  `json:"material"`
	Intensity float32 `json:"intensity"`
}

// SunCfg is an emissive sphere with a light at its center
type SunCfg struct {
	Center Vec3Cfg      `json:"center"`
	Radius float32      `json:"radius"`
	Day    SunPhaseCfg  `json:"day"`
	Night  *SunPhaseCfg `json:"night,omitempty"` // defaults to the day phase
}

// SphereCfg is a sphere referencing a material by name
type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float32 `json:"radius"`
	Material string  `json:"material"`
}

// CubeCfg is an axis-aligned cube with full edge length Size
type CubeCfg struct {
	Center   Vec3Cfg `json:"center"`
	Size     float32 `json:"size"`
	Material string  `json:"material"`
}

// PlaneCfg is a plane, optionally bounded to a square
type PlaneCfg struct {
	Point      Vec3Cfg `json:"point"`
	Normal     Vec3Cfg `json:"normal"`
	HalfExtent float32 `json:"halfExtent,omitempty"` // 0 = infinite
	UVScale    float32 `json:"uvScale,omitempty"`
	Material   string  `json:"material"`
}

// Config is the on-disk scene description.
// Shapes are added spheres first, then cubes, then planes, each in file order.
type Config struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Sky         string                 `json:"sky,omitempty"` // "day" or "night"
	Camera      CameraCfg              `json:"camera"`
	Materials   map[string]MaterialCfg `json:"materials,omitempty"`
	Lights      []LightCfg             `json:"lights,omitempty"`
	Suns        []SunCfg               `json:"suns,omitempty"`
	Spheres     []SphereCfg            `json:"spheres,omitempty"`
	Cubes       []CubeCfg              `json:"cubes,omitempty"`
	Planes      []PlaneCfg             `json:"planes,omitempty"`
}

// LoadFile reads and builds a JSON scene file
func LoadFile(path string) (*Scene, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	s, err := cfg.Build(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// LoadConfig reads a JSON scene file without building it. Unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	if cfg.Name == "" {
		base := filepath.Base(path)
		cfg.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return &cfg, nil
}

// Build assembles the scene; relative texture paths resolve against baseDir
func (cfg *Config) Build(baseDir string) (*Scene, error) {
	mode, ok := lights.ParseSkyMode(cfg.Sky)
	if !ok {
		return nil, fmt.Errorf("unknown sky mode %q", cfg.Sky)
	}

	cameraConfig, err := cfg.Camera.Build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	s := NewScene(cfg.Name, cameraConfig)
	s.Sky.SetMode(mode)

	resolver := &materialResolver{
		configs:  cfg.Materials,
		built:    make(map[string]*material.Material),
		textures: loaders.NewTextureCache(),
		baseDir:  baseDir,
	}

	for i, sc := range cfg.Spheres {
		if !(sc.Radius > 0) {
			return nil, fmt.Errorf("sphere %d: radius must be > 0, got %v", i, sc.Radius)
		}
		mat, err := resolver.resolve(sc.Material)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		s.AddSphere(sc.Center.Vec3(), sc.Radius, mat)
	}

	for i, cc := range cfg.Cubes {
		if !(cc.Size > 0) {
			return nil, fmt.Errorf("cube %d: size must be > 0, got %v", i, cc.Size)
		}
		mat, err := resolver.resolve(cc.Material)
		if err != nil {
			return nil, fmt.Errorf("cube %d: %w", i, err)
		}
		s.AddCube(cc.Center.Vec3(), cc.Size, mat)
	}

	for i, pc := range cfg.Planes {
		if pc.Normal.Vec3().LengthSquared() == 0 {
			return nil, fmt.Errorf("plane %d: normal must be non-zero", i)
		}
		if pc.HalfExtent < 0 {
			return nil, fmt.Errorf("plane %d: halfExtent must be >= 0, got %v", i, pc.HalfExtent)
		}
		mat, err := resolver.resolve(pc.Material)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		plane := s.AddPlane(pc.Point.Vec3(), pc.Normal.Vec3(), pc.HalfExtent, mat)
		if pc.UVScale > 0 {
			plane.UVScale = pc.UVScale
		}
	}

	for i, lc := range cfg.Lights {
		if lc.Intensity < 0 {
			return nil, fmt.Errorf("light %d: intensity must be >= 0, got %v", i, lc.Intensity)
		}
		color := core.White
		if lc.Color != nil {
			color = lc.Color.Color()
		}
		s.AddLight(lc.Position.Vec3(), color, lc.Intensity)
	}

	for i, sc := range cfg.Suns {
		day, night, err := sc.phases(resolver)
		if err != nil {
			return nil, fmt.Errorf("sun %d: %w", i, err)
		}
		if !(sc.Radius > 0) {
			return nil, fmt.Errorf("sun %d: radius must be > 0, got %v", i, sc.Radius)
		}
		s.AddSun(sc.Center.Vec3(), sc.Radius, day, night)
	}

	return s, nil
}

// Build converts the camera description
func (cc CameraCfg) Build() (geometry.CameraConfig, error) {
	config := geometry.CameraConfig{
		Position: cc.Position.Vec3(),
		Target:   cc.Target.Vec3(),
	}
	if config.Position == config.Target {
		return config, fmt.Errorf("position and target must differ")
	}
	if cc.Up != nil {
		config.Up = cc.Up.Vec3()
	}
	if cc.FovDeg != 0 {
		if cc.FovDeg <= 0 || cc.FovDeg >= 180 {
			return config, fmt.Errorf("fovDeg must be in (0, 180), got %v", cc.FovDeg)
		}
		config.VFov = cc.FovDeg * math32.Pi / 180
	}
	return config, nil
}

func (sc SunCfg) phases(resolver *materialResolver) (SunPhase, SunPhase, error) {
	day, err := sc.Day.build(resolver)
	if err != nil {
		return SunPhase{}, SunPhase{}, fmt.Errorf("day: %w", err)
	}
	if sc.Night == nil {
		return day, day, nil
	}
	night, err := sc.Night.build(resolver)
	if err != nil {
		return SunPhase{}, SunPhase{}, fmt.Errorf("night: %w", err)
	}
	return day, night, nil
}

func (pc SunPhaseCfg) build(resolver *materialResolver) (SunPhase, error) {
	if pc.Intensity < 0 {
		return SunPhase{}, fmt.Errorf("intensity must be >= 0, got %v", pc.Intensity)
	}
	mat, err := resolver.resolve(pc.Material)
	if err != nil {
		return SunPhase{}, err
	}
	return SunPhase{Material: mat, Intensity: pc.Intensity}, nil
}

// materialResolver builds each named material once so shapes share it
type materialResolver struct {
	configs  map[string]MaterialCfg
	built    map[string]*material.Material
	textures *loaders.TextureCache
	baseDir  string
}

// resolve looks a name up in the file's materials, then among the presets
func (r *materialResolver) resolve(name string) (*material.Material, error) {
	if mat, ok := r.built[name]; ok {
		return mat, nil
	}

	mc, ok := r.configs[name]
	if !ok {
		mat, err := material.Preset(name)
		if err != nil {
			return nil, err
		}
		r.built[name] = mat
		return mat, nil
	}

	mat, err := mc.build(name, r)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", name, err)
	}
	r.built[name] = mat
	return mat, nil
}

func (r *materialResolver) loadTexture(path string) (*material.Texture, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	return r.textures.Load(path)
}

func (mc MaterialCfg) build(name string, r *materialResolver) (*material.Material, error) {
	mat := &material.Material{Name: name, RefractiveIndex: 1}
	if mc.Preset != "" {
		preset, err := material.Preset(mc.Preset)
		if err != nil {
			return nil, err
		}
		mat = preset
		mat.Name = name
	}

	if mc.Color != nil {
		mat.Color = mc.Color.Color()
	}
	if mc.Albedo != nil {
		for i, a := range mc.Albedo {
			if a < 0 {
				return nil, fmt.Errorf("albedo[%d] must be >= 0, got %v", i, a)
			}
		}
		mat.Albedo = *mc.Albedo
	}
	if mc.Specular != nil {
		if *mc.Specular < 0 {
			return nil, fmt.Errorf("specular must be >= 0, got %v", *mc.Specular)
		}
		mat.Specular = *mc.Specular
	}
	if mc.RefractiveIndex != nil {
		if !(*mc.RefractiveIndex > 0) {
			return nil, fmt.Errorf("refractiveIndex must be > 0, got %v", *mc.RefractiveIndex)
		}
		mat.RefractiveIndex = *mc.RefractiveIndex
	}
	if mc.Emissive != nil {
		mat.Emissive = mc.Emissive.Color()
	}

	if mc.Texture != "" {
		texture, err := r.loadTexture(mc.Texture)
		if err != nil {
			return nil, fmt.Errorf("texture: %w", err)
		}
		mat.Texture = texture
	}
	if mc.NormalMap != "" {
		normalMap, err := r.loadTexture(mc.NormalMap)
		if err != nil {
			return nil, fmt.Errorf("normal map: %w", err)
		}
		mat.NormalMap = normalMap
	}

	return mat, nil
}
