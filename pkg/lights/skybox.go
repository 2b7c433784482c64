package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Environment supplies the background color for rays that escape the scene
type Environment interface {
	Color(direction core.Vec3) core.Color
}

// SkyMode selects the skybox palette
type SkyMode int

const (
	Day SkyMode = iota
	Night
)

// String returns the mode name
func (m SkyMode) String() string {
	if m == Night {
		return "night"
	}
	return "day"
}

// ParseSkyMode converts "day" or "night" into a SkyMode
func ParseSkyMode(name string) (SkyMode, bool) {
	switch name {
	case "", "day":
		return Day, true
	case "night":
		return Night, true
	}
	return Day, false
}

// Gradient breakpoints on t = (y+1)/2
const (
	lowerBreak = 0.33
	upperBreak = 0.66
)

// skyPalette holds four stops from zenith down to the horizon
type skyPalette struct {
	top          core.Color
	middleTop    core.Color
	middleBottom core.Color
	horizon      core.Color
}

var dayPalette = skyPalette{
	top:          core.NewColor(135, 206, 235), // sky blue
	middleTop:    core.NewColor(176, 224, 230), // pale blue
	middleBottom: core.NewColor(250, 235, 215), // antique white
	horizon:      core.NewColor(255, 255, 255),
}

var nightPalette = skyPalette{
	top:          core.NewColor(138, 68, 94),  // plum
	middleTop:    core.NewColor(126, 67, 95),  // dusk purple
	middleBottom: core.NewColor(248, 90, 62),  // coral
	horizon:      core.NewColor(255, 119, 51), // orange
}

// Skybox is a gradient environment with day and night palettes.
// The mode is switched between frames, never while a frame renders.
type Skybox struct {
	mode SkyMode
}

// NewSkybox creates a skybox in the given mode
func NewSkybox(mode SkyMode) *Skybox {
	return &Skybox{mode: mode}
}

// Mode returns the current palette
func (s *Skybox) Mode() SkyMode {
	return s.mode
}

// SetMode switches to the given palette
func (s *Skybox) SetMode(mode SkyMode) {
	s.mode = mode
}

// Toggle flips between day and night
func (s *Skybox) Toggle() {
	if s.mode == Day {
		s.mode = Night
	} else {
		s.mode = Day
	}
}

// IsDay reports whether the day palette is active
func (s *Skybox) IsDay() bool {
	return s.mode == Day
}

// Color returns the sky color seen along direction
func (s *Skybox) Color(direction core.Vec3) core.Color {
	palette := dayPalette
	if s.mode == Night {
		palette = nightPalette
	}

	t := (direction.Normalize().Y + 1) / 2
	switch {
	case t > upperBreak:
		return core.Lerp(palette.middleTop, palette.top, (t-upperBreak)*3)
	case t > lowerBreak:
		return core.Lerp(palette.middleBottom, palette.middleTop, (t-lowerBreak)*3)
	default:
		return core.Lerp(palette.horizon, palette.middleBottom, t*3)
	}
}
