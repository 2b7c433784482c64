package core

import (
	"image/color"
)

// Color is an 8-bit RGB triple. All arithmetic saturates into [0, 255].
type Color struct {
	R, G, B uint8
}

// Commonly used colors
var (
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Magenta = Color{255, 0, 255} // Sentinel for out-of-bounds texture reads
)

// NewColor creates a color, clamping each channel to 255
func NewColor(r, g, b uint32) Color {
	return Color{
		R: uint8(min(r, 255)),
		G: uint8(min(g, 255)),
		B: uint8(min(b, 255)),
	}
}

// ColorFromHex unpacks a 0xRRGGBB value
func ColorFromHex(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
	}
}

// Hex packs the color as 0xRRGGBB
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Add returns the channel-wise saturating sum
func (c Color) Add(other Color) Color {
	return Color{
		R: saturatingAdd(c.R, other.R),
		G: saturatingAdd(c.G, other.G),
		B: saturatingAdd(c.B, other.B),
	}
}

// Scale multiplies every channel by factor, clamping to [0, 255]
func (c Color) Scale(factor float32) Color {
	return Color{
		R: clampChannel(float32(c.R) * factor),
		G: clampChannel(float32(c.G) * factor),
		B: clampChannel(float32(c.B) * factor),
	}
}

// Divide divides every channel by divisor, clamping to [0, 255]
func (c Color) Divide(divisor float32) Color {
	return Color{
		R: clampChannel(float32(c.R) / divisor),
		G: clampChannel(float32(c.G) / divisor),
		B: clampChannel(float32(c.B) / divisor),
	}
}

// Blend multiplies two colors treating channels as [0,1] fractions: (a*b)/255
func (c Color) Blend(other Color) Color {
	return Color{
		R: uint8(uint32(c.R) * uint32(other.R) / 255),
		G: uint8(uint32(c.G) * uint32(other.G) / 255),
		B: uint8(uint32(c.B) * uint32(other.B) / 255),
	}
}

// IsBlack reports whether every channel is zero
func (c Color) IsBlack() bool {
	return c == Black
}

// RGBA converts the color to an opaque image/color value
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Lerp interpolates from start to end by t, clamping the result
func Lerp(start, end Color, t float32) Color {
	return Color{
		R: clampChannel(float32(start.R) + t*(float32(end.R)-float32(start.R))),
		G: clampChannel(float32(start.G) + t*(float32(end.G)-float32(start.G))),
		B: clampChannel(float32(start.B) + t*(float32(end.B)-float32(start.B))),
	}
}

func saturatingAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// clampChannel truncates toward zero after clamping, NaN maps to 0
func clampChannel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
