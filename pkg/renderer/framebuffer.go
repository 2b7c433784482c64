package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Framebuffer stores packed 0xRRGGBB pixels in row-major order
type Framebuffer struct {
	Width  int
	Height int
	Buffer []uint32
}

// NewFramebuffer creates a black framebuffer of the given size
func NewFramebuffer(width, height int) *Framebuffer {
	width = max(0, width)
	height = max(0, height)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Buffer: make([]uint32, width*height),
	}
}

func (fb *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width && y < fb.Height
}

// SetPixel writes a packed color; out-of-range coordinates are ignored
func (fb *Framebuffer) SetPixel(x, y int, packed uint32) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.Buffer[y*fb.Width+x] = packed & 0xFFFFFF
}

// SetColor writes a color at (x, y)
func (fb *Framebuffer) SetColor(x, y int, c core.Color) {
	fb.SetPixel(x, y, c.Hex())
}

// Pixel returns the packed color at (x, y), or 0 outside the buffer
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	if !fb.inBounds(x, y) {
		return 0
	}
	return fb.Buffer[y*fb.Width+x]
}

// Color returns the color at (x, y)
func (fb *Framebuffer) Color(x, y int) core.Color {
	return core.ColorFromHex(fb.Pixel(x, y))
}

// Clear fills the whole buffer with c
func (fb *Framebuffer) Clear(c core.Color) {
	packed := c.Hex()
	for i := range fb.Buffer {
		fb.Buffer[i] = packed
	}
}

// Image converts the framebuffer to an opaque RGBA image
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.RGBA())
	return img
}

// RGBA returns the pixels as tightly packed 8-bit RGBA bytes, top row first
func (fb *Framebuffer) RGBA() []byte {
	pix := make([]byte, len(fb.Buffer)*4)
	for i, packed := range fb.Buffer {
		pix[i*4] = byte(packed >> 16)
		pix[i*4+1] = byte(packed >> 8)
		pix[i*4+2] = byte(packed)
		pix[i*4+3] = 255
	}
	return pix
}
