package material

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture provides colors (or normal perturbations) from a 2D image
type Texture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x]
}

// NewTexture creates a new texture from row-major pixels
func NewTexture(width, height int, pixels []core.Color) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewTextureFromImage copies a decoded image into a texture
func NewTextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns 16-bit channels
			pixels[y*width+x] = core.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}

	return NewTexture(width, height, pixels)
}

// NewCheckerTexture creates a size×size checkerboard with cells of cellSize pixels
func NewCheckerTexture(size, cellSize int, even, odd core.Color) *Texture {
	pixels := make([]core.Color, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cellSize+y/cellSize)%2 == 0 {
				pixels[y*size+x] = even
			} else {
				pixels[y*size+x] = odd
			}
		}
	}
	return NewTexture(size, size, pixels)
}

// Pixel returns the texel at (x, y), or magenta when out of bounds
func (t *Texture) Pixel(x, y int) core.Color {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height || y*t.Width+x >= len(t.Pixels) {
		return core.Magenta
	}
	return t.Pixels[y*t.Width+x]
}

// GetColor samples the texture at UV using nearest-neighbor filtering.
// UV wraps so textures tile; v=0 is the bottom row of the image.
func (t *Texture) GetColor(u, v float32) core.Color {
	if t.Width <= 0 || t.Height <= 0 {
		return core.Magenta
	}

	u = Fract(u)
	v = Fract(v)

	x := int(u*float32(t.Width)) % t.Width
	y := int((1-v)*float32(t.Height)) % t.Height
	return t.Pixel(x, y)
}

// GetNormal samples the texture as a normal map, converting each channel
// from [0,255] to a [-1,1] perturbation
func (t *Texture) GetNormal(u, v float32) core.Vec3 {
	c := t.GetColor(u, v)
	return core.NewVec3(
		float32(c.R)/255*2-1,
		float32(c.G)/255*2-1,
		float32(c.B)/255*2-1,
	)
}

// Fract maps x into [0, 1) by taking its fractional part
func Fract(x float32) float32 {
	f := x - math32.Floor(x)
	if f >= 1 {
		return 0
	}
	return f
}
