package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// LoadImage loads a PNG or JPEG image
func LoadImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, nil
}

// LoadTexture loads a PNG or JPEG image as a texture or normal map
func LoadTexture(filename string) (*material.Texture, error) {
	img, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	return material.NewTextureFromImage(img), nil
}

// TextureCache loads each texture file once during scene assembly.
// It is not safe for concurrent use.
type TextureCache struct {
	textures map[string]*material.Texture
}

// NewTextureCache creates an empty cache
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]*material.Texture)}
}

// Load returns the cached texture for filename, loading it on first use
func (tc *TextureCache) Load(filename string) (*material.Texture, error) {
	key, err := filepath.Abs(filename)
	if err != nil {
		key = filepath.Clean(filename)
	}

	if texture, ok := tc.textures[key]; ok {
		return texture, nil
	}

	texture, err := LoadTexture(filename)
	if err != nil {
		return nil, err
	}
	tc.textures[key] = texture
	return texture, nil
}

// Len returns the number of distinct textures loaded
func (tc *TextureCache) Len() int {
	return len(tc.textures)
}
