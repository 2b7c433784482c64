package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// Caster computes the color seen along a ray
type Caster interface {
	Cast(ray core.Ray, scene integrator.Scene, depth int) core.Color
}

// TileRenderer renders individual tiles of a frame
type TileRenderer struct {
	scene           integrator.Scene
	camera          *geometry.Camera
	caster          Caster
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer for one frame
func NewTileRenderer(scene integrator.Scene, camera *geometry.Camera, caster Caster, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           scene,
		camera:          camera,
		caster:          caster,
		samplesPerPixel: max(1, samplesPerPixel),
	}
}

// RenderTile shades every pixel inside the tile bounds into fb.
// Tiles never overlap, so concurrent calls on distinct tiles are safe.
func (tr *TileRenderer) RenderTile(tile *Tile, fb *Framebuffer) RenderStats {
	bounds := tile.Bounds
	stats := RenderStats{TotalTiles: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			fb.SetColor(x, y, tr.samplePixel(x, y, fb.Width, fb.Height, tile))
			stats.TotalPixels++
			stats.TotalSamples += tr.samplesPerPixel
		}
	}

	return stats
}

// samplePixel averages the pixel's samples in integer space.
// A single sample goes through the pixel center; more samples are jittered.
func (tr *TileRenderer) samplePixel(x, y, width, height int, tile *Tile) core.Color {
	if tr.samplesPerPixel == 1 {
		ray := tr.camera.GetRay(x, y, width, height, 0.5, 0.5)
		return tr.caster.Cast(ray, tr.scene, 0)
	}

	var r, g, b uint32
	for s := 0; s < tr.samplesPerPixel; s++ {
		ray := tr.camera.GetRay(x, y, width, height, tile.Random.Float32(), tile.Random.Float32())
		c := tr.caster.Cast(ray, tr.scene, 0)
		r += uint32(c.R)
		g += uint32(c.G)
		b += uint32(c.B)
	}

	n := uint32(tr.samplesPerPixel)
	return core.NewColor(r/n, g/n, b/n)
}
