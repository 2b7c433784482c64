package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// Rendering defaults
const (
	DefaultTileSize        = 32
	DefaultSamplesPerPixel = 4
)

// RenderConfig contains frame rendering configuration
type RenderConfig struct {
	TileSize        int // Size of each square tile in pixels
	SamplesPerPixel int // Camera rays per pixel; 1 samples the pixel center
	NumWorkers      int // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:        DefaultTileSize,
		SamplesPerPixel: DefaultSamplesPerPixel,
		NumWorkers:      0, // Auto-detect CPU count
	}
}

// Raytracer renders whole frames of a scene through a camera
type Raytracer struct {
	scene  integrator.Scene
	camera *geometry.Camera
	caster Caster
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene integrator.Scene, camera *geometry.Camera, caster Caster, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = DefaultSamplesPerPixel
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}

	return &Raytracer{
		scene:  scene,
		camera: camera,
		caster: caster,
		config: config,
		logger: logger,
	}
}

// Config returns the effective render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render draws one frame into fb. The scene and camera must not change until it returns.
// Cancelling ctx stops rendering between tiles and returns the context error.
func (rt *Raytracer) Render(ctx context.Context, fb *Framebuffer) (RenderStats, error) {
	start := time.Now()

	tiles := NewTileGrid(fb.Width, fb.Height, rt.config.TileSize)
	tileRenderer := NewTileRenderer(rt.scene, rt.camera, rt.caster, rt.config.SamplesPerPixel)

	pool := NewWorkerPool(ctx, tileRenderer, fb, len(tiles), rt.config.NumWorkers)
	pool.Start()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var stats RenderStats
	var renderErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			renderErr = fmt.Errorf("worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if renderErr != nil {
		return stats, fmt.Errorf("render stopped after %d/%d tiles: %w", stats.TotalTiles, len(tiles), renderErr)
	}

	rt.logger.Printf("Rendered %dx%d: %d tiles, %.1f samples/pixel, %d workers in %v\n",
		fb.Width, fb.Height, stats.TotalTiles, stats.AverageSamples(), pool.GetNumWorkers(), stats.Duration)
	return stats, nil
}
