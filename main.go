package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	height    int
	samples   int
	workers   int
	maxDepth  int
	night     bool
	out       string
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.sceneName, "scene", "tatooine", "Scene name or path to a .json scene file")
	flag.IntVar(&opts.width, "width", 800, "Image width in pixels")
	flag.IntVar(&opts.height, "height", 600, "Image height in pixels")
	flag.IntVar(&opts.samples, "samples", renderer.DefaultSamplesPerPixel, "Anti-aliasing samples per pixel (1 = no jitter)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flag.IntVar(&opts.maxDepth, "depth", integrator.DefaultConfig().MaxDepth, "Maximum reflection/refraction depth")
	flag.BoolVar(&opts.night, "night", false, "Render the night sky")
	flag.StringVar(&opts.out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, name := range scene.List() {
			fmt.Printf("  %s\n", name)
		}
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// run renders one frame and writes it as a PNG
func run(ctx context.Context, opts options) error {
	if opts.width <= 0 || opts.height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", opts.width, opts.height)
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	selectedScene.SetNight(opts.night)
	fmt.Printf("Using %s scene (%d shapes, %d lights, %s sky)...\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), len(selectedScene.GetLights()), selectedScene.Sky.Mode())

	config := integrator.DefaultConfig()
	config.MaxDepth = opts.maxDepth
	whitted := integrator.NewWhitted(config)

	raytracer := renderer.NewRaytracer(selectedScene, selectedScene.Camera, whitted, renderer.RenderConfig{
		TileSize:        renderer.DefaultTileSize,
		SamplesPerPixel: opts.samples,
		NumWorkers:      opts.workers,
	}, renderer.NewDefaultLogger())

	fb := renderer.NewFramebuffer(opts.width, opts.height)
	stats, err := raytracer.Render(ctx, fb)
	if err != nil {
		return err
	}

	img := fb.Image()
	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	filename := opts.out
	if filename == "" {
		outputDir := createOutputDir(opts.sceneName)
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := savePNG(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene creates a scene by built-in name, scene file name, or .json path
func createScene(sceneName string) (*scene.Scene, error) {
	if sceneName == "" {
		return nil, fmt.Errorf("scene name is empty")
	}
	return scene.Create(sceneName)
}

// createOutputDir returns the output directory for a scene, e.g. output/tatooine
func createOutputDir(sceneName string) string {
	base := filepath.Base(sceneName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "scene"
	}
	return filepath.Join("output", base)
}

// savePNG encodes img to path, creating parent directories
func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}
