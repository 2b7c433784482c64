package server

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const defaultScene = "tatooine"

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string `json:"scene"`    // Scene name or file ID (e.g., "tatooine")
	Width    int    `json:"width"`    // Image width
	Height   int    `json:"height"`   // Image height
	Samples  int    `json:"samples"`  // Anti-aliasing samples per pixel
	MaxDepth int    `json:"maxDepth"` // Recursion limit for reflection and refraction
	Night    bool   `json:"night"`    // Use night sky and sun phases
	Format   string `json:"format"`   // "png" or "json"

	// Optional camera orbit in degrees (polar is elevation); NaN keeps the scene's value
	Azimuth float64 `json:"-"`
	Polar   float64 `json:"-"`
	Radius  float64 `json:"-"`
}

// RenderResponse is returned for format=json requests
type RenderResponse struct {
	Scene     string           `json:"scene"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	TotalTiles       int     `json:"totalTiles"`
	AverageSamples   float64 `json:"averageSamples"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// handleRender renders one frame and returns it as PNG or JSON
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := "render-" + strconv.FormatInt(s.renders.Add(1), 10)
	logger := NewWebLogger(renderID)

	config := integrator.DefaultConfig()
	config.MaxDepth = req.MaxDepth
	raytracer := renderer.NewRaytracer(sceneObj, sceneObj.Camera, integrator.NewWhitted(config), renderer.RenderConfig{
		TileSize:        renderer.DefaultTileSize,
		SamplesPerPixel: req.Samples,
		NumWorkers:      0, // Auto-detect
	}, logger)

	// Use request context to detect client disconnection
	ctx := r.Context()
	startTime := time.Now()

	fb := renderer.NewFramebuffer(req.Width, req.Height)
	stats, err := raytracer.Render(ctx, fb)
	if err != nil {
		log.Printf("[%s] render aborted: %v", renderID, err)
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("Render error: %v", err))
		return
	}

	img := fb.Image()
	data, err := encodePNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	if req.Format == "json" {
		writeJSON(w, http.StatusOK, RenderResponse{
			Scene:     sceneObj.Name,
			ImageData: base64.StdEncoding.EncodeToString(data),
			Stats: Stats{
				TotalPixels:      stats.TotalPixels,
				TotalSamples:     stats.TotalSamples,
				TotalTiles:       stats.TotalTiles,
				AverageSamples:   stats.AverageSamples(),
				AverageLuminance: renderer.CalculateAverageLuminance(img),
			},
			Console:   logger.Messages(),
			ElapsedMs: time.Since(startTime).Milliseconds(),
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[%s] error writing response: %v", renderID, err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene"), Format: query.Get("format")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "json":
	default:
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 100, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 300, 100, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 1, 1, 64); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", integrator.DefaultConfig().MaxDepth, 0, 16); err != nil {
		return nil, err
	}
	if req.Night, err = parseBoolParam(query, "night"); err != nil {
		return nil, err
	}
	if req.Azimuth, err = parseFloatParam(query, "azimuth", nan, -360, 360); err != nil {
		return nil, err
	}
	if req.Polar, err = parseFloatParam(query, "polar", nan, -90, 90); err != nil {
		return nil, err
	}
	if req.Radius, err = parseFloatParam(query, "radius", nan, geometry.MinRadius, geometry.MaxRadius); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 16 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// createScene builds the requested scene and applies sky and camera overrides.
// Only listed scene IDs are accepted; clients cannot name files.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.CreateByID(req.Scene)
	if err != nil {
		return nil, err
	}
	sceneObj.SetNight(req.Night)

	azimuth, polar, radius := sceneObj.Camera.Spherical()
	changed := false
	if !isNaN(req.Azimuth) {
		azimuth, changed = degToRad(req.Azimuth), true
	}
	if !isNaN(req.Polar) {
		polar, changed = degToRad(req.Polar), true
	}
	if !isNaN(req.Radius) {
		radius, changed = float32(req.Radius), true
	}
	if changed {
		sceneObj.Camera.SetOrbit(azimuth, polar, radius)
	}
	return sceneObj, nil
}

var nan = math.NaN()

func isNaN(v float64) bool { return math.IsNaN(v) }

func degToRad(deg float64) float32 {
	return float32(deg * math.Pi / 180)
}

// encodePNG encodes an image as PNG bytes
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
