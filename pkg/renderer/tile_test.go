package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"Exact fit", 64, 64, 32, 4},
		{"Partial edge tiles", 70, 40, 32, 6},
		{"Single tile", 10, 10, 32, 1},
		{"Default tile size", 64, 32, 0, 2},
		{"Empty image", 0, 10, 32, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			// Tiles cover every pixel exactly once
			covered := make(map[image.Point]int)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[image.Pt(x, y)]++
					}
				}
			}
			if len(covered) != tt.width*tt.height && tt.expectedTiles > 0 {
				t.Errorf("Expected %d covered pixels, got %d", tt.width*tt.height, len(covered))
			}
			for p, n := range covered {
				if n != 1 {
					t.Errorf("Pixel %v covered %d times", p, n)
				}
			}
		})
	}
}

func TestNewTile_DeterministicRandom(t *testing.T) {
	a := NewTile(3, image.Rect(0, 0, 8, 8))
	b := NewTile(3, image.Rect(0, 0, 8, 8))
	for i := 0; i < 10; i++ {
		if a.Random.Float32() != b.Random.Float32() {
			t.Fatal("Expected identical jitter sequences for the same tile ID")
		}
	}
}
