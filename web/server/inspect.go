package server

import (
	"fmt"
	"net/http"

	"github.com/chewxy/math32"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialName string                 `json:"materialName"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	UV           [2]float32             `json:"uv"`
	Color        [3]uint8               `json:"color"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo describes a material's shading coefficients
func extractMaterialInfo(mat *material.Material) map[string]interface{} {
	properties := make(map[string]interface{})
	if mat == nil {
		return properties
	}
	properties["color"] = colorArray(mat.Color)
	properties["diffuse"] = mat.Albedo[material.AlbedoDiffuse]
	properties["specular"] = mat.Albedo[material.AlbedoSpecular]
	properties["reflective"] = mat.Albedo[material.AlbedoReflective]
	properties["transparent"] = mat.Albedo[material.AlbedoTransparent]
	properties["specularExponent"] = mat.Specular
	properties["refractiveIndex"] = mat.RefractiveIndex
	properties["textured"] = mat.Texture != nil
	properties["normalMapped"] = mat.NormalMap != nil
	if mat.IsEmissive() {
		properties["emissive"] = colorArray(mat.Emissive)
	}
	return properties
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Cube:
		properties["center"] = vecArray(geom.Center)
		properties["size"] = geom.Size
		return "cube", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		properties["halfExtent"] = geom.HalfExtent
		properties["uvScale"] = geom.UVScale
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of the pixel and returns the closest hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (*geometry.HitRecord, bool) {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY, width, height, 0.5, 0.5)
	return integrator.FindClosest(ray, sceneObj.GetShapes(), 0, math32.Inf(1))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	// Parse common scene parameters using the render request parser
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hit, ok := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !ok {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	geometryType, geometryProps := extractGeometryInfo(hit.Shape)
	materialName := ""
	if hit.Material != nil {
		materialName = hit.Material.Name
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialName: materialName,
		GeometryType: geometryType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		UV:           [2]float32{hit.U, hit.V},
		Color:        colorArray(hit.Color),
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(hit.Material),
			"geometry": geometryProps,
			"pixel":    fmt.Sprintf("%d,%d", pixelX, pixelY),
		},
	})
}

func vecArray(v core.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func colorArray(c core.Color) [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}
