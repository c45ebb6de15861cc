package CS2D

import (
	"fmt"
	"math"
	"strings"
)

// HeightFunc evaluates the terrain height at the local panel coordinates.
// The terrain model is a collaborator of the geometric factor kernel and is
// injected rather than hard coded.
type HeightFunc func(x0, x1 float64) float64

// DefaultTerrain is the sinusoidal test topography.
func DefaultTerrain(x0, x1 float64) float64 {
	return math.Sin(x0) + math.Cos(x1)
}

// FlatTerrain is the constant zero topography.
func FlatTerrain(x0, x1 float64) float64 {
	return 0
}

// TerrainByName maps the configuration value to a height function.
func TerrainByName(name string) (hs HeightFunc, err error) {
	switch strings.ToLower(name) {
	case "", "default", "sinusoidal":
		hs = DefaultTerrain
	case "flat":
		hs = FlatTerrain
	default:
		err = fmt.Errorf("unknown terrain model %q, valid models are \"default\" and \"flat\"", name)
	}
	return
}
