// Package scenario builds reproducible starting grids for the sandbox
// demo and for tests, using the same OpenSimplex fractal-Brownian-
// motion technique the teacher uses to generate its resource field
// (systems/resource_field.go's fbmTiled), repurposed here from a
// continuously sampled scalar field into a one-shot heightmap used to
// paint discrete terrain bands.
package scenario

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/material"
)

// NoiseConfig controls the fractal Brownian motion octave stack,
// named and defaulted the way the teacher's ResourceField config
// fields are (systems/resource_field.go's Octaves/Scale/Lacunarity/Gain).
type NoiseConfig struct {
	Octaves    int
	Scale      float64
	Lacunarity float64
	Gain       float64
}

// DefaultNoiseConfig returns reasonable terrain-heightmap defaults.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{Octaves: 4, Scale: 0.02, Lacunarity: 2.0, Gain: 0.5}
}

// Generator produces deterministic terrain and fixture layouts from a
// single OpenSimplex noise source, seeded independently of the
// engine's tick RNG so regenerating a scenario never perturbs
// simulation determinism.
type Generator struct {
	noise opensimplex.Noise
}

// NewGenerator creates a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{noise: opensimplex.New(seed)}
}

// fbm2D samples cfg.Octaves octaves of 2D OpenSimplex noise at (x, y),
// folding the [-1, 1] output of each octave into [0, 1] before
// summing, mirroring fbmTiled's per-octave remap.
func (g *Generator) fbm2D(x, y float64, cfg NoiseConfig) float64 {
	sum := 0.0
	amp := 0.5
	freq := cfg.Scale
	for o := 0; o < cfg.Octaves; o++ {
		n := (g.noise.Eval2(x*freq, y*freq) + 1) * 0.5
		sum += amp * n
		freq *= cfg.Lacunarity
		amp *= cfg.Gain
	}
	if sum < 0 {
		return 0
	}
	if sum > 1 {
		return 1
	}
	return sum
}

// SampleHeight exposes fbm2D for tooling that previews the noise field
// directly (cmd/terrainpreview) rather than the discretized terrain it
// produces.
func (g *Generator) SampleHeight(x, y float64, cfg NoiseConfig) float64 {
	return g.fbm2D(x, y, cfg)
}

// TerrainConfig parameterizes Terrain's layered fill.
type TerrainConfig struct {
	Noise       NoiseConfig
	GroundLevel float64 // fraction of height (0=top,1=bottom) the noise heightmap centers on
	Amplitude   float64 // fraction of height the heightmap can deviate by
	WaterLevel  int     // rows from the top that are flooded with Water above the terrain surface; 0 disables
	Floor       material.ID
}

// DefaultTerrainConfig returns a rolling stone terrain centered at 60%
// of the grid height, with no water (WaterLevel 0).
func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Noise:       DefaultNoiseConfig(),
		GroundLevel: 0.6,
		Amplitude:   0.15,
		Floor:       material.Stone,
	}
}

// Terrain paints a noise-driven undulating floor of cfg.Floor into g,
// optionally flooding the empty space above it up to cfg.WaterLevel
// rows from the top with Water. Each column's surface height comes
// from an independent 1D noise sample (fbm2D with a fixed y), so the
// terrain varies left-to-right but each column is a flat vertical
// run of solid material below its surface.
func (gen *Generator) Terrain(g *grid.Grid, cfg TerrainConfig) {
	w, h := g.Dimensions()
	for x := 0; x < w; x++ {
		n := gen.fbm2D(float64(x), 0, cfg.Noise)
		surface := cfg.GroundLevel + (n-0.5)*2*cfg.Amplitude
		surfaceY := int(surface * float64(h))
		if surfaceY < 0 {
			surfaceY = 0
		}
		if surfaceY > h {
			surfaceY = h
		}
		for y := surfaceY; y < h; y++ {
			g.SetMat(x, y, cfg.Floor)
		}
		if cfg.WaterLevel > 0 {
			for y := 0; y < surfaceY && y < cfg.WaterLevel; y++ {
				g.SetMat(x, y, material.Water)
			}
		}
	}
}

// ScatterConfig parameterizes Scatter's random deposition.
type ScatterConfig struct {
	Material     material.ID
	Density      float64 // threshold on a single-octave noise value in [0, 0.5]; an empty cell whose value is below it receives Material (0.5 or more fills every empty cell)
	RegionTop    int
	RegionBottom int
}

// Scatter deposits cfg.Material into empty cells within the half-open
// row range [RegionTop, RegionBottom) at the given density, using a
// second, independent noise channel (offset in x) so scatter and
// terrain never correlate cell-for-cell.
func (gen *Generator) Scatter(g *grid.Grid, cfg ScatterConfig) {
	w, _ := g.Dimensions()
	for y := cfg.RegionTop; y < cfg.RegionBottom; y++ {
		for x := 0; x < w; x++ {
			if g.GetMat(x, y) != material.Empty {
				continue
			}
			n := gen.fbm2D(float64(x)+10000, float64(y), NoiseConfig{Octaves: 1, Scale: 1.0, Lacunarity: 2, Gain: 0.5})
			if n < cfg.Density {
				g.SetMat(x, y, cfg.Material)
			}
		}
	}
}

// Pool fills a rectangular region [x0,x1) x [y0,y1) with m, clipped to
// the grid bounds — the simplest fixture primitive, grounded on the
// teacher's ResourceField hotspot definitions (a named region with
// fixed bounds) but discretized to whole cells.
func Pool(g *grid.Grid, x0, y0, x1, y1 int, m material.ID) {
	w, h := g.Dimensions()
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			g.SetMat(x, y, m)
		}
	}
}

