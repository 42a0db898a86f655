// Package grid implements the SoA cell grid, its double-buffered
// fields, flag operations, chunk activation, and paint primitives
// (spec.md §3, §4.2).
package grid

import (
	"fmt"

	"github.com/sandtick/engine/fixed"
	"github.com/sandtick/engine/material"
	"github.com/sandtick/engine/tickrng"
)

// Flag bits (spec.md §3).
const (
	FlagUpdated uint16 = 1 << iota
	FlagStatic
	FlagBurning
	FlagWet
	FlagHot
	FlagActive
	FlagCorroding
	FlagFrozen
)

// Grid is a W x H lattice of cells, stored as parallel arrays (SoA).
// Out-of-bounds reads return the Empty material and are treated as
// impassable solid for movement validation; out-of-bounds writes are
// no-ops.
type Grid struct {
	W, H int

	Mat     []material.ID
	MatNext []material.ID // reserved; unused by the stages in this spec

	Flags []uint16

	ColorSeed []uint32

	Temp     []float32
	TempNext []float32

	Pressure []float32 // reserved; unused by the stages in this spec
	Density  []float32 // reserved; unused by the stages in this spec

	VelX, VelY []fixed.Q8_8

	Lifetime []uint8

	ChunkSize         int
	ChunksX, ChunksY  int
	ChunkActive       []bool
	ChunkActiveNext   []bool
	lastActiveCount   int
}

// New allocates a grid of the given dimensions, with all cells Empty,
// temperature at ambientTemp, random color seeds drawn from rng, and
// every chunk initially active (spec.md §3 Lifecycle).
func New(w, h, chunkSize int, ambientTemp float32, rng *tickrng.RNG) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid: invalid dimensions %dx%d", w, h)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("grid: invalid chunk size %d", chunkSize)
	}

	size := w * h
	chunksX := (w + chunkSize - 1) / chunkSize
	chunksY := (h + chunkSize - 1) / chunkSize
	chunkCount := chunksX * chunksY

	g := &Grid{
		W: w, H: h,
		Mat:       make([]material.ID, size),
		MatNext:   make([]material.ID, size),
		Flags:     make([]uint16, size),
		ColorSeed: make([]uint32, size),
		Temp:      make([]float32, size),
		TempNext:  make([]float32, size),
		Pressure:  make([]float32, size),
		Density:   make([]float32, size),
		VelX:      make([]fixed.Q8_8, size),
		VelY:      make([]fixed.Q8_8, size),
		Lifetime:  make([]uint8, size),

		ChunkSize:       chunkSize,
		ChunksX:         chunksX,
		ChunksY:         chunksY,
		ChunkActive:     make([]bool, chunkCount),
		ChunkActiveNext: make([]bool, chunkCount),
	}

	for i := range g.Temp {
		g.Temp[i] = ambientTemp
		g.ColorSeed[i] = rng.Next()
	}
	for i := range g.ChunkActive {
		g.ChunkActive[i] = true
	}
	g.lastActiveCount = chunkCount

	return g, nil
}

// Index returns the flat array index for (x, y). Callers must check
// InBounds first; Index does not bounds-check.
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Dimensions returns the grid's width and height, satisfying the
// iterate.Grid interface.
func (g *Grid) Dimensions() (w, h int) { return g.W, g.H }

// InBounds reports whether (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// GetMat returns the material at (x, y), or Empty if out of bounds.
func (g *Grid) GetMat(x, y int) material.ID {
	if !g.InBounds(x, y) {
		return material.Empty
	}
	return g.Mat[g.Index(x, y)]
}

// SetMat writes the material at (x, y), zeroing velocity and
// activating the cell's chunk neighborhood. A no-op out of bounds.
func (g *Grid) SetMat(x, y int, m material.ID) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.Index(x, y)
	g.Mat[i] = m
	g.VelX[i] = 0
	g.VelY[i] = 0
	g.ActivateChunkAt(x, y)
}

// GetFlags returns the flag bitmask at (x, y), or 0 if out of bounds.
func (g *Grid) GetFlags(x, y int) uint16 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.Flags[g.Index(x, y)]
}

// SetFlags overwrites the flag bitmask at (x, y). No-op out of bounds.
func (g *Grid) SetFlags(x, y int, flags uint16) {
	if !g.InBounds(x, y) {
		return
	}
	g.Flags[g.Index(x, y)] = flags
}

// AddFlag sets bits in mask at (x, y). No-op out of bounds.
func (g *Grid) AddFlag(x, y int, mask uint16) {
	if !g.InBounds(x, y) {
		return
	}
	g.Flags[g.Index(x, y)] |= mask
}

// RemoveFlag clears bits in mask at (x, y). No-op out of bounds.
func (g *Grid) RemoveFlag(x, y int, mask uint16) {
	if !g.InBounds(x, y) {
		return
	}
	g.Flags[g.Index(x, y)] &^= mask
}

// HasFlag reports whether every bit in mask is set at (x, y). Out of
// bounds is treated as having no flags.
func (g *Grid) HasFlag(x, y int, mask uint16) bool {
	return g.GetFlags(x, y)&mask == mask
}

// SwapCells exchanges material, color seed, velocity, and lifetime
// between two cells atomically w.r.t. the grid. Flags and temperature
// are not swapped. Both chunks are activated. A no-op if either cell
// is out of bounds.
func (g *Grid) SwapCells(x1, y1, x2, y2 int) {
	if !g.InBounds(x1, y1) || !g.InBounds(x2, y2) {
		return
	}
	i, j := g.Index(x1, y1), g.Index(x2, y2)

	g.Mat[i], g.Mat[j] = g.Mat[j], g.Mat[i]
	g.ColorSeed[i], g.ColorSeed[j] = g.ColorSeed[j], g.ColorSeed[i]
	g.VelX[i], g.VelX[j] = g.VelX[j], g.VelX[i]
	g.VelY[i], g.VelY[j] = g.VelY[j], g.VelY[i]
	g.Lifetime[i], g.Lifetime[j] = g.Lifetime[j], g.Lifetime[i]

	g.ActivateChunkAt(x1, y1)
	g.ActivateChunkAt(x2, y2)
}

// MarkUpdated sets the Updated flag on (x, y). A convenience wrapper
// used by every stage after a successful movement (spec.md §4.2
// invariant: movement sets Updated on both endpoints).
func (g *Grid) MarkUpdated(x, y int) {
	g.AddFlag(x, y, FlagUpdated)
}

// Clear resets material, flags, velocity, and lifetime to zero on
// every cell; color seed and temperature are left alone (spec.md
// §4.2).
func (g *Grid) Clear() {
	for i := range g.Mat {
		g.Mat[i] = material.Empty
		g.MatNext[i] = material.Empty
		g.Flags[i] = 0
		g.VelX[i] = 0
		g.VelY[i] = 0
		g.Lifetime[i] = 0
	}
}

// ClearTickFlags clears the Updated bit on every cell. Called once at
// the start of every tick by the driver (spec.md §4.1).
func (g *Grid) ClearTickFlags() {
	for i := range g.Flags {
		g.Flags[i] &^= FlagUpdated
	}
}

// GetCellColor returns the material's base color at (x, y) perturbed
// by the cell's color seed (spec.md §4.2).
func (g *Grid) GetCellColor(x, y int, mat *material.Table) (r, gr, b, a uint8) {
	if !g.InBounds(x, y) {
		return mat.Color(material.Empty, 0)
	}
	i := g.Index(x, y)
	return mat.Color(g.Mat[i], g.ColorSeed[i])
}
