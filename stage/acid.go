package stage

import (
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/iterate"
	"github.com/sandtick/engine/material"
)

// RunAcid scans every Acid cell's 8 neighbors for a corrosion reaction
// (spec.md §4.10); acid's own movement is handled by RunFluid since
// Acid's state is Fluid. Returns the number of reactions applied.
func RunAcid(ctx *Context) int {
	updated := 0
	iterate.IterateFalling(ctx.Grid, ctx.RNG, func(x, y int) bool {
		if runAcidCell(ctx, x, y) {
			updated++
		}
		return true
	})
	return updated
}

func runAcidCell(ctx *Context, x, y int) bool {
	g := ctx.Grid
	if g.HasFlag(x, y, grid.FlagUpdated) {
		return false
	}
	if g.GetMat(x, y) != material.Acid {
		return false
	}

	ac := ctx.Cfg.Acid

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			if !ctx.Beh.IsCorrodible(g.GetMat(nx, ny)) {
				continue
			}
			if !ctx.RNG.Chance(float32(ac.CorrosionChance)) {
				continue
			}

			if ctx.RNG.Chance(float32(ac.SmokeByproductChance)) {
				g.SetMat(nx, ny, material.Smoke)
				g.Lifetime[g.Index(nx, ny)] = 0
			} else {
				g.SetMat(nx, ny, material.Empty)
			}
			g.MarkUpdated(nx, ny)

			if ctx.RNG.Chance(float32(1 - ac.SurviveChance)) {
				g.SetMat(x, y, material.Empty)
			}
			g.MarkUpdated(x, y)

			return true
		}
	}

	return false
}
