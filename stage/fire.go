package stage

import (
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/iterate"
	"github.com/sandtick/engine/material"
)

// RunFire advances every Fire cell one tick: aging, death, smoke
// emission, spread to flammable neighbors, and rise (spec.md §4.8).
// Returns the number of cells that changed.
func RunFire(ctx *Context) int {
	updated := 0
	iterate.IterateFalling(ctx.Grid, ctx.RNG, func(x, y int) bool {
		if runFireCell(ctx, x, y) {
			updated++
		}
		return true
	})
	return updated
}

func runFireCell(ctx *Context, x, y int) bool {
	g := ctx.Grid
	if g.HasFlag(x, y, grid.FlagUpdated) {
		return false
	}
	if g.GetMat(x, y) != material.Fire {
		return false
	}

	i := g.Index(x, y)
	if g.Lifetime[i] < 255 {
		g.Lifetime[i]++
	}

	fc := ctx.Cfg.Fire
	if ctx.RNG.Chance(float32(fc.DieChance)) || int(g.Lifetime[i]) >= fc.MaxLifetime {
		r := ctx.RNG.Float32()
		var result material.ID
		switch {
		case r < float32(fc.AshChance):
			result = material.Ash
		case r < float32(fc.AshChance+fc.SmokeChance):
			result = material.Smoke
		default:
			result = material.Empty
		}
		g.SetMat(x, y, result)
		g.RemoveFlag(x, y, grid.FlagBurning)
		g.Lifetime[i] = 0
		g.MarkUpdated(x, y)
		return true
	}

	changed := false

	if ctx.RNG.Chance(float32(fc.SmokeEmitChance)) {
		if g.InBounds(x, y-1) && ctx.Mat.IsEmpty(g.GetMat(x, y-1)) {
			g.SetMat(x, y-1, material.Smoke)
			g.MarkUpdated(x, y-1)
			changed = true
		}
	}

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			if !ctx.RNG.Chance(float32(fc.SpreadChance)) {
				continue
			}
			if ctx.Beh.IsFlammable(g.GetMat(nx, ny)) {
				g.SetMat(nx, ny, material.Fire)
				g.AddFlag(nx, ny, grid.FlagBurning)
				g.MarkUpdated(nx, ny)
				changed = true
			}
		}
	}

	moved := false
	if ctx.RNG.Chance(float32(fc.RiseChance)) {
		moved = attemptGasMovement(ctx, x, y, float32(ctx.Cfg.Gas.SpreadChance))
	}

	if !moved {
		g.MarkUpdated(x, y)
	}

	return moved || changed
}
