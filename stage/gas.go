package stage

import (
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/iterate"
	"github.com/sandtick/engine/material"
)

// RunGas advances every non-Fire gas cell (Smoke, Steam) one tick
// (spec.md §4.9) and returns the number of cells that moved or
// transformed.
func RunGas(ctx *Context) int {
	updated := 0
	iterate.IterateRising(ctx.Grid, ctx.RNG, func(x, y int) bool {
		if runGasCell(ctx, x, y) {
			updated++
		}
		return true
	})
	return updated
}

func runGasCell(ctx *Context, x, y int) bool {
	g := ctx.Grid
	if g.HasFlag(x, y, grid.FlagUpdated) {
		return false
	}
	id := g.GetMat(x, y)
	if id != material.Smoke && id != material.Steam {
		return false
	}

	i := g.Index(x, y)
	if g.Lifetime[i] < 255 {
		g.Lifetime[i]++
	}

	if id == material.Smoke {
		p := ctx.Cfg.Gas.SmokeDissipateBase * (1 + float64(g.Lifetime[i])/100)
		if ctx.RNG.Chance(float32(p)) {
			g.SetMat(x, y, material.Empty)
			g.Lifetime[i] = 0
			g.MarkUpdated(x, y)
			return true
		}
	}

	if id == material.Steam {
		threshold := ctx.Cfg.Gas.SteamCondenseThreshold
		temp := float64(g.Temp[i])
		if temp < threshold {
			p := ctx.Cfg.Gas.SteamCondenseBase * (threshold - temp) / threshold
			if ctx.RNG.Chance(float32(p)) {
				g.SetMat(x, y, material.Water)
				g.Lifetime[i] = 0
				g.MarkUpdated(x, y)
				return true
			}
		}
	}

	riseChance := ctx.Cfg.Gas.SmokeRiseChance
	if id == material.Steam {
		riseChance = ctx.Cfg.Gas.SteamRiseChance
	}
	if ctx.RNG.Float32() > float32(riseChance) {
		return false
	}

	return attemptGasMovement(ctx, x, y, float32(ctx.Cfg.Gas.SpreadChance))
}

// attemptGasMovement tries, in priority order, to move a gas cell
// straight up, diagonally up, sideways (gated by spreadChance), or to
// bubble up through an overlying fluid (spec.md §4.9 step 5). Shared
// with the fire stage's rise behavior (spec.md §4.8 step 5).
func attemptGasMovement(ctx *Context, x, y int, spreadChance float32) bool {
	g := ctx.Grid

	if g.InBounds(x, y-1) && passableForGas(ctx.Mat, g.GetMat(x, y-1)) {
		g.SwapCells(x, y, x, y-1)
		g.MarkUpdated(x, y)
		g.MarkUpdated(x, y-1)
		return true
	}

	if g.InBounds(x, y-1) {
		leftOK := g.InBounds(x-1, y-1) && passableForGas(ctx.Mat, g.GetMat(x-1, y-1))
		rightOK := g.InBounds(x+1, y-1) && passableForGas(ctx.Mat, g.GetMat(x+1, y-1))
		if leftOK || rightOK {
			tx := pickSide(ctx, leftOK, rightOK, x-1, x+1)
			g.SwapCells(x, y, tx, y-1)
			g.MarkUpdated(x, y)
			g.MarkUpdated(tx, y-1)
			return true
		}
	}

	if ctx.RNG.Chance(spreadChance) {
		leftOK := g.InBounds(x-1, y) && passableForGas(ctx.Mat, g.GetMat(x-1, y))
		rightOK := g.InBounds(x+1, y) && passableForGas(ctx.Mat, g.GetMat(x+1, y))
		if leftOK || rightOK {
			tx := pickSide(ctx, leftOK, rightOK, x-1, x+1)
			g.SwapCells(x, y, tx, y)
			g.MarkUpdated(x, y)
			g.MarkUpdated(tx, y)
			return true
		}
	}

	if g.InBounds(x, y-1) && ctx.Mat.IsFluid(g.GetMat(x, y-1)) {
		g.SwapCells(x, y, x, y-1)
		g.MarkUpdated(x, y)
		g.MarkUpdated(x, y-1)
		return true
	}

	return false
}

// pickSide resolves a left/right candidate pair to one side, breaking
// ties with one RNG bit (spec.md §9 "centralize tie-breaks").
func pickSide(ctx *Context, leftOK, rightOK bool, leftX, rightX int) int {
	switch {
	case leftOK && rightOK:
		if ctx.RNG.Bool() {
			return leftX
		}
		return rightX
	case leftOK:
		return leftX
	default:
		return rightX
	}
}
