package stage

import (
	"github.com/sandtick/engine/fixed"
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/iterate"
	"github.com/sandtick/engine/material"
)

// RunFluid advances every Fluid cell through cfg.Fluid.Passes
// BottomUp+Random passes (two by default; at least one) (spec.md §4.7),
// clearing the Updated flag between passes, and returns the total
// number of cells that moved across all passes.
func RunFluid(ctx *Context) int {
	g := ctx.Grid
	updated := 0

	passes := ctx.Cfg.Fluid.Passes
	if passes <= 0 {
		passes = 1
	}

	iterate.TraverseMultiPass(g, iterate.BottomUp, iterate.Random, ctx.RNG, passes,
		func() { g.ClearTickFlags() },
		func(x, y int) bool {
			if runFluidCell(ctx, x, y) {
				updated++
			}
			return true
		})

	return updated
}

func runFluidCell(ctx *Context, x, y int) bool {
	g := ctx.Grid
	if g.HasFlag(x, y, grid.FlagUpdated) {
		return false
	}
	id := g.GetMat(x, y)
	if !ctx.Mat.IsFluid(id) {
		return false
	}
	rec := ctx.Mat.Get(id)

	i := g.Index(x, y)
	vy := fixed.Add(g.VelY[i], rec.GravityStepFixed)
	vy = fixed.Mul(vy, rec.DragFactorFixed)
	vy = fixed.Clamp(vy, rec.TerminalVelocityFixed)
	g.VelY[i] = vy

	cx, cy := x, y
	fellAny := false
	if vy > 0 {
		n := fallSteps(vy, 2)
		for step := 0; step < n; step++ {
			ny := cy + 1
			if !g.InBounds(cx, ny) || !passableForFluid(ctx.Mat, g.GetMat(cx, ny)) {
				g.VelY[g.Index(cx, cy)] = 0
				break
			}
			g.SwapCells(cx, cy, cx, ny)
			g.MarkUpdated(cx, cy)
			g.MarkUpdated(cx, ny)
			fellAny = true
			cy = ny
		}
	}

	if fellAny {
		applyHorizontalDrag(g, cx, cy, rec)
		return true
	}

	if ctx.RNG.Chance(float32(ctx.Cfg.Fluid.FlowTryProbability)) && ctx.RNG.Chance(rec.FlowRate) {
		leftOK := passableForFluid(ctx.Mat, g.GetMat(x-1, y))
		rightOK := passableForFluid(ctx.Mat, g.GetMat(x+1, y))
		tx, flowed := x, false
		switch {
		case leftOK && rightOK:
			if ctx.RNG.Bool() {
				tx = x - 1
			} else {
				tx = x + 1
			}
			flowed = true
		case leftOK:
			tx = x - 1
			flowed = true
		case rightOK:
			tx = x + 1
			flowed = true
		}
		if flowed {
			g.SwapCells(x, y, tx, y)
			g.MarkUpdated(x, y)
			g.MarkUpdated(tx, y)
			applyHorizontalDrag(g, tx, y, rec)
			return true
		}
	}

	if ctx.RNG.Chance(float32(ctx.Cfg.Fluid.PressureTryProbability)) {
		selfHeight := columnHeight(g, id, x, y)
		threshold := ctx.Cfg.Fluid.PressureThreshold

		if passableForFluid(ctx.Mat, g.GetMat(x-1, y)) {
			if columnHeight(g, id, x-1, y) < selfHeight-threshold {
				g.SwapCells(x, y, x-1, y)
				g.MarkUpdated(x, y)
				g.MarkUpdated(x-1, y)
				applyHorizontalDrag(g, x-1, y, rec)
				return true
			}
		}
		if passableForFluid(ctx.Mat, g.GetMat(x+1, y)) {
			if columnHeight(g, id, x+1, y) < selfHeight-threshold {
				g.SwapCells(x, y, x+1, y)
				g.MarkUpdated(x, y)
				g.MarkUpdated(x+1, y)
				applyHorizontalDrag(g, x+1, y, rec)
				return true
			}
		}
	}

	applyHorizontalDrag(g, x, y, rec)
	return false
}

// columnHeight counts the contiguous run of cells holding material id,
// scanning upward from (x, y) inclusive, used as a cheap hydrostatic
// pressure proxy (spec.md §4.7 step 5, glossary).
func columnHeight(g *grid.Grid, id material.ID, x, y int) int {
	count := 0
	for cy := y; g.InBounds(x, cy) && g.GetMat(x, cy) == id; cy-- {
		count++
	}
	return count
}

func applyHorizontalDrag(g *grid.Grid, x, y int, rec *material.Record) {
	i := g.Index(x, y)
	g.VelX[i] = fixed.Mul(g.VelX[i], rec.DragFactorFixed)
}
