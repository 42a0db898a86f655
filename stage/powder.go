package stage

import (
	"github.com/sandtick/engine/fixed"
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/iterate"
	"github.com/sandtick/engine/material"
)

// RunPowder advances every Powder cell one tick (spec.md §4.6) and
// returns the number of cells that moved.
func RunPowder(ctx *Context) int {
	g := ctx.Grid
	updated := 0

	iterate.IterateFalling(g, ctx.RNG, func(x, y int) bool {
		if g.HasFlag(x, y, grid.FlagUpdated) {
			return true
		}
		id := g.GetMat(x, y)
		if !ctx.Mat.IsPowder(id) {
			return true
		}
		rec := ctx.Mat.Get(id)

		if ctx.RNG.Chance(rec.SettleProbability) {
			below := g.GetMat(x, y+1)
			dl := g.GetMat(x-1, y+1)
			dr := g.GetMat(x+1, y+1)
			if !passableForPowder(ctx.Mat, below) &&
				!passableForPowder(ctx.Mat, dl) &&
				!passableForPowder(ctx.Mat, dr) {
				return true
			}
		}

		i := g.Index(x, y)
		vy := fixed.Add(g.VelY[i], rec.GravityStepFixed)
		vy = fixed.Mul(vy, rec.DragFactorFixed)
		vy = fixed.Clamp(vy, rec.TerminalVelocityFixed)
		g.VelY[i] = vy

		n := fallSteps(vy, 3)

		moved := false
		cx, cy := x, y
		for step := 0; step < n; step++ {
			ny := cy + 1
			if !g.InBounds(cx, ny) {
				g.VelY[g.Index(cx, cy)] = 0
				break
			}
			if !passableForPowder(ctx.Mat, g.GetMat(cx, ny)) {
				g.VelY[g.Index(cx, cy)] = 0
				break
			}
			if executePowderMove(ctx, cx, cy, cx, ny, rec) {
				moved = true
				cy = ny
			} else {
				g.VelY[g.Index(cx, cy)] = 0
				break
			}
		}

		if !moved && n == 1 {
			leftPassable := passableForPowder(ctx.Mat, g.GetMat(x-1, y+1))
			rightPassable := passableForPowder(ctx.Mat, g.GetMat(x+1, y+1))
			clumped := leftPassable && rightPassable && rec.Cohesion > 0 && ctx.RNG.Chance(rec.Cohesion)
			if !clumped {
				order := [2]int{-1, 1}
				if !ctx.RNG.Chance(rec.SlideBias) {
					order = [2]int{1, -1}
				}
				for _, dx := range order {
					tx, ty := x+dx, y+1
					if !passableForPowder(ctx.Mat, g.GetMat(tx, ty)) {
						continue
					}
					if executePowderMove(ctx, x, y, tx, ty, rec) {
						moved = true
						break
					}
				}
			}
		}

		if moved {
			updated++
		}
		return true
	})

	return updated
}

// executePowderMove commits a single-cell powder move from (sx,sy) to
// (dx,dy): unconditional swap into Empty, density-gated swap into
// Fluid/Gas, and an optional splash when displacing a fast-falling
// fluid (spec.md §4.6 step 6).
func executePowderMove(ctx *Context, sx, sy, dx, dy int, rec *material.Record) bool {
	g := ctx.Grid
	targetID := g.GetMat(dx, dy)

	switch {
	case ctx.Mat.IsEmpty(targetID):
		g.SwapCells(sx, sy, dx, dy)
		g.MarkUpdated(sx, sy)
		g.MarkUpdated(dx, dy)
		return true

	case ctx.Mat.IsFluid(targetID) || ctx.Mat.IsGas(targetID):
		targetRec := ctx.Mat.Get(targetID)
		if rec.Density <= targetRec.Density {
			return false
		}
		vAbs := fixed.Abs(g.VelY[g.Index(sx, sy)])
		isFluid := ctx.Mat.IsFluid(targetID)
		g.SwapCells(sx, sy, dx, dy)
		g.MarkUpdated(sx, sy)
		g.MarkUpdated(dx, dy)
		threshold := fixed.FromFloat(ctx.Cfg.Powder.SplashVelocityThreshold)
		if isFluid && vAbs > threshold {
			trySplash(ctx, dx, dy, targetID)
		}
		return true

	default:
		return false
	}
}

// trySplash spawns a side-splash of the just-displaced fluid one cell
// up and one cell sideways from the swap destination, in a random
// direction, only if that cell is empty or gas (spec.md §4.6 step 6).
func trySplash(ctx *Context, dx, dy int, fluidID material.ID) {
	g := ctx.Grid
	dir := 1
	if ctx.RNG.Bool() {
		dir = -1
	}
	sx, sy := dx+dir, dy-1
	if !g.InBounds(sx, sy) {
		return
	}
	targetID := g.GetMat(sx, sy)
	if !(ctx.Mat.IsEmpty(targetID) || ctx.Mat.IsGas(targetID)) {
		return
	}

	idx := g.Index(sx, sy)
	g.Mat[idx] = fluidID
	g.ColorSeed[idx] = g.ColorSeed[g.Index(dx, dy)]
	g.VelX[idx] = fixed.FromFloat(ctx.Cfg.Powder.SplashVelX * float64(dir))
	g.VelY[idx] = fixed.FromFloat(ctx.Cfg.Powder.SplashVelY)
	g.ActivateChunkAt(sx, sy)
	g.MarkUpdated(sx, sy)
}
