package stage

import (
	"math"

	"github.com/sandtick/engine/material"
)

// cardinalOffsets are the four neighbors consulted by diffusion.
var cardinalOffsets = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// RunThermal runs the two-pass diffusion-then-phase-change stage over
// the entire grid, reading temp and writing temp_next, then swapping
// the buffers (spec.md §4.11). It does not consult or set the Updated
// flag. Returns the number of phase-change transitions applied.
func RunThermal(ctx *Context) int {
	g := ctx.Grid
	th := ctx.Cfg.Thermal
	phys := ctx.Cfg.Physics

	fireTemp := float32(th.FireTemperature)
	ambientCooling := float32(th.AmbientCoolingRate)
	diffusionRate := float32(th.DiffusionRate)
	minTemp := float32(phys.MinTemperature)
	maxTemp := float32(phys.MaxTemperature)
	ambientTemp := float32(phys.AmbientTemperature)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			id := g.Mat[i]
			temp := g.Temp[i]

			var next float32
			switch {
			case id == material.Fire:
				next = fireTemp
			case ctx.Mat.IsEmpty(id):
				next = temp + (ambientTemp-temp)*0.1
			default:
				rec := ctx.Mat.Get(id)
				k := rec.ThermalConductivity
				if k <= 0.001 {
					next = temp
					break
				}
				var heatIn float32
				count := 0
				for _, o := range cardinalOffsets {
					nx, ny := x+o[0], y+o[1]
					if !g.InBounds(nx, ny) {
						continue
					}
					count++
					ni := g.Index(nx, ny)
					nk := ctx.Mat.Get(g.Mat[ni]).ThermalConductivity
					var sq float32
					if k > 0 && nk > 0 {
						sq = float32(math.Sqrt(float64(k) * float64(nk)))
					}
					heatIn += (g.Temp[ni] - temp) * sq
				}
				var delta float32
				if count > 0 {
					delta = heatIn * diffusionRate / float32(count)
				}
				cEff := rec.HeatCapacity
				if cEff < 0.1 {
					cEff = 0.1
				}
				next = temp + delta/cEff
			}

			next += (ambientTemp - next) * ambientCooling
			if next < minTemp {
				next = minTemp
			}
			if next > maxTemp {
				next = maxTemp
			}
			g.TempNext[i] = next
		}
	}

	phaseChanges := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			id := g.Mat[i]
			t := g.TempNext[i]
			rec := ctx.Mat.Get(id)

			switch id {
			case material.Ice:
				if t > rec.MeltingTemperature {
					p := 0.01 + (t-rec.MeltingTemperature)*0.002
					if ctx.RNG.Chance(p) {
						g.Mat[i] = material.Water
						g.TempNext[i] = t - 10
						phaseChanges++
					}
				}
			case material.Water:
				if t < 0 {
					p := 0.005 + (-t)*0.001
					if ctx.RNG.Chance(p) {
						g.Mat[i] = material.Ice
						g.TempNext[i] = t + 5
						phaseChanges++
					}
				} else if t > rec.BoilingTemperature {
					p := 0.02 + (t-rec.BoilingTemperature)*0.005
					if ctx.RNG.Chance(p) {
						g.Mat[i] = material.Steam
						g.Lifetime[i] = 0
						g.TempNext[i] = t - 50
						phaseChanges++
					}
				}
			case material.Steam:
				if t < 80 {
					p := 0.01 + (80-t)*0.001
					if ctx.RNG.Chance(p) {
						g.Mat[i] = material.Water
						g.Lifetime[i] = 0
						g.TempNext[i] = t + 20
						phaseChanges++
					}
				}
			}
		}
	}

	g.Temp, g.TempNext = g.TempNext, g.Temp
	return phaseChanges
}
