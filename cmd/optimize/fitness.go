package main

import (
	"sync"

	"github.com/sandtick/engine/config"
	"github.com/sandtick/engine/engine"
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/material"
	"github.com/sandtick/engine/scenario"
)

// settleFraction is the share of chunks still allowed to be active
// before a run counts as "settled" — a small residual (e.g. a single
// smoldering ember) shouldn't block convergence the way a still-
// cascading sandpile should.
const settleFraction = 0.05

// survivalTarget is the minimum fraction of the starting non-Empty
// cell count that must remain at the end of a run for that run to
// avoid the destruction penalty (fire/acid consuming the whole
// scenario is exactly the failure mode this guards against).
const survivalTarget = 0.5

// FitnessEvaluator runs headless simulations across a fixed seed set
// and scores how quickly they settle without dissolving, grounded on
// the teacher's FitnessEvaluator (multi-seed headless run averaging
// into one scalar CMA-ES minimizes).
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastSettled float64 // mean settle fraction from the most recent Evaluate, for progress printing
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{params: params, maxTicks: maxTicks, seeds: seeds, baseConfig: baseCfg}
}

// LastSettled returns the mean fraction of maxTicks used to settle
// across the most recent Evaluate call's seeds, for progress output.
func (fe *FitnessEvaluator) LastSettled() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSettled
}

// Evaluate computes fitness for a parameter vector (lower is better:
// fewer ticks to settle, with a penalty added when the scenario's
// material is substantially destroyed).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var totalFitness, totalSettled float64
	for _, seed := range fe.seeds {
		settleTick, fitness := fe.runOne(cfg, seed)
		totalFitness += fitness
		totalSettled += float64(settleTick) / float64(fe.maxTicks)
	}

	fe.mu.Lock()
	fe.lastSettled = totalSettled / float64(len(fe.seeds))
	fe.mu.Unlock()

	return totalFitness / float64(len(fe.seeds))
}

// runOne builds a fixed fixture (a sand layer over a stone floor, a
// block of wood ignited at the center), runs it for up to maxTicks,
// and returns the tick at which chunk activity dropped to
// settleFraction of all chunks (or maxTicks if it never did) along
// with this seed's fitness contribution.
func (fe *FitnessEvaluator) runOne(cfg *config.Config, seed int64) (int32, float64) {
	eng, err := engine.New(cfg, uint32(seed))
	if err != nil {
		return fe.maxTicks, float64(fe.maxTicks) * 2
	}
	g := eng.Grid()
	w, h := g.Dimensions()

	gen := scenario.NewGenerator(seed)
	gen.Terrain(g, scenario.DefaultTerrainConfig())
	gen.Scatter(g, scenario.ScatterConfig{Material: material.Sand, Density: 0.4, RegionTop: 0, RegionBottom: h / 3})
	scenario.Pool(g, w/2-5, h/2-5, w/2+5, h/2+5, material.Wood)
	g.SetMat(w/2, h/2, material.Fire)

	startNonEmpty := countNonEmpty(g)
	totalChunks := g.ChunksX * g.ChunksY
	settleThreshold := int(float64(totalChunks) * settleFraction)

	settleTick := fe.maxTicks
	for t := int32(0); t < fe.maxTicks; t++ {
		eng.StepOnce()
		if g.ActiveChunkCount() <= settleThreshold {
			settleTick = t + 1
			break
		}
	}

	endNonEmpty := countNonEmpty(g)
	survival := 1.0
	if startNonEmpty > 0 {
		survival = float64(endNonEmpty) / float64(startNonEmpty)
	}

	fitness := float64(settleTick)
	if survival < survivalTarget {
		fitness += (survivalTarget - survival) * float64(fe.maxTicks)
	}
	return settleTick, fitness
}

func (fe *FitnessEvaluator) copyConfig() *config.Config {
	c := *fe.baseConfig
	return &c
}

func countNonEmpty(g *grid.Grid) int {
	w, h := g.Dimensions()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.GetMat(x, y) != material.Empty {
				n++
			}
		}
	}
	return n
}
