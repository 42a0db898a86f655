// Package engine implements the fixed-tick driver that owns the grid,
// sequences the six simulation stages every tick, and exposes the
// external collaborator interface consumed by painting and rendering
// code between ticks (spec.md §4.1, §5, §6).
package engine

import (
	"fmt"
	"log/slog"

	"github.com/sandtick/engine/behavior"
	"github.com/sandtick/engine/config"
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/material"
	"github.com/sandtick/engine/stage"
	"github.com/sandtick/engine/telemetry"
	"github.com/sandtick/engine/tickrng"
)

// Engine owns the grid exclusively for the duration of a tick.
// External collaborators (paint input, renderer, telemetry) may only
// read or mutate the grid between ticks; the engine itself never
// blocks and never consults a wall-clock source for randomness
// (spec.md §5).
type Engine struct {
	grid *grid.Grid
	mat  *material.Table
	beh  *behavior.Table
	cfg  *config.Config

	dt          float64
	accumulator float64
	paused      bool

	masterRNG *tickrng.RNG
	tickCount uint64

	perf     *telemetry.PerfCollector
	stats    *telemetry.Collector
	output   *telemetry.OutputManager
	logStats bool
}

// New builds an engine and its grid from cfg, seeded for full
// determinism: the same seed, config, and paint sequence reproduce a
// byte-identical simulation across runs (spec.md §8 Determinism law).
func New(cfg *config.Config, seed uint32) (*Engine, error) {
	mat, err := material.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	rng := tickrng.New(seed)
	g, err := grid.New(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.ChunkSize, float32(cfg.Physics.AmbientTemperature), rng)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return &Engine{
		grid:      g,
		mat:       mat,
		beh:       behavior.NewTable(),
		cfg:       cfg,
		dt:        cfg.Derived.DT,
		masterRNG: rng,
	}, nil
}

// Grid returns the engine's grid for read-only inspection between
// ticks (the frame snapshot of spec.md §6: material id, lifetime,
// temperature, updated-flag, and color are all readable directly off
// it via the grid package's accessors).
func (e *Engine) Grid() *grid.Grid { return e.grid }

// Materials returns the engine's material table, needed by renderers
// to resolve cell colors.
func (e *Engine) Materials() *material.Table { return e.mat }

// EnableTelemetry turns on per-stage performance timing and windowed
// CSV export for the lifetime of the engine. outputDir may be blank to
// log windows via slog without writing CSV; windowTicks is the number
// of ticks aggregated per exported window. Safe to call at most once;
// a second call replaces the previous collectors.
func (e *Engine) EnableTelemetry(outputDir string, windowTicks int, logStats bool) error {
	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return fmt.Errorf("engine: enabling telemetry: %w", err)
	}
	if err := om.WriteConfig(e.cfg); err != nil {
		return fmt.Errorf("engine: enabling telemetry: %w", err)
	}

	e.perf = telemetry.NewPerfCollector(windowTicks)
	e.stats = telemetry.NewCollector(windowTicks)
	e.output = om
	e.logStats = logStats
	return nil
}

// CloseTelemetry flushes and closes any open telemetry output files.
// Safe to call whether or not telemetry was enabled.
func (e *Engine) CloseTelemetry() error {
	return e.output.Close()
}

// TickCount returns the number of ticks run so far.
func (e *Engine) TickCount() uint64 { return e.tickCount }

// Paused reports whether the engine is currently paused.
func (e *Engine) Paused() bool { return e.paused }

// SetPaused sets the pause state; future calls to Update become no-ops
// until unpaused (spec.md §6 set_paused).
func (e *Engine) SetPaused(p bool) { e.paused = p }

// TogglePause flips the pause state and returns the new value.
func (e *Engine) TogglePause() bool {
	e.paused = !e.paused
	return e.paused
}

// PaintStroke paints a capsule (two end circles plus the connecting
// line) of material m with the given radius from (prevX,prevY) to
// (currX,currY) — the external collaborator interface's paint_stroke,
// meant to be called between ticks (spec.md §6).
func (e *Engine) PaintStroke(prevX, prevY, currX, currY, radius int, m material.ID) {
	e.grid.PaintLine(prevX, prevY, currX, currY, radius, m)
}

// ClearWorld resets every cell to Empty (spec.md §6 clear_world).
func (e *Engine) ClearWorld() {
	e.grid.Clear()
}

// Update advances the accumulator by realDt seconds of wall-clock time
// and runs as many fixed-size ticks as have accumulated, capping the
// accumulator at AccumulatorCapTicks · dt so a long stall (e.g. a
// debugger breakpoint) cannot trigger a burst of catch-up ticks
// (spec.md §6 tick constants, "accumulator cap = 5·dt"). Returns the
// number of ticks run. A no-op while paused.
func (e *Engine) Update(realDt float64) int {
	if e.paused {
		return 0
	}

	e.accumulator += realDt
	cap := e.cfg.Tick.AccumulatorCapTicks * e.dt
	if e.accumulator > cap {
		e.accumulator = cap
	}

	ticks := 0
	for e.accumulator >= e.dt {
		e.Tick()
		e.accumulator -= e.dt
		ticks++
	}
	return ticks
}

// StepOnce runs exactly one tick regardless of pause state (spec.md §6
// step_once), for single-frame debugging.
func (e *Engine) StepOnce() {
	e.Tick()
}

// Tick runs the six stages in their fixed order — powder, fluid, fire,
// gas, acid, thermal — against a fresh per-tick RNG derived from the
// master RNG, then swaps the chunk-activation write set into the read
// set for next tick (spec.md §4.1).
func (e *Engine) Tick() {
	g := e.grid
	g.ClearTickFlags()

	seed := e.masterRNG.Next()
	ctx := &stage.Context{
		Grid: g,
		Mat:  e.mat,
		Beh:  e.beh,
		Cfg:  e.cfg,
		RNG:  tickrng.New(seed),
	}

	if e.perf != nil {
		e.perf.StartTick()
	}

	var powder, fluid, fire, gas, acid, thermal int
	e.timedStage(telemetry.StagePowder, func() { powder = stage.RunPowder(ctx) })
	e.timedStage(telemetry.StageFluid, func() { fluid = stage.RunFluid(ctx) })
	e.timedStage(telemetry.StageFire, func() { fire = stage.RunFire(ctx) })
	e.timedStage(telemetry.StageGas, func() { gas = stage.RunGas(ctx) })
	e.timedStage(telemetry.StageAcid, func() { acid = stage.RunAcid(ctx) })
	e.timedStage(telemetry.StageThermal, func() { thermal = stage.RunThermal(ctx) })
	e.timedStage(telemetry.StageChunks, func() { g.UpdateChunkActivation() })

	e.tickCount++

	if e.perf != nil {
		e.perf.EndTick()
	}
	e.recordTelemetry(powder, fluid, fire, gas, acid, thermal)
}

// timedStage runs fn, timing it under name when a PerfCollector is
// attached; otherwise it just runs fn.
func (e *Engine) timedStage(name string, fn func()) {
	if e.perf != nil {
		e.perf.StartStage(name)
	}
	fn()
}

// recordTelemetry feeds one tick's measurements into the stats
// collector and, once a window's worth of ticks has accumulated,
// flushes it to the output manager (CSV) and/or slog.
func (e *Engine) recordTelemetry(powder, fluid, fire, gas, acid, thermal int) {
	if e.stats == nil {
		return
	}

	var sumTemp float64
	for _, t := range e.grid.Temp {
		sumTemp += float64(t)
	}
	meanTemp := 0.0
	if len(e.grid.Temp) > 0 {
		meanTemp = sumTemp / float64(len(e.grid.Temp))
	}

	e.stats.Record(telemetry.TickSample{
		Tick:               e.tickCount,
		ActiveChunks:       e.grid.ActiveChunkCount(),
		MeanTemperature:    meanTemp,
		CellsUpdatedPowder: powder,
		CellsUpdatedFluid:  fluid,
		CellsUpdatedFire:   fire,
		CellsUpdatedGas:    gas,
		CellsUpdatedAcid:   acid,
		PhaseChanges:       thermal,
	})

	if !e.stats.ShouldFlush() {
		return
	}

	ws := e.stats.Flush(e.tickCount)
	if e.output != nil {
		if err := e.output.WriteWindow(ws); err != nil {
			slog.Warn("telemetry: failed to write window stats", "error", err)
		}
		if e.perf != nil {
			if err := e.output.WritePerf(e.perf.Stats(), e.tickCount); err != nil {
				slog.Warn("telemetry: failed to write perf stats", "error", err)
			}
		}
	}
	if e.logStats {
		telemetry.LogWindow(slog.Default(), ws)
	}
}

// Reset reseeds the master RNG and zeroes the tick counter and
// accumulator, leaving grid contents untouched — pair with ClearWorld
// for a full reset.
func (e *Engine) Reset(seed uint32) {
	e.masterRNG = tickrng.New(seed)
	e.tickCount = 0
	e.accumulator = 0
}
