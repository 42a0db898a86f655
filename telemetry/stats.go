// Package telemetry aggregates per-tick engine activity into windowed
// statistics and exports them as CSV, following the teacher's
// OutputManager/WindowStats shape (telemetry/output.go,
// telemetry/stats.go).
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// TickSample is the raw per-tick measurement handed to a Collector by
// the caller (typically once per engine.Tick call).
type TickSample struct {
	Tick               uint64
	ActiveChunks       int
	MeanTemperature    float64
	CellsUpdatedPowder int
	CellsUpdatedFluid  int
	CellsUpdatedFire   int
	CellsUpdatedGas    int
	CellsUpdatedAcid   int
	PhaseChanges       int
}

// WindowStats holds aggregated statistics for a span of ticks.
type WindowStats struct {
	WindowStartTick uint64 `csv:"window_start"`
	WindowEndTick   uint64 `csv:"window_end"`
	Samples         int    `csv:"samples"`

	ActiveChunksMean     float64 `csv:"active_chunks_mean"`
	ActiveChunksVariance float64 `csv:"active_chunks_variance"`

	MeanTemperatureMean     float64 `csv:"mean_temperature_mean"`
	MeanTemperatureVariance float64 `csv:"mean_temperature_variance"`

	PowderUpdates       int `csv:"powder_updates"`
	FluidUpdates        int `csv:"fluid_updates"`
	FireUpdates         int `csv:"fire_updates"`
	GasUpdates          int `csv:"gas_updates"`
	AcidUpdates         int `csv:"acid_updates"`
	ThermalPhaseChanges int `csv:"thermal_phase_changes"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Int("samples", s.Samples),
		slog.Float64("active_chunks_mean", s.ActiveChunksMean),
		slog.Float64("mean_temperature_mean", s.MeanTemperatureMean),
	)
}

// LogWindow logs ws at info level, using a default logger if logger is
// nil, pairing CSV export with a structured log line for the same
// event (the teacher's WriteTelemetry/LogStats pairing).
func LogWindow(logger *slog.Logger, ws WindowStats) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("telemetry window", slog.Any("window", ws))
}

// Collector buffers per-tick samples and flushes them into a
// WindowStats aggregate once windowSize samples have accumulated,
// mirroring the teacher's WindowStats/ShouldFlush/Flush flow.
type Collector struct {
	windowSize  int
	windowStart uint64
	samples     []TickSample
}

// NewCollector creates a Collector that flushes every windowSize
// samples (coerced to at least 1).
func NewCollector(windowSize int) *Collector {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &Collector{windowSize: windowSize}
}

// Record buffers one tick's sample.
func (c *Collector) Record(s TickSample) {
	c.samples = append(c.samples, s)
}

// ShouldFlush reports whether enough samples have buffered to flush a
// window.
func (c *Collector) ShouldFlush() bool {
	return len(c.samples) >= c.windowSize
}

// Flush aggregates the buffered samples into a WindowStats, using
// gonum/stat for the mean/variance of active-chunk count and mean
// temperature, then resets the buffer for the next window.
func (c *Collector) Flush(tick uint64) WindowStats {
	ws := WindowStats{WindowStartTick: c.windowStart, WindowEndTick: tick}
	n := len(c.samples)
	if n == 0 {
		c.windowStart = tick
		return ws
	}

	activeChunks := make([]float64, n)
	meanTemps := make([]float64, n)
	for i, s := range c.samples {
		activeChunks[i] = float64(s.ActiveChunks)
		meanTemps[i] = s.MeanTemperature
		ws.PowderUpdates += s.CellsUpdatedPowder
		ws.FluidUpdates += s.CellsUpdatedFluid
		ws.FireUpdates += s.CellsUpdatedFire
		ws.GasUpdates += s.CellsUpdatedGas
		ws.AcidUpdates += s.CellsUpdatedAcid
		ws.ThermalPhaseChanges += s.PhaseChanges
	}

	ws.Samples = n
	ws.ActiveChunksMean, ws.ActiveChunksVariance = stat.MeanVariance(activeChunks, nil)
	ws.MeanTemperatureMean, ws.MeanTemperatureVariance = stat.MeanVariance(meanTemps, nil)

	c.samples = c.samples[:0]
	c.windowStart = tick
	return ws
}
