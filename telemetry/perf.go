package telemetry

import (
	"log/slog"
	"time"
)

// Stage names for per-tick timing breakdown, matching the engine's
// fixed stage order (spec.md §4.1).
const (
	StagePowder  = "powder"
	StageFluid   = "fluid"
	StageFire    = "fire"
	StageGas     = "gas"
	StageAcid    = "acid"
	StageThermal = "thermal"
	StageChunks  = "chunk_activation"
)

var stageOrder = []string{StagePowder, StageFluid, StageFire, StageGas, StageAcid, StageThermal, StageChunks}

// PerfSample holds timing data for a single tick.
type PerfSample struct {
	TickDuration time.Duration
	Stages       map[string]time.Duration
}

// PerfCollector tracks tick/stage timing over a rolling window of the
// most recent ticks, grounded on the teacher's PerfCollector
// (telemetry/perf.go) but keyed by simulation stage instead of
// population-system phase.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentStages map[string]time.Duration
	tickStart     time.Time
	stageStart    time.Time
	lastStage     string
}

// NewPerfCollector creates a collector averaging over the most recent
// windowSize ticks (a windowSize below 1 falls back to 60).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentStages: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentStages = make(map[string]time.Duration)
	p.lastStage = ""
}

// StartStage begins timing a specific stage, closing out the
// previously open stage first.
func (p *PerfCollector) StartStage(stage string) {
	now := time.Now()
	if p.lastStage != "" {
		p.currentStages[p.lastStage] += now.Sub(p.stageStart)
	}
	p.stageStart = now
	p.lastStage = stage
}

// EndTick closes the last open stage and records the sample.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	if p.lastStage != "" {
		p.currentStages[p.lastStage] += now.Sub(p.stageStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Stages:       p.currentStages,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated tick/stage timing over the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	StageAvg map[string]time.Duration
	StagePct map[string]float64

	TicksPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{StageAvg: make(map[string]time.Duration), StagePct: make(map[string]float64)}
	}

	var totalTick, minTick, maxTick time.Duration
	stageSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		totalTick += s.TickDuration
		if i == 0 || s.TickDuration < minTick {
			minTick = s.TickDuration
		}
		if s.TickDuration > maxTick {
			maxTick = s.TickDuration
		}
		for stage, dur := range s.Stages {
			stageSum[stage] += dur
		}
	}

	avgTick := totalTick / time.Duration(p.sampleCount)

	stageAvg := make(map[string]time.Duration)
	stagePct := make(map[string]float64)
	for stage, sum := range stageSum {
		stageAvg[stage] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			stagePct[stage] = float64(stageAvg[stage]) / float64(avgTick) * 100
		}
	}

	var ticksPerSec float64
	if avgTick > 0 {
		ticksPerSec = float64(time.Second) / float64(avgTick)
	}

	return PerfStats{
		AvgTickDuration: avgTick,
		MinTickDuration: minTick,
		MaxTickDuration: maxTick,
		StageAvg:        stageAvg,
		StagePct:        stagePct,
		TicksPerSecond:  ticksPerSec,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for _, stage := range stageOrder {
		if pct, ok := s.StagePct[stage]; ok {
			attrs = append(attrs, slog.Float64(stage+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd      uint64  `csv:"window_end"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MinTickUS      int64   `csv:"min_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	PowderPct      float64 `csv:"powder_pct"`
	FluidPct       float64 `csv:"fluid_pct"`
	FirePct        float64 `csv:"fire_pct"`
	GasPct         float64 `csv:"gas_pct"`
	AcidPct        float64 `csv:"acid_pct"`
	ThermalPct     float64 `csv:"thermal_pct"`
	ChunkActivePct float64 `csv:"chunk_activation_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		AvgTickUS:      s.AvgTickDuration.Microseconds(),
		MinTickUS:      s.MinTickDuration.Microseconds(),
		MaxTickUS:      s.MaxTickDuration.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		PowderPct:      s.StagePct[StagePowder],
		FluidPct:       s.StagePct[StageFluid],
		FirePct:        s.StagePct[StageFire],
		GasPct:         s.StagePct[StageGas],
		AcidPct:        s.StagePct[StageAcid],
		ThermalPct:     s.StagePct[StageThermal],
		ChunkActivePct: s.StagePct[StageChunks],
	}
}
