package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollectorBasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartStage(StagePowder)
		time.Sleep(100 * time.Microsecond)
		pc.StartStage(StageFluid)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if len(stats.StageAvg) == 0 {
		t.Error("expected stage averages to be populated")
	}
	if _, ok := stats.StageAvg[StagePowder]; !ok {
		t.Error("expected powder stage to be tracked")
	}
	if _, ok := stats.StageAvg[StageFluid]; !ok {
		t.Error("expected fluid stage to be tracked")
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartStage(StageThermal)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
}

func TestPerfCollectorStagePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartStage("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartStage("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.StagePct["fast"]
	slowPct := stats.StagePct["slow"]
	if slowPct <= fastPct {
		t.Errorf("expected slow stage (%v%%) > fast stage (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollectorEmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 {
		t.Error("expected zero avg tick duration for empty collector")
	}
	if stats.StageAvg == nil {
		t.Error("expected non-nil StageAvg map")
	}
	if stats.StagePct == nil {
		t.Error("expected non-nil StagePct map")
	}
}

func TestPerfStatsToCSVRoundTrips(t *testing.T) {
	pc := NewPerfCollector(4)
	pc.StartTick()
	pc.StartStage(StagePowder)
	time.Sleep(50 * time.Microsecond)
	pc.StartStage(StageThermal)
	time.Sleep(50 * time.Microsecond)
	pc.EndTick()

	csvRow := pc.Stats().ToCSV(42)
	if csvRow.WindowEnd != 42 {
		t.Errorf("expected window end 42, got %d", csvRow.WindowEnd)
	}
	if csvRow.PowderPct <= 0 {
		t.Error("expected a nonzero powder_pct in the CSV row")
	}
}
