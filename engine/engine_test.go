package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandtick/engine/config"
	"github.com/sandtick/engine/material"
)

func newTestEngine(t *testing.T, w, h int, seed uint32) *Engine {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load error: %v", err)
	}
	cfg.Grid.Width = w
	cfg.Grid.Height = h
	e, err := New(cfg, seed)
	if err != nil {
		t.Fatalf("engine.New error: %v", err)
	}
	return e
}

func TestDeterminismAcrossIdenticalRuns(t *testing.T) {
	const ticks = 200

	run := func() *Engine {
		e := newTestEngine(t, 32, 32, 1)
		g := e.Grid()
		for x := 5; x < 15; x++ {
			g.SetMat(x, 0, material.Sand)
		}
		for x := 0; x < 32; x++ {
			g.SetMat(x, 31, material.Stone)
		}
		for i := 0; i < ticks; i++ {
			e.Tick()
		}
		return e
	}

	a, b := run(), run()
	ga, gb := a.Grid(), b.Grid()

	for i := range ga.Mat {
		if ga.Mat[i] != gb.Mat[i] {
			t.Fatalf("material mismatch at index %d: %v vs %v", i, ga.Mat[i], gb.Mat[i])
		}
		if ga.Temp[i] != gb.Temp[i] {
			t.Fatalf("temp mismatch at index %d: %v vs %v", i, ga.Temp[i], gb.Temp[i])
		}
		if ga.VelX[i] != gb.VelX[i] || ga.VelY[i] != gb.VelY[i] {
			t.Fatalf("velocity mismatch at index %d", i)
		}
		if ga.Lifetime[i] != gb.Lifetime[i] {
			t.Fatalf("lifetime mismatch at index %d", i)
		}
	}
}

func TestUpdateRunsWholeTicksOnly(t *testing.T) {
	e := newTestEngine(t, 16, 16, 1)
	dt := e.dt

	ran := e.Update(dt * 2.5)
	if ran != 2 {
		t.Fatalf("expected 2 whole ticks from 2.5 dt of real time, got %d", ran)
	}
	if e.TickCount() != 2 {
		t.Fatalf("expected tick count 2, got %d", e.TickCount())
	}

	// The leftover half-tick plus another 0.6 dt should produce exactly
	// one more tick (0.5 + 0.6 = 1.1 dt).
	ran = e.Update(dt * 0.6)
	if ran != 1 {
		t.Fatalf("expected 1 tick from the accumulated remainder, got %d", ran)
	}
}

func TestUpdateCapsAccumulator(t *testing.T) {
	e := newTestEngine(t, 16, 16, 1)
	ran := e.Update(e.dt * 1000)
	capTicks := int(e.cfg.Tick.AccumulatorCapTicks)
	if ran > capTicks {
		t.Fatalf("expected accumulator cap to bound ticks to %d, ran %d", capTicks, ran)
	}
	if ran == 0 {
		t.Fatal("expected at least one tick to run")
	}
}

func TestPausedEngineDoesNotTick(t *testing.T) {
	e := newTestEngine(t, 16, 16, 1)
	e.SetPaused(true)
	ran := e.Update(e.dt * 10)
	if ran != 0 {
		t.Fatalf("expected paused engine to run 0 ticks, ran %d", ran)
	}
	if e.TickCount() != 0 {
		t.Fatal("expected tick count to stay at 0 while paused")
	}
}

func TestStepOnceIgnoresPause(t *testing.T) {
	e := newTestEngine(t, 16, 16, 1)
	e.SetPaused(true)
	e.StepOnce()
	if e.TickCount() != 1 {
		t.Fatalf("expected StepOnce to run exactly one tick regardless of pause, got count %d", e.TickCount())
	}
}

func TestPaintStrokeAndClearWorld(t *testing.T) {
	e := newTestEngine(t, 16, 16, 1)
	e.PaintStroke(2, 2, 8, 2, 0, material.Water)

	if e.Grid().GetMat(5, 2) != material.Water {
		t.Fatal("expected paint stroke to place material along the line")
	}

	e.ClearWorld()
	if e.Grid().GetMat(5, 2) != material.Empty {
		t.Error("expected ClearWorld to reset painted cells to Empty")
	}
}

func TestSandColumnConservedAndSettlesOnFloor(t *testing.T) {
	e := newTestEngine(t, 20, 60, 1)
	g := e.Grid()

	for y := 0; y < 40; y++ {
		g.SetMat(10, y, material.Sand)
	}
	for x := 0; x < 20; x++ {
		g.SetMat(x, 50, material.Stone)
	}

	countSand := func() int {
		n := 0
		for _, m := range g.Mat {
			if m == material.Sand {
				n++
			}
		}
		return n
	}
	before := countSand()

	for i := 0; i < 400; i++ {
		e.Tick()
	}

	after := countSand()
	if after != before {
		t.Fatalf("expected sand cell count conserved (no vanishing through walls): before=%d after=%d", before, after)
	}

	restingNearFloor := false
	for x := 0; x < 20; x++ {
		if g.GetMat(x, 49) == material.Sand {
			restingNearFloor = true
			break
		}
	}
	if !restingNearFloor {
		t.Error("expected at least one sand cell to have settled directly above the stone floor")
	}
}

func TestWaterFillsUContainerAndSettlesFlat(t *testing.T) {
	e := newTestEngine(t, 64, 64, 1)
	g := e.Grid()

	for y := 10; y <= 50; y++ {
		g.SetMat(10, y, material.Stone)
		g.SetMat(40, y, material.Stone)
	}
	for x := 10; x <= 40; x++ {
		g.SetMat(x, 50, material.Stone)
	}
	for y := 10; y <= 14; y++ {
		for x := 15; x <= 24; x++ {
			g.SetMat(x, y, material.Water)
		}
	}

	for i := 0; i < 2000; i++ {
		e.Tick()
	}

	surfaceY := func(x int) int {
		for y := 0; y < 64; y++ {
			if g.GetMat(x, y) == material.Water {
				return y
			}
		}
		return -1
	}

	minY, maxY := 64, -1
	for x := 11; x <= 39; x++ {
		y := surfaceY(x)
		if y < 0 {
			t.Fatalf("expected a Water surface at x=%d within the container", x)
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}

	if maxY-minY > 2 {
		t.Errorf("expected Water surface flat within +/-2 cells across x=11..39, got min=%d max=%d (spread=%d)", minY, maxY, maxY-minY)
	}
}

func TestFireEventuallyConsumesWoodPlank(t *testing.T) {
	e := newTestEngine(t, 40, 40, 1)
	g := e.Grid()

	for x := 20; x <= 30; x++ {
		g.SetMat(x, 30, material.Wood)
	}
	g.SetMat(20, 30, material.Fire)

	sawSmokeAbove := false
	for i := 0; i < 2000; i++ {
		e.Tick()
		for x := 20; x <= 30; x++ {
			if g.GetMat(x, 29) == material.Smoke {
				sawSmokeAbove = true
			}
		}
	}

	for x := 20; x <= 30; x++ {
		m := g.GetMat(x, 30)
		if m == material.Wood {
			t.Errorf("expected cell (%d,30) to no longer be Wood after 2000 ticks, got %v", x, m)
		}
	}
	if !sawSmokeAbove {
		t.Error("expected at least one Smoke cell above the plank at some tick")
	}
}

func TestAcidReducesStoneColumn(t *testing.T) {
	e := newTestEngine(t, 20, 60, 1)
	g := e.Grid()

	for y := 30; y <= 40; y++ {
		g.SetMat(10, y, material.Stone)
	}
	g.SetMat(10, 29, material.Acid)

	for i := 0; i < 5000; i++ {
		e.Tick()
	}

	remaining := 0
	for y := 30; y <= 40; y++ {
		if g.GetMat(10, y) == material.Stone {
			remaining++
		}
	}
	if remaining >= 11 {
		t.Errorf("expected acid to have dissolved at least some of the original 11 stone cells, got %d remaining", remaining)
	}
}

func TestIceMeltsInFireRoom(t *testing.T) {
	e := newTestEngine(t, 64, 64, 1)
	g := e.Grid()

	for x := 10; x <= 20; x++ {
		g.SetMat(x, 40, material.Fire)
	}
	g.SetMat(15, 20, material.Ice)

	for i := 0; i < 3000; i++ {
		e.Tick()
	}

	m := g.GetMat(15, 20)
	if m == material.Ice {
		t.Errorf("expected the Ice cell to have melted to Water or Steam after 3000 ticks, still Ice")
	}
	if m != material.Water && m != material.Steam {
		t.Errorf("expected the Ice cell to become Water or Steam, got %v", m)
	}
}

func TestEnableTelemetryWritesWindowAfterEnoughTicks(t *testing.T) {
	e := newTestEngine(t, 8, 8, 1)
	dir := t.TempDir()

	if err := e.EnableTelemetry(dir, 5, false); err != nil {
		t.Fatalf("EnableTelemetry failed: %v", err)
	}
	defer e.CloseTelemetry()

	for i := 0; i < 5; i++ {
		e.Tick()
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("expected telemetry.csv to exist after a full window: %v", err)
	}
	if !strings.Contains(string(data), "window_end") {
		t.Error("expected telemetry.csv to contain a header row")
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("expected config.yaml snapshot to exist: %v", err)
	}
}

func TestEmptyWorldStaysEmptyAndAmbient(t *testing.T) {
	e := newTestEngine(t, 16, 16, 1)
	g := e.Grid()

	for i := 0; i < 2000; i++ {
		e.Tick()
	}

	for i, m := range g.Mat {
		if m != material.Empty {
			t.Fatalf("expected empty world to remain empty, found %v at index %d", m, i)
		}
	}
	for _, temp := range g.Temp {
		if diff := temp - float32(e.cfg.Physics.AmbientTemperature); diff > 0.5 || diff < -0.5 {
			t.Fatalf("expected temperature to stay within 0.5 of ambient, got %v", temp)
		}
	}
}
