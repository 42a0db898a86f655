// Command sandbox runs the tick engine against a generated scenario,
// either windowed (raylib) or headless, grounded on the teacher's
// main.go flag set and Game.Update/Draw split.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/sandtick/engine/camera"
	"github.com/sandtick/engine/config"
	"github.com/sandtick/engine/display"
	"github.com/sandtick/engine/engine"
	"github.com/sandtick/engine/material"
	"github.com/sandtick/engine/scenario"
)

var (
	configPath   = flag.String("config", "", "Path to a YAML override file (embedded defaults if blank)")
	seed         = flag.Uint("seed", 1, "Master RNG seed")
	scenarioSeed = flag.Int64("scenario-seed", 1, "Seed for the generated starting terrain")
	headless     = flag.Bool("headless", false, "Run without a window, for benchmarking/telemetry-only runs")
	maxTicks     = flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = run forever)")
	telemetry    = flag.String("telemetry", "", "Directory to write telemetry.csv/perf.csv/config.yaml (blank disables CSV export)")
	windowTicks  = flag.Int("telemetry-window", 120, "Ticks aggregated per telemetry window")
	logStats     = flag.Bool("log-stats", false, "Log each telemetry window via slog")
	screenW      = flag.Int("width", 1280, "Window width")
	screenH      = flag.Int("height", 800, "Window height")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sandbox: loading config:", err)
		os.Exit(1)
	}

	eng, err := engine.New(cfg, uint32(*seed))
	if err != nil {
		fmt.Fprintln(os.Stderr, "sandbox: creating engine:", err)
		os.Exit(1)
	}

	gen := scenario.NewGenerator(*scenarioSeed)
	gen.Terrain(eng.Grid(), scenario.DefaultTerrainConfig())
	_, gridH := eng.Grid().Dimensions()
	gen.Scatter(eng.Grid(), scenario.ScatterConfig{
		Material: material.Soil,
		Density:  0.05, RegionTop: 0, RegionBottom: gridH / 3,
	})

	if *telemetry != "" || *logStats {
		if err := eng.EnableTelemetry(*telemetry, *windowTicks, *logStats); err != nil {
			fmt.Fprintln(os.Stderr, "sandbox: enabling telemetry:", err)
			os.Exit(1)
		}
		defer func() {
			if err := eng.CloseTelemetry(); err != nil {
				slog.Warn("sandbox: closing telemetry", "error", err)
			}
		}()
	}

	if *headless {
		runHeadless(eng)
		return
	}
	runWindowed(eng)
}

// runHeadless advances the engine one tick at a time with no wall
// clock or window involved, stopping at maxTicks (0 means forever,
// which only makes sense when the process itself is killed externally
// or a telemetry/profiling harness wraps it).
func runHeadless(eng *engine.Engine) {
	for *maxTicks == 0 || eng.TickCount() < *maxTicks {
		eng.StepOnce()
	}
}

// runWindowed opens a raylib window and drives the engine from its
// own fixed-tick accumulator (engine.Update), rendering and polling
// input once per rendered frame — the same "Update() then Draw()"
// split as the teacher's Game.
func runWindowed(eng *engine.Engine) {
	w, h := eng.Grid().Dimensions()

	rl.InitWindow(int32(*screenW), int32(*screenH), "sandbox")
	rl.SetTargetFPS(60)
	defer rl.CloseWindow()

	cam := camera.New(float32(*screenW), float32(*screenH), float32(w), float32(h))
	dis := display.New()
	dis.Init(w, h)
	defer dis.Close()

	for !dis.ShouldClose() {
		cmds := dis.Poll(cam)
		if cmds.Quit {
			break
		}
		applyCommands(eng, cmds)

		if *maxTicks == 0 || eng.TickCount() < *maxTicks {
			eng.Update(float64(rl.GetFrameTime()))
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		dis.Draw(eng.Grid(), eng.Materials(), cam)
		rl.DrawFPS(8, 8)
		rl.EndDrawing()
	}
}

// applyCommands feeds one frame's polled Commands into the engine's
// external-collaborator interface (spec.md §6).
func applyCommands(eng *engine.Engine, cmds display.Commands) {
	for _, p := range cmds.Paints {
		eng.PaintStroke(p.PrevX, p.PrevY, p.CurrX, p.CurrY, p.Radius, p.Material)
	}
	if cmds.ClearWorld {
		eng.ClearWorld()
	}
	if cmds.TogglePause {
		eng.TogglePause()
	}
	if cmds.StepOnce {
		eng.StepOnce()
	}
}
