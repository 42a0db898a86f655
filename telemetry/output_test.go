package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandtick/engine/config"
)

func TestNewOutputManagerWithBlankDirIsNilAndSafe(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("expected no error for a blank directory, got %v", err)
	}
	if om != nil {
		t.Fatal("expected a nil OutputManager for a blank directory")
	}

	// Every method must be a safe no-op on a nil receiver.
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("WriteWindow on nil OutputManager: %v", err)
	}
	if err := om.WritePerf(PerfStats{}, 0); err != nil {
		t.Errorf("WritePerf on nil OutputManager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil OutputManager: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("expected empty Dir() on nil OutputManager, got %q", om.Dir())
	}
}

func TestOutputManagerWritesTelemetryAndPerfCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	defer om.Close()

	if err := om.WriteWindow(WindowStats{WindowEndTick: 10, Samples: 5, PowderUpdates: 3}); err != nil {
		t.Fatalf("WriteWindow failed: %v", err)
	}
	if err := om.WriteWindow(WindowStats{WindowEndTick: 20, Samples: 5, PowderUpdates: 7}); err != nil {
		t.Fatalf("second WriteWindow failed: %v", err)
	}
	if err := om.WritePerf(PerfStats{TicksPerSecond: 120}, 20); err != nil {
		t.Fatalf("WritePerf failed: %v", err)
	}

	telemetryPath := filepath.Join(dir, "telemetry.csv")
	data, err := os.ReadFile(telemetryPath)
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header line plus 2 data rows, got %d lines: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "window_end") {
		t.Errorf("expected telemetry.csv header to contain window_end, got %q", lines[0])
	}

	perfPath := filepath.Join(dir, "perf.csv")
	if _, err := os.Stat(perfPath); err != nil {
		t.Fatalf("expected perf.csv to exist: %v", err)
	}
}

func TestOutputManagerWriteConfigSnapshotsYAML(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load error: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("expected config.yaml to exist: %v", err)
	}
}
