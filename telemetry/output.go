package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/sandtick/engine/config"
)

// OutputManager owns the CSV file handles for a run's output
// directory, grounded on the teacher's OutputManager
// (telemetry/output.go): opened once, closed once, with a
// header-written flag per file so each CSV header is emitted exactly
// once.
type OutputManager struct {
	dir  string
	tick *os.File
	perf *os.File

	tickHeaderWritten bool
	perfHeaderWritten bool
}

// NewOutputManager creates dir if needed and opens telemetry.csv and
// perf.csv inside it. A blank dir disables telemetry output entirely;
// every method on a nil *OutputManager is then a safe no-op, so
// callers don't need a separate "telemetry enabled" check.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	tick, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating telemetry.csv: %w", err)
	}
	om.tick = tick

	perf, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.tick.Close()
		return nil, fmt.Errorf("telemetry: creating perf.csv: %w", err)
	}
	om.perf = perf

	return om, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig snapshots cfg as dir/config.yaml, the same way the
// teacher's WriteConfig defers to config.Config.WriteYAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteWindow appends one WindowStats row to telemetry.csv, writing
// the CSV header on the first call only.
func (om *OutputManager) WriteWindow(ws WindowStats) error {
	if om == nil {
		return nil
	}
	rows := []WindowStats{ws}
	if !om.tickHeaderWritten {
		if err := gocsv.Marshal(rows, om.tick); err != nil {
			return fmt.Errorf("telemetry: writing window stats: %w", err)
		}
		om.tickHeaderWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, om.tick)
}

// WritePerf appends one PerfStats row to perf.csv, writing the CSV
// header on the first call only.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd uint64) error {
	if om == nil {
		return nil
	}
	rows := []PerfStatsCSV{stats.ToCSV(windowEnd)}
	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(rows, om.perf); err != nil {
			return fmt.Errorf("telemetry: writing perf stats: %w", err)
		}
		om.perfHeaderWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, om.perf)
}

// Close closes the underlying files. Safe to call on a nil
// *OutputManager.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	if om.tick != nil {
		if err := om.tick.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if om.perf != nil {
		if err := om.perf.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
