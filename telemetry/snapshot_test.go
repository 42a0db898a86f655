package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sandtick/engine/config"
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/material"
	"github.com/sandtick/engine/tickrng"
)

func newTestGridForSnapshot(t *testing.T) *grid.Grid {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load error: %v", err)
	}
	g, err := grid.New(8, 8, cfg.Grid.ChunkSize, float32(cfg.Physics.AmbientTemperature), tickrng.New(3))
	if err != nil {
		t.Fatalf("grid.New error: %v", err)
	}
	return g
}

func TestSnapshotSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	g := newTestGridForSnapshot(t)
	g.SetMat(2, 2, material.Sand)
	g.Temp[g.Index(2, 2)] = 123.5

	snapshot := NewSnapshot(g, 42, 1000)

	path, err := SaveSnapshot(snapshot, tmpDir)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("snapshot file not created at %s", path)
	}
	want := filepath.Join(tmpDir, "snapshot_1000.json")
	if path != want {
		t.Errorf("path mismatch: got %s, want %s", path, want)
	}

	loaded, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if loaded.Version != snapshot.Version {
		t.Errorf("version mismatch: got %d, want %d", loaded.Version, snapshot.Version)
	}
	if loaded.Seed != 42 {
		t.Errorf("seed mismatch: got %d, want 42", loaded.Seed)
	}
	if loaded.Tick != 1000 {
		t.Errorf("tick mismatch: got %d, want 1000", loaded.Tick)
	}
	if material.ID(loaded.Mat[g.Index(2, 2)]) != material.Sand {
		t.Error("expected the painted sand cell to round-trip through the snapshot")
	}
}

func TestSnapshotRestoreRejectsDimensionMismatch(t *testing.T) {
	g := newTestGridForSnapshot(t)
	snapshot := NewSnapshot(g, 1, 0)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load error: %v", err)
	}
	smaller, err := grid.New(4, 4, cfg.Grid.ChunkSize, float32(cfg.Physics.AmbientTemperature), tickrng.New(1))
	if err != nil {
		t.Fatalf("grid.New error: %v", err)
	}
	if err := snapshot.Restore(smaller); err == nil {
		t.Error("expected Restore to reject a grid of different dimensions")
	}
}

func TestSnapshotRestoreReproducesGridState(t *testing.T) {
	g := newTestGridForSnapshot(t)
	g.SetMat(3, 3, material.Water)
	g.Temp[g.Index(3, 3)] = 42
	snapshot := NewSnapshot(g, 7, 55)

	g2 := newTestGridForSnapshot(t)
	if err := snapshot.Restore(g2); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if g2.GetMat(3, 3) != material.Water {
		t.Error("expected restored grid to have the snapshot's material at (3,3)")
	}
	if g2.Temp[g2.Index(3, 3)] != 42 {
		t.Errorf("expected restored temperature 42, got %v", g2.Temp[g2.Index(3, 3)])
	}
}
