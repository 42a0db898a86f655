package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Grid.Width != 512 || cfg.Grid.Height != 512 {
		t.Errorf("expected default grid 512x512, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Grid.ChunkSize != 32 {
		t.Errorf("expected default chunk size 32, got %d", cfg.Grid.ChunkSize)
	}
	if cfg.Tick.Hz != 120 {
		t.Errorf("expected default tick hz 120, got %v", cfg.Tick.Hz)
	}
	if len(cfg.Materials) != 12 {
		t.Fatalf("expected 12 materials, got %d", len(cfg.Materials))
	}
}

func TestDerivedDT(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	want := 1.0 / 120.0
	if cfg.Derived.DT != want {
		t.Errorf("expected DT = %v, got %v", want, cfg.Derived.DT)
	}
}

func TestMustInitAndCfg(t *testing.T) {
	MustInit("")
	if Cfg() == nil {
		t.Fatal("expected non-nil config after MustInit")
	}
}
