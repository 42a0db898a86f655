package display

import (
	"testing"

	"github.com/sandtick/engine/material"
)

func TestApplyBrushCycleAdvancesAndWraps(t *testing.T) {
	d := New()
	if d.Brush() != material.Sand {
		t.Fatalf("expected default brush Sand, got %v", d.Brush())
	}

	d.applyBrushCycle(0)
	if d.Brush() != material.Sand {
		t.Fatalf("zero delta must not move the brush, got %v", d.Brush())
	}

	d.applyBrushCycle(1)
	if d.Brush() != material.Water {
		t.Fatalf("expected Water after advancing once, got %v", d.Brush())
	}

	for i := 0; i < len(brushCycle); i++ {
		d.applyBrushCycle(1)
	}
	if d.Brush() != material.Water {
		t.Fatalf("expected brush to wrap back to Water after a full cycle, got %v", d.Brush())
	}
}

func TestApplyBrushCycleBackwardWrapsToEnd(t *testing.T) {
	d := New()
	d.applyBrushCycle(-1)
	if d.Brush() != material.Empty {
		t.Fatalf("expected cycling backward from Sand to wrap to Empty, got %v", d.Brush())
	}
}
