package behavior

import (
	"testing"

	"github.com/sandtick/engine/material"
)

func TestCapabilityPredicates(t *testing.T) {
	tbl := NewTable()

	if !tbl.Falls(material.Sand) {
		t.Error("expected Sand to fall")
	}
	if !tbl.IsStatic(material.Stone) {
		t.Error("expected Stone to be static")
	}
	if !tbl.IsFlammable(material.Wood) {
		t.Error("expected Wood to be flammable")
	}
	if tbl.IsFlammable(material.Stone) {
		t.Error("expected Stone to not be flammable")
	}
	if !tbl.IsCorrosive(material.Acid) {
		t.Error("expected Acid to be corrosive")
	}
	if !tbl.IsCorrodible(material.Stone) {
		t.Error("expected Stone to be corrodible")
	}
	if !tbl.Rises(material.Fire) || !tbl.Rises(material.Smoke) || !tbl.Rises(material.Steam) {
		t.Error("expected Fire, Smoke, Steam to rise")
	}
}

func TestMovementPriorityTables(t *testing.T) {
	if len(PowderMoves) != 3 {
		t.Errorf("expected 3 powder moves, got %d", len(PowderMoves))
	}
	if PowderMoves[0] != (Offset{0, 1}) {
		t.Errorf("expected powder's first priority to be straight down, got %v", PowderMoves[0])
	}
	if len(FluidMoves) != 5 {
		t.Errorf("expected 5 fluid moves, got %d", len(FluidMoves))
	}
	if len(GasMoves) != 5 {
		t.Errorf("expected 5 gas moves, got %d", len(GasMoves))
	}
	if GasMoves[0] != (Offset{0, -1}) {
		t.Errorf("expected gas's first priority to be straight up, got %v", GasMoves[0])
	}
}

func TestOutOfRangeIDHasNoCapabilities(t *testing.T) {
	tbl := NewTable()
	if tbl.Has(material.ID(200), Falls) {
		t.Error("expected out-of-range id to have no capabilities")
	}
}
