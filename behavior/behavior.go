// Package behavior holds the static capability bitmask table and the
// state-transition/reaction records that data-drive the stages
// (spec.md §4.4). The table is a lookup by material id; reimplementers
// preferring tagged sum types must still answer the same capability
// queries for the listed materials.
package behavior

import "github.com/sandtick/engine/material"

// Capability is a bitmask of material behaviors.
type Capability uint32

const (
	Falls Capability = 1 << iota
	Rises
	Flows
	Slides
	Static
	Flammable
	ConductsHeat
	Corrodible
	Corrosive
	Extinguishes
	Melts
	Freezes
	Boils
	Condenses
	BurnsOut
	Dissipates
	Spreads
	ProducesSmoke
	ProducesHeat
)

// Table is the static material-id -> capability-mask lookup.
type Table struct {
	caps [material.Count]Capability
}

// NewTable builds the capability table for the fixed material catalog.
// Capabilities are intrinsic to spec.md's material catalog, not
// configuration, so this table is built from compile-time constants.
func NewTable() *Table {
	t := &Table{}
	t.caps[material.Sand] = Falls | Slides
	t.caps[material.Stone] = Static | ConductsHeat | Melts | Corrodible
	t.caps[material.Water] = Falls | Flows | ConductsHeat | Corrodible | Extinguishes | Freezes | Boils
	t.caps[material.Wood] = Static | ConductsHeat | Flammable | Corrodible
	t.caps[material.Fire] = Rises | Spreads | BurnsOut | ProducesSmoke | ProducesHeat | ConductsHeat
	t.caps[material.Smoke] = Rises | Dissipates | ConductsHeat
	t.caps[material.Soil] = Falls | Slides | ConductsHeat | Corrodible
	t.caps[material.Ice] = Static | ConductsHeat | Melts | Corrodible
	t.caps[material.Steam] = Rises | Condenses | ConductsHeat
	t.caps[material.Ash] = Falls | Slides | ConductsHeat
	t.caps[material.Acid] = Falls | Flows | Corrosive | ConductsHeat
	return t
}

// Has reports whether material id has every bit in mask set.
func (t *Table) Has(id material.ID, mask Capability) bool {
	if id >= material.Count {
		return false
	}
	return t.caps[id]&mask == mask
}

func (t *Table) Falls(id material.ID) bool        { return t.Has(id, Falls) }
func (t *Table) Rises(id material.ID) bool        { return t.Has(id, Rises) }
func (t *Table) Flows(id material.ID) bool        { return t.Has(id, Flows) }
func (t *Table) Slides(id material.ID) bool       { return t.Has(id, Slides) }
func (t *Table) IsStatic(id material.ID) bool     { return t.Has(id, Static) }
func (t *Table) IsFlammable(id material.ID) bool  { return t.Has(id, Flammable) }
func (t *Table) ConductsHeat(id material.ID) bool { return t.Has(id, ConductsHeat) }
func (t *Table) IsCorrodible(id material.ID) bool { return t.Has(id, Corrodible) }
func (t *Table) IsCorrosive(id material.ID) bool  { return t.Has(id, Corrosive) }

// StateTransition describes a passive temperature-gated material
// change (spec.md §4.4). Some are reserved and not invoked by any
// stage in this spec (see spec.md §9 Open Questions).
type StateTransition struct {
	Result          material.ID
	ThresholdTemp   float32
	BaseProbability float32
}

var (
	IceToWater   = StateTransition{material.Water, 0.0, 0.01}
	WaterToIce   = StateTransition{material.Ice, 0.0, 0.005}
	WaterToSteam = StateTransition{material.Steam, 100.0, 0.02}
	SteamToWater = StateTransition{material.Water, 80.0, 0.01}
	// WoodToFire is reserved for ignition logic; no stage invokes it.
	WoodToFire = StateTransition{material.Fire, 300.0, 0.03}
)

// FireDeathProducts holds the probability thresholds for what a dying
// Fire cell becomes (spec.md §4.4, §4.8).
type FireDeathProducts struct {
	Ash         material.ID
	Smoke       material.ID
	AshChance   float32
	SmokeChance float32
}

var FireDeath = FireDeathProducts{
	Ash:         material.Ash,
	Smoke:       material.Smoke,
	AshChance:   0.30,
	SmokeChance: 0.50,
}

// ReactionRecord describes a neighbor-driven material reaction.
type ReactionRecord struct {
	ResultSelf      material.ID
	ResultTarget    material.ID
	Probability     float32
	Byproduct       material.ID
	ByproductChance float32
}

// Corrosion: acid acting on any corrodible neighbor (spec.md §4.4, §4.10).
var Corrosion = ReactionRecord{
	ResultSelf:      material.Empty,
	ResultTarget:    material.Empty,
	Probability:     0.08,
	Byproduct:       material.Smoke,
	ByproductChance: 0.5,
}

// FireSpread: fire acting on any flammable neighbor (spec.md §4.4, §4.8).
var FireSpread = ReactionRecord{
	ResultSelf:      material.Fire,
	ResultTarget:    material.Fire,
	Probability:     0.03,
	Byproduct:       material.Empty,
	ByproductChance: 0.0,
}

// Extinguish is defined but not invoked by any stage in this spec
// (spec.md §4.4, §9 Open Questions) — water/ice acting on fire.
var Extinguish = ReactionRecord{
	ResultTarget:    material.Smoke,
	Probability:     0.5,
	Byproduct:       material.Steam,
	ByproductChance: 0.3,
}

// Offset is a relative cell displacement used by movement priority
// tables.
type Offset struct{ DX, DY int }

// PowderMoves is the ordered movement priority for powder materials
// (spec.md §4.4).
var PowderMoves = []Offset{{0, 1}, {-1, 1}, {1, 1}}

// FluidMoves is the ordered movement priority for fluid materials.
var FluidMoves = []Offset{{0, 1}, {-1, 0}, {1, 0}, {-1, 1}, {1, 1}}

// GasMoves is the ordered movement priority for gas materials.
var GasMoves = []Offset{{0, -1}, {-1, -1}, {1, -1}, {-1, 0}, {1, 0}}
