// Package material holds the static, process-wide material property
// table and the color/classification helpers that the stages consult
// on every cell.
package material

import (
	"fmt"

	"github.com/sandtick/engine/config"
	"github.com/sandtick/engine/fixed"
)

// ID identifies a material in the catalog.
type ID uint8

// Material catalog (spec.md §3). Order is authoritative.
const (
	Empty ID = iota
	Sand
	Stone
	Water
	Wood
	Fire
	Smoke
	Soil
	Ice
	Steam
	Ash
	Acid

	Count // MAT_COUNT
)

func (id ID) String() string {
	if int(id) < len(names) {
		return names[id]
	}
	return "Unknown"
}

var names = [Count]string{
	Empty: "Empty", Sand: "Sand", Stone: "Stone", Water: "Water",
	Wood: "Wood", Fire: "Fire", Smoke: "Smoke", Soil: "Soil",
	Ice: "Ice", Steam: "Steam", Ash: "Ash", Acid: "Acid",
}

// State is the coarse physical classification of a material.
type State uint8

const (
	StateEmpty State = iota
	StateSolid
	StatePowder
	StateFluid
	StateGas
)

var stateNames = map[string]State{
	"Empty": StateEmpty, "Solid": StateSolid, "Powder": StatePowder,
	"Fluid": StateFluid, "Gas": StateGas,
}

// GRAVITY_ACCEL, in cells/tick², per spec.md §6 — also mirrored in
// config.PhysicsConfig.GravityAccel so callers needn't import config.
const GravityAccel = 0.08

// Record holds one material's immutable properties plus the
// derived fixed-point fields precomputed at Init time.
type Record struct {
	ID    ID
	Name  string
	State State

	ColorR, ColorG, ColorB, ColorA uint8
	ColorVariation                 uint8

	Density             float32
	Friction            float32
	Restitution         float32
	Cohesion            float32
	Viscosity           float32
	GravityScale        float32
	Drag                float32
	TerminalVelocity    float32
	FlowRate            float32
	SettleProbability   float32
	SlideBias           float32
	ThermalConductivity float32
	HeatCapacity        float32
	IgnitionTemperature float32
	BurnRate            float32
	SmokeRate           float32
	MeltingTemperature  float32
	BoilingTemperature  float32

	// Derived fixed-point fields (spec.md §4.3).
	GravityStepFixed      fixed.Q8_8
	DragFactorFixed       fixed.Q8_8
	TerminalVelocityFixed fixed.Q8_8
}

// Table is the process-wide, read-only material property table. Safe
// to consult concurrently from any stage once Init has returned.
type Table struct {
	Records [Count]Record

	isEmpty  [Count]bool
	isSolid  [Count]bool
	isPowder [Count]bool
	isFluid  [Count]bool
	isGas    [Count]bool
}

// Init builds the material table from configuration, computing the
// derived fixed-point fields described in spec.md §4.3.
func Init(cfg *config.Config) (*Table, error) {
	t := &Table{}

	if len(cfg.Materials) == 0 {
		return nil, fmt.Errorf("material: config has no materials")
	}

	for _, mc := range cfg.Materials {
		if mc.ID < 0 || mc.ID >= int(Count) {
			return nil, fmt.Errorf("material: id %d out of range [0,%d)", mc.ID, Count)
		}
		st, ok := stateNames[mc.State]
		if !ok {
			return nil, fmt.Errorf("material: unknown state %q for %s", mc.State, mc.Name)
		}

		rec := Record{
			ID:                  ID(mc.ID),
			Name:                mc.Name,
			State:               st,
			ColorR:              clampByte(mc.Color[0]),
			ColorG:              clampByte(mc.Color[1]),
			ColorB:              clampByte(mc.Color[2]),
			ColorA:              clampByte(mc.Color[3]),
			ColorVariation:      clampByte(mc.ColorVariation),
			Density:             float32(mc.Density),
			Friction:            float32(mc.Friction),
			Restitution:         float32(mc.Restitution),
			Cohesion:            float32(mc.Cohesion),
			Viscosity:           float32(mc.Viscosity),
			GravityScale:        float32(mc.GravityScale),
			Drag:                float32(mc.Drag),
			TerminalVelocity:    float32(mc.TerminalVelocity),
			FlowRate:            float32(mc.FlowRate),
			SettleProbability:   float32(mc.SettleProbability),
			SlideBias:           float32(mc.SlideBias),
			ThermalConductivity: float32(mc.ThermalConductivity),
			HeatCapacity:        float32(mc.HeatCapacity),
			IgnitionTemperature: float32(mc.IgnitionTemperature),
			BurnRate:            float32(mc.BurnRate),
			SmokeRate:           float32(mc.SmokeRate),
			MeltingTemperature:  float32(mc.MeltingTemperature),
			BoilingTemperature:  float32(mc.BoilingTemperature),
		}

		rec.GravityStepFixed = fixed.FromFloat(GravityAccel * mc.GravityScale)
		rec.DragFactorFixed = fixed.FromFloat(1 - mc.Drag)
		rec.TerminalVelocityFixed = fixed.FromFloat(mc.TerminalVelocity)

		t.Records[rec.ID] = rec

		switch st {
		case StateEmpty:
			t.isEmpty[rec.ID] = true
		case StateSolid:
			t.isSolid[rec.ID] = true
		case StatePowder:
			t.isPowder[rec.ID] = true
		case StateFluid:
			t.isFluid[rec.ID] = true
		case StateGas:
			t.isGas[rec.ID] = true
		}
	}

	return t, nil
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// MaterialState returns the state of id, or StateEmpty if id is out of
// range (coerced, per spec.md §7's "invalid ids become Empty").
func (t *Table) MaterialState(id ID) State {
	if id >= Count {
		return StateEmpty
	}
	return t.Records[id].State
}

// IsEmpty, IsSolid, IsPowder, IsFluid, IsGas are O(1) hot-path state
// queries backed by precomputed boolean tables.
func (t *Table) IsEmpty(id ID) bool  { return id < Count && t.isEmpty[id] }
func (t *Table) IsSolid(id ID) bool  { return id < Count && t.isSolid[id] }
func (t *Table) IsPowder(id ID) bool { return id < Count && t.isPowder[id] }
func (t *Table) IsFluid(id ID) bool  { return id < Count && t.isFluid[id] }
func (t *Table) IsGas(id ID) bool    { return id < Count && t.isGas[id] }

// Get returns the record for id, or the Empty record if id is out of
// range.
func (t *Table) Get(id ID) *Record {
	if id >= Count {
		return &t.Records[Empty]
	}
	return &t.Records[id]
}

// Color hashes seed deterministically and perturbs the material's base
// color by up to ±variation per channel (spec.md §4.3). Alpha is left
// unchanged.
func (t *Table) Color(id ID, seed uint32) (r, g, b, a uint8) {
	rec := t.Get(id)

	x := seed
	x = (x >> 16) ^ x
	x *= 0x45d9f3b
	x = (x >> 16) ^ x
	x *= 0x45d9f3b
	x = (x >> 16) ^ x

	if rec.ColorVariation == 0 {
		return rec.ColorR, rec.ColorG, rec.ColorB, rec.ColorA
	}

	span := int32(rec.ColorVariation)*2 + 1
	dr := int32(x%uint32(span)) - int32(rec.ColorVariation)
	dg := int32((x>>8)%uint32(span)) - int32(rec.ColorVariation)
	db := int32((x>>16)%uint32(span)) - int32(rec.ColorVariation)

	r = perturb(rec.ColorR, dr)
	g = perturb(rec.ColorG, dg)
	b = perturb(rec.ColorB, db)
	a = rec.ColorA
	return
}

func perturb(base uint8, delta int32) uint8 {
	v := int32(base) + delta
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
