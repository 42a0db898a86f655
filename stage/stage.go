// Package stage implements the six ordered per-tick simulation stages:
// powder, fluid, fire, gas, acid, thermal (spec.md §4.6-§4.11). Each
// stage is a function of a Context that mutates the Context's grid in
// place; the tick driver (package engine) sequences them.
package stage

import (
	"github.com/sandtick/engine/behavior"
	"github.com/sandtick/engine/config"
	"github.com/sandtick/engine/fixed"
	"github.com/sandtick/engine/grid"
	"github.com/sandtick/engine/material"
	"github.com/sandtick/engine/tickrng"
)

// Context bundles everything a stage needs to run one tick: the grid
// being mutated, the read-only material and behavior tables, tunable
// configuration, and the tick's RNG.
type Context struct {
	Grid *grid.Grid
	Mat  *material.Table
	Beh  *behavior.Table
	Cfg  *config.Config
	RNG  *tickrng.RNG
}

// passableForPowder reports whether id is a valid powder-movement
// target: empty, fluid, or gas (spec.md §4.6 step 4).
func passableForPowder(mat *material.Table, id material.ID) bool {
	return mat.IsEmpty(id) || mat.IsFluid(id) || mat.IsGas(id)
}

// passableForFluid reports whether id is a valid fluid-movement target:
// empty or gas (spec.md §4.7).
func passableForFluid(mat *material.Table, id material.ID) bool {
	return mat.IsEmpty(id) || mat.IsGas(id)
}

// passableForGas reports whether id is a valid gas-movement target:
// empty (spec.md glossary).
func passableForGas(mat *material.Table, id material.ID) bool {
	return mat.IsEmpty(id)
}

// fallSteps computes the number of fall steps from a fixed-point
// velocity magnitude, clamped to [0, max], coerced to 1 when it would
// be 0 (spec.md §4.6 step 3, §4.7 step 2).
func fallSteps(vel fixed.Q8_8, max int) int {
	n := fixed.ClampInt(fixed.ToCells(vel), 0, max)
	if n == 0 {
		n = 1
	}
	return n
}
