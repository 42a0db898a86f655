// Package iterate implements the grid traversal core: vertical/
// horizontal order selection, chunk-mask skip, and the multi-pass
// variant used by the fluid stage (spec.md §4.5).
package iterate

import "github.com/sandtick/engine/tickrng"

// VerticalOrder selects whether rows are visited top-to-bottom or
// bottom-to-top.
type VerticalOrder uint8

const (
	TopDown VerticalOrder = iota
	BottomUp
)

// HorizontalOrder selects the order columns are visited within a row.
type HorizontalOrder uint8

const (
	LeftRight HorizontalOrder = iota
	RightLeft
	Random
)

// Visitor is invoked once per visited cell. Returning false aborts the
// entire traversal.
type Visitor func(x, y int) bool

// Grid is the minimal surface iterate needs from a grid implementation,
// kept narrow so iterate does not import the grid package.
type Grid interface {
	Dimensions() (w, h int)
	IsChunkActiveAt(x, y int) bool
}

// Traverse visits every (x, y) in the grid exactly once in the order
// described by vertical and horizontal, skipping cells whose containing
// chunk is not active. Random horizontal order consumes one bit from
// rng per row to decide that row's direction. Returns false if the
// visitor aborted the traversal early.
func Traverse(g Grid, vertical VerticalOrder, horizontal HorizontalOrder, rng *tickrng.RNG, visit Visitor) bool {
	w, h := g.Dimensions()

	rows := make([]int, h)
	if vertical == BottomUp {
		for i := 0; i < h; i++ {
			rows[i] = h - 1 - i
		}
	} else {
		for i := 0; i < h; i++ {
			rows[i] = i
		}
	}

	for _, y := range rows {
		leftToRight := horizontal == LeftRight
		if horizontal == Random {
			leftToRight = rng.Bool()
		}

		if leftToRight {
			for x := 0; x < w; x++ {
				if !g.IsChunkActiveAt(x, y) {
					continue
				}
				if !visit(x, y) {
					return false
				}
			}
		} else {
			for x := w - 1; x >= 0; x-- {
				if !g.IsChunkActiveAt(x, y) {
					continue
				}
				if !visit(x, y) {
					return false
				}
			}
		}
	}
	return true
}

// TraverseMultiPass runs Traverse passes times in sequence, optionally
// clearing a per-cell "updated" marker between passes via clearUpdated
// (nil to skip). Used by the fluid stage with passes=2 (spec.md §4.5,
// §4.7).
func TraverseMultiPass(g Grid, vertical VerticalOrder, horizontal HorizontalOrder, rng *tickrng.RNG, passes int, clearUpdated func(), visit Visitor) {
	for p := 0; p < passes; p++ {
		if p > 0 && clearUpdated != nil {
			clearUpdated()
		}
		Traverse(g, vertical, horizontal, rng, visit)
	}
}

// IterateFalling traverses BottomUp + Random, the order used by stages
// powder, fire and acid.
func IterateFalling(g Grid, rng *tickrng.RNG, visit Visitor) bool {
	return Traverse(g, BottomUp, Random, rng, visit)
}

// IterateRising traverses TopDown + Random, the order used by the gas
// stage.
func IterateRising(g Grid, rng *tickrng.RNG, visit Visitor) bool {
	return Traverse(g, TopDown, Random, rng, visit)
}
