package grid

import "github.com/sandtick/engine/material"

// PaintCircle sets every cell within Euclidean radius r of (cx, cy) to
// material m (spec.md §4.2).
func (g *Grid) PaintCircle(cx, cy, r int, m material.ID) {
	if r < 0 {
		return
	}
	rSq := r * r
	for y := cy - r; y <= cy+r; y++ {
		if y < 0 || y >= g.H {
			continue
		}
		dy := y - cy
		for x := cx - r; x <= cx+r; x++ {
			if x < 0 || x >= g.W {
				continue
			}
			dx := x - cx
			if dx*dx+dy*dy <= rSq {
				g.SetMat(x, y, m)
			}
		}
	}
}

// PaintLine paints a circle of radius r and material m at every step
// of a Bresenham line from (x0, y0) to (x1, y1) (spec.md §4.2).
func (g *Grid) PaintLine(x0, y0, x1, y1, r int, m material.ID) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		g.PaintCircle(x, y, r, m)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
