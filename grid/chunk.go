package grid

// chunkIndex returns the flat chunk-mask index for chunk coordinates.
func (g *Grid) chunkIndex(cx, cy int) int { return cy*g.ChunksX + cx }

// chunkCoordsOf converts a cell coordinate to its containing chunk
// coordinate.
func (g *Grid) chunkCoordsOf(x, y int) (cx, cy int) {
	return x / g.ChunkSize, y / g.ChunkSize
}

// ActivateChunk marks the chunk at (cx, cy), and every chunk in its
// 3x3 neighborhood, active for the next tick (spec.md §3: "Activating
// a cell activates its chunk and all neighbor chunks in the 3x3 block,
// to cover particles crossing boundaries"). Out-of-range chunk
// coordinates are skipped silently.
func (g *Grid) ActivateChunk(cx, cy int) {
	for dy := -1; dy <= 1; dy++ {
		ny := cy + dy
		if ny < 0 || ny >= g.ChunksY {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			nx := cx + dx
			if nx < 0 || nx >= g.ChunksX {
				continue
			}
			g.ChunkActiveNext[g.chunkIndex(nx, ny)] = true
		}
	}
}

// ActivateChunkAt activates the chunk containing cell (x, y), and its
// 3x3 neighborhood. A no-op if (x, y) is out of bounds.
func (g *Grid) ActivateChunkAt(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	cx, cy := g.chunkCoordsOf(x, y)
	g.ActivateChunk(cx, cy)
}

// IsChunkActive reports whether the chunk at (cx, cy) is active in
// the current (read-set) mask. Out-of-range coordinates are inactive.
func (g *Grid) IsChunkActive(cx, cy int) bool {
	if cx < 0 || cx >= g.ChunksX || cy < 0 || cy >= g.ChunksY {
		return false
	}
	return g.ChunkActive[g.chunkIndex(cx, cy)]
}

// IsChunkActiveAt reports whether the chunk containing (x, y) is
// active. Out-of-bounds cells are treated as inactive.
func (g *Grid) IsChunkActiveAt(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	cx, cy := g.chunkCoordsOf(x, y)
	return g.IsChunkActive(cx, cy)
}

// UpdateChunkActivation swaps the active/next chunk masks (the write
// set produced this tick becomes next tick's read set), returns the
// number of chunks now active, and zeroes the new write set for next
// tick's mutations (spec.md §4.1 step 5, §9 design notes).
func (g *Grid) UpdateChunkActivation() int {
	g.ChunkActive, g.ChunkActiveNext = g.ChunkActiveNext, g.ChunkActive

	count := 0
	for i, active := range g.ChunkActive {
		if active {
			count++
		}
		g.ChunkActiveNext[i] = false
	}
	g.lastActiveCount = count
	return count
}

// ActiveChunkCount returns the active chunk count as of the last
// UpdateChunkActivation call.
func (g *Grid) ActiveChunkCount() int {
	return g.lastActiveCount
}
