package t2048

// traversals lists the x and y coordinates to visit for a move, ordered so
// that tiles farthest along the vector are processed first.
type traversals struct {
	x []int
	y []int
}

func buildTraversals(size int, v Vector) traversals {
	t := traversals{x: make([]int, size), y: make([]int, size)}
	for pos := range size {
		t.x[pos] = pos
		t.y[pos] = pos
	}
	if v.X == 1 {
		reverse(t.x)
	}
	if v.Y == 1 {
		reverse(t.y)
	}
	return t
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// findFarthestPosition steps from cell along v while the next cell is on the
// board and empty. farthest is the last empty cell reached (cell itself if
// blocked immediately); next is the cell beyond it, which may be off the
// board or occupied.
func findFarthestPosition(g *Grid, cell Position, v Vector) (farthest, next Position) {
	for {
		farthest = cell
		cell = farthest.Add(v)
		if !g.CellAvailable(cell) {
			return farthest, cell
		}
	}
}

// prepareTiles clears merge provenance and snapshots positions before a move.
func prepareTiles(g *Grid) {
	g.EachCell(func(_, _ int, tile *Tile) {
		if tile != nil {
			tile.MergedFrom = nil
			tile.SavePosition()
		}
	})
}

// moveResult summarises one resolved move.
type moveResult struct {
	moved  bool
	score  int  // Sum of merged values
	merges int  // Number of merges performed
	won    bool // A merge produced the win value
}

// resolveMove slides and merges every tile on g toward dir, mutating g in
// place. A tile produced by a merge never merges again in the same move.
func resolveMove(g *Grid, dir Direction, winValue int) moveResult {
	var res moveResult

	v := dir.Vector()
	if v == (Vector{}) {
		return res
	}

	prepareTiles(g)

	order := buildTraversals(g.Size(), v)
	for _, x := range order.x {
		for _, y := range order.y {
			cell := Position{X: x, Y: y}
			tile := g.CellContent(cell)
			if tile == nil {
				continue
			}

			farthest, nextPos := findFarthestPosition(g, cell, v)
			next := g.CellContent(nextPos)

			if next != nil && next.Value == tile.Value && !next.Merged() {
				merged := NewTile(nextPos, tile.Value*2)
				merged.MergedFrom = &[2]*Tile{tile, next}

				g.replaceTile(merged)
				g.RemoveTile(tile)

				// The source tile is out of the grid now; its position only
				// tells the renderer where it slid to.
				tile.UpdatePosition(nextPos)

				res.score += merged.Value
				res.merges++
				if merged.Value == winValue {
					res.won = true
				}
			} else {
				g.moveTile(tile, farthest)
			}

			if tile.Position() != cell {
				res.moved = true
			}
		}
	}

	return res
}

// TileMatchesAvailable reports whether any two orthogonally adjacent tiles
// share a value.
func TileMatchesAvailable(g *Grid) bool {
	for x := range g.Size() {
		for y := range g.Size() {
			tile := g.cells[x][y]
			if tile == nil {
				continue
			}
			for _, d := range Directions {
				other := g.CellContent(tile.Position().Add(d.Vector()))
				if other != nil && other.Value == tile.Value {
					return true
				}
			}
		}
	}
	return false
}

// MovesAvailable reports whether any move can still change the board.
func MovesAvailable(g *Grid) bool {
	return g.AnyAvailable() || TileMatchesAvailable(g)
}
