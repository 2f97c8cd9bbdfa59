package t2048

import "fmt"

// RandSource is the randomness the game needs. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
	Float64() float64
}

// Grid is a square board of optional tiles, indexed cells[x][y].
type Grid struct {
	size  int
	cells [][]*Tile
}

// NewGrid creates an empty size×size grid.
func NewGrid(size int) *Grid {
	g := &Grid{size: size}
	g.cells = make([][]*Tile, size)
	for x := range g.cells {
		g.cells[x] = make([]*Tile, size)
	}
	return g
}

// NewGridFromValues builds a grid from a row-major matrix (values[y][x]).
// Zero means empty. The matrix must be square.
func NewGridFromValues(values [][]int) *Grid {
	g := NewGrid(len(values))
	for y, row := range values {
		if len(row) != g.size {
			panic(fmt.Sprintf("t2048: row %d has %d cells, want %d", y, len(row), g.size))
		}
		for x, v := range row {
			if v != 0 {
				g.InsertTile(NewTile(Position{X: x, Y: y}, v))
			}
		}
	}
	return g
}

// Size returns the board dimension N.
func (g *Grid) Size() int {
	return g.size
}

// WithinBounds reports whether pos lies on the board.
func (g *Grid) WithinBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.size && pos.Y >= 0 && pos.Y < g.size
}

// CellContent returns the tile at pos, or nil for empty or out-of-bounds cells.
func (g *Grid) CellContent(pos Position) *Tile {
	if !g.WithinBounds(pos) {
		return nil
	}
	return g.cells[pos.X][pos.Y]
}

// CellOccupied reports whether pos holds a tile.
func (g *Grid) CellOccupied(pos Position) bool {
	return g.CellContent(pos) != nil
}

// CellAvailable reports whether pos is on the board and empty.
func (g *Grid) CellAvailable(pos Position) bool {
	return g.WithinBounds(pos) && !g.CellOccupied(pos)
}

// EachCell calls fn for every cell, x outer and y inner.
func (g *Grid) EachCell(fn func(x, y int, tile *Tile)) {
	for x := range g.size {
		for y := range g.size {
			fn(x, y, g.cells[x][y])
		}
	}
}

// AvailableCells returns every empty cell, x outer and y inner.
func (g *Grid) AvailableCells() []Position {
	var cells []Position
	g.EachCell(func(x, y int, tile *Tile) {
		if tile == nil {
			cells = append(cells, Position{X: x, Y: y})
		}
	})
	return cells
}

// AnyAvailable reports whether at least one cell is empty.
func (g *Grid) AnyAvailable() bool {
	for x := range g.size {
		for y := range g.size {
			if g.cells[x][y] == nil {
				return true
			}
		}
	}
	return false
}

// RandomAvailableCell picks an empty cell uniformly. ok is false on a full board.
func (g *Grid) RandomAvailableCell(rng RandSource) (pos Position, ok bool) {
	cells := g.AvailableCells()
	if len(cells) == 0 {
		return Position{}, false
	}
	return cells[rng.Intn(len(cells))], true
}

// InsertTile places t at its recorded position. Inserting out of bounds or
// onto an occupied cell is a contract violation and panics.
func (g *Grid) InsertTile(t *Tile) {
	pos := t.Position()
	if !g.WithinBounds(pos) {
		panic(fmt.Sprintf("t2048: insert out of bounds at %v", pos))
	}
	if g.cells[pos.X][pos.Y] != nil {
		panic(fmt.Sprintf("t2048: insert onto occupied cell %v", pos))
	}
	g.cells[pos.X][pos.Y] = t
}

// RemoveTile clears the cell at t's recorded position.
func (g *Grid) RemoveTile(t *Tile) {
	pos := t.Position()
	if g.WithinBounds(pos) {
		g.cells[pos.X][pos.Y] = nil
	}
}

// replaceTile swaps whatever occupies t's cell for t. Used by merges, where
// the merged tile takes over the matched tile's cell.
func (g *Grid) replaceTile(t *Tile) {
	g.cells[t.X][t.Y] = t
}

// moveTile relocates t from its current cell to pos, updating its position.
func (g *Grid) moveTile(t *Tile, pos Position) {
	g.cells[t.X][t.Y] = nil
	g.cells[pos.X][pos.Y] = t
	t.UpdatePosition(pos)
}

// Values returns the board as a row-major matrix (values[y][x]), 0 for empty.
func (g *Grid) Values() [][]int {
	values := make([][]int, g.size)
	for y := range values {
		values[y] = make([]int, g.size)
	}
	g.EachCell(func(x, y int, tile *Tile) {
		if tile != nil {
			values[y][x] = tile.Value
		}
	})
	return values
}

// MaxTile returns the highest tile value, or 0 on an empty board.
func (g *Grid) MaxTile() int {
	best := 0
	g.EachCell(func(_, _ int, tile *Tile) {
		if tile != nil && tile.Value > best {
			best = tile.Value
		}
	})
	return best
}
