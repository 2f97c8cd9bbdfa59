package t2048

// Position is a cell coordinate on the grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position one step along v.
func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.X, Y: p.Y + v.Y}
}

// Tile is a numbered piece on the board.
type Tile struct {
	X, Y  int
	Value int

	// Previous is where the tile stood at the start of the current turn.
	// Nil for tiles created during the turn.
	Previous *Position

	// MergedFrom holds the two tiles that produced this one this turn.
	MergedFrom *[2]*Tile
}

// NewTile creates a tile at pos. Values below 2 are raised to 2.
func NewTile(pos Position, value int) *Tile {
	if value < 2 {
		value = 2
	}
	return &Tile{X: pos.X, Y: pos.Y, Value: value}
}

// Position returns the tile's current cell.
func (t *Tile) Position() Position {
	return Position{X: t.X, Y: t.Y}
}

// SavePosition records the current cell as the previous position.
func (t *Tile) SavePosition() {
	t.Previous = &Position{X: t.X, Y: t.Y}
}

// UpdatePosition moves the tile's recorded coordinates. It does not touch the grid.
func (t *Tile) UpdatePosition(pos Position) {
	t.X = pos.X
	t.Y = pos.Y
}

// Merged reports whether the tile was produced by a merge this turn.
func (t *Tile) Merged() bool {
	return t.MergedFrom != nil
}
