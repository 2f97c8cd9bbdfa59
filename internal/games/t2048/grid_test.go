package t2048

import (
	"reflect"
	"testing"
)

// scriptedRand replays fixed values. Exhausted queues fall back to 0 for
// Intn and 0.5 for Float64, which always spawns a 2.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(3)

	tests := []struct {
		pos    Position
		within bool
	}{
		{Position{0, 0}, true},
		{Position{2, 2}, true},
		{Position{-1, 0}, false},
		{Position{0, -1}, false},
		{Position{3, 0}, false},
		{Position{0, 3}, false},
	}

	for _, tt := range tests {
		if got := g.WithinBounds(tt.pos); got != tt.within {
			t.Errorf("WithinBounds(%v) = %v, want %v", tt.pos, got, tt.within)
		}
		if g.CellContent(tt.pos) != nil {
			t.Errorf("CellContent(%v) on empty grid should be nil", tt.pos)
		}
		if got := g.CellAvailable(tt.pos); got != tt.within {
			t.Errorf("CellAvailable(%v) = %v, want %v", tt.pos, got, tt.within)
		}
		if g.CellOccupied(tt.pos) {
			t.Errorf("CellOccupied(%v) on empty grid should be false", tt.pos)
		}
	}
}

func TestGridInsertRemove(t *testing.T) {
	g := NewGrid(4)
	tile := NewTile(Position{1, 2}, 8)
	g.InsertTile(tile)

	if g.CellContent(Position{1, 2}) != tile {
		t.Fatal("inserted tile not found at its position")
	}
	if g.CellAvailable(Position{1, 2}) {
		t.Error("occupied cell reported available")
	}
	if len(g.AvailableCells()) != 15 {
		t.Errorf("AvailableCells() = %d, want 15", len(g.AvailableCells()))
	}

	g.RemoveTile(tile)
	if g.CellOccupied(Position{1, 2}) {
		t.Error("cell still occupied after RemoveTile")
	}
}

func TestGridInsertContractViolations(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
	}{
		{"occupied", Position{0, 0}},
		{"out of bounds", Position{4, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(4)
			g.InsertTile(NewTile(Position{0, 0}, 2))

			defer func() {
				if recover() == nil {
					t.Errorf("InsertTile at %v should panic", tt.pos)
				}
			}()
			g.InsertTile(NewTile(tt.pos, 2))
		})
	}
}

func TestAvailableCellsOrder(t *testing.T) {
	g := NewGridFromValues([][]int{
		{2, 0},
		{0, 0},
	})

	want := []Position{{0, 1}, {1, 0}, {1, 1}}
	if got := g.AvailableCells(); !reflect.DeepEqual(got, want) {
		t.Errorf("AvailableCells() = %v, want %v", got, want)
	}
}

func TestRandomAvailableCell(t *testing.T) {
	g := NewGridFromValues([][]int{
		{2, 0},
		{0, 0},
	})

	pos, ok := g.RandomAvailableCell(&scriptedRand{ints: []int{2}})
	if !ok || pos != (Position{1, 1}) {
		t.Errorf("RandomAvailableCell = %v, %v; want {1 1}, true", pos, ok)
	}

	full := NewGridFromValues([][]int{
		{2, 4},
		{8, 16},
	})
	if _, ok := full.RandomAvailableCell(&scriptedRand{}); ok {
		t.Error("RandomAvailableCell on a full grid should report false")
	}
	if full.AnyAvailable() {
		t.Error("AnyAvailable on a full grid should be false")
	}
}

func TestGridValues(t *testing.T) {
	values := [][]int{
		{2, 0, 4},
		{0, 8, 0},
		{16, 0, 0},
	}
	g := NewGridFromValues(values)

	if got := g.Values(); !reflect.DeepEqual(got, values) {
		t.Errorf("Values() = %v, want %v", got, values)
	}
	if tile := g.CellContent(Position{X: 2, Y: 0}); tile == nil || tile.Value != 4 {
		t.Errorf("CellContent(2,0) = %v, want value 4", tile)
	}
	if g.MaxTile() != 16 {
		t.Errorf("MaxTile() = %d, want 16", g.MaxTile())
	}
}

func TestEachCellOrder(t *testing.T) {
	g := NewGrid(2)

	var visited []Position
	g.EachCell(func(x, y int, _ *Tile) {
		visited = append(visited, Position{x, y})
	})

	want := []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("EachCell order = %v, want %v", visited, want)
	}
}
