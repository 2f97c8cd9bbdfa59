package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// TileSnapshot is an immutable copy of one tile.
type TileSnapshot struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Value int `json:"value"`

	// Previous is set when the tile existed before this turn.
	Previous *Position `json:"previous,omitempty"`

	// MergedFrom holds the two source tiles when this tile is a merge result.
	MergedFrom []TileSnapshot `json:"merged_from,omitempty"`

	// IsNew marks tiles spawned this turn (or at setup).
	IsNew bool `json:"is_new,omitempty"`
}

// Snapshot is what the session hands to renderers after setup and after
// every move that changed the board. It shares no memory with the session.
type Snapshot struct {
	Size       int            `json:"size"`
	Turn       int            `json:"turn"`
	Score      int            `json:"score"`
	ScoreDelta int            `json:"score_delta"`
	Over       bool           `json:"over"`
	Won        bool           `json:"won"`
	WinValue   int            `json:"win_value"`
	Tiles      []TileSnapshot `json:"tiles"`
}

func snapshotTile(t *Tile) TileSnapshot {
	ts := TileSnapshot{X: t.X, Y: t.Y, Value: t.Value}
	if t.Previous != nil {
		prev := *t.Previous
		ts.Previous = &prev
	}
	if t.MergedFrom != nil {
		ts.MergedFrom = []TileSnapshot{
			snapshotTile(t.MergedFrom[0]),
			snapshotTile(t.MergedFrom[1]),
		}
	}
	ts.IsNew = t.Previous == nil && t.MergedFrom == nil
	return ts
}

// Terminal reports whether the snapshot shows a finished session.
func (s Snapshot) Terminal() bool {
	return s.Over || s.Won
}

// Values returns the board as values[y][x], 0 for empty cells.
func (s Snapshot) Values() [][]int {
	values := make([][]int, s.Size)
	for y := range values {
		values[y] = make([]int, s.Size)
	}
	for _, t := range s.Tiles {
		values[t.Y][t.X] = t.Value
	}
	return values
}

// MaxTile returns the highest tile value in the snapshot.
func (s Snapshot) MaxTile() int {
	best := 0
	for _, t := range s.Tiles {
		best = max(best, t.Value)
	}
	return best
}

// TileAt returns the tile at (x, y), if any.
func (s Snapshot) TileAt(x, y int) (TileSnapshot, bool) {
	for _, t := range s.Tiles {
		if t.X == x && t.Y == y {
			return t, true
		}
	}
	return TileSnapshot{}, false
}

// String renders the board as plain text, one row per line.
func (s Snapshot) String() string {
	values := s.Values()

	width := len(strconv.Itoa(max(s.MaxTile(), 2)))
	var b strings.Builder
	for y, row := range values {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, v := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if v == 0 {
				b.WriteString(fmt.Sprintf("%*s", width, "."))
				continue
			}
			b.WriteString(fmt.Sprintf("%*d", width, v))
		}
	}
	return b.String()
}
