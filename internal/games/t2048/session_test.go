package t2048

import (
	"math/bits"
	"math/rand"
	"testing"
)

// recorder collects snapshots and counts restarts.
type recorder struct {
	snaps    []Snapshot
	restarts int
}

func (r *recorder) Actuate(snap Snapshot) { r.snaps = append(r.snaps, snap) }
func (r *recorder) Restart()              { r.restarts++ }

func (r *recorder) last() Snapshot { return r.snaps[len(r.snaps)-1] }

// newBoardSession builds a session and swaps in a fixed board.
func newBoardSession(values [][]int, winValue int, rng RandSource) (*Session, *recorder) {
	rec := &recorder{}
	s := NewSession(Options{
		Size:              len(values),
		StartTiles:        1,
		WinValue:          winValue,
		Spawn4Probability: DefaultSpawn4Probability,
		Rand:              rng,
	}, rec)
	s.grid = NewGridFromValues(values)
	return s, rec
}

func TestSessionSetup(t *testing.T) {
	rec := &recorder{}
	s := NewSession(DefaultOptions(), rec)

	if len(rec.snaps) != 1 {
		t.Fatalf("setup emitted %d snapshots, want 1", len(rec.snaps))
	}

	snap := rec.last()
	if len(snap.Tiles) != DefaultStartTiles {
		t.Errorf("start tiles = %d, want %d", len(snap.Tiles), DefaultStartTiles)
	}
	for _, tile := range snap.Tiles {
		if !tile.IsNew {
			t.Errorf("start tile %+v should be new", tile)
		}
		if tile.Value != 2 && tile.Value != 4 {
			t.Errorf("start tile value = %d, want 2 or 4", tile.Value)
		}
	}
	if s.Score() != 0 || s.Over() || s.Won() || s.Turn() != 0 {
		t.Error("setup should start with zero score and cleared flags")
	}
	if snap.Size != DefaultSize || snap.WinValue != DefaultWinValue {
		t.Errorf("snapshot size/win = %d/%d", snap.Size, snap.WinValue)
	}
}

func TestSessionDeterministicSpawn(t *testing.T) {
	rng := &scriptedRand{
		floats: []float64{0.05, 0.5},
		ints:   []int{0, 0},
	}
	s := NewSession(Options{Size: 4, StartTiles: 2, Spawn4Probability: 0.1, Rand: rng})

	values := s.Grid().Values()
	if values[0][0] != 4 {
		t.Errorf("first spawn = %d at (0,0), want 4", values[0][0])
	}
	// Available cells go x outer, y inner, so the next free cell is (0,1).
	if values[1][0] != 2 {
		t.Errorf("second spawn = %d at (0,1), want 2", values[1][0])
	}
}

func TestSessionMoveSpawnsAndScores(t *testing.T) {
	s, rec := newBoardSession([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, DefaultWinValue, &scriptedRand{})
	before := len(rec.snaps)

	if !s.Move(DirLeft) {
		t.Fatal("Move should report a change")
	}
	if len(rec.snaps) != before+1 {
		t.Fatalf("move emitted %d snapshots, want 1", len(rec.snaps)-before)
	}

	snap := rec.last()
	if snap.Score != 4 || snap.ScoreDelta != 4 || snap.Turn != 1 {
		t.Errorf("score/delta/turn = %d/%d/%d, want 4/4/1", snap.Score, snap.ScoreDelta, snap.Turn)
	}
	if len(snap.Tiles) != 2 {
		t.Fatalf("tiles = %d, want merged tile plus one spawn", len(snap.Tiles))
	}

	merged, ok := snap.TileAt(0, 0)
	if !ok || merged.Value != 4 || len(merged.MergedFrom) != 2 || merged.IsNew {
		t.Errorf("merged tile = %+v", merged)
	}

	newCount := 0
	for _, tile := range snap.Tiles {
		if tile.IsNew {
			newCount++
		}
	}
	if newCount != 1 {
		t.Errorf("new tiles after move = %d, want 1", newCount)
	}
}

func TestSessionNoOpMove(t *testing.T) {
	s, rec := newBoardSession([][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
	}, DefaultWinValue, &scriptedRand{})
	before := len(rec.snaps)

	if s.Move(DirRight) {
		t.Error("move into the edge should report no change")
	}
	if len(rec.snaps) != before {
		t.Error("no-op move emitted a snapshot")
	}
	if len(s.Grid().AvailableCells()) != 15 {
		t.Error("no-op move spawned a tile")
	}
	if s.Turn() != 0 || s.Score() != 0 {
		t.Error("no-op move changed session state")
	}
}

func TestSessionStall(t *testing.T) {
	// The only spawn cell is (1,0) and the scripted float makes it a 4,
	// which leaves no empty cells and no matches.
	rng := &scriptedRand{floats: []float64{0.5, 0.05}}
	s, rec := newBoardSession([][]int{
		{0, 2},
		{4, 8},
	}, DefaultWinValue, rng)

	if !s.Move(DirLeft) {
		t.Fatal("left should slide the 2")
	}
	if !s.Over() || !s.Terminal() || !rec.last().Over {
		t.Fatalf("board %v should be stalled", s.Grid().Values())
	}
	if s.Won() {
		t.Error("stall is not a win")
	}

	before := len(rec.snaps)
	for _, d := range Directions {
		if s.Move(d) {
			t.Errorf("Move(%v) accepted after game over", d)
		}
	}
	if len(rec.snaps) != before {
		t.Error("terminal session emitted snapshots")
	}
}

func TestSessionWin(t *testing.T) {
	s, rec := newBoardSession([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 2},
	}, 2048, &scriptedRand{})

	if !s.Move(DirLeft) {
		t.Fatal("merge should change the board")
	}
	if !s.Won() || !rec.last().Won {
		t.Fatal("reaching 2048 should win")
	}
	if s.Score() != 2048 {
		t.Errorf("score = %d, want 2048", s.Score())
	}
	if s.Move(DirRight) || s.Move(DirDown) {
		t.Error("moves accepted after win")
	}
}

func TestSessionRestart(t *testing.T) {
	s, rec := newBoardSession([][]int{
		{4, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, 8, &scriptedRand{})

	s.Move(DirLeft)
	if !s.Won() {
		t.Fatal("setup: expected a win")
	}

	s.Restart()
	if rec.restarts != 1 {
		t.Errorf("Restarter called %d times, want 1", rec.restarts)
	}
	if s.Score() != 0 || s.Won() || s.Over() || s.Turn() != 0 {
		t.Error("restart should reset score and flags")
	}
	if got := len(rec.last().Tiles); got != 1 {
		t.Errorf("restart tiles = %d, want 1", got)
	}
	if !s.Move(DirLeft) && !s.Move(DirRight) {
		t.Error("restarted session should accept moves")
	}
}

func TestSessionSnapshotIsDeepCopy(t *testing.T) {
	s, _ := newBoardSession([][]int{
		{2, 2},
		{0, 0},
	}, DefaultWinValue, &scriptedRand{})
	s.Move(DirLeft)

	snap := s.Snapshot()
	merged, ok := snap.TileAt(0, 0)
	if !ok {
		t.Fatal("missing merged tile")
	}

	for i := range snap.Tiles {
		snap.Tiles[i].Value = 999
		if snap.Tiles[i].Previous != nil {
			snap.Tiles[i].Previous.X = 7
		}
	}
	merged.MergedFrom[0].Value = 999
	merged.MergedFrom[0].Previous.X = 7

	tile := s.Grid().CellContent(Position{0, 0})
	if tile.Value != 4 {
		t.Errorf("session tile value = %d after mutating snapshot", tile.Value)
	}
	if tile.MergedFrom[0].Value != 2 || tile.MergedFrom[0].Previous.X != 1 {
		t.Error("merge sources shared with snapshot")
	}
}

func TestSessionAddRenderer(t *testing.T) {
	s := NewSession(DefaultOptions())

	rec := &recorder{}
	s.AddRenderer(rec)
	if len(rec.snaps) != 1 || rec.last().Turn != 0 {
		t.Fatal("AddRenderer should deliver the current snapshot")
	}
}

func TestSessionInvariantsUnderPlay(t *testing.T) {
	s := NewSession(Options{Size: 4, Rand: rand.New(rand.NewSource(42))})

	prevScore := 0
	for i := 0; i < 500 && !s.Terminal(); i++ {
		d := Directions[i%len(Directions)]
		moved := s.Move(d)

		if s.Score() < prevScore {
			t.Fatalf("score decreased from %d to %d", prevScore, s.Score())
		}
		prevScore = s.Score()

		if moved && !s.Won() && s.Over() != !MovesAvailable(s.Grid()) {
			t.Fatalf("over = %v but MovesAvailable = %v", s.Over(), MovesAvailable(s.Grid()))
		}

		s.Grid().EachCell(func(x, y int, tile *Tile) {
			if tile == nil {
				return
			}
			if tile.X != x || tile.Y != y {
				t.Fatalf("tile at cell (%d,%d) records (%d,%d)", x, y, tile.X, tile.Y)
			}
			if tile.Value < 2 || bits.OnesCount(uint(tile.Value)) != 1 {
				t.Fatalf("tile value %d is not a power of two", tile.Value)
			}
			if tile.MergedFrom == nil {
				return
			}
			// A tile merges at most once per move
			for _, src := range tile.MergedFrom {
				if src.MergedFrom != nil {
					t.Fatalf("merged tile %d at (%d,%d) has a source that merged in the same move", tile.Value, x, y)
				}
				if src.Value*2 != tile.Value {
					t.Fatalf("merged tile %d at (%d,%d) has source %d", tile.Value, x, y, src.Value)
				}
			}
		})
	}
}

func TestSessionIgnoresInvalidDirection(t *testing.T) {
	s, rec := newBoardSession([][]int{
		{2, 2},
		{0, 0},
	}, DefaultWinValue, &scriptedRand{})
	before := len(rec.snaps)

	if s.Move(Direction(-1)) || s.Move(Direction(4)) {
		t.Error("invalid direction accepted")
	}
	if len(rec.snaps) != before {
		t.Error("invalid direction emitted a snapshot")
	}
}
