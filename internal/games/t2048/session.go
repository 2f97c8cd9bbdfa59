// Package t2048 implements the 2048 sliding-tile puzzle: the tile and grid
// model, move resolution, the turn-sequencing Session, and a terminal
// adapter that animates session snapshots into a core.Screen.
package t2048

import (
	"math/rand"
	"time"
)

// Defaults for a classic game.
const (
	DefaultSize              = 4
	DefaultStartTiles        = 2
	DefaultWinValue          = 2048
	DefaultSpawn4Probability = 0.1
)

// Options configures a Session.
type Options struct {
	Size       int // Board dimension N (N×N)
	StartTiles int // Tiles spawned by Setup
	WinValue   int // Merging a tile to this value wins

	// Spawn4Probability is the chance a spawned tile is 4 instead of 2.
	// Used as given (clamped to [0, 1]); start from DefaultOptions to get 0.1.
	Spawn4Probability float64

	// Rand drives spawn cell and value. Nil means a time-seeded source.
	Rand RandSource
}

// DefaultOptions returns the classic 4×4, two start tiles, 2048 target setup.
func DefaultOptions() Options {
	return Options{
		Size:              DefaultSize,
		StartTiles:        DefaultStartTiles,
		WinValue:          DefaultWinValue,
		Spawn4Probability: DefaultSpawn4Probability,
	}
}

func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.StartTiles <= 0 {
		o.StartTiles = DefaultStartTiles
	}
	if o.WinValue <= 0 {
		o.WinValue = DefaultWinValue
	}
	o.Spawn4Probability = min(max(o.Spawn4Probability, 0), 1)
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Session runs one game at a time: setup, turn sequencing, terminal state,
// and snapshot emission. It is not safe for concurrent use.
type Session struct {
	opts      Options
	grid      *Grid
	renderers MultiRenderer

	score      int
	scoreDelta int
	turn       int
	over       bool
	won        bool
}

// NewSession creates a session and runs Setup, so renderers receive the
// initial snapshot before NewSession returns.
func NewSession(opts Options, renderers ...Renderer) *Session {
	s := &Session{
		opts:      opts.normalized(),
		renderers: renderers,
	}
	s.Setup()
	return s
}

// AddRenderer registers r and immediately hands it the current snapshot.
func (s *Session) AddRenderer(r Renderer) {
	s.renderers = append(s.renderers, r)
	r.Actuate(s.Snapshot())
}

// Setup starts a fresh game on an empty grid.
func (s *Session) Setup() {
	s.grid = NewGrid(s.opts.Size)
	s.score = 0
	s.scoreDelta = 0
	s.turn = 0
	s.over = false
	s.won = false

	for range s.opts.StartTiles {
		s.addRandomTile()
	}

	s.actuate()
}

// Restart clears terminal UI state in renderers and starts over.
func (s *Session) Restart() {
	s.renderers.Restart()
	s.Setup()
}

// Move plays one turn in dir. It returns false, changing nothing, when the
// session is terminal, dir is unknown, or no tile could move.
func (s *Session) Move(dir Direction) bool {
	if s.Terminal() || !dir.Valid() {
		return false
	}

	res := resolveMove(s.grid, dir, s.opts.WinValue)
	if !res.moved {
		return false
	}

	s.score += res.score
	s.scoreDelta = res.score
	s.turn++
	if res.won {
		s.won = true
	}

	s.addRandomTile()

	if !MovesAvailable(s.grid) {
		s.over = true
	}

	s.actuate()
	return true
}

// addRandomTile spawns a 2 (or a 4, with Spawn4Probability) on a random
// empty cell. No-op on a full board.
func (s *Session) addRandomTile() {
	if !s.grid.AnyAvailable() {
		return
	}

	value := 2
	if s.opts.Rand.Float64() < s.opts.Spawn4Probability {
		value = 4
	}

	pos, ok := s.grid.RandomAvailableCell(s.opts.Rand)
	if !ok {
		return
	}
	s.grid.InsertTile(NewTile(pos, value))
}

func (s *Session) actuate() {
	if len(s.renderers) == 0 {
		return
	}
	s.renderers.Actuate(s.Snapshot())
}

// Snapshot returns an immutable copy of the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Size:       s.grid.Size(),
		Turn:       s.turn,
		Score:      s.score,
		ScoreDelta: s.scoreDelta,
		Over:       s.over,
		Won:        s.won,
		WinValue:   s.opts.WinValue,
	}
	s.grid.EachCell(func(_, _ int, tile *Tile) {
		if tile != nil {
			snap.Tiles = append(snap.Tiles, snapshotTile(tile))
		}
	})
	return snap
}

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Turn returns the number of moves that changed the board.
func (s *Session) Turn() int { return s.turn }

// Over reports whether the board has stalled.
func (s *Session) Over() bool { return s.over }

// Won reports whether a tile reached the win value.
func (s *Session) Won() bool { return s.won }

// Terminal reports whether the session no longer accepts moves.
func (s *Session) Terminal() bool { return s.over || s.won }

// MaxTile returns the highest tile on the board.
func (s *Session) MaxTile() int { return s.grid.MaxTile() }

// Grid exposes the board for inspection. Callers must not mutate it.
func (s *Session) Grid() *Grid { return s.grid }

// Options returns the effective options.
func (s *Session) Options() Options { return s.opts }
