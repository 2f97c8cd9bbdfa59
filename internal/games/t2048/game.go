package t2048

import (
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// GameID is the identifier scores are stored under.
const GameID = "2048"

// Game adapts a Session to the tick-driven terminal platform: it maps input
// actions to moves, owns the animated board view, and draws into a screen.
type Game struct {
	opts   Options
	extra  []Renderer
	view   *boardView
	sess   *Session
	tick   uint64
	paused bool

	screenW  int
	screenH  int
	tooSmall bool

	bestScore int
}

// New creates a terminal game. extra renderers (e.g. a spectator feed)
// receive every snapshot alongside the board view.
func New(opts Options, extra ...Renderer) *Game {
	return &Game{
		opts:  opts,
		extra: extra,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Reset starts a new session sized to the screen and seeded from cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.paused = false

	opts := g.opts
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(cfg.Seed))
	}

	g.view = newBoardView(cfg.Animations)
	renderers := append([]Renderer{g.view}, g.extra...)
	g.sess = NewSession(opts, renderers...)

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Restart begins a new game on the existing session.
func (g *Game) Restart() {
	g.paused = false
	g.sess.Restart()
}

// Resize updates the screen dimensions without touching game state.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	minW, minH := minScreenSize(g.sess.Options().Size)
	g.tooSmall = width < minW || height < minH
}

// SetBestScore sets the best recorded score shown in the HUD.
func (g *Game) SetBestScore(score int) {
	g.bestScore = score
}

// Step advances the game by one tick, applying queued actions in order.
// Restart and quit are platform concerns and are ignored here.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	moved := false
	for _, a := range in.Actions() {
		switch {
		case a == core.ActionPause:
			g.paused = !g.paused
		case a.IsMove() && !g.paused:
			// A new move cuts the previous animation short.
			g.view.finish()
			if g.sess.Move(directionFor(a)) {
				moved = true
			}
		}
	}

	if !g.paused {
		g.view.advance()
	}

	return core.StepResult{State: g.State(), Moved: moved}
}

func directionFor(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionRight:
		return DirRight
	case core.ActionDown:
		return DirDown
	default:
		return DirLeft
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.sess.Score(),
		MaxTile:  g.sess.MaxTile(),
		GameOver: g.sess.Terminal(),
		Won:      g.sess.Won(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Snapshot returns the snapshot the board view is currently showing.
func (g *Game) Snapshot() Snapshot {
	return g.view.snap
}

// Animating reports whether the board is mid-animation.
func (g *Game) Animating() bool {
	return g.view.Animating()
}
