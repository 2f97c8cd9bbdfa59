package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Game is what the runner drives each tick. *t2048.Game implements it.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Restart()
	Resize(width, height int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	SetBestScore(score int)
}

// GameModel is the Bubble Tea model for a running game.
type GameModel struct {
	game          Game
	screen        *core.Screen
	store         *storage.Store
	config        core.RuntimeConfig
	keys          *KeyMapper
	inputFrame    core.InputFrame
	gameState     core.GameState
	screenshotDir string

	allowBack  bool // B returns to the menu
	embedded   bool // Hosted by SessionModel; don't quit the program on back
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game's score has been recorded
}

// NewGameModel resets game for cfg and wraps it in a Bubble Tea model.
// store may be nil, in which case scores are not recorded.
func NewGameModel(game Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game.Reset(cfg)
	if store != nil {
		if best, err := store.HighScore(game.ID()); err == nil {
			game.SetBestScore(best)
		}
	}

	return GameModel{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:         store,
		config:        cfg,
		keys:          NewKeyMapper(),
		inputFrame:    core.NewInputFrame(),
		gameState:     game.State(),
		screenshotDir: filepath.Join(config.Dir(), "screenshots"),
	}
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Moves and pause are queued for the
// next tick; restart, back and quit take effect immediately.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.recordScore()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
	case core.ActionRestart:
		m.recordScore()
		m.game.Restart()
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
	case core.ActionBack:
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.recordScore()
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver {
		m.recordScore()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordScore saves the current score once per game. Storage errors are
// ignored so the game keeps running.
func (m *GameModel) recordScore() {
	state := m.game.State()
	if m.scoreSaved || state.Score <= 0 {
		return
	}
	m.scoreSaved = true

	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.game.ID(), state.Score, state.MaxTile)
	if best, err := m.store.HighScore(m.game.ID()); err == nil {
		m.game.SetBestScore(best)
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Config returns the runtime config, including the latest window size.
func (m GameModel) Config() core.RuntimeConfig {
	return m.config
}

// Run plays game in the terminal until the player quits. With fromMenu set,
// B on a paused or finished game also exits, and backToMenu reports it.
func Run(game Game, store *storage.Store, cfg core.RuntimeConfig, fromMenu bool) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg)
	model.allowBack = fromMenu

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
