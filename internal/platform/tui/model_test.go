package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey("w"), core.ActionUp, false},
		{"a", runeKey("a"), core.ActionLeft, false},
		{"s", runeKey("s"), core.ActionDown, false},
		{"d", runeKey("d"), core.ActionRight, false},
		{"vim k", runeKey("k"), core.ActionUp, false},
		{"vim j", runeKey("j"), core.ActionDown, false},
		{"vim h", runeKey("h"), core.ActionLeft, false},
		{"vim l", runeKey("l"), core.ActionRight, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"space restarts", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionRestart, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"back", runeKey("b"), core.ActionBack, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}

	if !km.IsScreenshot(tea.KeyMsg{Type: tea.KeyCtrlS}) {
		t.Error("ctrl+s should request a screenshot")
	}
}

func TestRestartHelpNamesEveryKey(t *testing.T) {
	restart := NewKeyMapper().Keys().Restart

	if got := restart.Help().Key; got != "r/space" {
		t.Errorf("restart help key = %q, want %q", got, "r/space")
	}
	if keys := restart.Keys(); len(keys) != 2 || keys[0] != "r" || keys[1] != " " {
		t.Errorf("restart keys = %q, want [r, space]", keys)
	}

	controls := t2048.New(t2048.DefaultOptions()).Controls()
	if !strings.Contains(controls, "R/Space: Restart") {
		t.Errorf("controls line %q does not mention space", controls)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

// fakeGame records what the runner asks of it.
type fakeGame struct {
	state    core.GameState
	steps    []core.InputFrame
	restarts int
	resized  [2]int
	best     int
}

func (g *fakeGame) ID() string              { return "2048" }
func (g *fakeGame) Reset(core.RuntimeConfig) {}
func (g *fakeGame) Restart()                 { g.restarts++; g.state = core.GameState{} }
func (g *fakeGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *fakeGame) Render(dst *core.Screen)  { dst.Clear(); dst.DrawText(0, 0, "fake") }
func (g *fakeGame) State() core.GameState    { return g.state }
func (g *fakeGame) SetBestScore(score int)   { g.best = score }
func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps = append(g.steps, in.Clone())
	return core.StepResult{State: g.state}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func TestGameModelQueuesMovesForTick(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, core.DefaultConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runeKey("k"))
	if len(game.steps) != 0 {
		t.Fatal("keys should not step the game directly")
	}

	m, cmd := update(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(game.steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(game.steps))
	}
	got := game.steps[0].Actions()
	if len(got) != 2 || got[0] != core.ActionLeft || got[1] != core.ActionUp {
		t.Errorf("frame actions = %v, want [left up]", got)
	}

	update(t, m, TickMsg{})
	if !game.steps[1].Empty() {
		t.Error("input should be cleared after each tick")
	}
}

func TestGameModelSavesScoreOnceOnGameOver(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{}
	m := NewGameModel(game, store, core.DefaultConfig())

	game.state = core.GameState{Score: 512, MaxTile: 64, GameOver: true}
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})
	update(t, m, runeKey("q"))

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 512 || scores[0].MaxTile != 64 {
		t.Errorf("scores = %+v, want one 512/64 entry", scores)
	}
	if game.best != 512 {
		t.Errorf("best score shown = %d, want 512", game.best)
	}
}

func TestGameModelRestartSavesUnfinishedScore(t *testing.T) {
	store := openStore(t)
	game := &fakeGame{}
	m := NewGameModel(game, store, core.DefaultConfig())

	game.state = core.GameState{Score: 88, MaxTile: 16}
	m, _ = update(t, m, runeKey("r"))
	if game.restarts != 1 {
		t.Fatalf("restarts = %d, want 1", game.restarts)
	}

	// Restarting a fresh game with no score records nothing new
	update(t, m, runeKey("r"))

	scores, _ := store.TopScores("2048", 10)
	if len(scores) != 1 || scores[0].Score != 88 {
		t.Errorf("scores = %+v, want one 88 entry", scores)
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&fakeGame{}, nil, core.DefaultConfig())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.IsQuitting() {
		t.Error("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, core.DefaultConfig())

	m, _ = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back without a menu should be ignored")
	}

	m.allowBack = true
	m, _ = update(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back during play should be ignored")
	}

	game.state.Paused = true
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, runeKey("b"))
	if !m.BackToMenu() || cmd == nil {
		t.Error("back while paused should leave the game")
	}
}

func TestGameModelResize(t *testing.T) {
	game := &fakeGame{}
	m := NewGameModel(game, nil, core.DefaultConfig())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resized != [2]int{100, 40} {
		t.Errorf("resized = %v", game.resized)
	}
	if cfg := m.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestGameModelScreenshot(t *testing.T) {
	m := NewGameModel(&fakeGame{}, nil, core.DefaultConfig())
	m.screenshotDir = t.TempDir()

	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(m.screenshotDir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("screenshots = %v, %v", entries, err)
	}
	data, _ := os.ReadFile(filepath.Join(m.screenshotDir, entries[0].Name()))
	if !strings.HasPrefix(string(data), "fake") {
		t.Errorf("screenshot = %q", data)
	}
}

func TestGameModelRealGameView(t *testing.T) {
	game := t2048.New(t2048.DefaultOptions())
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	m := NewGameModel(game, nil, cfg)

	if !strings.Contains(m.View(), "Score: 0") {
		t.Error("view should show the HUD")
	}
}

func TestMenuModelChoices(t *testing.T) {
	m := NewMenuModel(nil, "2048", core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)
	if menu.Choice() != MenuChoiceScores || cmd == nil {
		t.Errorf("choice = %v, want scores", menu.Choice())
	}

	m = NewMenuModel(nil, "2048", core.DefaultConfig())
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if next.(MenuModel).Choice() != MenuChoicePlay {
		t.Error("first item should start a game")
	}
}

func TestScoreboardShowsScoresAndStats(t *testing.T) {
	store := openStore(t)
	store.SaveScore("2048", 1500, 128)
	store.SaveScore("2048", 300, 32)

	m := NewScoreboardModel(store, "2048", 80, 24)
	view := m.View()

	for _, want := range []string{"HIGH SCORES", "1500", "128", "Games: 2", "Best: 1500"} {
		if !strings.Contains(view, want) {
			t.Errorf("scoreboard missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(runeKey("b"))
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("b should go back")
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "2048", 80, 24)
	if !strings.Contains(m.View(), "unavailable") {
		t.Error("scoreboard should explain missing storage")
	}
}

func TestSessionModelFlow(t *testing.T) {
	newGame := func() Game { return t2048.New(t2048.DefaultOptions()) }
	var m tea.Model = NewSessionModel(nil, newGame, core.DefaultConfig())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.(SessionModel).screen != screenGame {
		t.Fatal("enter on the first item should start a game")
	}

	// Pause, then go back to the menu
	m, _ = m.Update(runeKey("p"))
	m, _ = m.Update(TickMsg{})
	m, cmd := m.Update(runeKey("b"))
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("b on a paused game should return to the menu")
	}
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("returning to the menu must not end the program")
		}
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScores {
		t.Fatal("tab should open the scoreboard")
	}

	m, _ = m.Update(runeKey("b"))
	m, cmd = m.Update(runeKey("q"))
	if !m.(SessionModel).quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
