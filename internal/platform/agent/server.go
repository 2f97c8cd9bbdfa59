// Package agent exposes a 2048 session to AI agents as MCP tools.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const instructions = `2048 - MCP Interface

Slide all tiles up, right, down or left. Two tiles with the same value
merge into one with their sum, and the merged value is added to the score.
After every move that changes the board a new tile (2, or 4 with
probability 0.1) appears in an empty cell. Reach the target tile to win;
the game is over when no move can change the board.

TOOLS:
- state: current board, score and flags
- move: slide in a direction (up/right/down/left)
- restart: start a new game

The board is shown row by row from the top; "." is an empty cell.`

// Options configures a Server.
type Options struct {
	Game t2048.Options

	// Store records final scores. Nil disables recording.
	Store *storage.Store

	// Renderers receive every snapshot (e.g. a spectator hub).
	Renderers []t2048.Renderer

	// Logger must not write to stdout, which carries the protocol.
	Logger *log.Logger
}

// Server owns one session and serializes tool calls against it.
type Server struct {
	mu    sync.Mutex
	sess  *t2048.Session
	saved bool

	store  *storage.Store
	logger *log.Logger
	mcp    *server.MCPServer
}

// New starts a session and registers the tools.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-mcp",
		})
	}

	s := &Server{
		sess:   t2048.NewSession(opts.Game, opts.Renderers...),
		store:  opts.Store,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(
		"2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("state",
		mcp.WithDescription("Get the current board, score and game flags"),
	), s.handleState)

	s.mcp.AddTool(mcp.NewTool("move",
		mcp.WithDescription("Slide all tiles in one direction"),
		mcp.WithString("direction",
			mcp.Required(),
			mcp.Description("Direction to slide"),
			mcp.Enum("up", "right", "down", "left"),
		),
	), s.handleMove)

	s.mcp.AddTool(mcp.NewTool("restart",
		mcp.WithDescription("Abandon the current game and start a new one"),
	), s.handleRestart)
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// ServeStdio serves the protocol over in/out until ctx is cancelled or in
// is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(s.logger.StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel}))

	s.logger.Info("MCP stdio server ready")
	err := stdio.Listen(ctx, in, out)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordScore()

	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("agent: %w", err)
	}
	return nil
}

// MoveReport is the outcome of a move tool call.
type MoveReport struct {
	Direction  string `json:"direction"`
	Moved      bool   `json:"moved"`
	Score      int    `json:"score"`
	ScoreDelta int    `json:"score_delta"`
	Over       bool   `json:"over"`
	Won        bool   `json:"won"`
	MaxTile    int    `json:"max_tile"`
}

func (s *Server) handleState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	snap := s.sess.Snapshot()
	s.mu.Unlock()

	return snapshotResult(describe(snap), snap)
}

func (s *Server) handleMove(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dir, err := t2048.ParseDirection(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess.Terminal() {
		return mcp.NewToolResultError("game is finished; call restart to play again"), nil
	}

	moved := s.sess.Move(dir)
	snap := s.sess.Snapshot()
	report := MoveReport{
		Direction: dir.String(),
		Moved:     moved,
		Score:     snap.Score,
		Over:      snap.Over,
		Won:       snap.Won,
		MaxTile:   snap.MaxTile(),
	}
	if moved {
		report.ScoreDelta = snap.ScoreDelta
	}

	s.logger.Debug("move", "direction", report.Direction, "moved", moved, "score", report.Score)
	if snap.Terminal() {
		s.recordScore()
	}

	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("agent: encode move report: %w", err)
	}

	var b strings.Builder
	switch {
	case !moved:
		fmt.Fprintf(&b, "Nothing moved %s.\n", report.Direction)
	case report.ScoreDelta > 0:
		fmt.Fprintf(&b, "Moved %s, +%d points.\n", report.Direction, report.ScoreDelta)
	default:
		fmt.Fprintf(&b, "Moved %s.\n", report.Direction)
	}
	b.WriteString(describe(snap))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(b.String()),
			mcp.NewTextContent(string(data)),
		},
	}, nil
}

func (s *Server) handleRestart(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	s.recordScore()
	s.sess.Restart()
	s.saved = false
	snap := s.sess.Snapshot()
	s.mu.Unlock()

	s.logger.Info("game restarted")
	return snapshotResult("New game.\n"+describe(snap), snap)
}

// recordScore stores the current score once per game. Callers hold mu.
func (s *Server) recordScore() {
	score := s.sess.Score()
	if s.saved || score <= 0 {
		return
	}
	s.saved = true

	if s.store == nil {
		return
	}
	if _, err := s.store.SaveScore(t2048.GameID, score, s.sess.MaxTile()); err != nil {
		s.logger.Warn("could not save score", "error", err)
		return
	}
	s.logger.Info("score recorded", "score", score, "max_tile", s.sess.MaxTile())
}

// describe renders the board plus a status line.
func describe(snap t2048.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d  Turn: %d  Max tile: %d  Target: %d\n",
		snap.Score, snap.Turn, snap.MaxTile(), snap.WinValue)
	switch {
	case snap.Won:
		b.WriteString("You win!\n")
	case snap.Over:
		b.WriteString("Game over!\n")
	}
	b.WriteString("\n")
	b.WriteString(snap.String())
	b.WriteString("\n")
	return b.String()
}

func snapshotResult(text string, snap t2048.Snapshot) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("agent: encode snapshot: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
			mcp.NewTextContent(string(data)),
		},
	}, nil
}
