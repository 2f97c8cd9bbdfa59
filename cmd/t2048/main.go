// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 play      - Play a game
//	t2048 menu      - Start at the main menu (new game, high scores)
//	t2048 serve     - Start SSH server for remote play
//	t2048 scores    - Show high scores
//	t2048 mcp       - Serve the game to an AI agent over MCP stdio
//	t2048 config    - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default from config: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.t2048/scores.db)
//	--size <n>          - Board size (2..8)
//	--config <path>     - Config file to load
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagSize     int
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - Join the tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Available commands:
  play     - Play a game directly
  menu     - Main menu with new game and high scores
  serve    - Start SSH server for remote play
  scores   - View high scores
  mcp      - Let an AI agent play over MCP stdio
  config   - Print the effective configuration

Examples:
  t2048 play
  t2048 play --size 5 --watch :8080
  t2048 menu
  t2048 serve --ssh :2222
  t2048 scores`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 4, "Board size (2..8)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Display.TickRate = flagFPS
	}
	if flags.Changed("size") {
		cfg.Board.Size = flagSize
		// Keep the default start tiles valid on tiny boards
		cfg.Board.StartTiles = min(cfg.Board.StartTiles, flagSize*flagSize-1)
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}

	return cfg, cfg.Validate()
}

// newLogger builds the stderr logger used by the server commands.
func newLogger(prefix string) (*log.Logger, error) {
	return newLoggerTo(os.Stderr, prefix)
}

func newLoggerTo(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// fileLogger logs to ~/.t2048/t2048.log while a TUI owns the terminal. It
// falls back to discarding output.
func fileLogger(prefix string) (*log.Logger, func()) {
	dir := config.Dir()
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "t2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
			if err == nil {
				if logger, lerr := newLoggerTo(f, prefix); lerr == nil {
					return logger, func() { f.Close() }
				}
				f.Close()
			}
		}
	}
	return log.New(io.Discard), func() {}
}

// gameOptions maps the board section onto session options.
func gameOptions(cfg config.Config) t2048.Options {
	return t2048.Options{
		Size:              cfg.Board.Size,
		StartTiles:        cfg.Board.StartTiles,
		WinValue:          cfg.Board.WinValue,
		Spawn4Probability: cfg.Board.Spawn4Probability,
	}
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   cfg.Display.TickRate,
		Seed:       flagSeed,
		Animations: cfg.Display.Animations,
	}
}

// openStore opens the scores database, or returns nil so the game runs
// without scores.
func openStore(path string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", path, "error", err)
		return nil
	}
	return store
}

// seededRand returns a deterministic source for reproducible sessions.
func seededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
