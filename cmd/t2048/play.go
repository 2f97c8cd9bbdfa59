package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/platform/web"
)

var flagWatch string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of 2048 right away.

Controls:
  Arrows/WASD/HJKL - Slide tiles
  P/Esc            - Pause
  R/Space          - Restart
  Ctrl+S           - Save a text screenshot to ~/.t2048/screenshots
  Q/Ctrl+C         - Quit

With --watch, spectators can follow the game in a browser at the given
address (the page at /, a WebSocket feed at /ws, the board at /snapshot).

Examples:
  t2048 play
  t2048 play --size 5
  t2048 play --seed 42
  t2048 play --watch :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagWatch, "watch", "", "Serve a spectator feed on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger("t2048")
	if err != nil {
		return err
	}

	watch := cfg.Server.WatchAddress
	if cmd.Flags().Changed("watch") {
		watch = flagWatch
	}

	var extra []t2048.Renderer
	if watch != "" {
		// The TUI owns the terminal, so the feed logs to a file
		hubLogger, closeLog := fileLogger("web")
		defer closeLog()

		hub := web.NewHub(hubLogger)
		srv, listenErr := web.Listen(watch, hub)
		if listenErr != nil {
			return listenErr
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if serveErr := srv.Serve(ctx); serveErr != nil {
				hubLogger.Error("spectator feed stopped", "error", serveErr)
			}
		}()

		fmt.Printf("Spectators: http://%s/\n", srv.Addr())
		extra = append(extra, hub)
	}

	store := openStore(cfg.Storage.DBPath, logger)
	if store != nil {
		defer store.Close()
	}

	game := t2048.New(gameOptions(cfg), extra...)
	if _, err := tui.Run(game, store, runtimeConfig(cfg), false); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
