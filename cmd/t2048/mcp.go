package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/agent"
	"github.com/vovakirdan/tui-2048/internal/platform/web"
)

var flagMCPWatch string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game to an AI agent over MCP stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout. The agent gets
three tools: state, move (direction: up/right/down/left) and restart.
Finished games are recorded in the scores database.

Logs go to stderr; stdout carries the protocol.

Examples:
  t2048 mcp
  t2048 mcp --watch :8080   # Watch the agent play in a browser`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagMCPWatch, "watch", "", "Serve a spectator feed on this address (e.g. :8080)")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger("t2048-mcp")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := gameOptions(cfg)
	if cmd.Flags().Changed("seed") {
		opts.Rand = seededRand(flagSeed)
	}

	var renderers []t2048.Renderer
	watch := cfg.Server.WatchAddress
	if cmd.Flags().Changed("watch") {
		watch = flagMCPWatch
	}
	if watch != "" {
		hub := web.NewHub(logger.WithPrefix("web"))
		srv, err := web.Listen(watch, hub)
		if err != nil {
			return err
		}

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if serveErr := srv.Serve(watchCtx); serveErr != nil {
				logger.Error("spectator feed stopped", "error", serveErr)
			}
		}()
		renderers = append(renderers, hub)
	}

	store := openStore(cfg.Storage.DBPath, logger)
	if store != nil {
		defer store.Close()
	}

	server := agent.New(agent.Options{
		Game:      opts,
		Store:     store,
		Renderers: renderers,
		Logger:    logger,
	})
	return server.ServeStdio(ctx, os.Stdin, os.Stdout)
}
