package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the 2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session starting at the main menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.t2048/host_key

Examples:
  t2048 serve                           # Listen on :23234 with auto-generated key
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --idle-timeout 10m        # Disconnect idle players sooner

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config: :23234)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config: 30m)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.Server.SSHAddress = flagSSHAddr
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger("t2048-ssh")
	if err != nil {
		return err
	}

	opts := gameOptions(cfg)
	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     cfg.Server.SSHAddress,
		HostKeyPath: flagHostKey,
		DBPath:      cfg.Storage.DBPath,
		IdleTimeout: cfg.Server.IdleTimeout,
		TickRate:    cfg.Display.TickRate,
		Animations:  cfg.Display.Animations,
		NewGame:     func() tui.Game { return t2048.New(opts) },
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Starting 2048 SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
