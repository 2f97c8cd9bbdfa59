// Package config provides YAML-based configuration loading for 2048:
// board rules, display, score storage and server addresses.
package config

import (
	"errors"
	"fmt"
	"math/bits"
	"time"
)

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// BoardConfig defines the game rules.
type BoardConfig struct {
	Size              int     `yaml:"size"`
	StartTiles        int     `yaml:"start_tiles"`
	WinValue          int     `yaml:"win_value"`
	Spawn4Probability float64 `yaml:"spawn4_probability"`
}

// DisplayConfig defines terminal rendering parameters.
type DisplayConfig struct {
	TickRate   int  `yaml:"tick_rate"`
	Animations bool `yaml:"animations"`
}

// StorageConfig defines where high scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig defines network frontends.
type ServerConfig struct {
	SSHAddress   string        `yaml:"ssh_address"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	WatchAddress string        `yaml:"watch_address"` // Empty disables the spectator feed
}

// Board size limits.
const (
	MinBoardSize = 2
	MaxBoardSize = 8
)

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	var errs []error

	b := c.Board
	if b.Size < MinBoardSize || b.Size > MaxBoardSize {
		errs = append(errs, fmt.Errorf("board.size must be %d..%d, got %d", MinBoardSize, MaxBoardSize, b.Size))
	}
	// A full board at setup would be stalled before the first move.
	if b.StartTiles < 1 || b.StartTiles >= b.Size*b.Size {
		errs = append(errs, fmt.Errorf("board.start_tiles must be 1..%d, got %d", max(b.Size*b.Size-1, 1), b.StartTiles))
	}
	if b.WinValue < 4 || bits.OnesCount(uint(b.WinValue)) != 1 {
		errs = append(errs, fmt.Errorf("board.win_value must be a power of two >= 4, got %d", b.WinValue))
	}
	if b.Spawn4Probability < 0 || b.Spawn4Probability > 1 {
		errs = append(errs, fmt.Errorf("board.spawn4_probability must be within [0, 1], got %g", b.Spawn4Probability))
	}

	if c.Display.TickRate < 1 || c.Display.TickRate > 240 {
		errs = append(errs, fmt.Errorf("display.tick_rate must be 1..240, got %d", c.Display.TickRate))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.idle_timeout must not be negative, got %s", c.Server.IdleTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
