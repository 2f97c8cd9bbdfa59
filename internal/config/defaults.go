package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Size:              4,
			StartTiles:        2,
			WinValue:          2048,
			Spawn4Probability: 0.1,
		},
		Display: DisplayConfig{
			TickRate:   60,
			Animations: true,
		},
		Storage: StorageConfig{
			DBPath: "~/.t2048/scores.db",
		},
		Server: ServerConfig{
			SSHAddress:  ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
