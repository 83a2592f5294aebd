package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration, used when the embedded
// YAML cannot be decoded.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Game: GameConfig{
			Players:     2,
			KingdomMode: "random",
		},
		Rules: RulesConfig{
			VictoryPileSize: 4,
			Library:         "keep_all",
			Reactions:       "auto",
			TieBreak:        "fewest_turns",
		},
		Simulate: SimulateConfig{
			Games:      100,
			Workers:    4,
			MaxMoves:   5000,
			SeedPrefix: "sim",
		},
	}
}
