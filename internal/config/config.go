// Package config provides YAML-based configuration loading for the engine,
// the session layer and the command line, with environment overrides.
package config

// Config is the full configuration file.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Game     GameConfig     `yaml:"game"`
	Rules    RulesConfig    `yaml:"rules"`
	Simulate SimulateConfig `yaml:"simulate"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// GameConfig describes how games are set up.
type GameConfig struct {
	Players     int      `yaml:"players"`
	KingdomMode string   `yaml:"kingdom_mode"` // random, explicit, all
	Kingdom     []string `yaml:"kingdom"`
	Debug       bool     `yaml:"debug"`
}

// RulesConfig maps onto engine.Rules.
type RulesConfig struct {
	VictoryPileSize int    `yaml:"victory_pile_size"`
	Library         string `yaml:"library"`   // keep_all, ask
	Reactions       string `yaml:"reactions"` // auto, ask
	TieBreak        string `yaml:"tie_break"` // fewest_turns, lowest_seat
}

// SimulateConfig drives self-play runs.
type SimulateConfig struct {
	Games      int    `yaml:"games"`
	Workers    int    `yaml:"workers"`
	MaxMoves   int    `yaml:"max_moves"`
	SeedPrefix string `yaml:"seed_prefix"`
}
