package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jason-s-yu/principality/engine"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRINCIPALITY_"

// Load reads the configuration.
// Search order: customPath -> ~/.principality/config.yaml -> ./configs/config.yaml -> embedded default.
// A .env file in the working directory is loaded first, then PRINCIPALITY_*
// variables override whatever the file said.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadFile(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		return parse(data, customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data, userCfgPath); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/config.yaml"); err == nil {
		if cfg, err := parse(data, "configs/config.yaml"); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultConfigYAML, "embedded default")
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the defaults, so a partial file only overrides the
// keys it sets.
func parse(data []byte, source string) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", source, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".principality", filename)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s=%q: %w", EnvPrefix, key, v, err)
		}
		*dst = n
		return nil
	}

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("KINGDOM_MODE", &cfg.Game.KingdomMode)
	str("LIBRARY", &cfg.Rules.Library)
	str("REACTIONS", &cfg.Rules.Reactions)
	str("TIE_BREAK", &cfg.Rules.TieBreak)
	str("SIM_SEED_PREFIX", &cfg.Simulate.SeedPrefix)
	for key, dst := range map[string]*int{
		"PLAYERS":           &cfg.Game.Players,
		"VICTORY_PILE_SIZE": &cfg.Rules.VictoryPileSize,
		"SIM_GAMES":         &cfg.Simulate.Games,
		"SIM_WORKERS":       &cfg.Simulate.Workers,
		"SIM_MAX_MOVES":     &cfg.Simulate.MaxMoves,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	if v, ok := lookup(EnvPrefix + "KINGDOM"); ok && v != "" {
		cfg.Game.Kingdom = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Game.Kingdom = append(cfg.Game.Kingdom, name)
			}
		}
	}
	if v, ok := lookup(EnvPrefix + "DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sDEBUG=%q: %w", EnvPrefix, v, err)
		}
		cfg.Game.Debug = b
	}
	return nil
}

// Validate rejects values the engine or CLI cannot use.
func (c Config) Validate() error {
	if _, err := c.EngineOptions(); err != nil {
		return err
	}
	if c.Game.Players < engine.MinPlayers || c.Game.Players > engine.MaxPlayers {
		return fmt.Errorf("game.players must be between %d and %d, got %d", engine.MinPlayers, engine.MaxPlayers, c.Game.Players)
	}
	if c.Simulate.Games < 0 {
		return fmt.Errorf("simulate.games must not be negative, got %d", c.Simulate.Games)
	}
	if c.Simulate.Workers < 1 {
		return fmt.Errorf("simulate.workers must be positive, got %d", c.Simulate.Workers)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// EngineOptions converts the game and rules sections to engine.Options. An
// explicit kingdom is validated here so a bad file fails at startup.
func (c Config) EngineOptions() (engine.Options, error) {
	opts := engine.DefaultOptions()
	opts.Debug = c.Game.Debug
	opts.Rules.VictoryPileSize = c.Rules.VictoryPileSize
	if opts.Rules.VictoryPileSize <= 0 {
		return opts, fmt.Errorf("rules.victory_pile_size must be positive, got %d", c.Rules.VictoryPileSize)
	}

	switch c.Game.KingdomMode {
	case "", "random":
		opts.KingdomMode = engine.KingdomRandom
	case "all":
		opts.KingdomMode = engine.KingdomAll
	case "explicit":
		opts.KingdomMode = engine.KingdomExplicit
		if err := engine.ValidateKingdom(c.Game.Kingdom); err != nil {
			return opts, fmt.Errorf("game.kingdom: %w", err)
		}
		opts.Kingdom = append([]string(nil), c.Game.Kingdom...)
	default:
		return opts, fmt.Errorf("unknown game.kingdom_mode %q", c.Game.KingdomMode)
	}

	switch c.Rules.Library {
	case "", "keep_all":
		opts.Rules.Library = engine.LibraryKeepAll
	case "ask":
		opts.Rules.Library = engine.LibraryAsk
	default:
		return opts, fmt.Errorf("unknown rules.library %q", c.Rules.Library)
	}

	switch c.Rules.Reactions {
	case "", "auto":
		opts.Rules.Reactions = engine.ReactionAuto
	case "ask":
		opts.Rules.Reactions = engine.ReactionAsk
	default:
		return opts, fmt.Errorf("unknown rules.reactions %q", c.Rules.Reactions)
	}

	switch c.Rules.TieBreak {
	case "", "fewest_turns":
		opts.Rules.TieBreak = engine.TieBreakFewestTurns
	case "lowest_seat":
		opts.Rules.TieBreak = engine.TieBreakLowestSeat
	default:
		return opts, fmt.Errorf("unknown rules.tie_break %q", c.Rules.TieBreak)
	}
	return opts, nil
}

// NewLogger builds a logrus logger from the log section.
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	l := logrus.New()
	l.SetLevel(level)
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}
