package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jason-s-yu/principality/internal/sim"
)

var (
	flagSimGames      int
	flagSimWorkers    int
	flagSimMaxMoves   int
	flagSimSeedPrefix string
	flagSimStrategies string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a batch of automated games",
	Long: `Plays many games between automated strategies and reports how often each
seat won. Game i uses the seed "<prefix>-<i>", so a batch can be repeated.

Strategies: random, big_money.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 0, "Number of games (0 = config value)")
	simulateCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Concurrent games (0 = config value)")
	simulateCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 0, "Move cap per game (0 = config value)")
	simulateCmd.Flags().StringVar(&flagSimSeedPrefix, "seed-prefix", "", "Seed prefix (default from config)")
	simulateCmd.Flags().StringVar(&flagSimStrategies, "strategies", "", "Comma-separated strategy per seat (default: random for every configured player)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	opts.Logger = log

	batch := sim.BatchConfig{
		Games:      cfg.Simulate.Games,
		Workers:    cfg.Simulate.Workers,
		MaxMoves:   cfg.Simulate.MaxMoves,
		SeedPrefix: cfg.Simulate.SeedPrefix,
	}
	if flagSimGames > 0 {
		batch.Games = flagSimGames
	}
	if flagSimWorkers > 0 {
		batch.Workers = flagSimWorkers
	}
	if flagSimMaxMoves > 0 {
		batch.MaxMoves = flagSimMaxMoves
	}
	if flagSimSeedPrefix != "" {
		batch.SeedPrefix = flagSimSeedPrefix
	}
	if flagSimStrategies != "" {
		for _, name := range strings.Split(flagSimStrategies, ",") {
			batch.Strategies = append(batch.Strategies, strings.TrimSpace(name))
		}
	} else {
		for i := 0; i < cfg.Game.Players; i++ {
			batch.Strategies = append(batch.Strategies, "random")
		}
	}

	start := time.Now()
	sum, err := sim.RunBatch(cmd.Context(), opts, batch, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Games: %d (%d finished, %d hit the move cap) in %s\n",
		sum.Games, sum.Completed, sum.Games-sum.Completed, time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "Average turns: %.1f, total moves: %d\n\n", sum.AvgTurns(), sum.TotalMoves)
	fmt.Fprintf(out, "  %-6s  %-10s  %s\n", "Seat", "Strategy", "Wins")
	for seat, wins := range sum.Wins {
		pct := 0.0
		if sum.Completed > 0 {
			pct = 100 * float64(wins) / float64(sum.Completed)
		}
		fmt.Fprintf(out, "  %-6d  %-10s  %d (%.1f%%)\n", seat+1, batch.Strategies[seat], wins, pct)
	}
	return nil
}
