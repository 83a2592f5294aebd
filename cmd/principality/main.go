// principality runs and inspects games of the deck-building card engine.
//
// Usage:
//
//	principality cards               - List the card table
//	principality simulate            - Play a batch of automated games
//	principality play                - Play against automated opponents on stdin
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.principality/config.yaml, then ./configs/config.yaml)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jason-s-yu/principality/internal/config"
)

var flagConfig string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "principality",
	Short: "Principality - a deck-building card game engine",
	Long: `Principality runs games of a kingdom deck-building card game.

Available commands:
  cards     - Show the card table
  simulate  - Play automated games and report win rates
  play      - Play a game in the terminal

Examples:
  principality cards
  principality simulate --games 500 --strategies big_money,random
  principality play --seed demo`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")

	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
}

// loadConfig reads the config named by --config, falling back to the search path.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}
