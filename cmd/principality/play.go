package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jason-s-yu/principality/engine"
	"github.com/jason-s-yu/principality/internal/game"
	"github.com/jason-s-yu/principality/internal/sim"
)

var (
	flagPlaySeed     string
	flagPlayOpponent string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Starts a game where you take seat 1 and automated opponents fill the
other seats. Each time you owe a move the legal options are listed; enter the
number of the one you want, or q to stop the game and score it as it stands.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlaySeed, "seed", "", "Game seed (empty = random)")
	playCmd.Flags().StringVar(&flagPlayOpponent, "opponent", "big_money", "Strategy for the other seats")
}

func runPlay(cmd *cobra.Command, args []string) error {
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
	if cfg.Game.Players < 2 {
		return fmt.Errorf("play needs at least 2 players, config has %d", cfg.Game.Players)
	}

	players := make([]game.Player, cfg.Game.Players)
	bots := make([]sim.Strategy, cfg.Game.Players)
	for i := range players {
		players[i] = game.Player{ID: uuid.New(), Username: fmt.Sprintf("Player %d", i+1)}
		if i > 0 {
			if bots[i], err = sim.StrategyByName(flagPlayOpponent, fmt.Sprintf("%s/%d", flagPlaySeed, i)); err != nil {
				return err
			}
		}
	}
	players[0].Username = "You"

	g, err := game.NewGame(engine.New(opts), flagPlaySeed, players, log)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	g.BroadcastFn = func(ev game.GameEvent) { printEvent(out, ev) }
	g.Start()

	in := bufio.NewScanner(cmd.InOrStdin())
	for !g.GameOver {
		s := g.Snapshot()
		seat := s.ActingSeat()
		moves := g.ValidMoves(players[seat].ID)
		if len(moves) == 0 {
			return fmt.Errorf("no legal moves for seat %d", seat)
		}

		var m engine.Move
		if seat == 0 {
			var quit bool
			m, quit = prompt(out, in, s, moves)
			if quit {
				g.EndGame()
				break
			}
		} else {
			m = bots[seat].Choose(s, moves)
		}
		if err := g.HandlePlayerMove(players[seat].ID, m); err != nil {
			fmt.Fprintf(out, "! %v\n", err)
		}
	}

	if _, err := game.Replay(engine.New(opts), g.Seed, len(players), g.History); err != nil {
		return fmt.Errorf("replay check: %w", err)
	}
	return nil
}

func printEvent(out io.Writer, ev game.GameEvent) {
	switch ev.Type {
	case game.EventGameStart:
		fmt.Fprintf(out, "Kingdom: %s\n", strings.Join(ev.Payload["kingdom"].([]string), ", "))
	case game.EventMoveApplied:
		for _, line := range ev.Payload["log"].([]string) {
			fmt.Fprintf(out, "  %s\n", line)
		}
	case game.EventGameEnd:
		fmt.Fprintf(out, "Game over after %d turns.\n", ev.Payload["turns"])
	}
}

// prompt shows the human seat its position and reads a move choice.
func prompt(out io.Writer, in *bufio.Scanner, s engine.GameState, moves []engine.Move) (engine.Move, bool) {
	me := s.Players[0]
	fmt.Fprintf(out, "\nTurn %d, %s phase. Actions %d, Buys %d, Coins %d\n",
		s.TurnNumber, s.Phase, me.Actions, me.Buys, me.Coins)
	fmt.Fprintf(out, "Hand: %s\n", strings.Join(me.Hand, ", "))
	if s.Pending != nil {
		fmt.Fprintf(out, "Resolve %s (%s)\n", s.Pending.Kind(), s.Pending.Source())
	}
	for i, m := range moves {
		fmt.Fprintf(out, "  %2d) %s\n", i+1, m)
	}
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			return engine.Move{}, true
		}
		text := strings.TrimSpace(in.Text())
		if text == "q" {
			return engine.Move{}, true
		}
		n, err := strconv.Atoi(text)
		if err == nil && n >= 1 && n <= len(moves) {
			return moves[n-1], false
		}
		fmt.Fprintf(out, "Enter 1-%d or q\n", len(moves))
	}
}
