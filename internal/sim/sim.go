// Package sim plays whole games between automated strategies. It drives the
// engine only through its public API and is used for soak testing and for
// the CLI simulate command.
package sim

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/jason-s-yu/principality/engine"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Strategy picks one of the legal moves for the acting seat. moves is never empty.
type Strategy interface {
	Name() string
	Choose(s engine.GameState, moves []engine.Move) engine.Move
}

// Random picks uniformly among the legal moves.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy seeded from seed, so runs are repeatable.
func NewRandom(seed string) *Random {
	h := fnv.New64a()
	h.Write([]byte(seed))
	s := h.Sum64()
	return &Random{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Choose(_ engine.GameState, moves []engine.Move) engine.Move {
	return moves[r.rng.IntN(len(moves))]
}

// BigMoney never plays actions. It plays every treasure, buys Province, Gold
// or Silver when it can and takes the first option of any decision it owes.
type BigMoney struct{}

func (BigMoney) Name() string { return "big_money" }

func (BigMoney) Choose(_ engine.GameState, moves []engine.Move) engine.Move {
	for _, want := range []string{"Province", "Gold", "Silver"} {
		for _, m := range moves {
			if m.Type == engine.MoveBuy && m.Card == want {
				return m
			}
		}
	}
	for _, t := range []engine.MoveType{engine.MovePlayAllTreasures, engine.MoveEndPhase} {
		for _, m := range moves {
			if m.Type == t {
				return m
			}
		}
	}
	return moves[0]
}

// StrategyByName returns a fresh strategy for name. Random strategies are
// seeded from seed.
func StrategyByName(name, seed string) (Strategy, error) {
	switch name {
	case "random":
		return NewRandom(seed), nil
	case "big_money":
		return BigMoney{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q", name)
}

// Result describes one finished (or abandoned) game.
type Result struct {
	Seed      string
	Moves     int
	Turns     int
	Completed bool // false when the move cap was hit first
	Victory   engine.Victory
	Final     engine.GameState
}

// Play runs one game with one strategy per seat until it ends, ctx is done
// or maxMoves moves have been applied.
func Play(ctx context.Context, eng *engine.Engine, seed string, seats []Strategy, maxMoves int) (Result, error) {
	s, err := eng.Initialize(seed, len(seats))
	if err != nil {
		return Result{Seed: seed}, err
	}
	res := Result{Seed: seed}
	for res.Moves < maxMoves {
		if err := ctx.Err(); err != nil {
			res.Final = s
			return res, err
		}
		if v := eng.CheckGameOver(s); v.IsGameOver {
			res.Completed = true
			res.Victory = v
			break
		}
		seat := eng.ActingSeat(s)
		moves := eng.GetValidMoves(s, seat)
		if len(moves) == 0 {
			res.Final = s
			return res, fmt.Errorf("seed %s: no legal moves for seat %d after %d moves", seed, seat, res.Moves)
		}
		m := seats[seat].Choose(s, moves)
		s, err = eng.ExecuteMove(s, m)
		if err != nil {
			res.Final = s
			return res, fmt.Errorf("seed %s move %d (%s): %w", seed, res.Moves, m, err)
		}
		res.Moves++
	}
	if !res.Completed {
		if v := eng.CheckGameOver(s); v.IsGameOver {
			res.Completed = true
			res.Victory = v
		}
	}
	res.Turns = s.TurnNumber
	res.Final = s
	return res, nil
}

// BatchConfig describes a simulation run.
type BatchConfig struct {
	Games      int
	Workers    int
	MaxMoves   int
	SeedPrefix string
	Strategies []string // one per seat
}

// Summary aggregates a batch.
type Summary struct {
	Games      int
	Completed  int
	Wins       []int // per seat, completed games only
	TotalTurns int
	TotalMoves int
}

// AvgTurns is the mean turn count over completed games.
func (s Summary) AvgTurns() float64 {
	if s.Completed == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Completed)
}

// RunBatch plays cfg.Games games concurrently. Game i uses seed
// "<prefix>-<i>", so a batch is reproducible. The first error cancels the rest.
func RunBatch(ctx context.Context, opts engine.Options, cfg BatchConfig, log logrus.FieldLogger) (Summary, error) {
	if len(cfg.Strategies) < engine.MinPlayers || len(cfg.Strategies) > engine.MaxPlayers {
		return Summary{}, fmt.Errorf("need between %d and %d strategies, got %d", engine.MinPlayers, engine.MaxPlayers, len(cfg.Strategies))
	}
	if cfg.Games < 0 {
		return Summary{}, fmt.Errorf("game count must not be negative, got %d", cfg.Games)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	eng := engine.New(opts)
	results := make([]Result, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i := 0; i < cfg.Games; i++ {
		seed := fmt.Sprintf("%s-%d", cfg.SeedPrefix, i)
		seats := make([]Strategy, len(cfg.Strategies))
		for j, name := range cfg.Strategies {
			st, err := StrategyByName(name, fmt.Sprintf("%s/%d", seed, j))
			if err != nil {
				return Summary{}, err
			}
			seats[j] = st
		}
		g.Go(func() error {
			res, err := Play(ctx, eng, seed, seats, cfg.MaxMoves)
			if err != nil {
				return err
			}
			results[i] = res
			log.WithFields(logrus.Fields{
				"seed":      seed,
				"moves":     res.Moves,
				"turns":     res.Turns,
				"completed": res.Completed,
			}).Debug("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Games: cfg.Games, Wins: make([]int, len(cfg.Strategies))}
	for _, r := range results {
		sum.TotalMoves += r.Moves
		if !r.Completed {
			continue
		}
		sum.Completed++
		sum.TotalTurns += r.Turns
		sum.Wins[r.Victory.Winner]++
	}
	return sum, nil
}
