package sim

import (
	"context"
	"testing"

	"github.com/jason-s-yu/principality/engine"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() engine.Options {
	l, _ := test.NewNullLogger()
	opts := engine.DefaultOptions()
	opts.Logger = l
	return opts
}

func TestBigMoneyFinishes(t *testing.T) {
	eng := engine.New(testOptions())
	res, err := Play(context.Background(), eng, "bm", []Strategy{BigMoney{}, BigMoney{}}, 5000)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.True(t, res.Victory.IsGameOver)
	assert.Len(t, res.Victory.Scores, 2)
	assert.Positive(t, res.Turns)
}

func TestRandomIsRepeatable(t *testing.T) {
	opts := testOptions()
	opts.KingdomMode = engine.KingdomAll
	opts.Rules.Library = engine.LibraryAsk
	opts.Rules.Reactions = engine.ReactionAsk
	eng := engine.New(opts)

	run := func() Result {
		res, err := Play(context.Background(), eng, "rnd", []Strategy{NewRandom("a"), NewRandom("b"), NewRandom("c")}, 3000)
		require.NoError(t, err)
		return res
	}
	first, second := run(), run()
	assert.Equal(t, first.Moves, second.Moves)
	assert.Equal(t, first.Final.Hash(), second.Final.Hash())
}

// Random play over every kingdom card exercises each pending decision; every
// move the enumerator offers must be accepted by the engine.
func TestRandomSoak(t *testing.T) {
	for _, rules := range []engine.Rules{
		engine.DefaultRules(),
		{VictoryPileSize: 8, Library: engine.LibraryAsk, Reactions: engine.ReactionAsk, TieBreak: engine.TieBreakLowestSeat},
	} {
		opts := testOptions()
		opts.KingdomMode = engine.KingdomAll
		opts.Rules = rules
		eng := engine.New(opts)
		for i, seed := range []string{"s1", "s2", "s3", "s4"} {
			seats := make([]Strategy, 2+i%3)
			for j := range seats {
				seats[j] = NewRandom(seed + string(rune('a'+j)))
			}
			_, err := Play(context.Background(), eng, seed, seats, 2000)
			require.NoError(t, err, "seed %s", seed)
		}
	}
}

func TestPlayHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Play(ctx, engine.New(testOptions()), "x", []Strategy{BigMoney{}}, 100)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunBatch(t *testing.T) {
	l, _ := test.NewNullLogger()
	sum, err := RunBatch(context.Background(), testOptions(), BatchConfig{
		Games:      8,
		Workers:    3,
		MaxMoves:   5000,
		SeedPrefix: "batch",
		Strategies: []string{"big_money", "big_money"},
	}, l)
	require.NoError(t, err)
	assert.Equal(t, 8, sum.Games)
	assert.Equal(t, 8, sum.Completed)
	assert.Equal(t, 8, sum.Wins[0]+sum.Wins[1])
	assert.Positive(t, sum.AvgTurns())
}

func TestRunBatchRejectsNegativeGames(t *testing.T) {
	_, err := RunBatch(context.Background(), testOptions(), BatchConfig{
		Games: -1, Workers: 1, MaxMoves: 10, SeedPrefix: "x",
		Strategies: []string{"big_money"},
	}, nil)
	assert.ErrorContains(t, err, "must not be negative")
}

func TestRunBatchRejectsUnknownStrategy(t *testing.T) {
	_, err := RunBatch(context.Background(), testOptions(), BatchConfig{
		Games: 1, Workers: 1, MaxMoves: 10, SeedPrefix: "x",
		Strategies: []string{"clever"},
	}, nil)
	assert.ErrorContains(t, err, "unknown strategy")
}
