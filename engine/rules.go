package engine

import "github.com/sirupsen/logrus"

// LibraryPolicy decides what happens when Library draws an Action card.
type LibraryPolicy uint8

const (
	LibraryKeepAll LibraryPolicy = iota // every drawn card stays in hand
	LibraryAsk                          // a library_set_aside decision is owed per Action drawn
)

// ReactionPolicy decides how a defender's reaction card is used.
type ReactionPolicy uint8

const (
	ReactionAuto ReactionPolicy = iota // a Moat in hand always blocks
	ReactionAsk                        // the defender chooses with reveal_reaction
)

// TieBreak picks a single winner among seats tied on score.
type TieBreak uint8

const (
	TieBreakFewestTurns TieBreak = iota // fewer turns taken wins, then lowest seat
	TieBreakLowestSeat                  // lowest seat index wins
)

// Rules holds the gameplay policies copied into every GameState.
type Rules struct {
	VictoryPileSize int // Estate/Duchy/Province pile size
	Library         LibraryPolicy
	Reactions       ReactionPolicy
	TieBreak        TieBreak
}

// DefaultRules returns the standard policies.
func DefaultRules() Rules {
	return Rules{
		VictoryPileSize: 4,
		Library:         LibraryKeepAll,
		Reactions:       ReactionAuto,
		TieBreak:        TieBreakFewestTurns,
	}
}

// KingdomMode selects how the 10 kingdom piles are chosen.
type KingdomMode uint8

const (
	KingdomRandom   KingdomMode = iota // 10 random kingdom cards
	KingdomExplicit                    // Options.Kingdom, validated
	KingdomAll                         // every kingdom card in the table
)

// Options configures an Engine. Debug can only be set here.
type Options struct {
	Rules       Rules
	KingdomMode KingdomMode
	Kingdom     []string
	Debug       bool
	Logger      logrus.FieldLogger
}

// DefaultOptions returns random-kingdom options with default rules.
func DefaultOptions() Options {
	return Options{
		Rules:       DefaultRules(),
		KingdomMode: KingdomRandom,
	}
}

// KingdomSize is the number of kingdom piles in a game.
const KingdomSize = 10
