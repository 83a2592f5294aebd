// Package engine implements the rules of a deck-building card game.
//
// The engine is pure and synchronous: every operation takes a GameState value
// and returns a new one, so snapshots can be shared freely between readers.
// Multi-step cards park a Pending effect in the state and wait for the
// follow-up move that resolves it.
package engine

import (
	"slices"

	"github.com/sirupsen/logrus"
)

const (
	MinPlayers   = 1
	MaxPlayers   = 6
	HandSize     = 5
	StartCoppers = 7
	StartEstates = 3
)

// Engine validates and applies moves. It holds configuration only; all game
// data lives in GameState, so one Engine can serve any number of games.
type Engine struct {
	opts Options
	log  logrus.FieldLogger
}

// New returns an Engine for the given options. A nil Logger falls back to the
// logrus standard logger.
func New(opts Options) *Engine {
	if opts.Rules.VictoryPileSize <= 0 {
		opts.Rules.VictoryPileSize = DefaultRules().VictoryPileSize
	}
	opts.Kingdom = slices.Clone(opts.Kingdom)
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{opts: opts, log: log}
}

// Options returns a copy of the engine's configuration.
func (e *Engine) Options() Options {
	o := e.opts
	o.Kingdom = slices.Clone(o.Kingdom)
	return o
}

// Initialize builds the starting state: each seat's 7 Copper and 3 Estate are
// shuffled into a 5-card hand and a 5-card draw pile, then the kingdom is
// chosen and the supply built. The same seed always gives the same state.
func (e *Engine) Initialize(seed string, players int) (GameState, error) {
	if players < MinPlayers || players > MaxPlayers {
		return GameState{}, configErr("Player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, players)
	}
	rng := NewRand(seed)
	s := GameState{
		Players:    make([]PlayerState, players),
		Phase:      PhaseAction,
		TurnNumber: 1,
		Seed:       seed,
		Rules:      e.opts.Rules,
		Log:        []string{"Game started"},
	}
	for i := range s.Players {
		deck := rng.Shuffle(StartingDeck())
		s.Players[i] = PlayerState{
			Hand:     deck[:HandSize],
			DrawPile: deck[HandSize:],
			Actions:  1,
			Buys:     1,
		}
	}

	kingdom, err := e.chooseKingdom(&rng)
	if err != nil {
		return GameState{}, err
	}
	s.Kingdom = kingdom
	s.Supply = BuildSupply(kingdom, e.opts.Rules.VictoryPileSize)
	s.RNG = rng

	e.log.WithFields(logrus.Fields{
		"seed":    seed,
		"players": players,
		"kingdom": kingdom,
	}).Debug("game initialized")
	return s, nil
}

// StartingDeck returns the 10-card deck every seat begins with.
func StartingDeck() []string {
	deck := make([]string, 0, StartCoppers+StartEstates)
	for range StartCoppers {
		deck = append(deck, "Copper")
	}
	for range StartEstates {
		deck = append(deck, "Estate")
	}
	return deck
}

func (e *Engine) chooseKingdom(rng *Rand) ([]string, error) {
	switch e.opts.KingdomMode {
	case KingdomExplicit:
		if err := ValidateKingdom(e.opts.Kingdom); err != nil {
			return nil, err
		}
		return slices.Clone(e.opts.Kingdom), nil
	case KingdomAll:
		return KingdomCardNames(), nil
	}
	all := rng.Shuffle(KingdomCardNames())
	kingdom := all[:min(KingdomSize, len(all))]
	slices.Sort(kingdom)
	return kingdom, nil
}

// ValidateKingdom checks an explicit kingdom: exactly 10 distinct, known,
// non-basic cards.
func ValidateKingdom(cards []string) error {
	if len(cards) != KingdomSize {
		return configErr("Kingdom must contain exactly %d cards, got %d", KingdomSize, len(cards))
	}
	seen := make(map[string]bool, len(cards))
	for _, name := range cards {
		if seen[name] {
			return configErr("Duplicate kingdom card: %s", name)
		}
		seen[name] = true
		c, ok := LookupCard(name)
		if !ok {
			return configErr("Invalid kingdom card: %s", name)
		}
		if c.Basic {
			return configErr("Basic card not allowed in kingdom: %s", name)
		}
	}
	return nil
}

// BuildSupply lays out the piles: treasures, victory piles of victorySize,
// Curses only when the kingdom holds an attack, then 10 of each kingdom card.
func BuildSupply(kingdom []string, victorySize int) Supply {
	supply := Supply{
		{Card: "Copper", Count: 60},
		{Card: "Silver", Count: 40},
		{Card: "Gold", Count: 30},
		{Card: "Estate", Count: victorySize},
		{Card: "Duchy", Count: victorySize},
		{Card: "Province", Count: victorySize},
	}
	if slices.ContainsFunc(kingdom, func(n string) bool { return cardsByName[n].IsAttack() }) {
		supply = append(supply, Pile{Card: "Curse", Count: 10})
	}
	for _, name := range kingdom {
		supply = append(supply, Pile{Card: name, Count: 10})
	}
	return supply
}

// ExecuteMove applies m to a copy of s. On success the copy is returned; on any
// error s is returned unchanged. s itself is never modified.
func (e *Engine) ExecuteMove(s GameState, m Move) (GameState, error) {
	seat := s.ActingSeat()
	next := s.Clone()
	if err := next.ApplyMove(m); err != nil {
		return s, err
	}
	if err := checkInvariants(&s, &next); err != nil {
		e.log.WithFields(logrus.Fields{
			"seat": seat,
			"move": m.String(),
			"turn": s.TurnNumber,
		}).WithError(err).Error("invariant violation")
		return s, err
	}
	e.log.WithFields(logrus.Fields{
		"seat":  seat,
		"move":  m.String(),
		"turn":  next.TurnNumber,
		"phase": next.Phase.String(),
	}).Debug("move applied")
	return next, nil
}

// GetValidMoves returns the legal moves for seat. It is empty for every seat
// other than the acting one.
func (e *Engine) GetValidMoves(s GameState, seat int) []Move {
	return s.LegalMoves(seat)
}

// ActingSeat returns the seat that owes the next move.
func (e *Engine) ActingSeat(s GameState) int {
	return s.ActingSeat()
}

// CheckGameOver reports whether the game has ended and, if so, the result.
func (e *Engine) CheckGameOver(s GameState) Victory {
	return CheckGameOver(s)
}
