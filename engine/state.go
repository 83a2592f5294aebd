package engine

import (
	"fmt"
	"slices"
)

// PlayerState holds one seat's zones and turn resources. Only the draw pile is
// ordered in a way that matters: index 0 is the top card.
type PlayerState struct {
	DrawPile    []string
	Hand        []string
	DiscardPile []string
	InPlay      []string
	Actions     int
	Buys        int
	Coins       int
	Turns       int // turns this seat has started
}

func (p PlayerState) clone() PlayerState {
	p.DrawPile = slices.Clone(p.DrawPile)
	p.Hand = slices.Clone(p.Hand)
	p.DiscardPile = slices.Clone(p.DiscardPile)
	p.InPlay = slices.Clone(p.InPlay)
	return p
}

// AllCards returns every card the seat owns, in draw, hand, discard, in-play order.
func (p PlayerState) AllCards() []string {
	out := make([]string, 0, len(p.DrawPile)+len(p.Hand)+len(p.DiscardPile)+len(p.InPlay))
	out = append(out, p.DrawPile...)
	out = append(out, p.Hand...)
	out = append(out, p.DiscardPile...)
	return append(out, p.InPlay...)
}

// Pile is one supply pile.
type Pile struct {
	Card  string
	Count int
}

// Supply is the set of piles, in the fixed order chosen at setup.
type Supply []Pile

// Count returns the remaining cards of a pile, 0 if the pile does not exist.
func (s Supply) Count(card string) int {
	if i := s.index(card); i >= 0 {
		return s[i].Count
	}
	return 0
}

// Has reports whether a pile for card exists, empty or not.
func (s Supply) Has(card string) bool { return s.index(card) >= 0 }

// EmptyPiles returns how many piles are exhausted.
func (s Supply) EmptyPiles() int {
	n := 0
	for _, p := range s {
		if p.Count <= 0 {
			n++
		}
	}
	return n
}

func (s Supply) index(card string) int {
	for i, p := range s {
		if p.Card == card {
			return i
		}
	}
	return -1
}

// GameState is the immutable root aggregate. The engine never modifies a state
// it was handed; every transition works on a deep copy.
type GameState struct {
	Players       []PlayerState
	Supply        Supply
	CurrentPlayer int
	Phase         Phase
	TurnNumber    int
	TurnStarted   bool // the current player has made a move this turn
	Seed          string
	RNG           Rand
	Log           []string
	Trash         []string
	Pending       Pending
	Kingdom       []string
	Rules         Rules
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	players := make([]PlayerState, len(s.Players))
	for i, p := range s.Players {
		players[i] = p.clone()
	}
	s.Players = players
	s.Supply = slices.Clone(s.Supply)
	s.Log = slices.Clone(s.Log)
	s.Trash = slices.Clone(s.Trash)
	s.Kingdom = slices.Clone(s.Kingdom)
	if s.Pending != nil {
		s.Pending = s.Pending.clone()
	}
	return s
}

// ActingSeat returns the seat that owes the next move: the decider of the
// pending effect if one is set, otherwise the current player.
func (s *GameState) ActingSeat() int {
	if s.Pending != nil {
		return s.Pending.Decider(s)
	}
	return s.CurrentPlayer
}

// NumPlayers returns the number of seats.
func (s *GameState) NumPlayers() int { return len(s.Players) }

func (s *GameState) current() *PlayerState { return &s.Players[s.CurrentPlayer] }

func (s *GameState) logf(format string, args ...any) {
	s.Log = append(s.Log, fmt.Sprintf(format, args...))
}

// seatName is the 1-based label used in the game log.
func seatName(seat int) string { return fmt.Sprintf("Player %d", seat+1) }

func (s *GameState) takeFromSupply(card string) bool {
	i := s.Supply.index(card)
	if i < 0 || s.Supply[i].Count <= 0 {
		return false
	}
	s.Supply[i].Count--
	return true
}

// gain moves one card from the supply to a seat's zone. It reports false, with
// no change, when the pile is missing or empty.
func (s *GameState) gain(seat int, card string, dest Destination) bool {
	if !s.takeFromSupply(card) {
		return false
	}
	p := &s.Players[seat]
	switch dest {
	case DestHand:
		p.Hand = append(p.Hand, card)
	case DestTopdeck:
		p.DrawPile = append([]string{card}, p.DrawPile...)
	default:
		p.DiscardPile = append(p.DiscardPile, card)
	}
	return true
}

func (s *GameState) trashCard(card string) {
	s.Trash = append(s.Trash, card)
}

// removeOne removes the first occurrence of card from zone.
func removeOne(zone []string, card string) ([]string, bool) {
	i := slices.Index(zone, card)
	if i < 0 {
		return zone, false
	}
	return slices.Delete(zone, i, i+1), true
}

// removeLast removes the last occurrence of card from zone.
func removeLast(zone []string, card string) ([]string, bool) {
	for i := len(zone) - 1; i >= 0; i-- {
		if zone[i] == card {
			return slices.Delete(zone, i, i+1), true
		}
	}
	return zone, false
}

// removeAll removes a multiset of cards from zone, or fails without change.
func removeAll(zone, cards []string) ([]string, error) {
	out := slices.Clone(zone)
	for _, c := range cards {
		var ok bool
		if out, ok = removeOne(out, c); !ok {
			have := 0
			for _, z := range zone {
				if z == c {
					have++
				}
			}
			want := 0
			for _, x := range cards {
				if x == c {
					want++
				}
			}
			return zone, illegal("Cannot use %d %s(s), only have %d", want, c, have)
		}
	}
	return out, nil
}

func containsFunc(zone []string, pred func(string) bool) bool {
	return slices.ContainsFunc(zone, pred)
}
