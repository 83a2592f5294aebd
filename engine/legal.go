package engine

import (
	"slices"
	"strings"
)

// DecisionContext is the kind of decision the acting seat faces.
type DecisionContext uint8

const (
	CtxActionPhase DecisionContext = iota
	CtxBuyPhase
	CtxCleanup
	CtxPending // a pending effect must be resolved
)

// DecisionCtx returns the current decision context for the acting seat.
func (s *GameState) DecisionCtx() DecisionContext {
	if s.Pending != nil {
		return CtxPending
	}
	switch s.Phase {
	case PhaseBuy:
		return CtxBuyPhase
	case PhaseCleanup:
		return CtxCleanup
	}
	return CtxActionPhase
}

// LegalMoves returns every move seat may submit now. Only the acting seat has
// moves; every returned move is accepted by ExecuteMove against this state.
func (s *GameState) LegalMoves(seat int) []Move {
	if seat < 0 || seat >= len(s.Players) || seat != s.ActingSeat() {
		return nil
	}
	switch s.DecisionCtx() {
	case CtxPending:
		return s.Pending.options(s)
	case CtxActionPhase:
		return s.legalActionPhase()
	case CtxBuyPhase:
		return s.legalBuyPhase()
	}
	return []Move{EndPhase()}
}

func (s *GameState) legalActionPhase() []Move {
	var moves []Move
	p := s.current()
	if p.Actions > 0 {
		for _, c := range distinct(p.Hand, isAction) {
			moves = append(moves, PlayAction(c))
		}
	}
	return append(moves, EndPhase())
}

func (s *GameState) legalBuyPhase() []Move {
	var moves []Move
	p := s.current()
	treasures := distinct(p.Hand, isTreasure)
	for _, c := range treasures {
		moves = append(moves, PlayTreasure(c))
	}
	if len(treasures) > 0 {
		moves = append(moves, PlayAllTreasures())
	}
	if p.Buys > 0 {
		for _, pile := range s.Supply {
			if pile.Count > 0 && costOf(pile.Card) <= p.Coins {
				moves = append(moves, Buy(pile.Card))
			}
		}
	}
	return append(moves, EndPhase())
}

// ---------------------------------------------------------------------------
// Pending-effect options
// ---------------------------------------------------------------------------

func (p CellarDiscard) options(s *GameState) []Move {
	hand := s.current().Hand
	return subsetMoves(MoveDiscardForCellar, hand, 0, len(hand))
}

func (p ChapelTrash) options(s *GameState) []Move {
	return subsetMoves(MoveTrashCards, s.current().Hand, 0, p.MaxTrash)
}

func (p MoneylenderTrash) options(s *GameState) []Move {
	moves := []Move{TrashCards()}
	if slices.Contains(s.current().Hand, "Copper") {
		moves = append(moves, TrashCards("Copper"))
	}
	return moves
}

func (p RemodelTrash) options(s *GameState) []Move {
	hand := s.current().Hand
	if len(hand) == 0 {
		return []Move{TrashCards()}
	}
	var moves []Move
	for _, c := range distinct(hand, nil) {
		moves = append(moves, TrashCards(c))
	}
	return moves
}

func (p MineTrash) options(s *GameState) []Move {
	treasures := distinct(s.current().Hand, isTreasure)
	if len(treasures) == 0 {
		return []Move{{Type: MoveSelectTreasureToTrash, PlayerIndex: s.CurrentPlayer}}
	}
	var moves []Move
	for _, c := range treasures {
		moves = append(moves, Move{Type: MoveSelectTreasureToTrash, Card: c, PlayerIndex: s.CurrentPlayer})
	}
	return moves
}

func (p GainChoice) options(s *GameState) []Move {
	var moves []Move
	for _, c := range p.gainable(s) {
		moves = append(moves, GainCard(c, p.Destination))
	}
	if len(moves) == 0 {
		return []Move{GainCard("", p.Destination)}
	}
	return moves
}

// gainable lists the supply piles this gain step can take from.
func (p GainChoice) gainable(s *GameState) []string {
	var out []string
	for _, pile := range s.Supply {
		if pile.Count > 0 && p.allows(pile.Card) {
			out = append(out, pile.Card)
		}
	}
	return out
}

func (p GainChoice) allows(card string) bool {
	c, ok := LookupCard(card)
	return ok && c.Cost <= p.MaxCost && (!p.TreasureOnly || c.IsTreasure())
}

func (p HandSizeDiscard) options(s *GameState) []Move {
	hand := s.Players[p.Target].Hand
	excess := len(hand) - p.HandSize
	if excess < 0 {
		excess = 0
	}
	return subsetMoves(MoveDiscardToHandSize, hand, excess, excess)
}

func (p TopdeckReveal) options(s *GameState) []Move {
	victories := distinct(s.Players[p.Target].Hand, isVictory)
	if len(victories) == 0 {
		return []Move{{Type: MoveRevealAndTopdeck}}
	}
	var moves []Move
	for _, c := range victories {
		moves = append(moves, Move{Type: MoveRevealAndTopdeck, Card: c})
	}
	return moves
}

func (p SpyDecision) options(*GameState) []Move {
	return []Move{
		{Type: MoveSpyDecision, PlayerIndex: p.Target, Card: p.Revealed, Choice: true},
		{Type: MoveSpyDecision, PlayerIndex: p.Target, Card: p.Revealed, Choice: false},
	}
}

func (p ThiefSelect) options(*GameState) []Move {
	var moves []Move
	for _, c := range distinct(p.Revealed, isTreasure) {
		moves = append(moves, Move{Type: MoveSelectTreasureToTrash, Card: c, PlayerIndex: p.Target})
	}
	return moves
}

func (p ThiefGain) options(*GameState) []Move {
	return []Move{
		{Type: MoveGainTrashedCard, Card: p.Trashed},
		{Type: MoveGainTrashedCard},
	}
}

func (p ThroneSelect) options(s *GameState) []Move {
	actions := distinct(s.current().Hand, isAction)
	if len(actions) == 0 {
		return []Move{{Type: MoveSelectActionForThrone}}
	}
	var moves []Move
	for _, c := range actions {
		moves = append(moves, Move{Type: MoveSelectActionForThrone, Card: c})
	}
	return moves
}

func (p ChancellorDecision) options(*GameState) []Move {
	return []Move{
		{Type: MoveChancellorDecision, Choice: true},
		{Type: MoveChancellorDecision, Choice: false},
	}
}

func (p LibrarySetAside) options(*GameState) []Move {
	return []Move{
		{Type: MoveLibrarySetAside, Card: p.Drawn, Choice: true},
		{Type: MoveLibrarySetAside, Card: p.Drawn, Choice: false},
	}
}

func (p ReactionReveal) options(s *GameState) []Move {
	moves := []Move{{Type: MoveRevealReaction}}
	for _, c := range distinct(s.Players[p.Target].Hand, isReaction) {
		moves = append(moves, Move{Type: MoveRevealReaction, Card: c})
	}
	return moves
}

// ---------------------------------------------------------------------------
// Multiset helpers
// ---------------------------------------------------------------------------

// distinct returns the names in zone matching keep (all when nil), once each,
// in order of first appearance.
func distinct(zone []string, keep func(string) bool) []string {
	var out []string
	for _, c := range zone {
		if keep != nil && !keep(c) {
			continue
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}

// Subsets returns every distinct sub-multiset of zone with a size in
// [minSize, maxSize], each as a sorted name list. Duplicate names are
// enumerated by count, so a hand of four Coppers yields exactly one option per
// size, the largest holding all four.
func Subsets(zone []string, minSize, maxSize int) [][]string {
	sorted := slices.Clone(zone)
	slices.Sort(sorted)
	var names []string
	var counts []int
	for _, c := range sorted {
		if n := len(names); n > 0 && names[n-1] == c {
			counts[n-1]++
			continue
		}
		names = append(names, c)
		counts = append(counts, 1)
	}

	var out [][]string
	var cur []string
	var walk func(i int)
	walk = func(i int) {
		if len(cur) > maxSize {
			return
		}
		if i == len(names) {
			if len(cur) >= minSize {
				out = append(out, slices.Clone(cur))
			}
			return
		}
		base := len(cur)
		for k := 0; k <= counts[i]; k++ {
			walk(i + 1)
			cur = append(cur, names[i])
		}
		cur = cur[:base]
	}
	walk(0)

	slices.SortStableFunc(out, func(a, b []string) int {
		if len(a) != len(b) {
			return len(a) - len(b)
		}
		return strings.Compare(strings.Join(a, "\x00"), strings.Join(b, "\x00"))
	})
	return out
}

func subsetMoves(t MoveType, zone []string, minSize, maxSize int) []Move {
	subsets := Subsets(zone, minSize, maxSize)
	moves := make([]Move, 0, len(subsets))
	for _, sub := range subsets {
		moves = append(moves, Move{Type: t, Cards: sub})
	}
	return moves
}
