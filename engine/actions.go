package engine

import "fmt"

// ApplyMove applies m to s in place. On error s may be partially modified, so
// callers work on a clone; Engine.ExecuteMove does that for them.
func (s *GameState) ApplyMove(m Move) error {
	if m.Type >= numMoveTypes {
		return illegal("Unknown move type: %d", m.Type)
	}
	if !s.TurnStarted {
		s.TurnStarted = true
		s.current().Turns++
	}

	// A pending effect takes priority over ordinary turn flow.
	if s.Pending != nil {
		if m.Type.isGeneral() {
			return illegal("A pending effect must be resolved first (%s from %s)", s.Pending.Kind(), s.Pending.Source())
		}
		if want := s.Pending.Expects(); m.Type != want {
			return illegal("Expected %s to resolve %s, got %s", want, s.Pending.Kind(), m.Type)
		}
		return s.Pending.resolve(s, m)
	}

	switch m.Type {
	case MovePlayAction:
		return s.playActionMove(m.Card)
	case MovePlayTreasure:
		return s.playTreasure(m.Card)
	case MovePlayAllTreasures:
		return s.playAllTreasures()
	case MoveBuy:
		return s.buy(m.Card)
	case MoveEndPhase:
		return s.endPhase()
	default:
		return illegal("No pending effect to resolve with %s", m.Type)
	}
}

func (s *GameState) playActionMove(card string) error {
	if s.Phase != PhaseAction {
		return illegal("Cannot play actions outside action phase")
	}
	if card == "" {
		return illegal("Must specify card to play")
	}
	p := s.current()
	if p.Actions <= 0 {
		return illegal("No actions remaining")
	}
	if _, err := cardInfo(card); err != nil {
		return err
	}
	if !containsFunc(p.Hand, func(c string) bool { return c == card }) {
		return illegal("%s not in hand", card)
	}
	if !isAction(card) {
		return illegal("%s is not an action card", card)
	}
	return s.playAction(card, false)
}

func (s *GameState) playTreasure(card string) error {
	if s.Phase != PhaseBuy {
		return illegal("Cannot play treasures outside buy phase")
	}
	if card == "" {
		return illegal("Must specify card to play")
	}
	c, err := cardInfo(card)
	if err != nil {
		return err
	}
	p := s.current()
	hand, ok := removeOne(p.Hand, card)
	if !ok {
		return illegal("%s not in hand", card)
	}
	if !c.IsTreasure() {
		return illegal("%s is not a treasure card", card)
	}
	p.Hand = hand
	p.InPlay = append(p.InPlay, card)
	p.Coins += c.Effect.Coins
	s.logf("%s played %s", seatName(s.CurrentPlayer), card)
	return nil
}

func (s *GameState) playAllTreasures() error {
	if s.Phase != PhaseBuy {
		return illegal("Cannot play treasures outside buy phase")
	}
	p := s.current()
	var kept, played []string
	coins := 0
	for _, c := range p.Hand {
		if isTreasure(c) {
			played = append(played, c)
			coins += treasureCoins(c)
			continue
		}
		kept = append(kept, c)
	}
	if len(played) == 0 {
		return illegal("No treasures in hand")
	}
	p.Hand = kept
	p.InPlay = append(p.InPlay, played...)
	p.Coins += coins
	s.logf("%s played %d treasure(s) for $%d", seatName(s.CurrentPlayer), len(played), coins)
	return nil
}

func treasureCoins(card string) int { return cardsByName[card].Effect.Coins }

func (s *GameState) buy(card string) error {
	if s.Phase != PhaseBuy {
		return illegal("Cannot buy cards outside buy phase")
	}
	if card == "" {
		return illegal("Must specify card to buy")
	}
	p := s.current()
	if p.Buys <= 0 {
		return illegal("No buys remaining")
	}
	c, err := cardInfo(card)
	if err != nil {
		return err
	}
	if s.Supply.Count(card) <= 0 {
		return illegal("%s not available in supply", card)
	}
	if p.Coins < c.Cost {
		return illegal("Not enough coins to buy %s. Need %d, have %d", card, c.Cost, p.Coins)
	}
	s.gain(s.CurrentPlayer, card, DestDiscard)
	p.Coins -= c.Cost
	p.Buys--
	s.logf("%s bought %s", seatName(s.CurrentPlayer), card)
	return nil
}

func (s *GameState) endPhase() error {
	switch s.Phase {
	case PhaseAction:
		s.Phase = PhaseBuy
	case PhaseBuy:
		s.Phase = PhaseCleanup
	case PhaseCleanup:
		s.cleanup()
	default:
		return invariantErr("unknown phase %d", s.Phase)
	}
	return nil
}

// cleanup discards hand and play, draws a new hand of 5, resets resources and
// passes the turn. The turn counter advances when play wraps back to seat 0.
func (s *GameState) cleanup() {
	p := s.current()
	p.DiscardPile = append(p.DiscardPile, p.Hand...)
	p.DiscardPile = append(p.DiscardPile, p.InPlay...)
	p.Hand, p.InPlay = nil, nil
	s.draw(s.CurrentPlayer, 5)
	p.Actions, p.Buys, p.Coins = 1, 1, 0

	s.CurrentPlayer = (s.CurrentPlayer + 1) % len(s.Players)
	if s.CurrentPlayer == 0 {
		s.TurnNumber++
	}
	s.Phase = PhaseAction
	s.TurnStarted = false
	s.logf("Turn %d begins", s.TurnNumber)
}

// String summarises the state for logs.
func (s GameState) String() string {
	return fmt.Sprintf("turn=%d seat=%d phase=%s pending=%v", s.TurnNumber, s.CurrentPlayer, s.Phase, s.Pending)
}
