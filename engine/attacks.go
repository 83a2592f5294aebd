package engine

import "strings"

// attackFunc applies an attack to one seat. paused means it installed a
// pending effect for that seat and the loop must stop until it resolves.
type attackFunc func(s *GameState, card string, seat int, r Replay) (paused bool)

func attackFor(sp Special) attackFunc {
	switch sp {
	case SpecialAttackDiscardTo3:
		return militiaAttack
	case SpecialAttackGainCurse:
		return witchAttack
	case SpecialGainSilverAttackTopdeckVictory:
		return bureaucratAttack
	case SpecialAttackRevealTopCard:
		return spyAttack
	case SpecialAttackReveal2TrashTreasure:
		return thiefAttack
	}
	return nil
}

// attackFrom runs the attack of card against seats at offsets start..n-1 from
// the attacker, in seat order. Each seat is checked for a reaction when its
// turn in the loop comes, so one seat's block never affects another's.
func (s *GameState) attackFrom(card string, start int, r Replay) error {
	c, err := cardInfo(card)
	if err != nil {
		return err
	}
	apply := attackFor(c.Effect.Special)
	if apply == nil {
		return invariantErr("%s has no attack resolver", card)
	}
	n := len(s.Players)
	for k := start; k < n; k++ {
		seat := (s.CurrentPlayer + k) % n
		if k > 0 && s.hasReaction(seat) {
			if s.Rules.Reactions == ReactionAsk {
				s.install(ReactionReveal{pendingBase: base(card), targeted: targeted{seat}}, r)
				return nil
			}
			s.logf("%s revealed Moat and is unaffected by %s", seatName(seat), card)
			continue
		}
		if apply(s, card, seat, r) {
			return nil
		}
	}
	return nil
}

// resumeAttack continues an attack after the pending effect on target was
// resolved, then resumes any Throne Room replay.
func (s *GameState) resumeAttack(card string, target int, r Replay) error {
	n := len(s.Players)
	offset := (target - s.CurrentPlayer + n) % n
	if err := s.attackFrom(card, offset+1, r); err != nil {
		return err
	}
	if s.Pending != nil {
		return nil
	}
	return s.runReplays(r)
}

func (s *GameState) hasReaction(seat int) bool {
	return containsFunc(s.Players[seat].Hand, isReaction)
}

func militiaAttack(s *GameState, card string, seat int, r Replay) bool {
	if len(s.Players[seat].Hand) <= 3 {
		return false
	}
	s.install(HandSizeDiscard{pendingBase: base(card), targeted: targeted{seat}, HandSize: 3}, r)
	return true
}

func witchAttack(s *GameState, card string, seat int, _ Replay) bool {
	if s.gain(seat, "Curse", DestDiscard) {
		s.logf("%s gained a Curse from %s", seatName(seat), card)
	}
	return false
}

func bureaucratAttack(s *GameState, card string, seat int, r Replay) bool {
	hand := s.Players[seat].Hand
	if !containsFunc(hand, isVictory) {
		s.logf("%s revealed a hand with no Victory card: %s", seatName(seat), strings.Join(hand, ", "))
		return false
	}
	s.install(TopdeckReveal{pendingBase: base(card), targeted: targeted{seat}}, r)
	return true
}

// spyAttack looks at the top of the draw pile only; a seat with an empty draw
// pile is skipped rather than reshuffled.
func spyAttack(s *GameState, card string, seat int, r Replay) bool {
	draw := s.Players[seat].DrawPile
	if len(draw) == 0 {
		return false
	}
	s.logf("%s revealed %s", seatName(seat), draw[0])
	s.install(SpyDecision{pendingBase: base(card), targeted: targeted{seat}, Revealed: draw[0]}, r)
	return true
}

// thiefAttack reveals up to two cards from the top of the draw pile, without
// reshuffling. With no treasure among them they are discarded at once.
func thiefAttack(s *GameState, card string, seat int, r Replay) bool {
	p := &s.Players[seat]
	n := min(2, len(p.DrawPile))
	if n == 0 {
		return false
	}
	revealed := append([]string(nil), p.DrawPile[:n]...)
	s.logf("%s revealed %s", seatName(seat), strings.Join(revealed, ", "))
	if !containsFunc(revealed, isTreasure) {
		p.DrawPile = append([]string(nil), p.DrawPile[n:]...)
		p.DiscardPile = append(p.DiscardPile, revealed...)
		return false
	}
	s.install(ThiefSelect{pendingBase: base(card), targeted: targeted{seat}, Revealed: revealed}, r)
	return true
}
