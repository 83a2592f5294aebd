package engine

import "strings"

// specialHandler runs the non-additive part of a card effect. It either
// completes immediately or installs a pending effect carrying r.
type specialHandler func(s *GameState, card string, r Replay) error

// specialHandlers is indexed by Special; its length ties it to the enum so a
// new Special cannot be added without growing the table.
var specialHandlers [numSpecials]specialHandler

func init() {
	specialHandlers = [numSpecials]specialHandler{
		SpecialNone:                           func(*GameState, string, Replay) error { return nil },
		SpecialDiscardDraw:                    cellarEffect,
		SpecialTrashUpTo4:                     chapelEffect,
		SpecialTrashCopperGainCoins:           moneylenderEffect,
		SpecialTrashAndGain:                   remodelEffect,
		SpecialTrashTreasureGainTreasure:      mineEffect,
		SpecialGainCardUpTo4:                  workshopEffect,
		SpecialTrashSelfGainCard:              feastEffect,
		SpecialAttackDiscardTo3:               attackEffect,
		SpecialAttackGainCurse:                attackEffect,
		SpecialGainSilverAttackTopdeckVictory: bureaucratEffect,
		SpecialAttackRevealTopCard:            attackEffect,
		SpecialAttackReveal2TrashTreasure:     attackEffect,
		SpecialReactionBlockAttack:            func(*GameState, string, Replay) error { return nil },
		SpecialPlayActionTwice:                throneRoomEffect,
		SpecialRevealUntil2Treasures:          adventurerEffect,
		SpecialMayPutDeckIntoDiscard:          chancellorEffect,
		SpecialDrawTo7SetAsideActions:         libraryEffect,
		SpecialOthersDraw1:                    councilRoomEffect,
	}
}

// playAction moves card from hand to play and resolves it. free plays do not
// spend an action.
func (s *GameState) playAction(card string, free bool) error {
	p := s.current()
	hand, ok := removeOne(p.Hand, card)
	if !ok {
		return illegal("%s not in hand", card)
	}
	p.Hand = hand
	p.InPlay = append(p.InPlay, card)
	if !free {
		p.Actions--
	}
	s.logf("%s played %s", seatName(s.CurrentPlayer), card)
	return s.resolveAction(card, Replay{})
}

// resolveAction applies one play of card that is already in play: draw first,
// then actions, coins and buys, then the special effect.
func (s *GameState) resolveAction(card string, r Replay) error {
	c, err := cardInfo(card)
	if err != nil {
		return err
	}
	if c.Effect.Cards > 0 {
		s.draw(s.CurrentPlayer, c.Effect.Cards)
	}
	p := s.current()
	p.Actions += c.Effect.Actions
	p.Coins += c.Effect.Coins
	p.Buys += c.Effect.Buys
	return specialHandlers[c.Effect.Special](s, card, r)
}

func cellarEffect(s *GameState, card string, r Replay) error {
	s.install(CellarDiscard{pendingBase: base(card)}, r)
	return nil
}

func chapelEffect(s *GameState, card string, r Replay) error {
	s.install(ChapelTrash{pendingBase: base(card), MaxTrash: 4}, r)
	return nil
}

func moneylenderEffect(s *GameState, card string, r Replay) error {
	if !containsFunc(s.current().Hand, func(c string) bool { return c == "Copper" }) {
		s.logf("%s has no Copper to trash", seatName(s.CurrentPlayer))
		return nil
	}
	s.install(MoneylenderTrash{pendingBase: base(card)}, r)
	return nil
}

func remodelEffect(s *GameState, card string, r Replay) error {
	s.install(RemodelTrash{pendingBase: base(card)}, r)
	return nil
}

func mineEffect(s *GameState, card string, r Replay) error {
	s.install(MineTrash{pendingBase: base(card)}, r)
	return nil
}

func workshopEffect(s *GameState, card string, r Replay) error {
	s.install(GainChoice{pendingBase: base(card), MaxCost: 4}, r)
	return nil
}

func feastEffect(s *GameState, card string, r Replay) error {
	p := s.current()
	if inPlay, ok := removeLast(p.InPlay, card); ok {
		p.InPlay = inPlay
		s.trashCard(card)
		s.logf("%s trashed %s", seatName(s.CurrentPlayer), card)
	}
	s.install(GainChoice{pendingBase: base(card), MaxCost: 5}, r)
	return nil
}

func bureaucratEffect(s *GameState, card string, r Replay) error {
	if s.gain(s.CurrentPlayer, "Silver", DestTopdeck) {
		s.logf("%s gained Silver onto their deck", seatName(s.CurrentPlayer))
	}
	return s.attackFrom(card, 1, r)
}

func attackEffect(s *GameState, card string, r Replay) error {
	start := 1
	if cardsByName[card].Effect.Special == SpecialAttackRevealTopCard {
		start = 0 // Spy also looks at its own player's deck
	}
	return s.attackFrom(card, start, r)
}

func throneRoomEffect(s *GameState, card string, r Replay) error {
	s.install(ThroneSelect{pendingBase: base(card)}, r)
	return nil
}

func adventurerEffect(s *GameState, card string, _ Replay) error {
	seat := s.CurrentPlayer
	var revealed []string
	found := 0
	for found < 2 {
		c, ok := s.reveal(seat)
		if !ok {
			break
		}
		if isTreasure(c) {
			s.Players[seat].Hand = append(s.Players[seat].Hand, c)
			found++
			continue
		}
		revealed = append(revealed, c)
	}
	p := &s.Players[seat]
	p.DiscardPile = append(p.DiscardPile, revealed...)
	s.logf("%s revealed %d treasure(s) with %s, discarding %d card(s)", seatName(seat), found, card, len(revealed))
	return nil
}

func chancellorEffect(s *GameState, card string, r Replay) error {
	s.install(ChancellorDecision{pendingBase: base(card)}, r)
	return nil
}

func libraryEffect(s *GameState, card string, r Replay) error {
	if s.Rules.Library == LibraryKeepAll {
		if need := 7 - len(s.current().Hand); need > 0 {
			n := s.draw(s.CurrentPlayer, need)
			s.logf("%s drew %d card(s) with %s", seatName(s.CurrentPlayer), n, card)
		}
		return nil
	}
	s.continueLibrary(LibrarySetAside{pendingBase: base(card)}, r)
	return nil
}

// continueLibrary draws one card at a time until the hand holds 7, stopping to
// ask about each Action card drawn. Set-aside cards are discarded at the end.
// It reports whether it paused on a decision.
func (s *GameState) continueLibrary(p LibrarySetAside, r Replay) (paused bool) {
	seat := s.CurrentPlayer
	for len(s.Players[seat].Hand) < 7 {
		if s.draw(seat, 1) == 0 {
			break
		}
		hand := s.Players[seat].Hand
		if drawn := hand[len(hand)-1]; isAction(drawn) {
			p.Drawn = drawn
			s.install(p, r)
			return true
		}
	}
	if len(p.SetAside) > 0 {
		pl := &s.Players[seat]
		pl.DiscardPile = append(pl.DiscardPile, p.SetAside...)
		s.logf("%s discarded set-aside %s", seatName(seat), strings.Join(p.SetAside, ", "))
	}
	return false
}

func councilRoomEffect(s *GameState, _ string, _ Replay) error {
	n := len(s.Players)
	for k := 1; k < n; k++ {
		s.draw((s.CurrentPlayer+k)%n, 1)
	}
	return nil
}
