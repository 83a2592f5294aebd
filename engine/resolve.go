package engine

import (
	"slices"
	"strings"
)

// finish clears a pending effect that reached its terminal step, then picks up
// whatever it interrupted: the rest of an attack, then the rest of a Throne
// Room replay.
func (s *GameState) finish(p Pending) error {
	s.Pending = nil
	if a, ok := p.(attackStep); ok {
		return s.resumeAttack(p.Source(), a.attackTarget(), p.Replay())
	}
	return s.runReplays(p.Replay())
}

// runReplays plays r.Card again, without spending actions, until no plays are
// owed. A play that installs a pending effect pauses the loop; the effect
// carries the remaining count and finish resumes from there.
func (s *GameState) runReplays(r Replay) error {
	for r.Remaining > 0 && s.Pending == nil {
		r.Remaining--
		s.logf("%s resolved %s", seatName(s.CurrentPlayer), r.Card)
		if err := s.resolveAction(r.Card, r); err != nil {
			return err
		}
	}
	return nil
}

func (p CellarDiscard) resolve(s *GameState, m Move) error {
	pl := s.current()
	hand, err := removeAll(pl.Hand, m.Cards)
	if err != nil {
		return err
	}
	pl.Hand = hand
	pl.DiscardPile = append(pl.DiscardPile, m.Cards...)
	s.draw(s.CurrentPlayer, len(m.Cards))
	s.logf("%s discarded %d cards for Cellar", seatName(s.CurrentPlayer), len(m.Cards))
	return s.finish(p)
}

func (p ChapelTrash) resolve(s *GameState, m Move) error {
	if len(m.Cards) > p.MaxTrash {
		return illegal("Cannot trash more than %d cards", p.MaxTrash)
	}
	if err := s.trashFromHand(m.Cards); err != nil {
		return err
	}
	return s.finish(p)
}

func (p MoneylenderTrash) resolve(s *GameState, m Move) error {
	switch {
	case len(m.Cards) == 0:
		s.logf("%s chose not to trash a Copper", seatName(s.CurrentPlayer))
	case len(m.Cards) == 1 && m.Cards[0] == "Copper":
		if err := s.trashFromHand(m.Cards); err != nil {
			return err
		}
		s.current().Coins += 3
	default:
		return illegal("Moneylender can only trash a single Copper")
	}
	return s.finish(p)
}

func (p RemodelTrash) resolve(s *GameState, m Move) error {
	if len(m.Cards) == 0 {
		if len(s.current().Hand) > 0 {
			return illegal("Must trash exactly one card for %s", p.Card)
		}
		s.logf("%s had nothing to trash", seatName(s.CurrentPlayer))
		return s.finish(p)
	}
	if len(m.Cards) != 1 {
		return illegal("Must trash exactly one card for %s", p.Card)
	}
	if err := s.trashFromHand(m.Cards); err != nil {
		return err
	}
	s.install(GainChoice{pendingBase: base(p.Card), MaxCost: costOf(m.Cards[0]) + 2}, p.Replay())
	return nil
}

func (p MineTrash) resolve(s *GameState, m Move) error {
	if m.Card == "" {
		if containsFunc(s.current().Hand, isTreasure) {
			return illegal("Must select a treasure to trash for %s", p.Card)
		}
		s.logf("%s had no treasure to trash", seatName(s.CurrentPlayer))
		return s.finish(p)
	}
	if !isTreasure(m.Card) {
		return illegal("%s is not a treasure card", m.Card)
	}
	if err := s.trashFromHand([]string{m.Card}); err != nil {
		return err
	}
	s.install(GainChoice{
		pendingBase:  base(p.Card),
		MaxCost:      costOf(m.Card) + 3,
		TreasureOnly: true,
		Destination:  DestHand,
	}, p.Replay())
	return nil
}

func (p GainChoice) resolve(s *GameState, m Move) error {
	if m.Card == "" {
		if len(p.gainable(s)) > 0 {
			return illegal("Must choose a card to gain")
		}
		s.logf("%s had nothing to gain", seatName(s.CurrentPlayer))
		return s.finish(p)
	}
	if m.Destination != DestDiscard && m.Destination != p.Destination {
		return illegal("%s gains to %s, not %s", p.Card, p.Destination, m.Destination)
	}
	c, err := cardInfo(m.Card)
	if err != nil {
		return err
	}
	if p.TreasureOnly && !c.IsTreasure() {
		return illegal("%s is not a treasure card", m.Card)
	}
	if c.Cost > p.MaxCost {
		return illegal("%s costs %d, more than the maximum of %d", m.Card, c.Cost, p.MaxCost)
	}
	if !s.gain(s.CurrentPlayer, m.Card, p.Destination) {
		return illegal("%s not available in supply", m.Card)
	}
	s.logf("%s gained %s", seatName(s.CurrentPlayer), m.Card)
	return s.finish(p)
}

func (p HandSizeDiscard) resolve(s *GameState, m Move) error {
	pl := &s.Players[p.Target]
	want := len(pl.Hand) - p.HandSize
	if want < 0 {
		want = 0
	}
	if len(m.Cards) != want {
		return illegal("Must discard exactly %d card(s) to reach %d", want, p.HandSize)
	}
	hand, err := removeAll(pl.Hand, m.Cards)
	if err != nil {
		return err
	}
	pl.Hand = hand
	pl.DiscardPile = append(pl.DiscardPile, m.Cards...)
	s.logf("%s discarded %s", seatName(p.Target), strings.Join(m.Cards, ", "))
	return s.finish(p)
}

func (p TopdeckReveal) resolve(s *GameState, m Move) error {
	pl := &s.Players[p.Target]
	if m.Card == "" {
		if containsFunc(pl.Hand, isVictory) {
			return illegal("Must reveal a Victory card")
		}
		return s.finish(p)
	}
	if !isVictory(m.Card) {
		return illegal("%s is not a Victory card", m.Card)
	}
	hand, ok := removeOne(pl.Hand, m.Card)
	if !ok {
		return illegal("%s not in hand", m.Card)
	}
	pl.Hand = hand
	pl.DrawPile = append([]string{m.Card}, pl.DrawPile...)
	s.logf("%s put %s on top of their deck", seatName(p.Target), m.Card)
	return s.finish(p)
}

func (p SpyDecision) resolve(s *GameState, m Move) error {
	if m.PlayerIndex != p.Target {
		return illegal("Spy is resolving player %d, not player %d", p.Target+1, m.PlayerIndex+1)
	}
	if m.Card != "" && m.Card != p.Revealed {
		return illegal("%s is not the top card of player %d's deck", m.Card, p.Target+1)
	}
	pl := &s.Players[p.Target]
	if len(pl.DrawPile) == 0 || pl.DrawPile[0] != p.Revealed {
		return invariantErr("revealed card %s is no longer on top", p.Revealed)
	}
	if m.Choice {
		pl.DrawPile = append([]string(nil), pl.DrawPile[1:]...)
		pl.DiscardPile = append(pl.DiscardPile, p.Revealed)
		s.logf("%s's %s was discarded", seatName(p.Target), p.Revealed)
	} else {
		s.logf("%s's %s was kept on top", seatName(p.Target), p.Revealed)
	}
	return s.finish(p)
}

func (p ThiefSelect) resolve(s *GameState, m Move) error {
	if m.PlayerIndex != p.Target {
		return illegal("Thief is resolving player %d, not player %d", p.Target+1, m.PlayerIndex+1)
	}
	if !isTreasure(m.Card) || !slices.Contains(p.Revealed, m.Card) {
		return illegal("%s was not revealed as a treasure", m.Card)
	}
	pl := &s.Players[p.Target]
	n := len(p.Revealed)
	if len(pl.DrawPile) < n || !slices.Equal(pl.DrawPile[:n], p.Revealed) {
		return invariantErr("revealed cards are no longer on top")
	}
	pl.DrawPile = append([]string(nil), pl.DrawPile[n:]...)
	rest, _ := removeOne(slices.Clone(p.Revealed), m.Card)
	pl.DiscardPile = append(pl.DiscardPile, rest...)
	s.trashCard(m.Card)
	s.logf("%s trashed %s from %s", seatName(s.CurrentPlayer), m.Card, seatName(p.Target))
	s.install(ThiefGain{pendingBase: base(p.Card), targeted: p.targeted, Trashed: m.Card}, p.Replay())
	return nil
}

func (p ThiefGain) resolve(s *GameState, m Move) error {
	if m.Card == "" {
		return s.finish(p)
	}
	if m.Card != p.Trashed {
		return illegal("%s was not trashed by Thief", m.Card)
	}
	trash, ok := removeLast(s.Trash, m.Card)
	if !ok {
		return invariantErr("%s missing from trash", m.Card)
	}
	s.Trash = trash
	pl := s.current()
	pl.DiscardPile = append(pl.DiscardPile, m.Card)
	s.logf("%s gained the trashed %s", seatName(s.CurrentPlayer), m.Card)
	return s.finish(p)
}

func (p ThroneSelect) resolve(s *GameState, m Move) error {
	pl := s.current()
	if m.Card == "" {
		if containsFunc(pl.Hand, isAction) {
			return illegal("Must select an action card for %s", p.Card)
		}
		s.logf("%s has no action cards for %s", seatName(s.CurrentPlayer), p.Card)
		return s.finish(p)
	}
	if !isAction(m.Card) {
		return illegal("%s is not an action card", m.Card)
	}
	hand, ok := removeOne(pl.Hand, m.Card)
	if !ok {
		return illegal("%s not in hand", m.Card)
	}
	pl.Hand = hand
	pl.InPlay = append(pl.InPlay, m.Card)
	s.logf("%s played %s with %s", seatName(s.CurrentPlayer), m.Card, p.Card)
	s.Pending = nil

	if cardsByName[m.Card].Effect.Special == SpecialPlayActionTwice {
		s.install(ThroneSelect{pendingBase: base(m.Card), Doubled: true}, Replay{})
		return nil
	}
	plays := 2
	if p.Doubled {
		plays = 4
	}
	return s.runReplays(Replay{Card: m.Card, Remaining: plays})
}

func (p ChancellorDecision) resolve(s *GameState, m Move) error {
	if m.Choice {
		pl := s.current()
		pl.DiscardPile = append(pl.DiscardPile, pl.DrawPile...)
		pl.DrawPile = nil
		s.logf("%s put their deck into their discard pile", seatName(s.CurrentPlayer))
	}
	return s.finish(p)
}

func (p LibrarySetAside) resolve(s *GameState, m Move) error {
	if m.Card != p.Drawn {
		return illegal("%s was not the card just drawn", m.Card)
	}
	s.Pending = nil
	if m.Choice {
		pl := s.current()
		hand, ok := removeLast(pl.Hand, m.Card)
		if !ok {
			return invariantErr("%s missing from hand", m.Card)
		}
		pl.Hand = hand
		p.SetAside = append(slices.Clone(p.SetAside), m.Card)
		s.logf("%s set aside %s", seatName(s.CurrentPlayer), m.Card)
	}
	p.Drawn = ""
	if s.continueLibrary(p, p.Replay()) {
		return nil
	}
	return s.runReplays(p.Replay())
}

func (p ReactionReveal) resolve(s *GameState, m Move) error {
	if m.Card != "" {
		if !isReaction(m.Card) {
			return illegal("%s is not a reaction card", m.Card)
		}
		if !slices.Contains(s.Players[p.Target].Hand, m.Card) {
			return illegal("%s not in hand", m.Card)
		}
		s.logf("%s revealed %s and is unaffected by %s", seatName(p.Target), m.Card, p.Card)
		return s.finish(p)
	}
	s.Pending = nil
	c, err := cardInfo(p.Card)
	if err != nil {
		return err
	}
	if attackFor(c.Effect.Special)(s, p.Card, p.Target, p.Replay()) {
		return nil
	}
	return s.resumeAttack(p.Card, p.Target, p.Replay())
}

func (s *GameState) trashFromHand(cards []string) error {
	pl := s.current()
	hand, err := removeAll(pl.Hand, cards)
	if err != nil {
		return err
	}
	pl.Hand = hand
	s.Trash = append(s.Trash, cards...)
	if len(cards) > 0 {
		s.logf("%s trashed %s", seatName(s.CurrentPlayer), strings.Join(cards, ", "))
	}
	return nil
}
