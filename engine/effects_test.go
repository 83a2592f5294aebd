package engine

import (
	"slices"
	"strings"
	"testing"
)

func setDraw(s *GameState, seat int, cards ...string) {
	s.Players[seat].DrawPile = slices.Clone(cards)
}

func logContains(s GameState, substr string) bool {
	return slices.ContainsFunc(s.Log, func(line string) bool { return strings.Contains(line, substr) })
}

func pendingAs[T Pending](t *testing.T, s GameState) T {
	t.Helper()
	p, ok := s.Pending.(T)
	if !ok {
		var zero T
		t.Fatalf("pending = %#v, want %T", s.Pending, zero)
	}
	return p
}

func TestSpecialHandlersComplete(t *testing.T) {
	for sp := Special(0); sp < numSpecials; sp++ {
		if specialHandlers[sp] == nil {
			t.Errorf("no handler for special %q", sp)
		}
	}
	for _, c := range AllCards() {
		if c.IsAttack() && attackFor(c.Effect.Special) == nil {
			t.Errorf("attack %s has no attack resolver", c.Name)
		}
	}
}

func TestAdditiveCards(t *testing.T) {
	tests := []struct {
		card                 string
		hand, actions, coins int
		buys                 int
	}{
		{"Village", 1, 2, 0, 1},
		{"Smithy", 3, 0, 0, 1},
		{"Laboratory", 2, 1, 0, 1},
		{"Market", 1, 1, 1, 2},
		{"Festival", 0, 2, 2, 2},
		{"Woodcutter", 0, 0, 2, 2},
		{"Moat", 2, 0, 0, 1},
	}
	e := newTestEngine(nil)
	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			s := newTestGame(t, e, 1, tt.card)
			s = mustMove(t, e, s, PlayAction(tt.card))
			p := s.Players[0]
			if len(p.Hand) != tt.hand || p.Actions != tt.actions || p.Coins != tt.coins || p.Buys != tt.buys {
				t.Errorf("hand=%d actions=%d coins=%d buys=%d, want %d/%d/%d/%d",
					len(p.Hand), p.Actions, p.Coins, p.Buys, tt.hand, tt.actions, tt.coins, tt.buys)
			}
			if s.Pending != nil {
				t.Errorf("unexpected pending %v", s.Pending)
			}
		})
	}
}

func TestCouncilRoom(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 3, "Council Room")
	s = mustMove(t, e, s, PlayAction("Council Room"))
	if got := len(s.Players[0].Hand); got != 4 {
		t.Errorf("own hand = %d, want 4", got)
	}
	if s.Players[0].Buys != 2 {
		t.Errorf("buys = %d", s.Players[0].Buys)
	}
	for seat := 1; seat < 3; seat++ {
		if got := len(s.Players[seat].Hand); got != 6 {
			t.Errorf("seat %d hand = %d, want 6", seat, got)
		}
	}
}

func TestCellar(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Cellar", "Estate", "Estate", "Copper")
	setDraw(&s, 0, "Gold", "Silver", "Copper")
	s = mustMove(t, e, s, PlayAction("Cellar"))
	pendingAs[CellarDiscard](t, s)

	if got := len(e.GetValidMoves(s, 0)); got != 6 {
		t.Errorf("cellar options = %d, want 6", got)
	}
	expectIllegal(t, e, s, DiscardForCellar("Estate", "Estate", "Estate"), "Cannot use 3 Estate(s), only have 2")

	s = mustMove(t, e, s, DiscardForCellar("Estate", "Estate"))
	p := s.Players[0]
	if !slices.Equal(p.Hand, []string{"Copper", "Gold", "Silver"}) {
		t.Errorf("hand = %v", p.Hand)
	}
	if !slices.Equal(p.DiscardPile, []string{"Estate", "Estate"}) {
		t.Errorf("discard = %v", p.DiscardPile)
	}
	if p.Actions != 1 {
		t.Errorf("actions = %d, want 1", p.Actions)
	}
}

func TestChapelOptionsWithDuplicates(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Chapel", "Copper", "Copper", "Copper", "Copper")
	s = mustMove(t, e, s, PlayAction("Chapel"))

	moves := e.GetValidMoves(s, 0)
	if len(moves) != 5 {
		t.Fatalf("options = %v, want 5", moves)
	}
	for size, m := range moves {
		if m.Type != MoveTrashCards || len(m.Cards) != size || count(m.Cards, "Copper") != size {
			t.Errorf("option %d = %s", size, m)
		}
	}

	expectIllegal(t, e, s, TrashCards("Copper", "Copper", "Copper", "Copper", "Copper"), "Cannot trash more than 4 cards")
	s = mustMove(t, e, s, moves[4])
	if len(s.Players[0].Hand) != 0 || len(s.Trash) != 4 {
		t.Errorf("hand=%v trash=%v", s.Players[0].Hand, s.Trash)
	}
	if s.Pending != nil {
		t.Errorf("pending not cleared")
	}
}

func TestMoneylender(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Moneylender", "Copper", "Estate")
	s = mustMove(t, e, s, PlayAction("Moneylender"))
	if got := e.GetValidMoves(s, 0); len(got) != 2 {
		t.Errorf("options = %v", got)
	}
	expectIllegal(t, e, s, TrashCards("Estate"), "Moneylender can only trash a single Copper")

	done := mustMove(t, e, s, TrashCards("Copper"))
	if done.Players[0].Coins != 3 || !slices.Equal(done.Trash, []string{"Copper"}) {
		t.Errorf("coins=%d trash=%v", done.Players[0].Coins, done.Trash)
	}
	declined := mustMove(t, e, s, TrashCards())
	if declined.Players[0].Coins != 0 || len(declined.Trash) != 0 {
		t.Errorf("decline changed coins or trash")
	}

	none := newTestGame(t, e, 1, "Moneylender", "Estate")
	none = mustMove(t, e, none, PlayAction("Moneylender"))
	if none.Pending != nil || !logContains(none, "has no Copper to trash") {
		t.Errorf("Moneylender without Copper: pending=%v log=%v", none.Pending, none.Log)
	}
}

func TestRemodelCeiling(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Remodel", "Copper", "Gold")
	s = mustMove(t, e, s, PlayAction("Remodel"))
	pendingAs[RemodelTrash](t, s)
	expectIllegal(t, e, s, TrashCards(), "Must trash exactly one card for Remodel")
	expectIllegal(t, e, s, TrashCards("Copper", "Gold"), "Must trash exactly one card for Remodel")

	fromCopper := mustMove(t, e, s, TrashCards("Copper"))
	if gc := pendingAs[GainChoice](t, fromCopper); gc.MaxCost != 2 {
		t.Fatalf("gain ceiling = %d, want 2", gc.MaxCost)
	}
	expectIllegal(t, e, fromCopper, GainCard("Silver", DestDiscard), "Silver costs 3, more than the maximum of 2")
	for _, m := range e.GetValidMoves(fromCopper, 0) {
		if costOf(m.Card) > 2 {
			t.Errorf("offered %s above the ceiling", m.Card)
		}
	}
	gained := mustMove(t, e, fromCopper, GainCard("Estate", DestDiscard))
	if d := gained.Players[0].DiscardPile; len(d) != 1 || d[0] != "Estate" {
		t.Errorf("discard = %v", d)
	}

	fromGold := mustMove(t, e, s, TrashCards("Gold"))
	mustMove(t, e, fromGold, GainCard("Province", DestDiscard))
}

func TestMine(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Mine", "Copper", "Estate")
	s = mustMove(t, e, s, PlayAction("Mine"))
	moves := e.GetValidMoves(s, 0)
	if len(moves) != 1 || moves[0].Card != "Copper" || moves[0].Type != MoveSelectTreasureToTrash {
		t.Fatalf("options = %v", moves)
	}
	expectIllegal(t, e, s, Move{Type: MoveSelectTreasureToTrash, Card: "Estate"}, "Estate is not a treasure card")
	expectIllegal(t, e, s, Move{Type: MoveSelectTreasureToTrash}, "Must select a treasure to trash for Mine")

	s = mustMove(t, e, s, moves[0])
	gc := pendingAs[GainChoice](t, s)
	if gc.MaxCost != 3 || !gc.TreasureOnly || gc.Destination != DestHand {
		t.Fatalf("gain = %+v", gc)
	}
	expectIllegal(t, e, s, GainCard("Village", DestHand), "Village is not a treasure card")
	expectIllegal(t, e, s, GainCard("Gold", DestHand), "Gold costs 6, more than the maximum of 3")
	expectIllegal(t, e, s, GainCard("Silver", DestTopdeck), "Mine gains to hand, not topdeck")

	s = mustMove(t, e, s, GainCard("Silver", DestHand))
	if !slices.Equal(s.Players[0].Hand, []string{"Estate", "Silver"}) {
		t.Errorf("hand = %v", s.Players[0].Hand)
	}
}

func TestWorkshop(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Workshop")
	s = mustMove(t, e, s, PlayAction("Workshop"))
	expectIllegal(t, e, s, GainCard("Duchy", DestDiscard), "Duchy costs 5, more than the maximum of 4")
	expectIllegal(t, e, s, GainCard("", DestDiscard), "Must choose a card to gain")
	s = mustMove(t, e, s, GainCard("Smithy", DestDiscard))
	if !slices.Contains(s.Players[0].DiscardPile, "Smithy") {
		t.Errorf("discard = %v", s.Players[0].DiscardPile)
	}
}

func TestFeast(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Feast")
	s = mustMove(t, e, s, PlayAction("Feast"))
	if len(s.Players[0].InPlay) != 0 || !slices.Equal(s.Trash, []string{"Feast"}) {
		t.Errorf("play=%v trash=%v", s.Players[0].InPlay, s.Trash)
	}
	if gc := pendingAs[GainChoice](t, s); gc.MaxCost != 5 {
		t.Errorf("ceiling = %d", gc.MaxCost)
	}
	s = mustMove(t, e, s, GainCard("Duchy", DestDiscard))
	if !slices.Contains(s.Players[0].DiscardPile, "Duchy") {
		t.Errorf("Duchy not gained")
	}
}

func TestMilitia(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Militia")
	s.Players[1].Hand = []string{"Copper", "Copper", "Estate", "Estate", "Silver"}
	s = mustMove(t, e, s, PlayAction("Militia"))
	if s.Players[0].Coins != 2 {
		t.Errorf("coins = %d", s.Players[0].Coins)
	}
	hd := pendingAs[HandSizeDiscard](t, s)
	if hd.Target != 1 || s.ActingSeat() != 1 {
		t.Fatalf("target=%d acting=%d", hd.Target, s.ActingSeat())
	}
	if got := len(e.GetValidMoves(s, 1)); got != 5 {
		t.Errorf("discard options = %d, want 5", got)
	}
	expectIllegal(t, e, s, DiscardToHandSize("Estate"), "Must discard exactly 2 card(s) to reach 3")

	s = mustMove(t, e, s, DiscardToHandSize("Estate", "Estate"))
	if !slices.Equal(s.Players[1].Hand, []string{"Copper", "Copper", "Silver"}) {
		t.Errorf("defender hand = %v", s.Players[1].Hand)
	}
	if s.Pending != nil || s.ActingSeat() != 0 {
		t.Errorf("pending=%v acting=%d", s.Pending, s.ActingSeat())
	}
}

func TestMilitiaVisitsEachDefender(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 4, "Militia")
	s.Players[2].Hand = []string{"Copper", "Copper"}
	s = mustMove(t, e, s, PlayAction("Militia"))
	if hd := pendingAs[HandSizeDiscard](t, s); hd.Target != 1 {
		t.Fatalf("first target = %d", hd.Target)
	}
	s = mustMove(t, e, s, e.GetValidMoves(s, 1)[0])
	if hd := pendingAs[HandSizeDiscard](t, s); hd.Target != 3 {
		t.Fatalf("second target = %d, want 3 (seat 2 already at 2 cards)", hd.Target)
	}
	s = mustMove(t, e, s, e.GetValidMoves(s, 3)[0])
	if s.Pending != nil {
		t.Errorf("pending = %v", s.Pending)
	}
}

func TestMoatBlocksAutomatically(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Militia")
	s.Players[1].Hand = []string{"Moat", "Copper", "Copper", "Estate", "Estate"}
	s = mustMove(t, e, s, PlayAction("Militia"))
	if s.Pending != nil {
		t.Fatalf("Moat did not block: %v", s.Pending)
	}
	if !logContains(s, "Player 2 revealed Moat and is unaffected by Militia") {
		t.Errorf("log = %v", s.Log)
	}
	if len(s.Players[1].Hand) != 5 {
		t.Errorf("defender hand changed")
	}
}

func TestMoatAsk(t *testing.T) {
	e := newTestEngine(func(o *Options) { o.Rules.Reactions = ReactionAsk })
	s := newTestGame(t, e, 2, "Militia")
	s.Players[1].Hand = []string{"Moat", "Copper", "Copper", "Estate", "Estate"}
	s = mustMove(t, e, s, PlayAction("Militia"))
	rr := pendingAs[ReactionReveal](t, s)
	if rr.Target != 1 || s.ActingSeat() != 1 {
		t.Fatalf("target=%d acting=%d", rr.Target, s.ActingSeat())
	}
	moves := e.GetValidMoves(s, 1)
	if len(moves) != 2 || moves[0].Card != "" || moves[1].Card != "Moat" {
		t.Fatalf("options = %v", moves)
	}
	expectIllegal(t, e, s, Move{Type: MoveRevealReaction, Card: "Copper"}, "Copper is not a reaction card")

	blocked := mustMove(t, e, s, moves[1])
	if blocked.Pending != nil || !logContains(blocked, "revealed Moat and is unaffected by Militia") {
		t.Errorf("reveal did not block: %v", blocked.Pending)
	}

	declined := mustMove(t, e, s, moves[0])
	if hd := pendingAs[HandSizeDiscard](t, declined); hd.Target != 1 {
		t.Errorf("decline target = %d", hd.Target)
	}
}

// Seat 1 holds Moat and seat 2 does not: the block protects seat 1 only and
// the attack still reaches seat 2.
func TestMoatBlocksOnlyItsHolder(t *testing.T) {
	tests := []struct {
		card  string
		check func(t *testing.T, e *Engine, s GameState) GameState
	}{
		{"Witch", func(t *testing.T, _ *Engine, s GameState) GameState {
			if count(s.Players[1].DiscardPile, "Curse") != 0 || count(s.Players[2].DiscardPile, "Curse") != 1 {
				t.Errorf("curses: seat1=%v seat2=%v", s.Players[1].DiscardPile, s.Players[2].DiscardPile)
			}
			return s
		}},
		{"Militia", func(t *testing.T, _ *Engine, s GameState) GameState {
			if hd := pendingAs[HandSizeDiscard](t, s); hd.Target != 2 {
				t.Errorf("discard target = %d, want 2", hd.Target)
			}
			return s
		}},
		{"Spy", func(t *testing.T, e *Engine, s GameState) GameState {
			var targets []int
			for s.Pending != nil {
				sd := pendingAs[SpyDecision](t, s)
				targets = append(targets, sd.Target)
				s = mustMove(t, e, s, e.GetValidMoves(s, 0)[0])
			}
			if !slices.Equal(targets, []int{0, 2}) {
				t.Errorf("spied seats = %v, want [0 2]", targets)
			}
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			e := newTestEngine(nil)
			s := newTestGame(t, e, 3, tt.card)
			s.Players[1].Hand = []string{"Moat", "Copper", "Copper", "Estate", "Estate"}
			s = tt.check(t, e, mustMove(t, e, s, PlayAction(tt.card)))
			if !logContains(s, "Player 2 revealed Moat and is unaffected by "+tt.card) {
				t.Errorf("log = %v", s.Log)
			}
			if len(s.Players[1].Hand) != 5 {
				t.Errorf("Moat holder's hand changed: %v", s.Players[1].Hand)
			}
		})
	}
}

func TestMoatAskThenNextDefender(t *testing.T) {
	e := newTestEngine(func(o *Options) { o.Rules.Reactions = ReactionAsk })
	s := newTestGame(t, e, 3, "Witch")
	s.Players[1].Hand = []string{"Moat", "Copper", "Copper", "Estate", "Estate"}
	s = mustMove(t, e, s, PlayAction("Witch"))
	if rr := pendingAs[ReactionReveal](t, s); rr.Target != 1 {
		t.Fatalf("reaction target = %d", rr.Target)
	}
	if count(s.Players[2].DiscardPile, "Curse") != 0 {
		t.Fatal("seat 2 attacked before seat 1 answered")
	}

	s = mustMove(t, e, s, Move{Type: MoveRevealReaction, Card: "Moat"})
	if s.Pending != nil {
		t.Fatalf("pending = %v", s.Pending)
	}
	if count(s.Players[1].DiscardPile, "Curse") != 0 || count(s.Players[2].DiscardPile, "Curse") != 1 {
		t.Errorf("curses: seat1=%v seat2=%v", s.Players[1].DiscardPile, s.Players[2].DiscardPile)
	}
}

func TestWitch(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 3, "Witch")
	curses := s.Supply.Count("Curse")
	s = mustMove(t, e, s, PlayAction("Witch"))
	if len(s.Players[0].Hand) != 2 {
		t.Errorf("hand = %v", s.Players[0].Hand)
	}
	for seat := 1; seat < 3; seat++ {
		if !slices.Contains(s.Players[seat].DiscardPile, "Curse") {
			t.Errorf("seat %d got no Curse", seat)
		}
	}
	if s.Supply.Count("Curse") != curses-2 {
		t.Errorf("Curse pile = %d", s.Supply.Count("Curse"))
	}

	short := newTestGame(t, e, 3, "Witch")
	short.Supply[short.Supply.index("Curse")].Count = 1
	short = mustMove(t, e, short, PlayAction("Witch"))
	if !slices.Contains(short.Players[1].DiscardPile, "Curse") || slices.Contains(short.Players[2].DiscardPile, "Curse") {
		t.Errorf("Curses should run out after seat 1")
	}
}

func TestBureaucrat(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 3, "Bureaucrat")
	s.Players[1].Hand = []string{"Estate", "Copper", "Duchy"}
	s.Players[2].Hand = []string{"Copper", "Copper"}
	s = mustMove(t, e, s, PlayAction("Bureaucrat"))
	if s.Players[0].DrawPile[0] != "Silver" {
		t.Errorf("top of deck = %s, want Silver", s.Players[0].DrawPile[0])
	}
	tr := pendingAs[TopdeckReveal](t, s)
	if tr.Target != 1 || s.ActingSeat() != 1 {
		t.Fatalf("target=%d", tr.Target)
	}
	if got := len(e.GetValidMoves(s, 1)); got != 2 {
		t.Errorf("options = %d, want 2", got)
	}
	expectIllegal(t, e, s, Move{Type: MoveRevealAndTopdeck, Card: "Copper"}, "Copper is not a Victory card")
	expectIllegal(t, e, s, Move{Type: MoveRevealAndTopdeck}, "Must reveal a Victory card")

	s = mustMove(t, e, s, Move{Type: MoveRevealAndTopdeck, Card: "Duchy"})
	if s.Players[1].DrawPile[0] != "Duchy" || len(s.Players[1].Hand) != 2 {
		t.Errorf("defender draw=%v hand=%v", s.Players[1].DrawPile, s.Players[1].Hand)
	}
	if s.Pending != nil {
		t.Errorf("pending = %v", s.Pending)
	}
	if !logContains(s, "Player 3 revealed a hand with no Victory card") {
		t.Errorf("log = %v", s.Log)
	}
}

func TestSpy(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Spy")
	setDraw(&s, 0, "Copper", "Silver", "Gold")
	setDraw(&s, 1, "Estate", "Copper")
	s = mustMove(t, e, s, PlayAction("Spy"))
	if s.Players[0].Actions != 1 || !slices.Contains(s.Players[0].Hand, "Copper") {
		t.Errorf("Spy's +1 card +1 action not applied")
	}

	own := pendingAs[SpyDecision](t, s)
	if own.Target != 0 || own.Revealed != "Silver" || s.ActingSeat() != 0 {
		t.Fatalf("first decision = %+v", own)
	}
	s = mustMove(t, e, s, Move{Type: MoveSpyDecision, PlayerIndex: 0, Card: "Silver", Choice: true})
	if !slices.Equal(s.Players[0].DrawPile, []string{"Gold"}) || !slices.Contains(s.Players[0].DiscardPile, "Silver") {
		t.Errorf("own deck=%v discard=%v", s.Players[0].DrawPile, s.Players[0].DiscardPile)
	}

	other := pendingAs[SpyDecision](t, s)
	if other.Target != 1 || other.Revealed != "Estate" || s.ActingSeat() != 0 {
		t.Fatalf("second decision = %+v", other)
	}
	expectIllegal(t, e, s, Move{Type: MoveSpyDecision, PlayerIndex: 0}, "Spy is resolving player 2, not player 1")
	s = mustMove(t, e, s, Move{Type: MoveSpyDecision, PlayerIndex: 1, Card: "Estate", Choice: false})
	if !slices.Equal(s.Players[1].DrawPile, []string{"Estate", "Copper"}) {
		t.Errorf("kept card moved: %v", s.Players[1].DrawPile)
	}
	if s.Pending != nil {
		t.Errorf("pending = %v", s.Pending)
	}
}

func TestSpySkipsEmptyDeck(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Spy")
	setDraw(&s, 1)
	s.Players[1].DiscardPile = []string{"Gold"}
	s = mustMove(t, e, s, PlayAction("Spy"))
	s = mustMove(t, e, s, e.GetValidMoves(s, 0)[0])
	if s.Pending != nil {
		t.Errorf("seat with empty draw pile was spied on: %v", s.Pending)
	}
	if !slices.Equal(s.Players[1].DiscardPile, []string{"Gold"}) {
		t.Errorf("discard was reshuffled: %v", s.Players[1].DiscardPile)
	}
}

func TestThief(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Thief")
	setDraw(&s, 1, "Silver", "Estate", "Copper")
	s = mustMove(t, e, s, PlayAction("Thief"))

	ts := pendingAs[ThiefSelect](t, s)
	if ts.Target != 1 || !slices.Equal(ts.Revealed, []string{"Silver", "Estate"}) {
		t.Fatalf("select = %+v", ts)
	}
	moves := e.GetValidMoves(s, 0)
	if len(moves) != 1 || moves[0].Card != "Silver" || moves[0].PlayerIndex != 1 {
		t.Fatalf("options = %v", moves)
	}
	expectIllegal(t, e, s, Move{Type: MoveSelectTreasureToTrash, PlayerIndex: 1, Card: "Gold"}, "Gold was not revealed as a treasure")

	s = mustMove(t, e, s, moves[0])
	if !slices.Equal(s.Trash, []string{"Silver"}) || !slices.Equal(s.Players[1].DrawPile, []string{"Copper"}) {
		t.Errorf("trash=%v draw=%v", s.Trash, s.Players[1].DrawPile)
	}
	if !slices.Contains(s.Players[1].DiscardPile, "Estate") {
		t.Errorf("non-treasure not discarded: %v", s.Players[1].DiscardPile)
	}
	pendingAs[ThiefGain](t, s)

	declined := mustMove(t, e, s, Move{Type: MoveGainTrashedCard})
	if !slices.Equal(declined.Trash, []string{"Silver"}) {
		t.Errorf("decline emptied the trash")
	}
	gained := mustMove(t, e, s, Move{Type: MoveGainTrashedCard, Card: "Silver"})
	if len(gained.Trash) != 0 || !slices.Contains(gained.Players[0].DiscardPile, "Silver") {
		t.Errorf("gain: trash=%v discard=%v", gained.Trash, gained.Players[0].DiscardPile)
	}
}

func TestThiefNoTreasure(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Thief")
	setDraw(&s, 1, "Estate", "Duchy", "Copper")
	s = mustMove(t, e, s, PlayAction("Thief"))
	if s.Pending != nil {
		t.Fatalf("pending = %v", s.Pending)
	}
	if !slices.Equal(s.Players[1].DrawPile, []string{"Copper"}) {
		t.Errorf("draw = %v", s.Players[1].DrawPile)
	}
	d := s.Players[1].DiscardPile
	if count(d, "Estate") < 1 || count(d, "Duchy") != 1 {
		t.Errorf("discard = %v", d)
	}
}

func TestThroneRoomChapel(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Throne Room", "Chapel", "Copper", "Copper", "Estate")
	s = mustMove(t, e, s, PlayAction("Throne Room"))
	moves := e.GetValidMoves(s, 0)
	if len(moves) != 1 || moves[0].Card != "Chapel" {
		t.Fatalf("throne options = %v", moves)
	}
	s = mustMove(t, e, s, moves[0])
	if ct := pendingAs[ChapelTrash](t, s); ct.Replay().Remaining != 1 {
		t.Fatalf("first Chapel replay = %+v", ct.Replay())
	}
	s = mustMove(t, e, s, TrashCards("Copper", "Copper"))
	if ct := pendingAs[ChapelTrash](t, s); ct.Replay().Remaining != 0 {
		t.Fatalf("second Chapel replay = %+v", ct.Replay())
	}
	s = mustMove(t, e, s, TrashCards("Estate"))

	p := s.Players[0]
	if s.Pending != nil || len(p.Hand) != 0 || len(s.Trash) != 3 {
		t.Errorf("pending=%v hand=%v trash=%v", s.Pending, p.Hand, s.Trash)
	}
	if !slices.Equal(p.InPlay, []string{"Throne Room", "Chapel"}) || p.Actions != 0 {
		t.Errorf("play=%v actions=%d", p.InPlay, p.Actions)
	}
}

func TestThroneRoomSmithy(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Throne Room", "Smithy")
	setDraw(&s, 0, "Copper", "Copper", "Copper", "Silver", "Silver", "Silver", "Gold")
	s = mustMove(t, e, s, PlayAction("Throne Room"))
	s = mustMove(t, e, s, Move{Type: MoveSelectActionForThrone, Card: "Smithy"})
	if got := len(s.Players[0].Hand); got != 6 {
		t.Errorf("hand = %d, want 6", got)
	}
	if !slices.Equal(s.Players[0].DrawPile, []string{"Gold"}) {
		t.Errorf("draw = %v", s.Players[0].DrawPile)
	}
}

func TestThroneRoomOnThroneRoom(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Throne Room", "Throne Room", "Village", "Smithy")
	s = mustMove(t, e, s, PlayAction("Throne Room"))
	s = mustMove(t, e, s, Move{Type: MoveSelectActionForThrone, Card: "Throne Room"})
	if ts := pendingAs[ThroneSelect](t, s); !ts.Doubled {
		t.Fatalf("inner Throne Room not doubled")
	}
	s = mustMove(t, e, s, Move{Type: MoveSelectActionForThrone, Card: "Village"})
	p := s.Players[0]
	if p.Actions != 8 {
		t.Errorf("actions = %d, want 8 from four Village plays", p.Actions)
	}
	if len(p.Hand) != 5 {
		t.Errorf("hand = %v, want Smithy plus 4 draws", p.Hand)
	}
	if got := strings.Count(strings.Join(s.Log, "\n"), "resolved Village"); got != 4 {
		t.Errorf("Village resolved %d times", got)
	}
}

func TestThroneRoomNoAction(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Throne Room", "Copper")
	s = mustMove(t, e, s, PlayAction("Throne Room"))
	moves := e.GetValidMoves(s, 0)
	if len(moves) != 1 || moves[0].Card != "" {
		t.Fatalf("options = %v", moves)
	}
	s = mustMove(t, e, s, moves[0])
	if s.Pending != nil {
		t.Errorf("pending = %v", s.Pending)
	}

	withAction := newTestGame(t, e, 1, "Throne Room", "Village")
	withAction = mustMove(t, e, withAction, PlayAction("Throne Room"))
	expectIllegal(t, e, withAction, Move{Type: MoveSelectActionForThrone}, "Must select an action card for Throne Room")
	expectIllegal(t, e, withAction, Move{Type: MoveSelectActionForThrone, Card: "Copper"}, "Copper is not an action card")
}

func TestThroneRoomMilitiaWaitsForDefender(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Throne Room", "Militia")
	s = mustMove(t, e, s, PlayAction("Throne Room"))
	s = mustMove(t, e, s, Move{Type: MoveSelectActionForThrone, Card: "Militia"})
	if hd := pendingAs[HandSizeDiscard](t, s); hd.Replay().Remaining != 1 {
		t.Fatalf("replay = %+v", hd.Replay())
	}
	if s.Players[0].Coins != 2 {
		t.Errorf("coins after first play = %d", s.Players[0].Coins)
	}
	s = mustMove(t, e, s, e.GetValidMoves(s, 1)[0])
	if s.Pending != nil {
		t.Fatalf("second Militia should not attack a 3-card hand: %v", s.Pending)
	}
	if s.Players[0].Coins != 4 {
		t.Errorf("coins = %d, want 4", s.Players[0].Coins)
	}
}

// The second Bureaucrat play needs its own reveal_and_topdeck from the same
// defender. With a single pending slot it can only be installed once the first
// one is resolved, so the replay waits for the defender.
func TestThroneRoomBureaucratKeepsBothReveals(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Throne Room", "Bureaucrat")
	s.Players[1].Hand = []string{"Duchy", "Copper", "Estate"}
	silver := s.Supply.Count("Silver")

	s = mustMove(t, e, s, PlayAction("Throne Room"))
	s = mustMove(t, e, s, Move{Type: MoveSelectActionForThrone, Card: "Bureaucrat"})
	first := pendingAs[TopdeckReveal](t, s)
	if first.Target != 1 || first.Replay().Remaining != 1 {
		t.Fatalf("first reveal = %+v replay=%+v", first, first.Replay())
	}
	if got := silver - s.Supply.Count("Silver"); got != 1 {
		t.Fatalf("Silvers gained before the defender answered = %d, want 1", got)
	}

	s = mustMove(t, e, s, Move{Type: MoveRevealAndTopdeck, Card: "Duchy"})
	second := pendingAs[TopdeckReveal](t, s)
	if second.Target != 1 || second.Replay().Remaining != 0 {
		t.Fatalf("second reveal = %+v replay=%+v", second, second.Replay())
	}
	s = mustMove(t, e, s, Move{Type: MoveRevealAndTopdeck, Card: "Estate"})

	if s.Pending != nil {
		t.Fatalf("pending = %v", s.Pending)
	}
	if got := silver - s.Supply.Count("Silver"); got != 2 {
		t.Errorf("Silvers gained = %d, want 2", got)
	}
	if !slices.Equal(s.Players[0].DrawPile[:2], []string{"Silver", "Silver"}) {
		t.Errorf("attacker deck = %v", s.Players[0].DrawPile)
	}
	if !slices.Equal(s.Players[1].DrawPile[:2], []string{"Estate", "Duchy"}) {
		t.Errorf("defender deck = %v", s.Players[1].DrawPile)
	}
	if !slices.Equal(s.Players[1].Hand, []string{"Copper"}) {
		t.Errorf("defender hand = %v", s.Players[1].Hand)
	}
}

func TestChancellor(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Chancellor")
	s = mustMove(t, e, s, PlayAction("Chancellor"))
	if s.Players[0].Coins != 2 {
		t.Errorf("coins = %d", s.Players[0].Coins)
	}
	deck := len(s.Players[0].DrawPile)

	yes := mustMove(t, e, s, Move{Type: MoveChancellorDecision, Choice: true})
	if len(yes.Players[0].DrawPile) != 0 || len(yes.Players[0].DiscardPile) != deck {
		t.Errorf("draw=%v discard=%v", yes.Players[0].DrawPile, yes.Players[0].DiscardPile)
	}
	no := mustMove(t, e, s, Move{Type: MoveChancellorDecision, Choice: false})
	if len(no.Players[0].DrawPile) != deck {
		t.Errorf("declining moved the deck")
	}
}

func TestLibraryKeepAll(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Library", "Copper", "Copper")
	setDraw(&s, 0, "Village", "Smithy", "Copper", "Copper", "Copper", "Gold")
	s = mustMove(t, e, s, PlayAction("Library"))
	p := s.Players[0]
	if len(p.Hand) != 7 || !slices.Contains(p.Hand, "Village") {
		t.Errorf("hand = %v", p.Hand)
	}
	if !slices.Equal(p.DrawPile, []string{"Gold"}) || s.Pending != nil {
		t.Errorf("draw=%v pending=%v", p.DrawPile, s.Pending)
	}
}

func TestLibraryAsk(t *testing.T) {
	e := newTestEngine(func(o *Options) { o.Rules.Library = LibraryAsk })
	s := newTestGame(t, e, 1, "Library", "Copper", "Copper")
	setDraw(&s, 0, "Village", "Copper", "Smithy", "Copper", "Copper", "Copper", "Gold")
	s = mustMove(t, e, s, PlayAction("Library"))

	la := pendingAs[LibrarySetAside](t, s)
	if la.Drawn != "Village" {
		t.Fatalf("drawn = %q", la.Drawn)
	}
	expectIllegal(t, e, s, Move{Type: MoveLibrarySetAside, Card: "Gold", Choice: true}, "Gold was not the card just drawn")

	s = mustMove(t, e, s, Move{Type: MoveLibrarySetAside, Card: "Village", Choice: true})
	la = pendingAs[LibrarySetAside](t, s)
	if la.Drawn != "Smithy" || !slices.Equal(la.SetAside, []string{"Village"}) {
		t.Fatalf("second decision = %+v", la)
	}
	if slices.Contains(s.Players[0].Hand, "Village") {
		t.Errorf("set-aside Village still in hand")
	}

	s = mustMove(t, e, s, Move{Type: MoveLibrarySetAside, Card: "Smithy", Choice: false})
	p := s.Players[0]
	if s.Pending != nil || len(p.Hand) != 7 {
		t.Fatalf("pending=%v hand=%v", s.Pending, p.Hand)
	}
	if !slices.Contains(p.Hand, "Smithy") || !slices.Equal(p.DiscardPile, []string{"Village"}) {
		t.Errorf("hand=%v discard=%v", p.Hand, p.DiscardPile)
	}
	if !slices.Equal(p.DrawPile, []string{"Gold"}) {
		t.Errorf("draw = %v", p.DrawPile)
	}
}

func TestAdventurer(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 1, "Adventurer")
	setDraw(&s, 0, "Estate", "Copper", "Village", "Silver", "Gold")
	s = mustMove(t, e, s, PlayAction("Adventurer"))
	p := s.Players[0]
	if !slices.Equal(p.Hand, []string{"Copper", "Silver"}) {
		t.Errorf("hand = %v", p.Hand)
	}
	if !slices.Equal(p.DiscardPile, []string{"Estate", "Village"}) {
		t.Errorf("discard = %v", p.DiscardPile)
	}
	if !slices.Equal(p.DrawPile, []string{"Gold"}) {
		t.Errorf("draw = %v", p.DrawPile)
	}
}
