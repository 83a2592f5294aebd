package engine

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestMoveTypeNames(t *testing.T) {
	for mt := MoveType(0); mt < numMoveTypes; mt++ {
		got, ok := ParseMoveType(mt.String())
		if !ok || got != mt {
			t.Errorf("ParseMoveType(%q) = %d, %t", mt.String(), got, ok)
		}
	}
	if _, ok := ParseMoveType("teleport"); ok {
		t.Error("unknown move type parsed")
	}
	if got := MoveType(200).String(); got != "MoveType(200)" {
		t.Errorf("out of range = %q", got)
	}
}

func TestEnumNames(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{PhaseBuy.String(), "buy"},
		{Phase(9).String(), "Phase(9)"},
		{DestTopdeck.String(), "topdeck"},
		{PendingMoneylenderTrash.String(), "trash_copper"},
		{PendingKind(99).String(), "PendingKind(99)"},
		{TypeActionAttack.String(), "action-attack"},
		{SpecialPlayActionTwice.String(), "play_action_twice"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{Buy("Gold"), "buy Gold"},
		{EndPhase(), "end_phase"},
		{TrashCards("Copper", "Estate"), "trash_cards [Copper, Estate]"},
		{GainCard("Silver", DestHand), "gain_card Silver to hand"},
		{Move{Type: MoveSpyDecision, PlayerIndex: 1, Card: "Gold", Choice: true}, "spy_decision player=1 Gold discard=true"},
		{Move{Type: MoveChancellorDecision}, "chancellor_decision false"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCardTable(t *testing.T) {
	names := KingdomCardNames()
	if len(names) != 25 {
		t.Errorf("kingdom has %d cards, want 25", len(names))
	}
	if !slices.IsSorted(names) {
		t.Errorf("kingdom names not sorted: %v", names)
	}
	if got := BasicCardNames(); !slices.Contains(got, "Curse") || !slices.Contains(got, "Province") {
		t.Errorf("basic cards = %v", got)
	}
	if len(AllCards()) != len(names)+len(BasicCardNames()) {
		t.Error("AllCards does not cover every card")
	}

	moat, ok := LookupCard("Moat")
	if !ok || !moat.IsReaction() || !moat.IsAction() || moat.Cost != 2 {
		t.Errorf("Moat = %+v", moat)
	}
	if _, ok := LookupCard("Dragon"); ok {
		t.Error("LookupCard found an unknown card")
	}
	if _, err := cardInfo("Dragon"); !errors.Is(err, ErrConfig) {
		t.Errorf("cardInfo error = %v, want ErrConfig", err)
	}
}

func TestLoadCardTableRejectsDefects(t *testing.T) {
	saved := cardsByName
	defer func() { cardsByName = saved }()

	tests := map[string]string{
		"duplicate":       "basic:\n  - {name: Copper, type: treasure}\n  - {name: Copper, type: treasure}\n",
		"unknown type":    "basic:\n  - {name: Copper, type: money}\n",
		"unknown special": "kingdom:\n  - {name: Odd, type: action, special: teleport}\n",
		"empty name":      "basic:\n  - {type: treasure}\n",
	}
	for name, doc := range tests {
		if err := loadCardTable([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	if cardsByName["Moat"].Name != "Moat" {
		t.Error("a failed load replaced the table")
	}
}

func TestDraw(t *testing.T) {
	r := NewRand("draw")
	draw := []string{"Gold", "Silver"}
	discard := []string{"Estate", "Copper", "Duchy"}

	newDraw, newDiscard, hand := Draw(&r, draw, discard, nil, 4)
	if !slices.Equal(hand[:2], []string{"Gold", "Silver"}) || len(hand) != 4 {
		t.Fatalf("hand = %v", hand)
	}
	if len(newDraw) != 1 || newDiscard != nil {
		t.Errorf("after reshuffle draw=%v discard=%v", newDraw, newDiscard)
	}
	if len(draw) != 2 || len(discard) != 3 {
		t.Error("inputs were modified")
	}

	// Both piles empty: the draw stops short.
	r = NewRand("short")
	_, _, hand = Draw(&r, []string{"Copper"}, nil, []string{"Estate"}, 5)
	if !slices.Equal(hand, []string{"Estate", "Copper"}) {
		t.Errorf("short draw hand = %v", hand)
	}
}

func TestRandShuffleIsPermutation(t *testing.T) {
	r := NewRand("perm")
	in := StartingDeck()
	out := r.Shuffle(in)
	a, b := slices.Clone(in), slices.Clone(out)
	slices.Sort(a)
	slices.Sort(b)
	if !slices.Equal(a, b) {
		t.Errorf("shuffle changed the multiset: %v", out)
	}
	r1, r2 := NewRand("same"), NewRand("same")
	for range 10 {
		if r1.Intn(100) != r2.Intn(100) {
			t.Fatal("equal seeds diverged")
		}
	}
}

func TestCheckInvariantsDetectsLeaks(t *testing.T) {
	e := newTestEngine(nil)
	before := newTestGame(t, e, 2)

	after := before.Clone()
	after.Players[1].Hand = after.Players[1].Hand[1:]
	err := checkInvariants(&before, &after)
	if !errors.Is(err, ErrInvariant) || !strings.Contains(err.Error(), "conservation") {
		t.Errorf("lost card: %v", err)
	}

	after = before.Clone()
	after.Trash = append(after.Trash, "Dragon")
	if err := checkInvariants(&before, &after); !errors.Is(err, ErrInvariant) {
		t.Errorf("new card: %v", err)
	}

	after = before.Clone()
	after.Players[0].Coins = -1
	if err := checkInvariants(&before, &after); !errors.Is(err, ErrInvariant) {
		t.Errorf("negative coins: %v", err)
	}

	after = before.Clone()
	if err := checkInvariants(&before, &after); err != nil {
		t.Errorf("unchanged state: %v", err)
	}
}

func TestHashDistinguishesStates(t *testing.T) {
	e := newTestEngine(nil)
	s := newTestGame(t, e, 2, "Copper", "Estate")
	base := s.Hash()

	swapped := s.Clone()
	swapped.Players[0].Hand = []string{"Estate", "Copper"}
	split := s.Clone()
	split.Players[0].Hand = []string{"CopperEstate"}
	moved := mustMove(t, e, s, EndPhase())
	started := s.Clone()
	started.TurnStarted = true

	for name, other := range map[string]GameState{
		"hand order":   swapped,
		"name split":   split,
		"phase":        moved,
		"turn started": started,
	} {
		if other.Hash() == base {
			t.Errorf("%s: hash unchanged", name)
		}
	}
	if c := s.Clone(); c.Hash() != base {
		t.Error("clone hashes differently")
	}
}
