package engine

import (
	"maps"
	"slices"
)

// CardCounts tallies every card of the game by name: all seats' zones, the
// supply, the trash, and any cards held aside by a pending effect.
func (s *GameState) CardCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range s.Players {
		for _, c := range p.AllCards() {
			counts[c]++
		}
	}
	for _, pile := range s.Supply {
		counts[pile.Card] += pile.Count
	}
	for _, c := range s.Trash {
		counts[c]++
	}
	if h, ok := s.Pending.(holder); ok {
		for _, c := range h.held() {
			counts[c]++
		}
	}
	return counts
}

// checkInvariants compares the state after a move against the state before:
// cards are conserved, resources stay non-negative and the pending effect, if
// any, names a seat that exists.
func checkInvariants(before, after *GameState) error {
	want, got := before.CardCounts(), after.CardCounts()
	if !maps.Equal(want, got) {
		for _, name := range slices.Sorted(maps.Keys(want)) {
			if want[name] != got[name] {
				return invariantErr("card conservation broken for %s: %d before, %d after", name, want[name], got[name])
			}
		}
		for _, name := range slices.Sorted(maps.Keys(got)) {
			if _, ok := want[name]; !ok {
				return invariantErr("card conservation broken: %s appeared from nowhere", name)
			}
		}
	}
	for i, p := range after.Players {
		if p.Actions < 0 || p.Buys < 0 || p.Coins < 0 {
			return invariantErr("negative resources for player %d: actions=%d buys=%d coins=%d", i+1, p.Actions, p.Buys, p.Coins)
		}
	}
	for _, pile := range after.Supply {
		if pile.Count < 0 {
			return invariantErr("negative supply count for %s", pile.Card)
		}
	}
	if after.Pending != nil {
		if d := after.Pending.Decider(after); d < 0 || d >= len(after.Players) {
			return invariantErr("pending %s names seat %d", after.Pending.Kind(), d)
		}
	}
	return nil
}
