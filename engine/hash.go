package engine

import (
	"encoding/binary"
	"hash/fnv"
)

// Hash returns a 64-bit FNV-1a digest of everything that affects play: zones,
// resources, turn counters, supply, trash, turn markers, the generator position
// and the pending effect. Equal states always hash equally, which makes replays
// cheap to compare.
func (s *GameState) Hash() uint64 {
	var buf []byte
	putInt := func(v int) {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	// Length-prefixed so "ab","c" differs from "a","bc".
	putStr := func(v string) {
		putInt(len(v))
		buf = append(buf, v...)
	}
	putZone := func(zone []string) {
		putInt(len(zone))
		for _, c := range zone {
			putStr(c)
		}
	}

	for _, p := range s.Players {
		putZone(p.DrawPile)
		putZone(p.Hand)
		putZone(p.DiscardPile)
		putZone(p.InPlay)
		putInt(p.Actions)
		putInt(p.Buys)
		putInt(p.Coins)
		putInt(p.Turns)
	}
	for _, pile := range s.Supply {
		putStr(pile.Card)
		putInt(pile.Count)
	}
	putZone(s.Trash)
	putInt(s.CurrentPlayer)
	putInt(int(s.Phase))
	putInt(s.TurnNumber)
	if s.TurnStarted {
		putInt(1)
	} else {
		putInt(0)
	}
	buf = binary.LittleEndian.AppendUint64(buf, s.RNG.State)
	if s.Pending != nil {
		putInt(int(s.Pending.Kind()) + 1)
		putStr(s.Pending.Source())
		putInt(s.Pending.Decider(s))
	}

	h := fnv.New64a()
	h.Write(buf)
	return h.Sum64()
}
