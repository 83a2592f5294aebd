package game

import (
	"fmt"

	"github.com/jason-s-yu/principality/engine"
)

// Replay rebuilds a game from its seed and recorded history. Each record's
// StateHash must match the replayed state, so any divergence is reported at
// the first move where it happens.
func Replay(eng *engine.Engine, seed string, players int, history []ActionRecord) (engine.GameState, error) {
	s, err := eng.Initialize(seed, players)
	if err != nil {
		return s, err
	}
	for i, rec := range history {
		if acting := s.ActingSeat(); acting != rec.Seat {
			return s, fmt.Errorf("action %d: recorded seat %d, but seat %d is acting", i, rec.Seat, acting)
		}
		s, err = eng.ExecuteMove(s, rec.Move)
		if err != nil {
			return s, fmt.Errorf("action %d (%s): %w", i, rec.Move, err)
		}
		if h := s.Hash(); h != rec.StateHash {
			return s, fmt.Errorf("action %d (%s): state hash %x, recorded %x", i, rec.Move, h, rec.StateHash)
		}
	}
	return s, nil
}
