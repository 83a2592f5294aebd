package engine

import "slices"

// Debug inspection. Every accessor returns a copy and fails with
// ErrDebugDisabled unless the engine was built with Options.Debug.

func (e *Engine) debugSeat(s *GameState, seat int) (*PlayerState, error) {
	if !e.opts.Debug {
		return nil, ErrDebugDisabled
	}
	if seat < 0 || seat >= len(s.Players) {
		return nil, ErrInvalidPlayer
	}
	return &s.Players[seat], nil
}

// DebugDeck returns seat's draw pile, top first.
func (e *Engine) DebugDeck(s GameState, seat int) ([]string, error) {
	p, err := e.debugSeat(&s, seat)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.DrawPile), nil
}

// DebugHand returns seat's hand.
func (e *Engine) DebugHand(s GameState, seat int) ([]string, error) {
	p, err := e.debugSeat(&s, seat)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.Hand), nil
}

// DebugDiscard returns seat's discard pile.
func (e *Engine) DebugDiscard(s GameState, seat int) ([]string, error) {
	p, err := e.debugSeat(&s, seat)
	if err != nil {
		return nil, err
	}
	return slices.Clone(p.DiscardPile), nil
}

// DebugTrash returns the trash pile.
func (e *Engine) DebugTrash(s GameState) ([]string, error) {
	if !e.opts.Debug {
		return nil, ErrDebugDisabled
	}
	return slices.Clone(s.Trash), nil
}

// DebugFullState returns a deep copy of the whole state.
func (e *Engine) DebugFullState(s GameState) (GameState, error) {
	if !e.opts.Debug {
		return GameState{}, ErrDebugDisabled
	}
	return s.Clone(), nil
}
