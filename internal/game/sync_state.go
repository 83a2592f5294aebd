package game

import (
	"slices"

	"github.com/google/uuid"
	"github.com/jason-s-yu/principality/engine"
)

// PlayerView is one seat as seen by an observer. Hand is only filled for the
// observer's own seat; draw piles are never shown, only counted.
type PlayerView struct {
	PlayerID      uuid.UUID `json:"playerId"`
	Username      string    `json:"username"`
	Seat          int       `json:"seat"`
	HandSize      int       `json:"handSize"`
	DrawSize      int       `json:"drawSize"`
	DiscardSize   int       `json:"discardSize"`
	DiscardTop    string    `json:"discardTop,omitempty"`
	InPlay        []string  `json:"inPlay"`
	Actions       int       `json:"actions"`
	Buys          int       `json:"buys"`
	Coins         int       `json:"coins"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	Hand          []string  `json:"hand,omitempty"`
}

// PendingView describes the decision the game is waiting on.
type PendingView struct {
	Kind      string    `json:"kind"`
	Source    string    `json:"source"`
	DeciderID uuid.UUID `json:"deciderId"`
}

// StateView is the game state tailored to one observer.
type StateView struct {
	GameID          uuid.UUID     `json:"gameId"`
	GameOver        bool          `json:"gameOver"`
	TurnNumber      int           `json:"turnNumber"`
	Phase           string        `json:"phase"`
	CurrentPlayerID uuid.UUID     `json:"currentPlayerId"`
	Supply          []engine.Pile `json:"supply"`
	TrashSize       int           `json:"trashSize"`
	Kingdom         []string      `json:"kingdom"`
	Pending         *PendingView  `json:"pending,omitempty"`
	Players         []PlayerView  `json:"players"`
	ValidMoves      []string      `json:"validMoves,omitempty"` // Only for the acting observer.
}

// StateFor returns the view of the game for forUser.
func (g *Game) StateFor(forUser uuid.UUID) StateView {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.stateFor(forUser)
}

// stateFor assumes the lock is held.
func (g *Game) stateFor(forUser uuid.UUID) StateView {
	s := g.State
	view := StateView{
		GameID:          g.ID,
		GameOver:        g.GameOver,
		TurnNumber:      s.TurnNumber,
		Phase:           s.Phase.String(),
		CurrentPlayerID: g.Players[s.CurrentPlayer].ID,
		Supply:          slices.Clone(s.Supply),
		TrashSize:       len(s.Trash),
		Kingdom:         slices.Clone(s.Kingdom),
	}
	if s.Pending != nil {
		view.Pending = &PendingView{
			Kind:      s.Pending.Kind().String(),
			Source:    s.Pending.Source(),
			DeciderID: g.Players[s.ActingSeat()].ID,
		}
	}
	for seat, ps := range s.Players {
		pv := PlayerView{
			PlayerID:      g.Players[seat].ID,
			Username:      g.Players[seat].Username,
			Seat:          seat,
			HandSize:      len(ps.Hand),
			DrawSize:      len(ps.DrawPile),
			DiscardSize:   len(ps.DiscardPile),
			InPlay:        slices.Clone(ps.InPlay),
			Actions:       ps.Actions,
			Buys:          ps.Buys,
			Coins:         ps.Coins,
			IsCurrentTurn: seat == s.CurrentPlayer,
		}
		if n := len(ps.DiscardPile); n > 0 {
			pv.DiscardTop = ps.DiscardPile[n-1]
		}
		if g.Players[seat].ID == forUser {
			pv.Hand = slices.Clone(ps.Hand)
			if !g.GameOver {
				for _, m := range g.engine.GetValidMoves(s, seat) {
					view.ValidMoves = append(view.ValidMoves, m.String())
				}
			}
		}
		view.Players = append(view.Players, pv)
	}
	return view
}
