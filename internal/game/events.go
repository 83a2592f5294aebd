package game

import (
	"github.com/google/uuid"
)

// GameEventType represents the type of a game-related event.
type GameEventType string

// Constants defining the GameEvent types a session emits.
const (
	EventGameStart          GameEventType = "game_start"            // Public: game created and dealt.
	EventMoveApplied        GameEventType = "move_applied"          // Public: a move succeeded; payload carries new log lines.
	EventPrivateMoveFail    GameEventType = "private_move_fail"     // Private: the submitted move was rejected.
	EventPrivateDecision    GameEventType = "private_decision"      // Private: the seat owes a pending-effect decision.
	EventGamePlayerTurn     GameEventType = "game_player_turn"      // Public: a new turn started.
	EventPrivateSyncState   GameEventType = "private_sync_state"    // Private: full state view for one player.
	EventGameEnd            GameEventType = "game_end"              // Public: game over, includes results.
	EventInvariantViolation GameEventType = "game_invariant_broken" // Public: engine defect, game halted.
)

// EventUser identifies a user within a GameEvent payload.
type EventUser struct {
	ID uuid.UUID `json:"id"`
}

// GameEvent is the standard structure for broadcasting game changes.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	User    *EventUser             `json:"user,omitempty"` // The user initiating or targeted by the event.
	Move    string                 `json:"move,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *StateView             `json:"state,omitempty"` // Set on sync events.
}

// fireEvent broadcasts to all players. Assumes the lock is held.
func (g *Game) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// fireEventToPlayer sends an event to one player. Assumes the lock is held.
func (g *Game) fireEventToPlayer(playerID uuid.UUID, ev GameEvent) {
	if g.BroadcastToPlayerFn != nil {
		g.BroadcastToPlayerFn(playerID, ev)
	}
}

// sendSyncState sends a player their view of the state. Assumes the lock is held.
func (g *Game) sendSyncState(playerID uuid.UUID) {
	view := g.stateFor(playerID)
	g.fireEventToPlayer(playerID, GameEvent{
		Type:  EventPrivateSyncState,
		User:  &EventUser{ID: playerID},
		State: &view,
	})
}

func (g *Game) broadcastSyncStateToAll() {
	for _, p := range g.Players {
		g.sendSyncState(p.ID)
	}
}
