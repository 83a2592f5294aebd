// Package game runs a single multiplayer session on top of the engine: it maps
// player IDs to seats, serializes moves, records history and broadcasts events.
package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/principality/engine"
	"github.com/sirupsen/logrus"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotInGame   = errors.New("player is not in this game")
	ErrNotYourTurn = errors.New("not this player's decision")
)

// OnGameEndFunc defines the signature for a callback function executed when a game ends.
// It receives the game ID, the winner's ID and the final scores.
type OnGameEndFunc func(gameID uuid.UUID, winner uuid.UUID, scores map[uuid.UUID]int)

// Player is one participant, bound to the seat of the same index.
type Player struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// ActionRecord is one entry of the game history. StateHash is the engine
// state hash after the move, so a replay can be checked step by step.
type ActionRecord struct {
	GameID      uuid.UUID   `json:"gameId"`
	ActionIndex int         `json:"actionIndex"`
	ActorUserID uuid.UUID   `json:"actorUserId"`
	Seat        int         `json:"seat"`
	Move        engine.Move `json:"move"`
	ActionType  string      `json:"actionType"`
	Timestamp   time.Time   `json:"timestamp"`
	StateHash   uint64      `json:"stateHash"`
}

// Game is one running session.
type Game struct {
	ID      uuid.UUID
	Seed    string
	Players []Player

	engine *engine.Engine
	State  engine.GameState // Authoritative state; replaced wholesale after each move.

	History   []ActionRecord
	Started   bool
	GameOver  bool
	Result    engine.Victory
	CreatedAt time.Time

	Mu sync.Mutex // Protects everything above.

	// Communication Callbacks
	BroadcastFn         func(ev GameEvent)                     // Sends an event to all connected players.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent) // Sends an event to a single player.
	OnGameEnd           OnGameEndFunc                          // Callback executed when the game finishes.

	log logrus.FieldLogger
}

// NewGame deals a new game for players in seat order. The seed fixes every
// shuffle; an empty seed is replaced by the game ID.
func NewGame(eng *engine.Engine, seed string, players []Player, log logrus.FieldLogger) (*Game, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate game id: %w", err)
	}
	if seed == "" {
		seed = id.String()
	}
	seen := make(map[uuid.UUID]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return nil, fmt.Errorf("player %s listed twice", p.ID)
		}
		seen[p.ID] = true
	}
	state, err := eng.Initialize(seed, len(players))
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Game{
		ID:        id,
		Seed:      seed,
		Players:   append([]Player(nil), players...),
		engine:    eng,
		State:     state,
		CreatedAt: time.Now(),
		log:       log.WithField("game_id", id),
	}, nil
}

// Start announces the game and sends every player their first view.
func (g *Game) Start() {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.Started || g.GameOver {
		g.log.Warn("Start called on a game that already started")
		return
	}
	g.Started = true
	g.fireEvent(GameEvent{
		Type: EventGameStart,
		Payload: map[string]interface{}{
			"seed":    g.Seed,
			"kingdom": g.State.Kingdom,
			"players": g.Players,
		},
	})
	g.broadcastSyncStateToAll()
	g.announceNext()
	g.log.WithField("players", len(g.Players)).Info("game started")
}

// seatOf returns the seat of playerID, or -1.
func (g *Game) seatOf(playerID uuid.UUID) int {
	for i, p := range g.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// HandlePlayerMove validates and applies a move submitted by playerID. The
// player must be the one the engine is waiting on. Illegal moves are reported
// privately and leave the game untouched.
func (g *Game) HandlePlayerMove(playerID uuid.UUID, m engine.Move) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.GameOver {
		return ErrGameOver
	}
	seat := g.seatOf(playerID)
	if seat < 0 {
		return ErrNotInGame
	}
	if acting := g.State.ActingSeat(); acting != seat {
		return fmt.Errorf("%w: waiting on seat %d", ErrNotYourTurn, acting)
	}

	logged := len(g.State.Log)
	turn := g.State.TurnNumber
	prevSeat := g.State.CurrentPlayer
	next, err := g.engine.ExecuteMove(g.State, m)
	if err != nil {
		entry := g.log.WithFields(logrus.Fields{"seat": seat, "move": m.String()}).WithError(err)
		if errors.Is(err, engine.ErrInvariant) {
			entry.Error("engine rejected state after move; halting game")
			g.fireEvent(GameEvent{
				Type:    EventInvariantViolation,
				User:    &EventUser{ID: playerID},
				Move:    m.String(),
				Payload: map[string]interface{}{"error": err.Error()},
			})
			g.endGameLocked(false)
			return err
		}
		entry.Warn("illegal move")
		g.fireEventToPlayer(playerID, GameEvent{
			Type:    EventPrivateMoveFail,
			User:    &EventUser{ID: playerID},
			Move:    m.String(),
			Payload: map[string]interface{}{"error": err.Error()},
		})
		return err
	}
	g.State = next
	g.logAction(playerID, seat, m)

	g.fireEvent(GameEvent{
		Type:    EventMoveApplied,
		User:    &EventUser{ID: playerID},
		Move:    m.String(),
		Payload: map[string]interface{}{"log": next.Log[logged:]},
	})
	g.broadcastSyncStateToAll()

	if v := g.engine.CheckGameOver(g.State); v.IsGameOver {
		g.Result = v
		g.endGameLocked(true)
		return nil
	}
	if g.State.TurnNumber != turn || g.State.CurrentPlayer != prevSeat {
		g.fireEvent(GameEvent{
			Type: EventGamePlayerTurn,
			User: &EventUser{ID: g.Players[g.State.CurrentPlayer].ID},
			Payload: map[string]interface{}{
				"turn": g.State.TurnNumber,
			},
		})
	}
	g.announceNext()
	return nil
}

// announceNext tells the acting player about a pending decision they owe.
// Assumes the lock is held.
func (g *Game) announceNext() {
	p := g.State.Pending
	if p == nil {
		return
	}
	decider := g.Players[g.State.ActingSeat()].ID
	g.fireEventToPlayer(decider, GameEvent{
		Type: EventPrivateDecision,
		User: &EventUser{ID: decider},
		Payload: map[string]interface{}{
			"kind":    p.Kind().String(),
			"source":  p.Source(),
			"expects": p.Expects().String(),
		},
	})
}

// logAction appends a history record. Assumes the lock is held.
func (g *Game) logAction(actor uuid.UUID, seat int, m engine.Move) {
	g.History = append(g.History, ActionRecord{
		GameID:      g.ID,
		ActionIndex: len(g.History),
		ActorUserID: actor,
		Seat:        seat,
		Move:        m,
		ActionType:  m.Type.String(),
		Timestamp:   time.Now(),
		StateHash:   g.State.Hash(),
	})
}

// ValidMoves returns the legal moves for playerID. It is empty unless the
// player owes the next decision.
func (g *Game) ValidMoves(playerID uuid.UUID) []engine.Move {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	seat := g.seatOf(playerID)
	if seat < 0 || g.GameOver {
		return nil
	}
	return g.engine.GetValidMoves(g.State, seat)
}

// Snapshot returns the current state. The engine never mutates a state in
// place, so the value may be read without the lock.
func (g *Game) Snapshot() engine.GameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.State
}

// EndGame stops the game early. Scores are computed from the current state
// whether or not an end condition was reached.
func (g *Game) EndGame() {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.GameOver {
		return
	}
	g.endGameLocked(true)
}

// endGameLocked marks the game over and fires the end event. With notify set
// the OnGameEnd callback receives the winner and scores. Assumes the lock is held.
func (g *Game) endGameLocked(notify bool) {
	g.GameOver = true
	if !g.Result.IsGameOver {
		g.Result = finalResult(g.State)
	}
	scores := make(map[uuid.UUID]int, len(g.Players))
	for seat, sc := range g.Result.Scores {
		scores[g.Players[seat].ID] = sc
	}
	winner := uuid.Nil
	if w := g.Result.Winner; w >= 0 && w < len(g.Players) {
		winner = g.Players[w].ID
	}
	g.fireEvent(GameEvent{
		Type: EventGameEnd,
		Payload: map[string]interface{}{
			"scores": scores,
			"winner": winner,
			"turns":  g.State.TurnNumber,
		},
	})
	g.log.WithFields(logrus.Fields{
		"winner": winner,
		"turns":  g.State.TurnNumber,
		"moves":  len(g.History),
	}).Info("game ended")
	if notify && g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, winner, scores)
	}
}

// finalResult scores a state that may not have met an end condition.
func finalResult(s engine.GameState) engine.Victory {
	v := engine.Standings(s)
	v.IsGameOver = true
	return v
}
