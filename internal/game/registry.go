package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/principality/engine"
	"github.com/sirupsen/logrus"
)

type entry struct {
	game         *Game
	lastActivity time.Time
}

// Registry tracks running games by ID. Games idle longer than the TTL are
// dropped by Prune; when the registry is full the least recently used game
// makes room for a new one.
type Registry struct {
	mu       sync.RWMutex
	games    map[uuid.UUID]*entry
	maxGames int
	ttl      time.Duration
	now      func() time.Time
	log      logrus.FieldLogger
}

// NewRegistry returns an empty registry. maxGames <= 0 means no limit and
// ttl <= 0 disables expiry.
func NewRegistry(maxGames int, ttl time.Duration, log logrus.FieldLogger) *Registry {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Registry{
		games:    make(map[uuid.UUID]*entry),
		maxGames: maxGames,
		ttl:      ttl,
		now:      time.Now,
		log:      log,
	}
}

// Create deals a new game and registers it.
func (r *Registry) Create(eng *engine.Engine, seed string, players []Player) (*Game, error) {
	g, err := NewGame(eng, seed, players, r.log)
	if err != nil {
		return nil, err
	}
	if err := r.Add(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Add registers an existing game.
func (r *Registry) Add(g *Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[g.ID]; ok {
		return fmt.Errorf("game %s already registered", g.ID)
	}
	if r.maxGames > 0 && len(r.games) >= r.maxGames {
		r.evictOldestLocked()
	}
	r.games[g.ID] = &entry{game: g, lastActivity: r.now()}
	return nil
}

func (r *Registry) evictOldestLocked() {
	var oldest uuid.UUID
	var at time.Time
	for id, e := range r.games {
		if at.IsZero() || e.lastActivity.Before(at) {
			oldest, at = id, e.lastActivity
		}
	}
	if at.IsZero() {
		return
	}
	delete(r.games, oldest)
	r.log.WithField("game_id", oldest).Info("registry full, evicted least recently used game")
}

// Get returns the game with id and marks it active.
func (r *Registry) Get(id uuid.UUID) (*Game, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.games[id]
	if !ok {
		return nil, false
	}
	e.lastActivity = r.now()
	return e.game, true
}

// Remove drops a game. It reports whether the game was registered.
func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.games[id]
	delete(r.games, id)
	return ok
}

// Len returns the number of registered games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// IDs returns the registered game IDs in no particular order.
func (r *Registry) IDs() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	return ids
}

// Prune removes games idle for longer than the TTL and returns how many were removed.
func (r *Registry) Prune() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.games {
		if e.lastActivity.Before(cutoff) {
			delete(r.games, id)
			removed++
		}
	}
	if removed > 0 {
		r.log.WithField("removed", removed).Debug("pruned idle games")
	}
	return removed
}

// RunPruner calls Prune every interval until ctx is done.
func (r *Registry) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Prune()
		}
	}
}
