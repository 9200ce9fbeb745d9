// internal/store/memory.go
//
// In-memory session store for game snapshots.
// Each session holds exactly one game.State; callers never edit it in place,
// they hand the store a complete replacement.
//
// Characteristics:
//   - Keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Idle sessions are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/game"
)

// ErrNotFound is returned when a session holds no game.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Get retrieves the current snapshot for a session.
	Get(ctx context.Context, id string) (game.State, error)

	// Replace swaps the session's snapshot for s wholesale.
	Replace(ctx context.Context, id string, s game.State) error

	// Update applies fn to the current snapshot and stores its result.
	// If fn fails the held snapshot is left as it was.
	Update(ctx context.Context, id string, fn func(game.State) (game.State, error)) (game.State, error)

	// Sweep removes sessions not touched since cutoff and reports how many.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type entry struct {
	state game.State
	seen  time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *memory) Get(ctx context.Context, id string) (game.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e.state, nil
	}
	return game.State{}, ErrNotFound
}

func (m *memory) Replace(ctx context.Context, id string, s game.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &entry{state: s, seen: m.now()}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(game.State) (game.State, error)) (game.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return game.State{}, ErrNotFound
	}
	next, err := fn(e.state)
	if err != nil {
		return e.state, err
	}
	m.sessions[id] = &entry{state: next, seen: m.now()}
	return next, nil
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.sessions {
		if e.seen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
