// internal/store/memory.go
//
// In-memory registry of live sessions.
// Used by the dispatcher to expose what is connected (diagnostics) and to
// count open sessions. Sessions publish snapshots of their own state; nothing
// here is read back by game logic, so sessions stay independent.
//
// Characteristics:
//   - Snapshots keyed by session ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("not found")

// Snapshot is a point-in-time view of one session.
type Snapshot struct {
	ID         string    `json:"id"`
	RemoteAddr string    `json:"remote"`
	Transport  string    `json:"transport"`
	Round      int       `json:"round"`
	GuessCount int       `json:"guessCount"`
	StartedAt  time.Time `json:"startedAt"`
}

// Registry tracks live sessions.
// Implementations may be backed by memory (this package) or a shared cache.
type Registry interface {
	// Put adds or updates a session snapshot.
	Put(ctx context.Context, s Snapshot) error

	// Get retrieves a snapshot by session ID.
	Get(ctx context.Context, id string) (Snapshot, error)

	// Delete removes a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// List returns all snapshots, oldest session first.
	List(ctx context.Context) ([]Snapshot, error)

	// Count returns the number of live sessions.
	Count(ctx context.Context) int
}

// memory is an in-memory map-based Registry implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]Snapshot // keyed by Snapshot.ID
}

// NewMemory constructs a new in-memory Registry.
func NewMemory() Registry {
	return &memory{sessions: make(map[string]Snapshot)}
}

func (m *memory) Put(ctx context.Context, s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return Snapshot{}, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) List(ctx context.Context) ([]Snapshot, error) {
	m.mu.RLock()
	out := lo.Values(m.sessions)
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

func (m *memory) Count(ctx context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
