// internal/store/memory.go
//
// In-memory implementation of the Preferences interface.
// Used by tests and by dev runs that do not want a database file.
//
// Characteristics:
//   - Values are kept per player as raw strings, the same way SQLite stores them.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// memory is an in-memory map-based Preferences implementation.
type memory struct {
	mu     sync.RWMutex                 // guards values
	values map[string]map[string]string // player ID → key → value
}

// NewMemory constructs a new in-memory Preferences store.
func NewMemory() Preferences {
	return &memory{values: make(map[string]map[string]string)}
}

func (m *memory) get(player, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[player][key]
	return v, ok
}

func (m *memory) set(player, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values[player] == nil {
		m.values[player] = make(map[string]string)
	}
	m.values[player][key] = value
}

func (m *memory) LoadHighScore(ctx context.Context, player string) (int, error) {
	v, _ := m.get(player, KeyHighScore)
	return parseHighScore(v), nil
}

func (m *memory) SaveHighScore(ctx context.Context, player string, score int) error {
	m.set(player, KeyHighScore, formatHighScore(score))
	return nil
}

func (m *memory) LoadTheme(ctx context.Context, player string) (Theme, bool, error) {
	v, ok := m.get(player, KeyTheme)
	if !ok {
		return "", false, nil
	}
	t, err := ParseTheme(v)
	if err != nil {
		return "", false, nil
	}
	return t, true, nil
}

func (m *memory) SaveTheme(ctx context.Context, player string, theme Theme) error {
	m.set(player, KeyTheme, string(theme))
	return nil
}

func (m *memory) Close() error { return nil }
