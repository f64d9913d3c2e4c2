// internal/play/registry.go
//
// One Controller per player, created on first access.
// Concurrency-safe via RWMutex; controllers live for the process lifetime.

package play

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Registry keeps one Controller per player for the life of the process.
type Registry struct {
	mu          sync.RWMutex           // guards controllers
	controllers map[string]*Controller // keyed by player ID

	source *words.Source
	prefs  store.Preferences
	opts   Options
	log    zerolog.Logger
}

// NewRegistry constructs an empty Registry.
func NewRegistry(source *words.Source, prefs store.Preferences, opts Options, logger zerolog.Logger) *Registry {
	return &Registry{
		controllers: make(map[string]*Controller),
		source:      source,
		prefs:       prefs,
		opts:        opts,
		log:         logger,
	}
}

// Get returns the player's controller, building it on first access.
// It fails while the word source is unavailable.
func (g *Registry) Get(ctx context.Context, player string) (*Controller, error) {
	g.mu.RLock()
	c, ok := g.controllers[player]
	g.mu.RUnlock()
	if ok {
		return c, nil
	}

	if err := g.source.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.controllers[player]; ok {
		return c, nil
	}
	c, err := NewController(ctx, player, g.source, g.prefs, g.opts, g.log)
	if err != nil {
		return nil, err
	}
	g.controllers[player] = c
	g.log.Debug().Str("player", player).Int("players", len(g.controllers)).Msg("controller created")
	return c, nil
}

// Len returns the number of active players.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.controllers)
}
