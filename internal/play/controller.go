// internal/play/controller.go
//
// Per-player game controller.
// Responsibilities:
//   - Start rounds for the chosen difficulty, falling back to the whole word
//     list with a warning when the tier is empty.
//   - Forward guesses and hints to the engine, ignoring input once a round ends.
//   - Track the shake and reveal deadlines used by the view.
//   - Record stats and persist the high score and theme.

package play

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// ErrInputLocked is returned for input that arrives after the round ended
// and before the next round starts.
var ErrInputLocked = errors.New("play: input locked until the next round")

// Options configure the cosmetic timings and the sources of randomness and time.
type Options struct {
	RevealDelay   time.Duration // delay between the end of a round and its modal
	ShakeDuration time.Duration // how long the word display shakes after a miss
	Pick          words.Picker  // nil uses words.DefaultPicker
	Now           func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Pick == nil {
		o.Pick = words.DefaultPicker
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// WordSource supplies the current word list. *words.Source and
// words.WordList both satisfy it.
type WordSource interface {
	List() words.WordList
}

// Controller owns one player's game. Its methods are serialized, one input
// event at a time.
type Controller struct {
	mu     sync.Mutex
	player string
	source WordSource
	list   words.WordList // last non-empty list drawn from source
	prefs  store.Preferences
	opts   Options
	log    zerolog.Logger

	stats      game.Stats
	round      *game.Round
	difficulty words.Difficulty
	theme      store.Theme
	warning    string
	shakeUntil time.Time
	revealAt   time.Time
}

// NewController restores the player's theme and high score and starts the first
// round. source must hold a successfully loaded word list.
func NewController(ctx context.Context, player string, source WordSource, prefs store.Preferences, opts Options, logger zerolog.Logger) (*Controller, error) {
	list := source.List()
	if len(list) == 0 {
		return nil, words.ErrEmptyOrInvalid
	}
	c := &Controller{
		player:     player,
		source:     source,
		list:       list,
		prefs:      prefs,
		opts:       opts.withDefaults(),
		log:        logger.With().Str("component", "play").Str("player", player).Logger(),
		difficulty: words.Medium,
		theme:      store.DefaultTheme,
	}

	theme, ok, err := prefs.LoadTheme(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("load theme: %w", err)
	}
	if ok {
		c.theme = theme
	}
	if c.stats.HighScore, err = prefs.LoadHighScore(ctx, player); err != nil {
		return nil, fmt.Errorf("load high score: %w", err)
	}

	c.startRound()
	return c, nil
}

// startRound picks a secret for the current difficulty from the source's
// current list, so a reloaded word list applies from the next round. When the
// tier has no words it warns and falls back to the whole list.
func (c *Controller) startRound() {
	if list := c.source.List(); len(list) > 0 {
		c.list = list
	}
	c.warning = ""
	secret, err := words.SelectWord(c.list, c.difficulty, c.opts.Pick)
	if errors.Is(err, words.ErrNoCandidates) {
		c.warning = fmt.Sprintf("No words found for the '%s' difficulty. Using a random word instead.", c.difficulty)
		c.log.Warn().Str("difficulty", c.difficulty.String()).Msg("no candidates, falling back to full list")
		secret, err = words.Any(c.list, c.opts.Pick)
	}
	if err != nil {
		// list is non-empty, so this is unreachable.
		panic(err)
	}
	c.round = game.NewRound(secret)
	c.shakeUntil, c.revealAt = time.Time{}, time.Time{}
	c.log.Debug().Int("length", len(secret)).Str("difficulty", c.difficulty.String()).Msg("round started")
}

// NewRound replaces the current round.
func (c *Controller) NewRound(ctx context.Context) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startRound()
	return c.view()
}

// SetDifficulty changes the tier and starts a new round with it.
func (c *Controller) SetDifficulty(ctx context.Context, d words.Difficulty) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.difficulty = d
	c.startRound()
	return c.view()
}

// Guess forwards letter to the round. No-op conditions (input locked,
// duplicate letter) return an error and leave all state untouched.
func (c *Controller) Guess(ctx context.Context, letter rune) (game.Outcome, View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.round.Status().Terminal() {
		return game.Outcome{Status: c.round.Status()}, c.view(), ErrInputLocked
	}
	out, err := c.round.Guess(letter)
	if err != nil {
		return out, c.view(), err
	}
	c.afterGuess(ctx, out)
	return out, c.view(), nil
}

// Hint reveals a letter at the cost of one miss.
func (c *Controller) Hint(ctx context.Context) (game.Outcome, View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.round.Status().Terminal() {
		return game.Outcome{Status: c.round.Status()}, c.view(), ErrInputLocked
	}
	out, err := c.round.Hint(c.opts.Pick)
	if err != nil {
		return out, c.view(), err
	}
	c.afterGuess(ctx, out)
	return out, c.view(), nil
}

// afterGuess schedules the cosmetic effects and settles a finished round.
func (c *Controller) afterGuess(ctx context.Context, out game.Outcome) {
	now := c.opts.Now()
	if !out.Hit {
		c.shakeUntil = now.Add(c.opts.ShakeDuration)
	}
	if !out.Status.Terminal() {
		return
	}
	c.revealAt = now.Add(c.opts.RevealDelay)
	if c.stats.Record(out.Status) {
		if err := c.prefs.SaveHighScore(ctx, c.player, c.stats.HighScore); err != nil {
			c.log.Warn().Err(err).Int("highScore", c.stats.HighScore).Msg("save high score")
		}
	}
	c.log.Info().
		Str("status", string(out.Status)).
		Int("wins", c.stats.Wins).
		Int("losses", c.stats.Losses).
		Msg("round finished")
}

// SetTheme stores theme as the player's preference.
func (c *Controller) SetTheme(ctx context.Context, theme store.Theme) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setTheme(ctx, theme)
}

// ToggleTheme flips between light and dark.
func (c *Controller) ToggleTheme(ctx context.Context) (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setTheme(ctx, c.theme.Toggle())
}

func (c *Controller) setTheme(ctx context.Context, theme store.Theme) (View, error) {
	c.theme = theme
	if err := c.prefs.SaveTheme(ctx, c.player, theme); err != nil {
		return c.view(), fmt.Errorf("save theme: %w", err)
	}
	return c.view(), nil
}

// View returns the current projection.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view()
}

// Stats returns the session counters.
func (c *Controller) Stats() game.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
