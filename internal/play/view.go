// internal/play/view.go
//
// Read-only projection of a controller for the browser: masked word,
// hangman figure, keyboard states, hint button, end-of-round modal,
// scoreboard and preferences.

package play

import (
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// Key is one letter of the on-screen keyboard.
type Key struct {
	Letter   string        `json:"letter"`
	State    game.KeyState `json:"state"`
	Disabled bool          `json:"disabled"`
}

// Modal is the end-of-round dialog.
type Modal struct {
	Title string `json:"title"`
	Word  string `json:"word,omitempty"` // only set on a loss
}

// View is everything the display needs, derived from the controller state.
type View struct {
	Word         []string         `json:"word"` // "" marks a blank
	Incorrect    int              `json:"incorrect"`
	MaxIncorrect int              `json:"maxIncorrect"`
	FigureParts  int              `json:"figureParts"`
	Keyboard     []Key            `json:"keyboard"`
	HintEnabled  bool             `json:"hintEnabled"`
	Status       game.Status      `json:"status"`
	Modal        *Modal           `json:"modal,omitempty"`
	Stats        game.Stats       `json:"stats"`
	Difficulty   words.Difficulty `json:"difficulty"`
	Theme        store.Theme      `json:"theme"`
	Warning      string           `json:"warning,omitempty"`
	Shake        bool             `json:"shake"`
	InputLocked  bool             `json:"inputLocked"`
}

// view projects the current state. Callers hold c.mu.
func (c *Controller) view() View {
	r := c.round
	now := c.opts.Now()
	locked := r.Status().Terminal()

	keys := make([]Key, 0, 26)
	for l := 'a'; l <= 'z'; l++ {
		st := r.Key(l)
		keys = append(keys, Key{
			Letter:   string(l),
			State:    st,
			Disabled: locked || st != game.KeyUntried,
		})
	}

	v := View{
		Word:         r.Masked(),
		Incorrect:    r.Incorrect(),
		MaxIncorrect: r.MaxIncorrect(),
		FigureParts:  min(r.Incorrect(), r.MaxIncorrect()),
		Keyboard:     keys,
		HintEnabled:  r.HintAvailable(),
		Status:       r.Status(),
		Stats:        c.stats,
		Difficulty:   c.difficulty,
		Theme:        c.theme,
		Warning:      c.warning,
		Shake:        now.Before(c.shakeUntil),
		InputLocked:  locked,
	}
	if locked && !now.Before(c.revealAt) {
		v.Modal = modalFor(r)
	}
	return v
}

func modalFor(r *game.Round) *Modal {
	if r.Status() == game.StatusWon {
		return &Modal{Title: "Congratulations!"}
	}
	return &Modal{Title: "Game Over!", Word: r.Secret()}
}
