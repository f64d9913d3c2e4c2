// internal/game/engine.go
//
// Core game engine for a single hangman round.
// Responsibilities:
//   - Start rounds from a secret word.
//   - Evaluate letter guesses (hit positions or miss).
//   - Provide hints that charge one miss.
//   - Track state transitions: in_progress → won/lost.
//
// Terminal states are final; a new round replaces the old one.
package game

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// NewRound starts a round for secret, which is lowercased.
func NewRound(secret string) *Round {
	return &Round{
		secret:       strings.ToLower(secret),
		correct:      make(map[byte]struct{}),
		missed:       make(map[byte]struct{}),
		maxIncorrect: MaxIncorrect,
		status:       StatusInProgress,
	}
}

// Guess applies letter to the round.
//
// Errors leave the round unchanged:
//   - ErrRoundOver if the round is won or lost.
//   - ErrInvalidLetter unless letter is a-z (upper case is folded).
//   - ErrAlreadyGuessed if the letter was tried before, hit or miss.
func (r *Round) Guess(letter rune) (Outcome, error) {
	if r.status.Terminal() {
		return Outcome{Status: r.status}, ErrRoundOver
	}
	c, ok := normalize(letter)
	if !ok {
		return Outcome{Status: r.status}, ErrInvalidLetter
	}
	if r.used(c) {
		return Outcome{Letter: string(c), Status: r.status}, ErrAlreadyGuessed
	}

	out := Outcome{Letter: string(c), Positions: []int{}}
	for i := 0; i < len(r.secret); i++ {
		if r.secret[i] == c {
			out.Positions = append(out.Positions, i)
		}
	}
	if len(out.Positions) > 0 {
		out.Hit = true
		r.correct[c] = struct{}{}
	} else {
		r.missed[c] = struct{}{}
		r.incorrect++
	}

	r.check()
	out.Status = r.status
	return out, nil
}

// HintAvailable reports whether Hint may be used. A hint is withheld when it
// could end the round on its own: one miss or less left, or one unguessed
// letter or less left.
func (r *Round) HintAvailable() bool {
	if r.status.Terminal() {
		return false
	}
	return r.Remaining() > 1 && len(r.unguessed()) > 1
}

// Hint reveals a random unguessed letter through the normal guess path and
// then charges one miss. pick(n) must return an index in [0, n).
func (r *Round) Hint(pick func(n int) int) (Outcome, error) {
	if !r.HintAvailable() {
		return Outcome{Status: r.status}, ErrNoHint
	}
	letters := r.unguessed()
	c := letters[pick(len(letters))]

	out, err := r.Guess(rune(c))
	if err != nil {
		return out, err
	}
	r.incorrect++
	r.check()
	out.Hint = true
	out.Status = r.status
	return out, nil
}

// check evaluates the loss condition first, then the win condition.
func (r *Round) check() {
	if r.status.Terminal() {
		return
	}
	if r.incorrect >= r.maxIncorrect {
		r.incorrect = r.maxIncorrect
		r.status = StatusLost
		return
	}
	if len(r.unguessed()) == 0 {
		r.status = StatusWon
	}
}

// unguessed returns the distinct letters of the secret not yet guessed, sorted.
func (r *Round) unguessed() []byte {
	letters := lo.Uniq([]byte(r.secret))
	letters = lo.Filter(letters, func(c byte, _ int) bool {
		_, ok := r.correct[c]
		return !ok
	})
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}

func (r *Round) used(c byte) bool {
	_, hit := r.correct[c]
	_, miss := r.missed[c]
	return hit || miss
}

// normalize folds letter to lower case and reports whether it is a-z.
func normalize(letter rune) (byte, bool) {
	if letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	if letter < 'a' || letter > 'z' {
		return 0, false
	}
	return byte(letter), true
}

// Status reports the current round state.
func (r *Round) Status() Status { return r.status }

// Secret returns the secret word. Callers only show it once the round is lost.
func (r *Round) Secret() string { return r.secret }

// Incorrect returns the number of misses charged so far.
func (r *Round) Incorrect() int { return r.incorrect }

// MaxIncorrect returns the miss budget of the round.
func (r *Round) MaxIncorrect() int { return r.maxIncorrect }

// Remaining returns how many more misses the round tolerates.
func (r *Round) Remaining() int { return r.maxIncorrect - r.incorrect }

// Unguessed returns the count of distinct secret letters still hidden.
func (r *Round) Unguessed() int { return len(r.unguessed()) }

// Correct reports whether letter has been guessed correctly.
func (r *Round) Correct(letter rune) bool {
	c, ok := normalize(letter)
	if !ok {
		return false
	}
	_, hit := r.correct[c]
	return hit
}

// Masked returns the secret with unrevealed positions as empty strings.
func (r *Round) Masked() []string {
	out := make([]string, len(r.secret))
	for i := 0; i < len(r.secret); i++ {
		if _, ok := r.correct[r.secret[i]]; ok {
			out[i] = string(r.secret[i])
		}
	}
	return out
}

// Key returns the keyboard state of letter.
func (r *Round) Key(letter rune) KeyState {
	c, ok := normalize(letter)
	if !ok {
		return KeyUntried
	}
	if _, hit := r.correct[c]; hit {
		return KeyCorrect
	}
	if _, miss := r.missed[c]; miss {
		return KeyIncorrect
	}
	return KeyUntried
}
