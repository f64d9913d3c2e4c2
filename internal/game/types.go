// internal/game/types.go
//
// Core type definitions for the hangman engine.
// Defines:
//   - Status: coarse round state (in_progress/won/lost).
//   - KeyState: per-letter keyboard projection.
//   - Outcome: result of a single guess.
//   - Round: state for one round from secret word to resolution.

package game

import "errors"

// MaxIncorrect is the number of misses that loses a round.
const MaxIncorrect = 6

var (
	ErrInvalidLetter  = errors.New("game: guess must be a single letter a-z")
	ErrAlreadyGuessed = errors.New("game: letter already guessed")
	ErrRoundOver      = errors.New("game: round is over")
	ErrNoHint         = errors.New("game: no hint available")
)

// Status is the state of a round.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether s is won or lost.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// KeyState is the status of one keyboard letter within a round.
type KeyState string

const (
	KeyUntried   KeyState = "untried"
	KeyCorrect   KeyState = "correct"
	KeyIncorrect KeyState = "incorrect"
)

// Outcome describes the effect of one guess.
type Outcome struct {
	Letter    string `json:"letter"`
	Hit       bool   `json:"hit"`
	Positions []int  `json:"positions"` // indexes revealed; empty on a miss
	Hint      bool   `json:"hint,omitempty"`
	Status    Status `json:"status"` // status after the terminal check
}

// Round holds the state of a single round.
type Round struct {
	secret       string
	correct      map[byte]struct{} // letters of secret guessed so far
	missed       map[byte]struct{} // letters guessed that are not in secret
	incorrect    int
	maxIncorrect int
	status       Status
}
