// internal/words/difficulty.go
//
// Difficulty tiers and word selection.
//   - easy:   4-6 letters
//   - medium: 7-10 letters
//   - hard:   11+ letters
// Bounds are inclusive. Picks are uniform over the matching words.

package words

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"lukechampine.com/frand"
)

// ErrNoCandidates is returned when no word fits the requested difficulty.
var ErrNoCandidates = errors.New("words: no candidates for difficulty")

// Difficulty is a named word-length tier.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// Difficulties lists every tier in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Range returns the inclusive word-length bounds of d. Hard is unbounded above.
func (d Difficulty) Range() (min, max int) {
	switch d {
	case Easy:
		return 4, 6
	case Hard:
		return 11, math.MaxInt
	default:
		return 7, 10
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	default:
		return "medium"
	}
}

// MarshalText encodes d as its lowercase name.
func (d Difficulty) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts easy, medium or hard in any case.
func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDifficulty maps a tier name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, fmt.Errorf("words: unknown difficulty %q", s)
}

// Candidates returns the words whose length lies within d's range.
func Candidates(list WordList, d Difficulty) []string {
	min, max := d.Range()
	return lo.Filter(list, func(w string, _ int) bool {
		return len(w) >= min && len(w) <= max
	})
}

// Picker returns a uniformly random index in [0, n).
type Picker func(n int) int

// DefaultPicker draws from frand's CSPRNG.
var DefaultPicker Picker = frand.Intn

// SelectWord draws one word uniformly from the candidates for d.
// A nil pick uses DefaultPicker.
func SelectWord(list WordList, d Difficulty, pick Picker) (string, error) {
	cands := Candidates(list, d)
	if len(cands) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoCandidates, d)
	}
	return cands[pickIndex(pick, len(cands))], nil
}

// Any draws one word uniformly from the whole list.
func Any(list WordList, pick Picker) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyOrInvalid
	}
	return list[pickIndex(pick, len(list))], nil
}

func pickIndex(pick Picker, n int) int {
	if pick == nil {
		pick = DefaultPicker
	}
	return pick(n)
}
