// internal/words/words.go
//
// Word list loading for the hangman game.
//
// Responsibilities:
//   - Parse a newline-delimited word resource into lowercase alphabetic words.
//   - Hold the loaded list behind a Source that can be retried after a failure.
//
// Resource:
//   - WORDS_FILE=/path/to/wordlist.txt when configured,
//   - otherwise the embedded assets/wordlist.txt.
//
// A failed load is never papered over with a default list: the Source keeps the
// error and callers must block play until Reload succeeds.

package words

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/robalobadob/hangman/assets"
)

// ErrEmptyOrInvalid is returned when a resource yields no usable words.
var ErrEmptyOrInvalid = errors.New("words: word list is empty or invalid")

// dquotes removes double quotes anywhere in a line.
var dquotes = strings.NewReplacer(`"`, "")

// WordList is an ordered list of validated lowercase words.
type WordList []string

// List returns l itself, so a fixed list can stand in for a Source.
func (l WordList) List() WordList { return l }

// Parse splits text on line breaks and keeps only alphabetic entries.
// Double quotes are removed, surrounding whitespace and single quotes are
// trimmed, and the result is lowercased. An interior apostrophe (don't)
// disqualifies the entry.
func Parse(text string) (WordList, error) {
	var out WordList
	for _, line := range strings.Split(text, "\n") {
		w := strings.TrimSpace(dquotes.Replace(line))
		w = strings.TrimSpace(strings.Trim(w, "'"))
		if w == "" || !isAlpha(w) {
			continue
		}
		out = append(out, strings.ToLower(w))
	}
	if len(out) == 0 {
		return nil, ErrEmptyOrInvalid
	}
	return out, nil
}

// isAlpha reports whether s is all ASCII letters, either case.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}

// Source owns the word list for the lifetime of the process.
type Source struct {
	path string
	read func(ctx context.Context) (string, error)
	log  zerolog.Logger

	mu   sync.RWMutex
	list WordList
	err  error
}

// NewSource builds a Source reading from path, or from the embedded
// word list when path is empty. Nothing is read until Load is called.
func NewSource(path string, logger zerolog.Logger) *Source {
	s := &Source{path: path, log: logger.With().Str("component", "words").Logger()}
	if path == "" {
		s.read = func(context.Context) (string, error) { return assets.WordList() }
	} else {
		s.read = func(context.Context) (string, error) {
			b, err := os.ReadFile(path)
			return string(b), err
		}
	}
	return s
}

// NewSourceFunc builds a Source around an arbitrary reader. Used by tests.
func NewSourceFunc(read func(ctx context.Context) (string, error), logger zerolog.Logger) *Source {
	return &Source{path: "<func>", read: read, log: logger}
}

// Load reads and parses the resource. On failure the previous list is
// discarded so that play stays blocked until a successful Reload.
func (s *Source) Load(ctx context.Context) error {
	text, err := s.read(ctx)
	var list WordList
	if err == nil {
		list, err = Parse(text)
	} else {
		err = fmt.Errorf("read word list %q: %w", s.path, err)
	}

	s.mu.Lock()
	s.list, s.err = list, err
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("could not load word list")
		return err
	}
	s.log.Info().Int("words", len(list)).Str("path", s.path).Msg("word list loaded")
	return nil
}

// Reload retries Load. It exists as a separate name for the retry path.
func (s *Source) Reload(ctx context.Context) error { return s.Load(ctx) }

// List returns the loaded words, or nil while the source is failed or unloaded.
func (s *Source) List() WordList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.list
}

// Err returns the last load error. A Source that was never loaded reports
// ErrEmptyOrInvalid.
func (s *Source) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err == nil && s.list == nil {
		return ErrEmptyOrInvalid
	}
	return s.err
}

// Stats returns the number of loaded words per difficulty tier.
func (s *Source) Stats() map[string]int {
	list := s.List()
	out := map[string]int{"total": len(list)}
	for _, d := range Difficulties {
		out[d.String()] = len(Candidates(list, d))
	}
	return out
}
