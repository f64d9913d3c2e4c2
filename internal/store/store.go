// internal/store/store.go
//
// Durable per-player values of the game: the high score and the theme
// preference. Implementations live in memory.go and sqlite.go.

package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Logical keys, kept identical to the browser storage keys of the web client.
const (
	KeyHighScore = "hangmanHighScore"
	KeyTheme     = "hangmanTheme"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when a player has no stored preference.
const DefaultTheme = ThemeDark

// ParseTheme accepts light or dark in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("store: unknown theme %q", s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Preferences is a durable key-value store scoped by player.
// Implementations may be backed by memory (tests) or SQLite.
type Preferences interface {
	// LoadHighScore returns 0 when the value is absent or not an integer.
	LoadHighScore(ctx context.Context, player string) (int, error)
	SaveHighScore(ctx context.Context, player string, score int) error

	// LoadTheme reports false when no valid theme is stored.
	LoadTheme(ctx context.Context, player string) (Theme, bool, error)
	SaveTheme(ctx context.Context, player string, theme Theme) error

	Close() error
}

func parseHighScore(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formatHighScore(n int) string { return strconv.Itoa(n) }
