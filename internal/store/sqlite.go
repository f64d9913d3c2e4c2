// internal/store/sqlite.go
//
// SQLite implementation of the Preferences interface.
// Values are stored as text rows keyed by (player_id, key) and upserted.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// SQLite is the durable Preferences implementation.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

// OpenSQLite opens the database at path and brings its schema up to date.
func OpenSQLite(path string, logger zerolog.Logger) (*SQLite, error) {
	logger = logger.With().Str("component", "store").Logger()
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrateUp(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info().Str("path", path).Msg("preference store ready")
	return &SQLite{db: db, log: logger}, nil
}

// get returns the raw value of key, or false when absent.
func (s *SQLite) get(ctx context.Context, player, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE player_id=? AND key=?`, player, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// set upserts key for player.
func (s *SQLite) set(ctx context.Context, player, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO preferences (player_id, key, value, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (player_id, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		player, key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) LoadHighScore(ctx context.Context, player string) (int, error) {
	v, ok, err := s.get(ctx, player, KeyHighScore)
	if err != nil || !ok {
		return 0, err
	}
	return parseHighScore(v), nil
}

func (s *SQLite) SaveHighScore(ctx context.Context, player string, score int) error {
	return s.set(ctx, player, KeyHighScore, formatHighScore(score))
}

func (s *SQLite) LoadTheme(ctx context.Context, player string) (Theme, bool, error) {
	v, ok, err := s.get(ctx, player, KeyTheme)
	if err != nil || !ok {
		return "", false, err
	}
	t, err := ParseTheme(v)
	if err != nil {
		s.log.Warn().Str("player", player).Str("value", v).Msg("ignoring stored theme")
		return "", false, nil
	}
	return t, true, nil
}

func (s *SQLite) SaveTheme(ctx context.Context, player string, theme Theme) error {
	return s.set(ctx, player, KeyTheme, string(theme))
}

// Close releases the database handle.
func (s *SQLite) Close() error { return s.db.Close() }
