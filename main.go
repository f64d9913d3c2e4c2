package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/play"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A failed word list does not stop the server: play stays blocked behind a
	// 503 until POST /api/words/reload succeeds.
	source := words.NewSource(cfg.Game.WordsFile, log.Logger)
	_ = source.Load(ctx)

	prefs, err := openPreferences(cfg.Store.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open preference store")
	}
	defer prefs.Close()

	sessions, err := session.NewManager(cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.TTL, cfg.IsProduction())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build session manager")
	}
	if cfg.IsProduction() && cfg.Session.Secret == "dev_secret_change_me" {
		log.Warn().Msg("SESSION_SECRET is the development default")
	}

	players := play.NewRegistry(source, prefs, play.Options{
		RevealDelay:   cfg.Game.RevealDelay,
		ShakeDuration: cfg.Game.ShakeDuration,
	}, log.Logger)
	srv := httpserver.New(source, players, sessions, httpserver.Options{
		ClientOrigin:   cfg.Server.ClientOrigin,
		RequestTimeout: cfg.Server.RequestTimeout,
	}, log.Logger)

	hs := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdown)
	}()

	log.Info().Str("addr", hs.Addr).Msg("starting hangman server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// setupLogging applies LOG_LEVEL and LOG_FORMAT to the global logger.
func setupLogging(c config.LoggingConfig) {
	if lvl, err := zerolog.ParseLevel(c.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if c.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openPreferences opens the SQLite store, or an in-memory one for DB_PATH=memory.
func openPreferences(path string) (store.Preferences, error) {
	if path == "memory" {
		log.Warn().Msg("preferences are kept in memory and lost on restart")
		return store.NewMemory(), nil
	}
	return store.OpenSQLite(path, log.Logger)
}
