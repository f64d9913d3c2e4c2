// internal/httpserver/routes_game.go
//
// HTTP routes for playing hangman. Mounted under /api:
//   - GET  /api/state         → current view
//   - POST /api/round         → start a new round (optional difficulty)
//   - POST /api/guess         → guess one letter
//   - POST /api/hint          → reveal a letter for one miss
//   - PUT  /api/difficulty    → change tier and restart
//   - PUT  /api/theme         → set or toggle the theme
//   - POST /api/words/reload  → retry loading the word list
//
// While the word list is unavailable every route except reload answers 503.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/play"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

const wordListMessage = "Could not load the word list. Please check the word list file and retry."

// mountGame registers all /api routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/words/reload", s.handleReload)

	r.Group(func(r chi.Router) {
		r.Use(s.requireWords)
		r.Get("/state", s.handleState)
		r.Post("/round", s.handleNewRound)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Put("/difficulty", s.handleDifficulty)
		r.Put("/theme", s.handleTheme)
	})
}

// requireWords blocks play while the word source is failed.
func (s *Server) requireWords(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.source.Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "word_list_unavailable", wordListMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// controller resolves the requesting player's controller, writing an error
// response and returning nil on failure.
func (s *Server) controller(w http.ResponseWriter, r *http.Request) *play.Controller {
	c, err := s.players.Get(r.Context(), session.Player(r.Context()))
	if err != nil {
		if errors.Is(err, words.ErrEmptyOrInvalid) {
			writeError(w, http.StatusServiceUnavailable, "word_list_unavailable", wordListMessage)
			return nil
		}
		hlog.FromRequest(r).Error().Err(err).Msg("load player")
		writeError(w, http.StatusInternalServerError, "player_unavailable", "")
		return nil
	}
	return c
}

// moveRes is returned by guess and hint.
type moveRes struct {
	Applied bool          `json:"applied"`
	Outcome *game.Outcome `json:"outcome,omitempty"`
	View    play.View     `json:"view"`
}

// -----------------------------------------------------------------------------
// state & rounds

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	c := s.controller(w, r)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, c.View())
}

// roundReq is the optional body of POST /api/round.
type roundReq struct {
	Difficulty string `json:"difficulty"`
}

func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req roundReq
	// The body is optional; io.EOF means none was sent, chunked or not.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	c := s.controller(w, r)
	if c == nil {
		return
	}
	if req.Difficulty == "" {
		writeJSON(w, http.StatusOK, c.NewRound(r.Context()))
		return
	}
	d, err := words.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_difficulty", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c.SetDifficulty(r.Context(), d))
}

// difficultyReq is the body of PUT /api/difficulty.
type difficultyReq struct {
	Difficulty string `json:"difficulty"`
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	d, err := words.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_difficulty", err.Error())
		return
	}
	c := s.controller(w, r)
	if c == nil {
		return
	}
	writeJSON(w, http.StatusOK, c.SetDifficulty(r.Context(), d))
}

// -----------------------------------------------------------------------------
// guesses & hints

// guessReq is the body of POST /api/guess.
type guessReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	letter := strings.TrimSpace(req.Letter)
	if utf8.RuneCountInString(letter) != 1 {
		writeError(w, http.StatusBadRequest, "invalid_letter", game.ErrInvalidLetter.Error())
		return
	}
	l, _ := utf8.DecodeRuneInString(letter)

	c := s.controller(w, r)
	if c == nil {
		return
	}
	out, view, err := c.Guess(r.Context(), l)
	s.writeMove(w, r, out, view, err)
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	c := s.controller(w, r)
	if c == nil {
		return
	}
	out, view, err := c.Hint(r.Context())
	s.writeMove(w, r, out, view, err)
}

// writeMove maps guess/hint results to responses. No-op errors are not
// reported to the player.
func (s *Server) writeMove(w http.ResponseWriter, r *http.Request, out game.Outcome, view play.View, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, moveRes{Applied: true, Outcome: &out, View: view})
	case errors.Is(err, game.ErrInvalidLetter):
		writeError(w, http.StatusBadRequest, "invalid_letter", err.Error())
	case errors.Is(err, game.ErrAlreadyGuessed),
		errors.Is(err, game.ErrRoundOver),
		errors.Is(err, game.ErrNoHint),
		errors.Is(err, play.ErrInputLocked):
		hlog.FromRequest(r).Debug().Err(err).Msg("ignored move")
		writeJSON(w, http.StatusOK, moveRes{Applied: false, View: view})
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("move failed")
		writeError(w, http.StatusInternalServerError, "move_failed", "")
	}
}

// -----------------------------------------------------------------------------
// preferences

// themeReq is the body of PUT /api/theme. Theme "toggle" flips the current one.
type themeReq struct {
	Theme string `json:"theme"`
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	var req themeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	toggle := strings.EqualFold(strings.TrimSpace(req.Theme), "toggle")
	var theme store.Theme
	if !toggle {
		t, err := store.ParseTheme(req.Theme)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_theme", err.Error())
			return
		}
		theme = t
	}

	c := s.controller(w, r)
	if c == nil {
		return
	}
	var (
		view play.View
		err  error
	)
	if toggle {
		view, err = c.ToggleTheme(r.Context())
	} else {
		view, err = c.SetTheme(r.Context(), theme)
	}
	if err != nil {
		// The theme is applied for this session even if it could not be stored.
		hlog.FromRequest(r).Warn().Err(err).Msg("save theme")
	}
	writeJSON(w, http.StatusOK, view)
}

// -----------------------------------------------------------------------------
// word list

// reloadRes is returned by POST /api/words/reload.
type reloadRes struct {
	OK    bool           `json:"ok"`
	Words map[string]int `json:"words"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.source.Reload(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "word_list_unavailable", wordListMessage)
		return
	}
	writeJSON(w, http.StatusOK, reloadRes{OK: true, Words: s.source.Stats()})
}
