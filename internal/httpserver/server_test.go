package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/play"
	"github.com/robalobadob/hangman/internal/session"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

type harness struct {
	t      *testing.T
	srv    *Server
	text   string
	cookie *http.Cookie
}

func newHarness(t *testing.T, text string) *harness {
	t.Helper()
	h := &harness{t: t, text: text}
	src := words.NewSourceFunc(func(context.Context) (string, error) { return h.text, nil }, zerolog.Nop())
	_ = src.Load(context.Background())

	sessions, err := session.NewManager("test-secret", "hangman_player", time.Hour, false)
	require.NoError(t, err)
	reg := play.NewRegistry(src, store.NewMemory(), play.Options{Pick: func(int) int { return 0 }}, zerolog.Nop())
	h.srv = New(src, reg, sessions, Options{}, zerolog.Nop())
	return h
}

// do sends a request, carrying the player cookie between calls.
func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.srv.Router().ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "hangman_player" {
			h.cookie = c
		}
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newHarness(t, "kingdom")
	rec := h.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestIndexServed(t *testing.T) {
	h := newHarness(t, "kingdom")
	rec := h.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hangman")

	rec = h.do(http.MethodGet, "/static/app.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStateStartsRound(t *testing.T) {
	h := newHarness(t, "kingdom")
	rec := h.do(http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, h.cookie)

	v := decode[play.View](t, rec)
	assert.Len(t, v.Word, 7)
	assert.Equal(t, game.StatusInProgress, v.Status)
	assert.Equal(t, words.Medium, v.Difficulty)
	assert.Equal(t, 6, v.MaxIncorrect)
}

func TestGuessFlow(t *testing.T) {
	h := newHarness(t, "kingdom")
	h.do(http.MethodGet, "/api/state", "")

	rec := h.do(http.MethodPost, "/api/guess", `{"letter":"K"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[moveRes](t, rec)
	assert.True(t, res.Applied)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, []int{0}, res.Outcome.Positions)
	assert.Equal(t, "k", res.View.Word[0])

	rec = h.do(http.MethodPost, "/api/guess", `{"letter":"k"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	res = decode[moveRes](t, rec)
	assert.False(t, res.Applied)
	assert.Equal(t, 0, res.View.Incorrect)

	rec = h.do(http.MethodPost, "/api/guess", `{"letter":"7"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = h.do(http.MethodPost, "/api/guess", `{"letter":"ab"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = h.do(http.MethodPost, "/api/guess", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLossThenNewRound(t *testing.T) {
	h := newHarness(t, "kingdom")
	h.do(http.MethodGet, "/api/state", "")

	var res moveRes
	for _, l := range "abcefh" {
		res = decode[moveRes](t, h.do(http.MethodPost, "/api/guess", `{"letter":"`+string(l)+`"}`))
	}
	assert.Equal(t, game.StatusLost, res.View.Status)
	assert.True(t, res.View.InputLocked)
	require.NotNil(t, res.View.Modal, "zero reveal delay shows the modal at once")
	assert.Equal(t, "kingdom", res.View.Modal.Word)

	res = decode[moveRes](t, h.do(http.MethodPost, "/api/guess", `{"letter":"k"}`))
	assert.False(t, res.Applied)

	v := decode[play.View](t, h.do(http.MethodPost, "/api/round", ""))
	assert.Equal(t, game.StatusInProgress, v.Status)
	assert.Equal(t, 1, v.Stats.Losses)
}

func TestNewRoundAcceptsEmptyChunkedBody(t *testing.T) {
	h := newHarness(t, "kingdom")
	h.do(http.MethodPost, "/api/guess", `{"letter":"z"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/round", strings.NewReader(""))
	req.ContentLength = -1
	req.AddCookie(h.cookie)
	rec := httptest.NewRecorder()
	h.srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	v := decode[play.View](t, rec)
	assert.Equal(t, 0, v.Incorrect)

	rec = h.do(http.MethodPost, "/api/round", `{"difficulty":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHintEndpoint(t *testing.T) {
	h := newHarness(t, "kingdom")
	h.do(http.MethodGet, "/api/state", "")

	res := decode[moveRes](t, h.do(http.MethodPost, "/api/hint", ""))
	assert.True(t, res.Applied)
	assert.Equal(t, 1, res.View.Incorrect)
	assert.Equal(t, "d", res.View.Word[4])
}

func TestDifficultyAndFallbackWarning(t *testing.T) {
	h := newHarness(t, "kingdom\nlemon")

	v := decode[play.View](t, h.do(http.MethodPut, "/api/difficulty", `{"difficulty":"easy"}`))
	assert.Equal(t, words.Easy, v.Difficulty)
	assert.Equal(t, []string{"", "", "", "", ""}, v.Word)

	v = decode[play.View](t, h.do(http.MethodPost, "/api/round", `{"difficulty":"hard"}`))
	assert.Equal(t, words.Hard, v.Difficulty)
	assert.NotEmpty(t, v.Warning)

	rec := h.do(http.MethodPut, "/api/difficulty", `{"difficulty":"extreme"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestThemeEndpoint(t *testing.T) {
	h := newHarness(t, "kingdom")

	v := decode[play.View](t, h.do(http.MethodPut, "/api/theme", `{"theme":"light"}`))
	assert.Equal(t, store.ThemeLight, v.Theme)
	v = decode[play.View](t, h.do(http.MethodPut, "/api/theme", `{"theme":"toggle"}`))
	assert.Equal(t, store.ThemeDark, v.Theme)

	rec := h.do(http.MethodPut, "/api/theme", `{"theme":"neon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlayersAreIndependent(t *testing.T) {
	a := newHarness(t, "kingdom")
	a.do(http.MethodPost, "/api/guess", `{"letter":"z"}`)

	b := &harness{t: t, srv: a.srv}
	v := decode[play.View](t, b.do(http.MethodGet, "/api/state", ""))
	assert.Equal(t, 0, v.Incorrect)

	v = decode[play.View](t, a.do(http.MethodGet, "/api/state", ""))
	assert.Equal(t, 1, v.Incorrect)
}

func TestBlockingWordListError(t *testing.T) {
	h := newHarness(t, "123\n\n")

	rec := h.do(http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "word_list_unavailable", body["error"])

	rec = h.do(http.MethodPost, "/api/guess", `{"letter":"a"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = h.do(http.MethodPost, "/api/words/reload", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.text = "kingdom\n"
	rec = h.do(http.MethodPost, "/api/words/reload", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[reloadRes](t, rec).Words["medium"])

	rec = h.do(http.MethodGet, "/api/state", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNotFoundIsJSON(t *testing.T) {
	h := newHarness(t, "kingdom")
	rec := h.do(http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}
