// internal/session/session.go
//
// Player identity for the hangman server.
// Responsibilities:
//   - Issue random player IDs and sign them into HS256 JWTs.
//   - Carry the token in an HttpOnly cookie (or an Authorization bearer header).
//   - Middleware that resolves the player for every request, minting a new one
//     when the token is missing, expired or tampered with.
//
// The cookie scopes durable preferences to a browser, the way browser storage would.

package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/hkdf"
)

var ErrInvalidToken = errors.New("session: invalid player token")

const issuer = "hangman"

// Manager signs and verifies player tokens.
type Manager struct {
	key        []byte
	cookieName string
	ttl        time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager derives the signing key from secret. secure marks cookies
// Secure/SameSite=None for production deployments.
func NewManager(secret, cookieName string, ttl time.Duration, secure bool) (*Manager, error) {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), []byte(issuer), []byte("player-token"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return &Manager{key: key, cookieName: cookieName, ttl: ttl, secure: secure, now: time.Now}, nil
}

// Issue signs a token for player and returns it with its expiry.
func (m *Manager) Issue(player string) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   player,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(m.key)
	return ss, exp, err
}

// Parse verifies token and returns the player ID it carries.
func (m *Manager) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !t.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Middleware resolves the player of each request and stores it in the
// request context. New players get a fresh cookie.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := ""
		if tok := m.tokenFrom(r); tok != "" {
			if id, err := m.Parse(tok); err == nil {
				player = id
			} else {
				hlog.FromRequest(r).Debug().Err(err).Msg("replacing player token")
			}
		}
		if player == "" {
			player = NewPlayerID()
			tok, exp, err := m.Issue(player)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign player token")
				http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
				return
			}
			m.setCookie(w, tok, exp)
		}
		next.ServeHTTP(w, r.WithContext(WithPlayer(r.Context(), player)))
	})
}

// setCookie writes the player cookie with appropriate security attributes.
func (m *Manager) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if m.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// tokenFrom extracts a bearer token from the Authorization header or the cookie.
func (m *Manager) tokenFrom(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(m.cookieName); err == nil {
		return c.Value
	}
	return ""
}

type ctxPlayerKey struct{}

// WithPlayer returns a context carrying player.
func WithPlayer(ctx context.Context, player string) context.Context {
	return context.WithValue(ctx, ctxPlayerKey{}, player)
}

// Player returns the player stored by Middleware, or "".
func Player(ctx context.Context) string {
	p, _ := ctx.Value(ctxPlayerKey{}).(string)
	return p
}

// NewPlayerID creates a 22-char URL-safe, crypto-random identifier (no padding).
func NewPlayerID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
