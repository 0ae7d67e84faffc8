// internal/httpserver/session.go
//
// Per-browser sessions. Each browser gets a random session id, carried in a
// signed HS256 JWT cookie. The id scopes the browser's save, the way each
// browser had its own local storage.
//
// The signing key is derived from the configured secret with HKDF so the
// raw secret is never used as a key directly.

package httpserver

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionCookieName = "hangman_session"
	sessionTTL        = 180 * 24 * time.Hour
	sessionKeyInfo    = "hangman-session-v1"
	devSecret         = "dev_secret_change_me"
)

// ctxSessionKey is the context key type for the session id.
type ctxSessionKey struct{}

type sessions struct {
	key    []byte
	secure bool
}

// newSessions derives the signing key from secret. An empty secret falls
// back to a development default.
func newSessions(secret string, secure bool) (*sessions, error) {
	if secret == "" {
		secret = devSecret
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo)), key); err != nil {
		return nil, err
	}
	return &sessions{key: key, secure: secure}, nil
}

// sign issues a token for sid, valid for sessionTTL.
func (s *sessions) sign(sid string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(sessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.key)
	return ss, exp, err
}

// parse validates a token and returns its session id.
func (s *sessions) parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.Subject == "" {
		return "", errors.New("invalid session token")
	}
	return claims.Subject, nil
}

// middleware puts the session id into the request context, issuing a new
// session (and cookie) when the request carries no valid token.
func (s *sessions) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if tok := bearerOrCookie(r); tok != "" {
			if id, err := s.parse(tok); err == nil {
				sid = id
			} else {
				hlog.FromRequest(r).Debug().Err(err).Msg("rejecting session token")
			}
		}
		if sid == "" {
			sid = genID()
			tok, exp, err := s.sign(sid)
			if err != nil {
				hlog.FromRequest(r).Error().Err(err).Msg("sign session")
				writeError(w, http.StatusInternalServerError, "session_failed")
				return
			}
			s.setCookie(w, tok, exp)
			w.Header().Set("X-Session-Token", tok)
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// setCookie writes the session cookie with appropriate security attributes.
func (s *sessions) setCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// sessionID returns the id placed in the context by sessions.middleware.
func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionKey{}).(string)
	return sid
}

// bearerOrCookie extracts a token from the Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// keyedMutex serialises work per key; different keys never block each other.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// lock acquires the mutex for key and returns its release func.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*keyLock)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
