package httpserver

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSignParse(t *testing.T) {
	s, err := newSessions("k", false)
	require.NoError(t, err)

	tok, exp, err := s.sign("abc")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(sessionTTL), exp, time.Minute)

	sid, err := s.parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc", sid)
}

func TestSessionKeyIsDerived(t *testing.T) {
	a, err := newSessions("same", false)
	require.NoError(t, err)
	b, err := newSessions("same", false)
	require.NoError(t, err)
	c, err := newSessions("different", false)
	require.NoError(t, err)

	assert.Equal(t, a.key, b.key)
	assert.NotEqual(t, a.key, c.key)
	assert.NotEqual(t, []byte("same"), a.key)
	assert.Len(t, a.key, 32)

	empty, err := newSessions("", false)
	require.NoError(t, err)
	dev, err := newSessions(devSecret, false)
	require.NoError(t, err)
	assert.Equal(t, dev.key, empty.key)
}

func TestSessionRejects(t *testing.T) {
	s, err := newSessions("k", false)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "old",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	expiredTok, err := expired.SignedString(s.key)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString(s.key)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"garbage":    "not-a-token",
		"expired":    expiredTok,
		"no subject": noSubject,
		"alg none":   unsigned,
	} {
		_, err := s.parse(tok)
		assert.Error(t, err, name)
	}
}

func TestGenID(t *testing.T) {
	a, b := genID(), genID()
	assert.Len(t, a, 22)
	assert.NotEqual(t, a, b)
}
