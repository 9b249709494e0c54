package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_IssueParse(t *testing.T) {
	ti := NewTokenIssuer("k", 7*24*time.Hour)

	tok, err := ti.Issue("user-1")
	require.NoError(t, err)

	sub, err := ti.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestTokenIssuer_SetsExpiry(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ti := &TokenIssuer{Secret: []byte("k"), TTL: time.Hour, now: func() time.Time { return fixed }}

	tok, err := ti.Issue("u")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
}

func TestTokenIssuer_Rejects(t *testing.T) {
	ti := NewTokenIssuer("k", time.Hour)
	good, err := ti.Issue("u")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewTokenIssuer("other", time.Hour).Parse(good)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := &TokenIssuer{Secret: []byte("k"), TTL: time.Minute, now: func() time.Time {
			return time.Now().Add(-time.Hour)
		}}
		tok, err := past.Issue("u")
		require.NoError(t, err)
		_, err = ti.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("alg none", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
			Subject:   "u",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = ti.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		_, err = ti.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "u",
		}).SignedString([]byte("k"))
		require.NoError(t, err)
		_, err = ti.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ti.Parse("a.b.c")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	_, err = ti.Issue("")
	assert.Error(t, err)
}
