package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderResolver_AlwaysResolves(t *testing.T) {
	r := httptest.NewRequest("GET", "/users/me", nil)
	id, err := PlaceholderResolver{UserID: "fixed"}.Resolve(r)
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)
}

func TestBearerResolver(t *testing.T) {
	ti := NewTokenIssuer("k", time.Hour)
	tok, err := ti.Issue("user-7")
	require.NoError(t, err)
	res := BearerResolver{Tokens: ti}

	cases := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"valid", "Bearer " + tok, "user-7", true},
		{"lowercase scheme", "bearer " + tok, "user-7", true},
		{"missing", "", "", false},
		{"no token", "Bearer ", "", false},
		{"other scheme", "Basic " + tok, "", false},
		{"bad token", "Bearer nope", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			id, err := res.Resolve(r)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.want, id)
				return
			}
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.Empty(t, id)
		})
	}
}

func TestNewResolver(t *testing.T) {
	r, err := NewResolver(ModePlaceholder, "u", nil)
	require.NoError(t, err)
	assert.IsType(t, PlaceholderResolver{}, r)

	r, err = NewResolver(ModeJWT, "", NewTokenIssuer("k", time.Hour))
	require.NoError(t, err)
	assert.IsType(t, BearerResolver{}, r)

	_, err = NewResolver(ModePlaceholder, "", nil)
	assert.Error(t, err)
	_, err = NewResolver(ModeJWT, "", nil)
	assert.Error(t, err)
	_, err = NewResolver("cookie", "", nil)
	assert.Error(t, err)
}
