package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every reason a bearer token is rejected: bad
// signature, wrong algorithm, expiry, or a missing subject.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 tokens whose subject is the user id.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration

	now func() time.Time
}

// NewTokenIssuer returns an issuer for secret with the given lifetime.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

func (ti *TokenIssuer) clock() time.Time {
	if ti.now != nil {
		return ti.now()
	}
	return time.Now()
}

// Issue returns a signed token for userID, valid for TTL.
func (ti *TokenIssuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("auth: empty subject")
	}
	now := ti.clock()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ti.TTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.Secret)
}

// Parse verifies token and returns its subject.
func (ti *TokenIssuer) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return ti.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.clock),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
