package auth

import (
	"errors"
	"net/http"
	"strings"
)

// Mode selects how the acting user is established.
type Mode string

// Supported modes.
const (
	ModeJWT         Mode = "jwt"
	ModePlaceholder Mode = "placeholder"
)

// ErrUnauthorized means the request carries no usable identity.
var ErrUnauthorized = errors.New("unauthorized")

// Resolver returns the acting user id for a request.
type Resolver interface {
	Resolve(r *http.Request) (string, error)
}

// PlaceholderResolver attributes every request to one fixed user. It never
// rejects a request.
type PlaceholderResolver struct {
	UserID string
}

// Resolve implements Resolver.
func (p PlaceholderResolver) Resolve(*http.Request) (string, error) {
	return p.UserID, nil
}

// TokenParser verifies a bearer token and returns its subject.
type TokenParser interface {
	Parse(token string) (string, error)
}

// BearerResolver reads "Authorization: Bearer <token>".
type BearerResolver struct {
	Tokens TokenParser
}

// Resolve implements Resolver. Any missing, malformed or rejected token
// yields ErrUnauthorized.
func (b BearerResolver) Resolve(r *http.Request) (string, error) {
	tok, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return "", ErrUnauthorized
	}
	sub, err := b.Tokens.Parse(tok)
	if err != nil {
		return "", errors.Join(ErrUnauthorized, err)
	}
	return sub, nil
}

func bearerToken(h string) (string, bool) {
	scheme, tok, found := strings.Cut(strings.TrimSpace(h), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}

// NewResolver builds the resolver for mode.
func NewResolver(mode Mode, placeholderID string, tokens TokenParser) (Resolver, error) {
	switch mode {
	case ModePlaceholder:
		if placeholderID == "" {
			return nil, errors.New("auth: placeholder mode needs a user id")
		}
		return PlaceholderResolver{UserID: placeholderID}, nil
	case ModeJWT:
		if tokens == nil {
			return nil, errors.New("auth: jwt mode needs a token parser")
		}
		return BearerResolver{Tokens: tokens}, nil
	default:
		return nil, errors.New("auth: unknown mode " + string(mode))
	}
}
