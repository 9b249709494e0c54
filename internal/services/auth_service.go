// Package services – AuthService
//
// Sign-in verifies an email/password pair and issues a bearer token. Unknown
// email and wrong password produce the same error, and both paths run one
// bcrypt comparison.
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/repo"
)

// TokenIssuer signs a bearer token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService provides sign-up and sign-in.
type AuthService struct {
	DB     *gorm.DB
	Repo   UserRepo
	Users  *UserService
	Tokens TokenIssuer
}

// dummyHash is a cost-10 bcrypt hash compared against when there is no
// stored hash to check, so every failed sign-in pays for one comparison.
const dummyHash = "$2a$10$XajjQvNhvvRt5GSeFk1xFeyqRrsxkhBkUiQeg0dt.wU1qD4aFDcga"

// NewAuthService constructs an AuthService.
func NewAuthService(db *gorm.DB, r UserRepo, users *UserService, tokens TokenIssuer) *AuthService {
	return &AuthService{DB: db, Repo: r, Users: users, Tokens: tokens}
}

// Signup creates a user with credentials.
func (s *AuthService) Signup(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	return s.Users.CreateUser(ctx, in)
}

// Login returns a signed token for valid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	ctx, span := userTracer().Start(ctx, "Login")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		auth.VerifyPassword(password, dummyHash)
		return "", NewError(KindUnauthorized, MsgBadCredentials, nil)
	}

	u, err := s.Repo.GetUserByEmailWithPassword(ctx, s.DB, email)
	if err != nil {
		if f, ok := repo.AsFailure(err); ok && f.Kind == repo.FailureNotFound {
			auth.VerifyPassword(password, dummyHash)
			return "", NewError(KindUnauthorized, MsgBadCredentials, err)
		}
		return "", normalize(err, nil)
	}
	hash := u.PasswordHash
	if hash == "" {
		hash = dummyHash
	}
	if !auth.VerifyPassword(password, hash) || u.PasswordHash == "" {
		return "", NewError(KindUnauthorized, MsgBadCredentials, nil)
	}

	tok, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", NewError(KindInternal, "", err)
	}
	return tok, nil
}
