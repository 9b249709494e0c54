// Package services – UserService
//
// This file implements profile operations: create (sign-up), list, get,
// and the two self-service updates (profile text and avatar). Updates are
// always filtered by the acting user id, so a user can only modify their own
// profile.
package services

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/repo"
)

// UserRepo defines the repository contract required by UserService and
// AuthService.
type UserRepo interface {
	ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error)
	GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error)
	GetUserByEmailWithPassword(ctx context.Context, db *gorm.DB, email string) (*domain.User, error)
	CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error)
	UpdateUser(ctx context.Context, db *gorm.DB, id string, patch repo.UserPatch) (*domain.User, error)
}

// CreateUserInput carries sign-up fields. Nil profile fields take the model
// defaults.
type CreateUserInput struct {
	Name     *string
	About    *string
	Avatar   *string
	Email    string
	Password string
}

// ProfilePatch carries the profile text fields. Nil means unchanged.
type ProfilePatch struct {
	Name  *string
	About *string
}

// UserService provides profile operations.
type UserService struct {
	DB   *gorm.DB
	Repo UserRepo

	// RequireCredentials makes email and password mandatory at create.
	RequireCredentials bool
	// BcryptCost is the hashing cost for new passwords.
	BcryptCost int
}

// NewUserService constructs a UserService that requires credentials and
// hashes with bcrypt.DefaultCost.
func NewUserService(db *gorm.DB, r UserRepo) *UserService {
	return &UserService{DB: db, Repo: r, RequireCredentials: true, BcryptCost: bcrypt.DefaultCost}
}

func userTracer() trace.Tracer { return otel.Tracer("services/UserService") }

// CreateUser applies defaults, hashes the password and persists the profile.
// The returned user never carries the hash.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	ctx, span := userTracer().Start(ctx, "CreateUser")
	defer span.End()

	msgs := Messages{KindBadRequest: MsgUserCreateInvalid, KindConflict: MsgEmailTaken}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if s.RequireCredentials && (email == "" || in.Password == "") {
		return nil, NewError(KindBadRequest, MsgUserCreateInvalid, nil)
	}

	u := &domain.User{
		Name:   valueOr(in.Name, domain.DefaultUserName),
		About:  valueOr(in.About, domain.DefaultUserAbout),
		Avatar: valueOr(in.Avatar, domain.DefaultUserAvatar),
	}
	if email != "" {
		u.Email = &email
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password, s.BcryptCost)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, NewError(KindBadRequest, MsgUserCreateInvalid, err)
			}
			return nil, NewError(KindInternal, "", err)
		}
		u.PasswordHash = hash
	}

	out, err := s.Repo.CreateUser(ctx, s.DB, u)
	if err != nil {
		return nil, normalize(err, msgs)
	}
	out.PasswordHash = ""
	span.SetAttributes(attribute.String("user.id", out.ID))
	return out, nil
}

// ListUsers returns every profile.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := userTracer().Start(ctx, "ListUsers")
	defer span.End()

	users, err := s.Repo.ListUsers(ctx, s.DB)
	if err != nil {
		return nil, normalize(err, nil)
	}
	return users, nil
}

// GetUser returns the profile with id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := userTracer().Start(ctx, "GetUser", trace.WithAttributes(attribute.String("user.id", id)))
	defer span.End()

	u, err := s.Repo.GetUser(ctx, s.DB, id)
	if err != nil {
		return nil, normalize(err, Messages{KindBadRequest: MsgUserInvalidID, KindNotFound: MsgUserNotFound})
	}
	return u, nil
}

// GetSelf returns the acting user's profile.
func (s *UserService) GetSelf(ctx context.Context, actingID string) (*domain.User, error) {
	ctx, span := userTracer().Start(ctx, "GetSelf", trace.WithAttributes(attribute.String("user.id", actingID)))
	defer span.End()

	u, err := s.Repo.GetUser(ctx, s.DB, actingID)
	if err != nil {
		return nil, normalize(err, Messages{KindBadRequest: MsgUserInvalidID, KindNotFound: MsgUserNotFound})
	}
	return u, nil
}

// UpdateProfile changes name and/or about of the acting user.
func (s *UserService) UpdateProfile(ctx context.Context, actingID string, p ProfilePatch) (*domain.User, error) {
	ctx, span := userTracer().Start(ctx, "UpdateProfile", trace.WithAttributes(attribute.String("user.id", actingID)))
	defer span.End()

	u, err := s.Repo.UpdateUser(ctx, s.DB, actingID, repo.UserPatch{Name: p.Name, About: p.About})
	if err != nil {
		return nil, normalize(err, Messages{KindBadRequest: MsgUserUpdateInvalid, KindNotFound: MsgUserNotFound})
	}
	return u, nil
}

// UpdateAvatar changes only the avatar of the acting user.
func (s *UserService) UpdateAvatar(ctx context.Context, actingID, avatar string) (*domain.User, error) {
	ctx, span := userTracer().Start(ctx, "UpdateAvatar", trace.WithAttributes(attribute.String("user.id", actingID)))
	defer span.End()

	u, err := s.Repo.UpdateUser(ctx, s.DB, actingID, repo.UserPatch{Avatar: &avatar})
	if err != nil {
		return nil, normalize(err, Messages{KindBadRequest: MsgAvatarUpdateInvalid, KindNotFound: MsgUserIDNotFound})
	}
	return u, nil
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
