// Package handlers provides HTTP handler implementations for the public API.
//
// Handlers are transport-thin: they decode input, read the acting user id
// set by middleware.Identity, call a service and write the result.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/http/middleware"
	"github.com/tbourn/go-cards-backend/internal/services"
)

// UserService defines the profile operations consumed by HTTP handlers.
type UserService interface {
	CreateUser(ctx context.Context, in services.CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetSelf(ctx context.Context, actingID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actingID string, p services.ProfilePatch) (*domain.User, error)
	UpdateAvatar(ctx context.Context, actingID, avatar string) (*domain.User, error)
}

// CardService defines the card operations consumed by HTTP handlers.
type CardService interface {
	CreateCard(ctx context.Context, in services.CreateCardInput, actingID string) (*domain.Card, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	DeleteCard(ctx context.Context, cardID, actingID string) (*domain.Card, error)
	LikeCard(ctx context.Context, cardID, actingID string) (*domain.Card, error)
	DislikeCard(ctx context.Context, cardID, actingID string) (*domain.Card, error)
}

// AuthService defines sign-up and sign-in.
type AuthService interface {
	Signup(ctx context.Context, in services.CreateUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Handlers groups HTTP endpoints for users, cards and auth.
type Handlers struct {
	userSvc UserService
	cardSvc CardService
	authSvc AuthService
}

// New constructs a Handlers instance bound to the given services.
func New(userSvc UserService, cardSvc CardService, authSvc AuthService) *Handlers {
	return &Handlers{userSvc: userSvc, cardSvc: cardSvc, authSvc: authSvc}
}

// actingID returns the user id set by middleware.Identity. Protected routes
// never reach a handler without one.
func actingID(c *gin.Context) string {
	id, _ := middleware.UserIDFrom(c)
	return id
}
