// Package services – CardService
//
// This file implements card operations: create, list, owner-scoped delete
// and the like set toggles. Like and dislike are delegated to single-statement
// repository calls; the service never reads the like set to compute a new one.
package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

// likeOps counts like/dislike calls by operation and taxonomy outcome.
var likeOps = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "card_like_operations_total",
		Help: "Total number of card like/dislike operations.",
	},
	[]string{"op", "result"},
)

func init() {
	prometheus.MustRegister(likeOps)
}

// CardRepo defines the repository contract required by CardService.
type CardRepo interface {
	ListCards(ctx context.Context, db *gorm.DB) ([]domain.Card, error)
	CreateCard(ctx context.Context, db *gorm.DB, c *domain.Card) (*domain.Card, error)
	DeleteCard(ctx context.Context, db *gorm.DB, id, owner string) (*domain.Card, error)
	AddCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error)
	RemoveCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error)
}

// CreateCardInput carries the client-supplied card fields.
type CreateCardInput struct {
	Name string
	Link string
}

// CardService provides card operations.
type CardService struct {
	DB   *gorm.DB
	Repo CardRepo
}

// NewCardService constructs a CardService.
func NewCardService(db *gorm.DB, r CardRepo) *CardService {
	return &CardService{DB: db, Repo: r}
}

func cardTracer() trace.Tracer { return otel.Tracer("services/CardService") }

// CreateCard persists a card owned by actingID with no likes. An acting id
// with no profile is reported as a missing user.
func (s *CardService) CreateCard(ctx context.Context, in CreateCardInput, actingID string) (*domain.Card, error) {
	ctx, span := cardTracer().Start(ctx, "CreateCard", trace.WithAttributes(attribute.String("user.id", actingID)))
	defer span.End()

	c, err := s.Repo.CreateCard(ctx, s.DB, &domain.Card{Name: in.Name, Link: in.Link, Owner: actingID})
	if err != nil {
		return nil, normalize(err, Messages{KindBadRequest: MsgCardCreateInvalid, KindNotFound: MsgUserNotFound})
	}
	return c, nil
}

// ListCards returns all cards, newest first.
func (s *CardService) ListCards(ctx context.Context) ([]domain.Card, error) {
	ctx, span := cardTracer().Start(ctx, "ListCards")
	defer span.End()

	cards, err := s.Repo.ListCards(ctx, s.DB)
	if err != nil {
		return nil, normalize(err, nil)
	}
	return cards, nil
}

// DeleteCard deletes cardID when actingID owns it and returns the deleted
// card. Cards owned by someone else are reported as not found.
func (s *CardService) DeleteCard(ctx context.Context, cardID, actingID string) (*domain.Card, error) {
	ctx, span := cardTracer().Start(ctx, "DeleteCard", trace.WithAttributes(
		attribute.String("card.id", cardID),
		attribute.String("user.id", actingID),
	))
	defer span.End()

	c, err := s.Repo.DeleteCard(ctx, s.DB, cardID, actingID)
	if err != nil {
		return nil, normalize(err, Messages{KindBadRequest: MsgCardDeleteInvalid, KindNotFound: MsgCardNotFound})
	}
	return c, nil
}

// LikeCard adds actingID to the card's like set. Liking twice is a no-op.
func (s *CardService) LikeCard(ctx context.Context, cardID, actingID string) (*domain.Card, error) {
	return s.toggle(ctx, "like", cardID, actingID, s.Repo.AddCardLike)
}

// DislikeCard removes actingID from the card's like set. Removing a
// non-member is a no-op.
func (s *CardService) DislikeCard(ctx context.Context, cardID, actingID string) (*domain.Card, error) {
	return s.toggle(ctx, "dislike", cardID, actingID, s.Repo.RemoveCardLike)
}

type likeFunc func(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error)

func (s *CardService) toggle(ctx context.Context, op, cardID, actingID string, fn likeFunc) (*domain.Card, error) {
	ctx, span := cardTracer().Start(ctx, op, trace.WithAttributes(
		attribute.String("card.id", cardID),
		attribute.String("user.id", actingID),
	))
	defer span.End()

	c, err := fn(ctx, s.DB, cardID, actingID)
	if err != nil {
		serr := AsError(normalize(err, Messages{KindBadRequest: MsgCardInvalidID, KindNotFound: MsgCardNotFound}))
		likeOps.WithLabelValues(op, serr.Kind.String()).Inc()
		span.SetStatus(codes.Error, serr.Message)
		return nil, serr
	}
	likeOps.WithLabelValues(op, "ok").Inc()
	span.SetAttributes(attribute.Int("card.likes", len(c.Likes)))
	return c, nil
}
