// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for Card and its
// like set.
//
// The like set lives in card_likes with a composite primary key, so set-add
// and set-remove are single statements against that table. Neither reads the
// current set before writing it.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-cards-backend/internal/domain"
)

// preloadLikes orders set members by the time they joined.
func preloadLikes(db *gorm.DB) *gorm.DB {
	return db.Preload("LikeRows", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at asc, user_id asc")
	})
}

// ListCards returns every card with its like set, newest first.
func ListCards(ctx context.Context, db *gorm.DB) ([]domain.Card, error) {
	out := []domain.Card{}
	err := preloadLikes(db.WithContext(ctx)).
		Order("created_at desc, id desc").
		Find(&out).Error
	if err != nil {
		return nil, classify("cards.list", err)
	}
	for i := range out {
		out[i].SyncLikes()
	}
	return out, nil
}

// GetCard fetches a card and its like set by id.
func GetCard(ctx context.Context, db *gorm.DB, id string) (*domain.Card, error) {
	const op = "cards.get"

	key, err := parseID(op, "cardId", id)
	if err != nil {
		return nil, err
	}
	return loadCard(ctx, db, op, key)
}

func loadCard(ctx context.Context, db *gorm.DB, op, key string) (*domain.Card, error) {
	var c domain.Card
	if err := preloadLikes(db.WithContext(ctx)).Where("id = ?", key).First(&c).Error; err != nil {
		return nil, classify(op, err)
	}
	c.SyncLikes()
	return &c, nil
}

// CreateCard validates c and inserts it with an empty like set. ID and
// CreatedAt are assigned here; Owner must already be set.
func CreateCard(ctx context.Context, db *gorm.DB, c *domain.Card) (*domain.Card, error) {
	const op = "cards.create"

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	c.LikeRows = nil
	c.Likes = []string{}
	if err := validateStruct(op, c); err != nil {
		return nil, err
	}
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, classify(op, err)
	}
	return c, nil
}

// DeleteCard removes the card identified by id if it is owned by owner and
// returns it as it was before deletion. A card owned by someone else is
// reported as FailureNotFound. Like rows go in the same transaction.
func DeleteCard(ctx context.Context, db *gorm.DB, id, owner string) (*domain.Card, error) {
	const op = "cards.delete"

	key, err := parseID(op, "cardId", id)
	if err != nil {
		return nil, err
	}

	var deleted domain.Card
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := preloadLikes(tx).
			Where("id = ? AND owner = ?", key, owner).
			First(&deleted).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", key).Delete(&domain.CardLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND owner = ?", key, owner).Delete(&domain.Card{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, classify(op, err)
	}
	deleted.SyncLikes()
	return &deleted, nil
}

// AddCardLike adds userID to the like set of card id. Adding an existing
// member is a no-op. A missing card is rejected by the card_likes foreign key
// and reported as FailureNotFound.
func AddCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	const op = "cards.addLike"

	key, err := parseID(op, "cardId", id)
	if err != nil {
		return nil, err
	}
	member, err := parseID(op, "userId", userID)
	if err != nil {
		return nil, err
	}

	like := domain.CardLike{CardID: key, UserID: member, CreatedAt: time.Now().UTC()}
	err = db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err != nil {
		return nil, classify(op, err)
	}
	return loadCard(ctx, db, op, key)
}

// RemoveCardLike removes userID from the like set of card id. Removing a
// non-member is a no-op; a missing card is FailureNotFound.
func RemoveCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	const op = "cards.removeLike"

	key, err := parseID(op, "cardId", id)
	if err != nil {
		return nil, err
	}
	member, err := parseID(op, "userId", userID)
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).
		Where("card_id = ? AND user_id = ?", key, member).
		Delete(&domain.CardLike{}).Error
	if err != nil {
		return nil, classify(op, err)
	}
	return loadCard(ctx, db, op, key)
}
