package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (User{}).TableName() != "users" {
		t.Fatalf("User.TableName() = %q", (User{}).TableName())
	}
	if (Card{}).TableName() != "cards" {
		t.Fatalf("Card.TableName() = %q", (Card{}).TableName())
	}
	if (CardLike{}).TableName() != "card_likes" {
		t.Fatalf("CardLike.TableName() = %q", (CardLike{}).TableName())
	}
}

func TestSyncLikes_NeverNil(t *testing.T) {
	var c Card
	c.SyncLikes()
	if c.Likes == nil || len(c.Likes) != 0 {
		t.Fatalf("expected empty non-nil likes, got %#v", c.Likes)
	}

	c.LikeRows = []CardLike{{UserID: "a"}, {UserID: "b"}}
	c.SyncLikes()
	if len(c.Likes) != 2 || c.Likes[0] != "a" || c.Likes[1] != "b" {
		t.Fatalf("unexpected likes %#v", c.Likes)
	}
}

func TestMigrations_Indexes_AndCascades(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&User{}, &Card{}, &CardLike{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&User{}, &Card{}, &CardLike{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&User{}, "ux_users_email") {
		t.Fatalf("expected unique index ux_users_email on users")
	}
	if !m.HasIndex(&Card{}, "idx_cards_owner") {
		t.Fatalf("expected index idx_cards_owner on cards")
	}

	now := time.Now().UTC()
	orphan := &Card{ID: uuid.NewString(), Name: "Dog", Link: "http://x/d.jpg", Owner: uuid.NewString(), CreatedAt: now}
	if err := db.Create(orphan).Error; err == nil {
		t.Fatalf("expected a card without an owner profile to be rejected")
	}

	owner := &User{ID: uuid.NewString(), Name: "Ann", About: "About", Avatar: DefaultUserAvatar}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	card := &Card{ID: uuid.NewString(), Name: "Cat", Link: "http://x/c.jpg", Owner: owner.ID, CreatedAt: now}
	if err := db.Create(card).Error; err != nil {
		t.Fatalf("create card: %v", err)
	}
	like := &CardLike{CardID: card.ID, UserID: uuid.NewString(), CreatedAt: now}
	if err := db.Create(like).Error; err != nil {
		t.Fatalf("create like: %v", err)
	}

	// Same member twice violates the composite primary key.
	if err := db.Create(&CardLike{CardID: like.CardID, UserID: like.UserID, CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected duplicate like to be rejected")
	}

	// Cascade delete removes the like rows.
	if err := db.Delete(&Card{}, "id = ?", card.ID).Error; err != nil {
		t.Fatalf("delete card: %v", err)
	}
	var n int64
	db.Model(&CardLike{}).Where("card_id = ?", card.ID).Count(&n)
	if n != 0 {
		t.Fatalf("expected likes cascade-deleted, still have %d", n)
	}
}

func TestUser_NullEmailsDoNotCollide(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	for i := 0; i < 2; i++ {
		u := &User{ID: uuid.NewString(), Name: "Ann", About: "About", Avatar: DefaultUserAvatar}
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user %d without email: %v", i, err)
		}
	}
	email := "a@b.io"
	if err := db.Create(&User{ID: uuid.NewString(), Name: "A", About: "B", Avatar: DefaultUserAvatar, Email: &email}).Error; err != nil {
		t.Fatalf("create with email: %v", err)
	}
	if err := db.Create(&User{ID: uuid.NewString(), Name: "A", About: "B", Avatar: DefaultUserAvatar, Email: &email}).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate email")
	}
}
