package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/repo"
)

// storeShim routes the service repository contracts to the real repo package.
type storeShim struct{}

func (storeShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}
func (storeShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}
func (storeShim) GetUserByEmailWithPassword(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmailWithPassword(ctx, db, email)
}
func (storeShim) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	return repo.CreateUser(ctx, db, u)
}
func (storeShim) UpdateUser(ctx context.Context, db *gorm.DB, id string, p repo.UserPatch) (*domain.User, error) {
	return repo.UpdateUser(ctx, db, id, p)
}
func (storeShim) ListCards(ctx context.Context, db *gorm.DB) ([]domain.Card, error) {
	return repo.ListCards(ctx, db)
}
func (storeShim) CreateCard(ctx context.Context, db *gorm.DB, c *domain.Card) (*domain.Card, error) {
	return repo.CreateCard(ctx, db, c)
}
func (storeShim) DeleteCard(ctx context.Context, db *gorm.DB, id, owner string) (*domain.Card, error) {
	return repo.DeleteCard(ctx, db, id, owner)
}
func (storeShim) AddCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	return repo.AddCardLike(ctx, db, id, userID)
}
func (storeShim) RemoveCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	return repo.RemoveCardLike(ctx, db, id, userID)
}

func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), fmt.Sprintf("svc_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(repo.SQLiteDSN(path)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// profile stores a default user and returns its id.
func profile(t *testing.T, db *gorm.DB) string {
	t.Helper()
	u, err := repo.EnsureUser(context.Background(), db, uuid.NewString())
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	return u.ID
}

func newUserSvc(db *gorm.DB) *UserService {
	s := NewUserService(db, storeShim{})
	s.BcryptCost = bcrypt.MinCost
	return s
}

func kindOfErr(t *testing.T, err error) Kind {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error")
	}
	se, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *services.Error, got %T: %v", err, err)
	}
	return se.Kind
}

func strp(s string) *string { return &s }
