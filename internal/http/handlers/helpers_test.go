package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/http/middleware"
	"github.com/tbourn/go-cards-backend/internal/repo"
	"github.com/tbourn/go-cards-backend/internal/services"
)

// ---------- test DB + repo shim ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), fmt.Sprintf("handlers_%d.db", time.Now().UnixNano()))
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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// testRepo implements the service repository contracts using the repo
// package, like router.go does.
type testRepo struct{}

func (testRepo) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}
func (testRepo) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}
func (testRepo) GetUserByEmailWithPassword(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmailWithPassword(ctx, db, email)
}
func (testRepo) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	return repo.CreateUser(ctx, db, u)
}
func (testRepo) UpdateUser(ctx context.Context, db *gorm.DB, id string, p repo.UserPatch) (*domain.User, error) {
	return repo.UpdateUser(ctx, db, id, p)
}
func (testRepo) ListCards(ctx context.Context, db *gorm.DB) ([]domain.Card, error) {
	return repo.ListCards(ctx, db)
}
func (testRepo) CreateCard(ctx context.Context, db *gorm.DB, c *domain.Card) (*domain.Card, error) {
	return repo.CreateCard(ctx, db, c)
}
func (testRepo) DeleteCard(ctx context.Context, db *gorm.DB, id, owner string) (*domain.Card, error) {
	return repo.DeleteCard(ctx, db, id, owner)
}
func (testRepo) AddCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	return repo.AddCardLike(ctx, db, id, userID)
}
func (testRepo) RemoveCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	return repo.RemoveCardLike(ctx, db, id, userID)
}

// ---------- router under test ----------

type testAPI struct {
	db     *gorm.DB
	r      *gin.Engine
	users  *services.UserService
	tokens *auth.TokenIssuer
}

// actAs is read by the fake identity middleware; empty means anonymous.
const actAsHeader = "X-Test-User"

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerDB(t)
	users := services.NewUserService(db, testRepo{})
	users.BcryptCost = bcrypt.MinCost
	tokens := auth.NewTokenIssuer("handler-test-secret", time.Hour)
	h := New(users, services.NewCardService(db, testRepo{}), services.NewAuthService(db, testRepo{}, users, tokens))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.NoRoute(RouteNotFound)

	r.POST("/signup", h.Signup)
	r.POST("/signin", h.Signin)
	r.POST("/users", h.CreateUser)

	p := r.Group("/")
	p.Use(func(c *gin.Context) {
		if id := c.GetHeader(actAsHeader); id != "" {
			c.Set(middleware.UserIDKey, id)
		}
		c.Next()
	})
	p.GET("/users", h.ListUsers)
	p.GET("/users/me", h.GetSelf)
	p.GET("/users/:id", h.GetUser)
	p.PATCH("/users/me", h.UpdateProfile)
	p.PATCH("/users/me/avatar", h.UpdateAvatar)
	p.GET("/cards", h.ListCards)
	p.POST("/cards", h.CreateCard)
	p.DELETE("/cards/:cardId", h.DeleteCard)
	p.PUT("/cards/:cardId/likes", h.LikeCard)
	p.DELETE("/cards/:cardId/likes", h.DislikeCard)

	return &testAPI{db: db, r: r, users: users, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, actor string, body any, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(actAsHeader, actor)
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// user creates a profile directly through the service.
func (a *testAPI) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := a.users.CreateUser(context.Background(), services.CreateUserInput{Email: email, Password: "pw-" + email})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d body=%s", w.Code, status, w.Body.String())
	}
	er := decode[ErrorResponse](t, w)
	if er.Code != code {
		t.Fatalf("code=%q want %q", er.Code, code)
	}
	if er.RequestID == "" {
		t.Fatalf("request_id missing in %s", w.Body.String())
	}
	return er
}

func strp(s string) *string { return &s }

