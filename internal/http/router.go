// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers and identity resolution.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-cards-backend/docs"
	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/config"
	"github.com/tbourn/go-cards-backend/internal/domain"
	"github.com/tbourn/go-cards-backend/internal/http/handlers"
	"github.com/tbourn/go-cards-backend/internal/http/middleware"
	"github.com/tbourn/go-cards-backend/internal/repo"
	"github.com/tbourn/go-cards-backend/internal/services"
)

// userRepoShim adapts the repository free functions to services.UserRepo.
type userRepoShim struct{}

// ListUsers proxies repo.ListUsers.
func (userRepoShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

// GetUser proxies repo.GetUser.
func (userRepoShim) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

// GetUserByEmailWithPassword proxies repo.GetUserByEmailWithPassword.
func (userRepoShim) GetUserByEmailWithPassword(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmailWithPassword(ctx, db, email)
}

// CreateUser proxies repo.CreateUser.
func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) (*domain.User, error) {
	return repo.CreateUser(ctx, db, u)
}

// UpdateUser proxies repo.UpdateUser.
func (userRepoShim) UpdateUser(ctx context.Context, db *gorm.DB, id string, p repo.UserPatch) (*domain.User, error) {
	return repo.UpdateUser(ctx, db, id, p)
}

// cardRepoShim adapts the repository free functions to services.CardRepo.
type cardRepoShim struct{}

// ListCards proxies repo.ListCards.
func (cardRepoShim) ListCards(ctx context.Context, db *gorm.DB) ([]domain.Card, error) {
	return repo.ListCards(ctx, db)
}

// CreateCard proxies repo.CreateCard.
func (cardRepoShim) CreateCard(ctx context.Context, db *gorm.DB, c *domain.Card) (*domain.Card, error) {
	return repo.CreateCard(ctx, db, c)
}

// DeleteCard proxies repo.DeleteCard.
func (cardRepoShim) DeleteCard(ctx context.Context, db *gorm.DB, id, owner string) (*domain.Card, error) {
	return repo.DeleteCard(ctx, db, id, owner)
}

// AddCardLike proxies repo.AddCardLike.
func (cardRepoShim) AddCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	return repo.AddCardLike(ctx, db, id, userID)
}

// RemoveCardLike proxies repo.RemoveCardLike.
func (cardRepoShim) RemoveCardLike(ctx context.Context, db *gorm.DB, id, userID string) (*domain.Card, error) {
	return repo.RemoveCardLike(ctx, db, id, userID)
}

var corsMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}

var corsHeaders = []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-Request-ID"}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. resolver decides the acting user of every protected route; tokens
// signs the credentials returned by sign-in.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with secret scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip (optional)
//  8. CORS and Security headers
//  9. Identity (protected group only)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, resolver auth.Resolver, tokens services.TokenIssuer) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Use(limitBody(maxBody))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Response compression
	if cfg.GzipEnabled {
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}

	// 8) CORS posture (allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     corsMethods,
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(handlers.RouteNotFound)
	r.NoMethod(handlers.MethodNotAllowed)

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	userSvc := services.NewUserService(db, userRepoShim{})
	if cfg.Auth.BcryptCost > 0 {
		userSvc.BcryptCost = cfg.Auth.BcryptCost
	}
	userSvc.RequireCredentials = cfg.Auth.Mode != config.AuthModePlaceholder
	cardSvc := services.NewCardService(db, cardRepoShim{})
	authSvc := services.NewAuthService(db, userRepoShim{}, userSvc, tokens)
	h := handlers.New(userSvc, cardSvc, authSvc)

	api := groupWithPrefix(r, cfg.APIBasePath)

	// Credential endpoints: no identity, never cached.
	public := api.Group("", middleware.NoStore())
	{
		public.POST("/signup", h.Signup)
		public.POST("/signin", h.Signin)
		public.POST("/users", h.CreateUser)
	}

	protected := api.Group("", middleware.Identity(resolver, handlers.DenyIdentity))
	{
		// Users
		protected.GET("/users", h.ListUsers)
		protected.GET("/users/me", h.GetSelf)
		protected.GET("/users/:id", h.GetUser)
		protected.PATCH("/users/me", h.UpdateProfile)
		protected.PATCH("/users/me/avatar", h.UpdateAvatar)

		// Cards
		protected.GET("/cards", h.ListCards)
		protected.POST("/cards", h.CreateCard)
		protected.DELETE("/cards/:cardId", h.DeleteCard)
		protected.PUT("/cards/:cardId/likes", h.LikeCard)
		protected.DELETE("/cards/:cardId/likes", h.DislikeCard)
	}
}

// limitBody caps the request body size for all endpoints to maxBytes using
// http.MaxBytesReader. Requests exceeding the cap fail to decode.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
