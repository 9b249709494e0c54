// Command server runs the cards HTTP API.
//
// @title                      Cards API
// @version                    1.0
// @description                User profiles and cards with likes.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-cards-backend/internal/auth"
	"github.com/tbourn/go-cards-backend/internal/config"
	httpapi "github.com/tbourn/go-cards-backend/internal/http"
	"github.com/tbourn/go-cards-backend/internal/observability"
	"github.com/tbourn/go-cards-backend/internal/repo"
	"github.com/tbourn/go-cards-backend/internal/sysutil"
)

// version is set with -ldflags "-X main.version=...".
var version string

func main() {
	envErr := godotenv.Load()

	cfg := config.MustLoad()
	sysutil.ConfigureLogging(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn().Err(envErr).Msg(".env not loaded")
	}
	ver := sysutil.FirstNonEmpty(version, "dev")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.Setup(ctx, cfg.OTEL, ver)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("open database")
	}
	if cfg.OTEL.Enabled {
		if err := repo.Instrument(db); err != nil {
			log.Fatal().Err(err).Msg("instrument database")
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	resolver, err := auth.NewResolver(auth.Mode(cfg.Auth.Mode), cfg.Auth.PlaceholderUserID, tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("identity resolver")
	}
	if cfg.Auth.Mode == config.AuthModePlaceholder {
		u, err := repo.EnsureUser(ctx, db, cfg.Auth.PlaceholderUserID)
		if err != nil {
			log.Fatal().Err(err).Msg("seed placeholder user")
		}
		log.Warn().Str("user_id", u.ID).Msg("placeholder auth mode: every request acts as this user")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg, resolver, tokens)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("version", ver).
			Str("auth_mode", cfg.Auth.Mode).
			Str("db_driver", cfg.DB.Driver).
			Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := shutdownOTel(sctx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
}
