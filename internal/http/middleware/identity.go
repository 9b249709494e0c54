// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file gates protected routes on the acting user id. The resolver runs
// before any handler; on failure the request is aborted through deny and no
// controller code executes.
package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/auth"
)

// Identity resolves the acting user with r and stores it under UserIDKey.
// deny writes the 401 response; it must abort the context.
func Identity(r auth.Resolver, deny func(c *gin.Context, err error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := r.Resolve(c.Request)
		if err == nil && uid == "" {
			err = auth.ErrUnauthorized
		}
		if err != nil {
			authFailures.WithLabelValues(failureReason(c, err)).Inc()
			LoggerFrom(c).Debug().Err(err).Msg("identity rejected")
			deny(c, err)
			if !c.IsAborted() {
				c.Abort()
			}
			return
		}
		c.Set(UserIDKey, uid)
		c.Next()
	}
}

func failureReason(c *gin.Context, err error) string {
	switch {
	case c.GetHeader("Authorization") == "":
		return "missing"
	case errors.Is(err, auth.ErrInvalidToken):
		return "invalid"
	default:
		return "malformed"
	}
}
