// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by all endpoints. Every
// failure leaves through fail (explicit status/code/message) or failErr
// (service error), producing:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "card not found"
//	}
//
// Messages are localized per request. 5xx responses are logged with the
// wrapped cause; the cause itself is never written to the client.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-cards-backend/internal/http/middleware"
	"github.com/tbourn/go-cards-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"card not found"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	failCause(c, status, code, msg, nil)
}

func failCause(c *gin.Context, status int, code, msg string, cause error) {
	resp := ErrorResponse{
		RequestID: middleware.RequestIDFrom(c),
		Code:      code,
		Message:   localize(c, msg),
	}

	if status >= http.StatusInternalServerError {
		ev := middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg)
		if cause != nil {
			ev = ev.Err(cause)
		}
		ev.Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// failErr is the boundary adapter from any error to the error envelope.
// Non-service errors become 500.
func failErr(c *gin.Context, err error) {
	se := services.AsError(err)
	failCause(c, se.Kind.Status(), codeFor(se.Kind), se.Message, se.Err)
}

// DenyIdentity is the rejection writer for middleware.Identity.
func DenyIdentity(c *gin.Context, err error) {
	failErr(c, services.NewError(services.KindUnauthorized, services.MsgAuthRequired, err))
}

// RouteNotFound answers unmatched routes.
func RouteNotFound(c *gin.Context) {
	fail(c, http.StatusNotFound, ErrCodeNotFound, MsgRouteNotFound)
}

// MethodNotAllowed answers known routes hit with the wrong verb.
func MethodNotAllowed(c *gin.Context) {
	fail(c, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, MsgMethodNotAllowed)
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// bindJSON decodes the request body into dst, answering 400 on failure.
func bindJSON(c *gin.Context, dst any, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		failCause(c, http.StatusBadRequest, ErrCodeBadRequest, msg, err)
		return false
	}
	return true
}
