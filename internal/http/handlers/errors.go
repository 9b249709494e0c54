// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and mirror the taxonomy kind, so clients can
// branch on `code` without parsing `message`:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "card not found"
//	}
package handlers

import "github.com/tbourn/go-cards-backend/internal/services"

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// codeFor returns the stable code of a taxonomy kind.
func codeFor(k services.Kind) string {
	switch k {
	case services.KindBadRequest:
		return ErrCodeBadRequest
	case services.KindUnauthorized:
		return ErrCodeUnauthorized
	case services.KindNotFound:
		return ErrCodeNotFound
	case services.KindConflict:
		return ErrCodeConflict
	default:
		return ErrCodeInternal
	}
}
