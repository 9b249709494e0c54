// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file defines the closed set of failures the store can
// report.
//
// Error semantics:
//   - Every exported repository function returns either nil or a *Failure.
//   - The Kind is one of FailureMalformedID, FailureValidation,
//     FailureNotFound, FailureDuplicateKey or FailureUnknown. Callers switch
//     over Kind instead of inspecting driver errors.
//   - The wrapped driver error is kept for logging (errors.Unwrap) and must
//     not be shown to clients.
//
// Usage:
//
//	card, err := repo.AddCardLike(ctx, db, cardID, userID)
//	if f, ok := repo.AsFailure(err); ok && f.Kind == repo.FailureNotFound {
//	    // card missing
//	}
package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned (wrapped in a Failure) when a requested record does
// not exist. It aliases gorm.ErrRecordNotFound.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate is wrapped when a unique constraint rejects a write and the
// driver did not supply its own error.
var ErrDuplicate = errors.New("duplicate key")

// ErrMalformedID is wrapped when an identifier is not a UUID.
var ErrMalformedID = errors.New("malformed identifier")

// FailureKind tags a store failure.
type FailureKind int

// Store failure kinds.
const (
	FailureUnknown FailureKind = iota
	FailureMalformedID
	FailureValidation
	FailureNotFound
	FailureDuplicateKey
)

// String returns a short name for the kind.
func (k FailureKind) String() string {
	switch k {
	case FailureMalformedID:
		return "malformed_id"
	case FailureValidation:
		return "validation"
	case FailureNotFound:
		return "not_found"
	case FailureDuplicateKey:
		return "duplicate_key"
	default:
		return "unknown"
	}
}

// Failure is the error type returned by every repository operation.
type Failure struct {
	Kind  FailureKind
	Op    string // e.g. "cards.addLike"
	Field string // offending field, when known
	Err   error
}

// Error implements error.
func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Op)
	b.WriteString(": ")
	b.WriteString(f.Kind.String())
	if f.Field != "" {
		fmt.Fprintf(&b, " (%s)", f.Field)
	}
	if f.Err != nil {
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying driver error.
func (f *Failure) Unwrap() error { return f.Err }

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// fail builds a Failure without classification.
func fail(op string, kind FailureKind, field string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Field: field, Err: err}
}

// classify wraps a raw gorm/driver error into a Failure. Existing Failures
// pass through untouched.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsFailure(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fail(op, FailureNotFound, "", err)
	case isDuplicate(err):
		return fail(op, FailureDuplicateKey, "", err)
	case isForeignKey(err):
		// The referenced parent row vanished mid-operation.
		return fail(op, FailureNotFound, "", err)
	default:
		return fail(op, FailureUnknown, "", err)
	}
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, ErrDuplicate) {
		return true
	}
	// SQLite: "UNIQUE constraint failed"; Postgres: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed: unique") ||
		strings.Contains(msg, "duplicate key")
}

// isForeignKey detects foreign-key violations.
func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
