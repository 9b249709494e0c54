// Package services – error normalization
//
// normalize converts repository failures into the service taxonomy. The
// mapping is exhaustive over repo.FailureKind; anything that is not a
// *repo.Failure is a server error.
package services

import (
	"github.com/tbourn/go-cards-backend/internal/repo"
)

// Messages holds the operation-specific client message per kind. Kinds
// without an entry use Kind.DefaultMessage.
type Messages map[Kind]string

func (m Messages) text(k Kind) string {
	if s, ok := m[k]; ok && s != "" {
		return s
	}
	return k.DefaultMessage()
}

// kindOf maps a store failure kind to a taxonomy kind.
func kindOf(fk repo.FailureKind) Kind {
	switch fk {
	case repo.FailureMalformedID, repo.FailureValidation:
		return KindBadRequest
	case repo.FailureNotFound:
		return KindNotFound
	case repo.FailureDuplicateKey:
		return KindConflict
	case repo.FailureUnknown:
		return KindInternal
	default:
		return KindInternal
	}
}

// normalize returns nil for nil, passes *Error through, and otherwise picks
// exactly one kind for err with the message from msgs.
func normalize(err error, msgs Messages) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*Error); ok {
		return se
	}
	kind := KindInternal
	if f, ok := repo.AsFailure(err); ok {
		kind = kindOf(f.Kind)
	}
	return &Error{Kind: kind, Message: msgs.text(kind), Err: err}
}
