// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file runs the schema validation declared on the
// domain models (validator tags) before any write reaches the database.
package repo

import (
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// schema is safe for concurrent use; validator caches struct metadata.
var schema = newSchema()

func newSchema() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so failures match the wire format.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// weburl accepts absolute http(s) URLs with a host.
	_ = v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil || u.Host == "" {
			return false
		}
		return u.Scheme == "http" || u.Scheme == "https"
	})
	return v
}

// validateStruct checks every tagged field of v.
func validateStruct(op string, v any) error {
	return validationFailure(op, schema.Struct(v))
}

// validateFields checks only the named struct fields of v, mirroring an
// update that touches a subset of the document.
func validateFields(op string, v any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return validationFailure(op, schema.StructPartial(v, fields...))
}

func validationFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fail(op, FailureValidation, ve[0].Field(), err)
	}
	return fail(op, FailureValidation, "", err)
}

// parseID canonicalizes a UUID path or token identifier. Anything that is not
// a UUID is a FailureMalformedID, distinct from a well-formed id that matches
// no row.
func parseID(op, field, raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fail(op, FailureMalformedID, field, errors.Join(ErrMalformedID, err))
	}
	return id.String(), nil
}
