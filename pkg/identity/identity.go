package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for the on-behalf-of identity.
	Key ContextKey = "on-behalf-of"
)

// canonicalLength is the length of the hyphenated 8-4-4-4-12 form.
const canonicalLength = 36

// ErrNotUUID indicates the identity is not a canonical UUID.
var ErrNotUUID = errors.New("is not a UUID")

// Parse parses id in its canonical hyphenated form.
// uuid.Parse also accepts the braced, URN and bare hex forms; those are rejected.
func Parse(id string) (uuid.UUID, error) {
	if len(id) != canonicalLength {
		return uuid.Nil, notUUID(id)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notUUID(id)
	}
	return parsed, nil
}

// Validate returns nil if id is a UUID in canonical textual form.
func Validate(id string) error {
	_, err := Parse(id)
	return err
}

func notUUID(id string) error {
	return fmt.Errorf("%q %w", id, ErrNotUUID)
}

// OnBehalfOf retrieves the on-behalf-of identity from context.
func OnBehalfOf(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(Key).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithOnBehalfOf stores the on-behalf-of identity in context.
// An empty id leaves the context unchanged.
func WithOnBehalfOf(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, Key, id)
}
