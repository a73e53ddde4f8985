package analytics

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const (
	userKey ctxKey = iota
	sessionKey
)

// WithUser attaches the signed-in user to events tracked under ctx.
func WithUser(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey, id)
}

func UserFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// WithSession attaches an editing session id to events tracked under ctx.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

func SessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}
