package auth

import (
	"context"

	"taskmanager/pkg/user"
)

// Request/response headers carrying credentials. Renaming any of these
// breaks existing frontend clients.
const (
	HeaderAccessToken  = "x-access-token"
	HeaderRefreshToken = "x-refresh-token"
	HeaderUserID       = "_id"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context by the
// auth middleware. User is only populated by the refresh-session gate; the
// access-token gate carries the user id alone.
type Identity struct {
	UserID string
	User   *user.User
}

func NewContext(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok || id == nil || id.UserID == "" {
		return nil, false
	}
	return id, true
}
