package session

import "time"

// RefreshTokenTTL is the absolute lifetime of a refresh session.
const RefreshTokenTTL = 14 * 24 * time.Hour

// Session binds one opaque refresh token to one user. A session is usable iff
// it is found by user id + token AND Expired reports false; both checks are
// mandatory on the caller's side.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Repository interface {
	Create(userID string) (*Session, error)
	FindByUserIDAndToken(userID, token string) (*Session, error)
	Invalidate(userID string) error
}
