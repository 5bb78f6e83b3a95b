package middleware

import (
	"errors"
	"net/http"
	"time"

	"taskmanager/pkg/auth"
	"taskmanager/pkg/session"
	"taskmanager/pkg/user"
)

// TokenVerifier checks a stateless access token. Satisfied by token.Manager.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate is the stateless gate: it verifies the access token from the
// x-access-token header and attaches the caller's id to the context. No
// storage is touched.
func Authenticate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken := r.Header.Get(auth.HeaderAccessToken)
			if accessToken == "" {
				unauthorized(w)
				return
			}

			userID, err := tokens.Verify(accessToken)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := auth.NewContext(r.Context(), &auth.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VerifySession is the stateful gate: it resolves the refresh token from the
// x-refresh-token and _id headers against the session ledger. A missing
// session and an expired one are indistinguishable to the client.
func VerifySession(users user.Repository, sessions session.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(auth.HeaderUserID)
			refreshToken := r.Header.Get(auth.HeaderRefreshToken)
			if userID == "" || refreshToken == "" {
				unauthorized(w)
				return
			}

			sess, err := sessions.FindByUserIDAndToken(userID, refreshToken)
			if err != nil {
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}
			if sess == nil || sess.Expired(time.Now()) {
				unauthorized(w)
				return
			}

			u, err := users.FindByID(userID)
			if errors.Is(err, user.ErrNotFound) {
				unauthorized(w)
				return
			}
			if err != nil {
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
				return
			}

			ctx := auth.NewContext(r.Context(), &auth.Identity{UserID: userID, User: u})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
}
