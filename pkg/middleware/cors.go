package middleware

import (
	"net/http"
	"strings"

	"taskmanager/pkg/auth"
)

// CORS sets permissive cross-origin headers; the token headers must be
// listed in Expose-Headers or browsers silently drop them.
func CORS(next http.Handler) http.Handler {
	credentialHeaders := strings.Join([]string{
		auth.HeaderAccessToken, auth.HeaderRefreshToken, auth.HeaderUserID,
	}, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,HEAD,OPTIONS,DELETE,PUT,PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, "+credentialHeaders)
		w.Header().Set("Access-Control-Expose-Headers", credentialHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
