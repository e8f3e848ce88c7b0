package middleware

import (
	"net/http"
	"strings"

	"smarttag/internal/lib/jwt"
)

// AuthCookie carries the signed session token issued at login.
const AuthCookie = "smarttag_session"

// Auth requires a valid session token when a password is configured.
// An empty password leaves everything open.
func Auth(password, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if password == "" || public(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if !authenticated(r, secret) {
				if strings.HasPrefix(r.URL.Path, "/api/") ||
					r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
					r.Header.Get("Content-Type") == "application/json" {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticated(r *http.Request, secret string) bool {
	cookie, err := r.Cookie(AuthCookie)
	if err != nil {
		return false
	}
	return jwt.Verify(cookie.Value, secret) == nil
}

func public(path string) bool {
	return path == "/login" ||
		path == "/auth/login" ||
		path == "/auth/logout" ||
		strings.HasPrefix(path, "/css/") ||
		strings.HasPrefix(path, "/js/") ||
		strings.HasPrefix(path, "/static/")
}
