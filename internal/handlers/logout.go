package handlers

import (
	"net/http"
	"time"

	"smarttag/internal/logger"
	"smarttag/internal/middleware"
)

// LogoutHandler expires the session cookie and redirects to the login page.
func LogoutHandler(logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.AuthCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		logger.Info("Logout from %s", r.RemoteAddr)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
