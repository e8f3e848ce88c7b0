package handlers

import (
	"crypto/subtle"
	"net/http"

	"smarttag/internal/config"
	"smarttag/internal/lib/jwt"
	"smarttag/internal/logger"
	"smarttag/internal/middleware"
)

// LoginHandler checks the dashboard password and issues a signed session cookie.
func LoginHandler(cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := r.FormValue("password")
		if cfg.Password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) != 1 {
			logger.Warning("Failed login attempt from %s", r.RemoteAddr)
			http.Error(w, "Invalid password", http.StatusUnauthorized)
			return
		}

		ttl := cfg.SessionTTL
		if ttl <= 0 {
			ttl = jwt.DefaultTTL
		}
		token, err := jwt.NewToken(ttl, cfg.SessionSecret)
		if err != nil {
			logger.Error("Failed to issue session token: %v", err)
			Error(w, r, http.StatusInternalServerError, "failed to log in")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.AuthCookie,
			Value:    token,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		logger.Info("Login from %s", r.RemoteAddr)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
