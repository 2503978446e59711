package api

import (
	"context"
	"net/http"
	"strings"

	"cafe-site/models"
)

type ctxKey int

const userKey ctxKey = iota

// sessionHandle reads the handle from a Bearer header or the session cookie.
func sessionHandle(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := s.auth.CurrentUser(r.Context(), sessionHandle(r))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}

// requireAdmin runs after requireSession and checks the ADMIN_EMAILS list.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.admins) > 0 {
			u := currentUser(r)
			if u == nil || !s.admins[strings.ToLower(u.Email)] {
				writeError(w, http.StatusForbidden, "admin access required")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
