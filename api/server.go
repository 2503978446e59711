// Package api exposes the café content, auth and admin operations over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"cafe-site/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	sessionCookie  = "session"
	maxImportBytes = 5 << 20
)

type Server struct {
	content *services.ContentService
	auth    *services.AuthService
	admins  map[string]bool // empty: every active user is an admin
}

func NewServer(content *services.ContentService, auth *services.AuthService, adminEmails []string) *Server {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = true
		}
	}
	return &Server{content: content, auth: auth, admins: admins}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/content", s.getContent)
		r.Get("/menu", s.listMenu)
		r.Get("/menu/featured", s.featuredMenu)
		r.Get("/menu/{id}", s.getMenuItem)
		r.Get("/menu/{id}/order-link", s.orderLink)
		r.Get("/contact-link", s.contactLink)
		r.Get("/location-link", s.locationLink)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Post("/logout", s.logout)
			r.With(s.requireSession).Get("/me", s.me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireSession, s.requireAdmin)
			r.Put("/content", s.replaceContent)
			r.Put("/info", s.updateInfo)

			r.Post("/menu", s.addMenuItem)
			r.Put("/menu/{id}", s.updateMenuItem)
			r.Delete("/menu/{id}", s.deleteMenuItem)

			r.Post("/testimonials", s.addTestimonial)
			r.Put("/testimonials/{id}", s.updateTestimonial)
			r.Delete("/testimonials/{id}", s.deleteTestimonial)

			r.Post("/gallery", s.addGalleryImage)
			r.Put("/gallery/{id}", s.updateGalleryImage)
			r.Delete("/gallery/{id}", s.deleteGalleryImage)

			r.Get("/export", s.exportContent)
			r.Post("/import", s.importContent)
			r.Post("/reset", s.resetContent)
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
	case errors.Is(err, services.ErrInvalidContent), errors.Is(err, services.ErrInvalidImport):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("api: %s %s: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json payload")
		return false
	}
	return true
}
