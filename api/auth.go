package api

import (
	"net"
	"net/http"

	"cafe-site/services"
)

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := s.auth.Register(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	status := http.StatusCreated
	if !res.Success {
		status = http.StatusBadRequest
		if res.Code == services.AuthDuplicateEmail {
			status = http.StatusConflict
		}
	}
	writeJSON(w, status, res)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := s.auth.Login(r.Context(), in.Email, in.Password, clientIP(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !res.Success {
		status := http.StatusUnauthorized
		switch res.Code {
		case services.AuthMissingField, services.AuthInvalidEmail:
			status = http.StatusBadRequest
		case services.AuthThrottled:
			status = http.StatusTooManyRequests
		}
		writeJSON(w, status, res)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    res.Session.Handle,
		Path:     "/",
		Expires:  res.Session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context(), sessionHandle(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

// clientIP is the caller address after middleware.RealIP; the port is dropped
// so reconnects share a throttle entry.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
