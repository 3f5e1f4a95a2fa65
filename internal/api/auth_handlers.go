package api

import (
	"net/http"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.App.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publicProfile(*profile))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.App.Auth.Logout(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"redirect": services.LoginPath})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.App.Auth.CurrentUser(r.Context())
	if !ok {
		handleError(w, r, apperrors.NewUnauthorizedError(services.LoginPath))
		return
	}
	writeJSON(w, r, http.StatusOK, publicProfile(*profile))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("building dashboard")

	dash, err := s.App.Progression.Dashboard(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dash)
}
