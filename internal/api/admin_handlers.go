package api

import (
	"net/http"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/services"
)

type setXPRequest struct {
	XP *int `json:"xp"`
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, publicProfiles(s.App.Catalog.Users(r.Context())))
}

func (s *Server) handleAdminAddCourse(w http.ResponseWriter, r *http.Request) {
	var req services.NewCourse
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	course, err := s.App.Catalog.AddCourse(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, course)
}

func (s *Server) handleAdminRemoveUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	removed, err := s.App.Catalog.RemoveUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("admin removed user %d", removed.ID)
	writeJSON(w, r, http.StatusOK, publicProfile(*removed))
}

func (s *Server) handleAdminSetXP(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req setXPRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.XP == nil {
		handleError(w, r, apperrors.NewValidationError("xp", "required"))
		return
	}

	profile, err := s.App.Progression.SetXP(r.Context(), id, *req.XP)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, publicProfile(*profile))
}
