package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/services"
)

type activityResponse struct {
	Entries []models.ActivityEntry `json:"entries"`
	Unread  int                    `json:"unread"`
}

type awardXPRequest struct {
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

type skillResponse struct {
	Skill   string                `json:"skill"`
	Modules []models.ModuleStatus `json:"modules"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.App.Leaderboard.List(r.Context()))
}

func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.App.Catalog.Courses(r.Context()))
}

// handleActivity returns the newest entries and clears the unread counter.
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit := s.App.Config.ActivityFeedSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Warn("invalid activity limit: %s", raw)
			handleError(w, r, apperrors.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	resp := activityResponse{
		Entries: s.App.Activity.Recent(r.Context(), limit),
		Unread:  s.App.Activity.Unread(),
	}
	s.App.Activity.MarkRead()
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleAwardXP(w http.ResponseWriter, r *http.Request) {
	var req awardXPRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		handleError(w, r, apperrors.NewValidationError("reason", "cannot be empty"))
		return
	}

	user, ok := s.App.Auth.CurrentUser(r.Context())
	if !ok {
		handleError(w, r, apperrors.NewUnauthorizedError(services.LoginPath))
		return
	}
	profile, ok := s.App.Progression.AwardXP(r.Context(), user.ID, req.Amount, req.Reason)
	if !ok {
		handleError(w, r, apperrors.NewNotFoundError("user", user.ID))
		return
	}
	writeJSON(w, r, http.StatusOK, publicProfile(*profile))
}

func (s *Server) handleSkillStatus(w http.ResponseWriter, r *http.Request) {
	skill := chi.URLParam(r, "skill")
	modules, err := s.App.Progression.SkillStatus(r.Context(), skill)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, skillResponse{Skill: skill, Modules: modules})
}

func (s *Server) handleCompleteModule(w http.ResponseWriter, r *http.Request) {
	moduleID, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.App.Progression.CompleteSkillModule(r.Context(), chi.URLParam(r, "skill"), moduleID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
