package services

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/store"
)

// AuthService manages the signed-in marker. Credentials are compared
// verbatim.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Profile, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.Profile, bool)
	RequireLogin(ctx context.Context, path string) string
}

type authService struct {
	store    *store.Store
	activity ActivityService
}

// NewAuthService creates a new AuthService
func NewAuthService(st *store.Store, activity ActivityService) AuthService {
	return &authService{store: st, activity: activity}
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("auth")
	email = strings.TrimSpace(email)
	log.Debug("login attempt: email=%s", email)

	users := store.GetOr(ctx, s.store, store.KeyUsers, models.Profiles{})
	for _, u := range users {
		if u.Email != email || u.Password != password {
			continue
		}
		if err := s.store.Set(ctx, store.KeyCurrentUser, u); err != nil {
			log.Warn("session for %d not persisted: %v", u.ID, err)
		}
		s.activity.Record(ctx, models.ActivityLogin, fmt.Sprintf("%s logged in", u.DisplayName()), map[string]any{"userId": u.ID})
		log.Info("user %d logged in", u.ID)
		return &u, nil
	}

	log.Debug("login rejected for %s", email)
	return nil, apperrors.NewInvalidCredentialsError()
}

func (s *authService) Logout(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("auth")

	user, ok := currentUser(ctx, s.store)
	if err := s.store.Delete(ctx, store.KeyCurrentUser); err != nil {
		log.Error("failed to clear session: %v", err)
		return apperrors.NewInternalError(err)
	}
	if ok {
		s.activity.Record(ctx, models.ActivityLogout, fmt.Sprintf("%s logged out", user.DisplayName()), map[string]any{"userId": user.ID})
		log.Info("user %d logged out", user.ID)
	}
	return nil
}

func (s *authService) CurrentUser(ctx context.Context) (*models.Profile, bool) {
	return currentUser(ctx, s.store)
}

// RequireLogin returns the path to redirect to, or "" when path may be shown.
// Login and register pages never redirect.
func (s *authService) RequireLogin(ctx context.Context, path string) string {
	if strings.Contains(path, "login") || strings.Contains(path, "register") {
		return ""
	}
	if _, ok := currentUser(ctx, s.store); ok {
		return ""
	}
	logger.FromContext(ctx).WithPrefix("auth").Debug("no session for %s, redirecting", path)
	return LoginPath
}
