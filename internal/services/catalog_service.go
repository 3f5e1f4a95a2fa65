package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/store"
)

// NewCourse carries the admin form. Zero values take the defaults.
type NewCourse struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Grade       int    `json:"grade"`
	Description string `json:"description"`
	Lessons     int    `json:"lessons"`
}

// CatalogService exposes courses and the user roster to administrators.
type CatalogService interface {
	Courses(ctx context.Context) models.Courses
	Users(ctx context.Context) models.Profiles
	AddCourse(ctx context.Context, in NewCourse) (*models.Course, error)
	RemoveUser(ctx context.Context, id int64) (*models.Profile, error)
}

type catalogService struct {
	store    *store.Store
	activity ActivityService
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(st *store.Store, activity ActivityService) CatalogService {
	return &catalogService{store: st, activity: activity}
}

func (s *catalogService) Courses(ctx context.Context) models.Courses {
	return store.GetOr(ctx, s.store, store.KeyCourses, models.Courses{})
}

func (s *catalogService) Users(ctx context.Context) models.Profiles {
	return store.GetOr(ctx, s.store, store.KeyUsers, models.Profiles{})
}

func (s *catalogService) AddCourse(ctx context.Context, in NewCourse) (*models.Course, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title", "cannot be empty")
	}
	course := models.Course{
		Title:       title,
		Subject:     strings.TrimSpace(in.Subject),
		Grade:       in.Grade,
		Description: in.Description,
		Lessons:     in.Lessons,
	}
	if course.Subject == "" {
		course.Subject = "General"
	}
	if course.Grade <= 0 {
		course.Grade = 9
	}
	if course.Lessons <= 0 {
		course.Lessons = 10
	}

	_, err := store.Update(ctx, s.store, store.KeyCourses, models.Courses{}, func(cs models.Courses) (models.Courses, error) {
		course.ID = cs.NextID()
		return append(cs, course), nil
	})
	if err != nil {
		log.Error("failed to persist course %q: %v", title, err)
		return nil, apperrors.NewInternalError(err)
	}

	s.activity.Record(ctx, models.ActivityCourseAdd, "Admin added course: "+title, map[string]any{"courseId": course.ID})
	log.Info("course added: id=%d, title=%s", course.ID, title)
	return &course, nil
}

func (s *catalogService) RemoveUser(ctx context.Context, id int64) (*models.Profile, error) {
	log := logger.FromContext(ctx).WithPrefix("catalog")

	var removed models.Profile
	_, err := store.Update(ctx, s.store, store.KeyUsers, models.Profiles{}, func(users models.Profiles) (models.Profiles, error) {
		idx := users.Find(id)
		if idx < 0 {
			return users, errProfileMissing
		}
		removed = users[idx]
		return append(users[:idx], users[idx+1:]...), nil
	})
	if errors.Is(err, errProfileMissing) {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	if err != nil {
		log.Error("failed to persist removal of user %d: %v", id, err)
		return nil, apperrors.NewInternalError(err)
	}

	s.activity.Record(ctx, models.ActivityUserRemove, fmt.Sprintf("Admin removed user id %d", id), map[string]any{"userId": id})
	log.Info("user removed: id=%d", id)
	return &removed, nil
}
