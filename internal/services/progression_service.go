package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/progression"
	"github.com/vytor/eduplay/internal/store"
)

var (
	errProfileMissing = errors.New("profile not in roster")
	errBadgeHeld      = errors.New("badge already held")
)

// SkillCatalog lists the modules of a skill. An empty result means the skill
// is unknown.
type SkillCatalog func(skill string) []models.SkillModule

// DefaultSkillModules is the module set every skill offers unless a custom
// catalog is configured.
func DefaultSkillModules(string) []models.SkillModule {
	return []models.SkillModule{
		{ID: 1, Name: "Introduction", Description: "Basics to get started"},
		{ID: 2, Name: "Practice", Description: "Hands-on tasks"},
		{ID: 3, Name: "Assessment", Description: "Final mini quiz"},
	}
}

// SkillResult describes the outcome of marking one module done.
type SkillResult struct {
	Skill        string  `json:"skill"`
	ModuleID     int64   `json:"moduleId"`
	Completed    []int64 `json:"completed"`
	SkillDone    bool    `json:"skillDone"`
	BadgeAwarded string  `json:"badgeAwarded,omitempty"`
}

// ProgressionService owns xp accrual, level derivation, badges and skill
// completion.
type ProgressionService interface {
	AwardXP(ctx context.Context, userID int64, amount int, reason string) (*models.Profile, bool)
	SetXP(ctx context.Context, userID int64, xp int) (*models.Profile, error)
	CompleteSkillModule(ctx context.Context, skill string, moduleID int64) (*SkillResult, error)
	SkillModules(skill string) []models.SkillModule
	SkillStatus(ctx context.Context, skill string) ([]models.ModuleStatus, error)
	Dashboard(ctx context.Context) (*models.Dashboard, error)
}

type progressionService struct {
	mu          sync.Mutex
	store       *store.Store
	leaderboard LeaderboardService
	activity    ActivityService
	catalog     SkillCatalog
}

// NewProgressionService creates a new ProgressionService. A nil catalog uses
// DefaultSkillModules.
func NewProgressionService(st *store.Store, leaderboard LeaderboardService, activity ActivityService, catalog SkillCatalog) ProgressionService {
	if catalog == nil {
		catalog = DefaultSkillModules
	}
	return &progressionService{
		store:       st,
		leaderboard: leaderboard,
		activity:    activity,
		catalog:     catalog,
	}
}

// AwardXP adds amount to the profile's xp. An unknown id is a silent no-op
// and returns false.
func (s *progressionService) AwardXP(ctx context.Context, userID int64, amount int, reason string) (*models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awardXP(ctx, userID, amount, reason)
}

func (s *progressionService) awardXP(ctx context.Context, userID int64, amount int, reason string) (*models.Profile, bool) {
	log := logger.FromContext(ctx).WithPrefix("progression")
	log.Debug("awarding xp: user_id=%d, amount=%d", userID, amount)

	updated, ok := s.updateProfile(ctx, userID, func(p *models.Profile) error {
		p.XP += amount
		p.Level = progression.LevelForXP(p.XP)
		return nil
	})
	if !ok {
		log.Debug("user %d not found, xp not awarded", userID)
		return nil, false
	}

	s.leaderboard.Sync(ctx, *updated)

	message := fmt.Sprintf("+%d XP", amount)
	if reason != "" {
		message += " for " + reason
	}
	s.activity.Record(ctx, models.ActivityXP, message, map[string]any{"userId": userID})

	log.Info("user %d now has %d xp (level %d)", userID, updated.XP, updated.Level)
	return updated, true
}

// SetXP is the administrative edit: xp is replaced, not added.
func (s *progressionService) SetXP(ctx context.Context, userID int64, xp int) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("progression")
	log.Debug("setting xp: user_id=%d, xp=%d", userID, xp)

	updated, ok := s.updateProfile(ctx, userID, func(p *models.Profile) error {
		p.XP = xp
		p.Level = progression.LevelForXP(xp)
		return nil
	})
	if !ok {
		return nil, apperrors.NewNotFoundError("user", userID)
	}

	s.leaderboard.Sync(ctx, *updated)
	s.activity.Record(ctx, models.ActivityXPAdjust,
		fmt.Sprintf("Admin set XP of user id %d to %d", userID, xp),
		map[string]any{"userId": userID, "xp": xp})
	return updated, nil
}

// updateProfile applies fn to the stored profile and refreshes the signed-in
// copy when it is the same learner. It returns false when the id is unknown
// or fn refuses the change. A failed write is logged; the updated profile is
// still returned for the rest of the operation.
func (s *progressionService) updateProfile(ctx context.Context, userID int64, fn func(*models.Profile) error) (*models.Profile, bool) {
	log := logger.FromContext(ctx).WithPrefix("progression")

	var updated models.Profile
	_, err := store.Update(ctx, s.store, store.KeyUsers, models.Profiles{}, func(users models.Profiles) (models.Profiles, error) {
		idx := users.Find(userID)
		if idx < 0 {
			return users, errProfileMissing
		}
		if err := fn(&users[idx]); err != nil {
			return users, err
		}
		updated = users[idx]
		return users, nil
	})
	switch {
	case errors.Is(err, errProfileMissing), errors.Is(err, errBadgeHeld):
		return nil, false
	case errors.Is(err, store.ErrReadFailure):
		log.Warn("roster unreadable, profile %d left unchanged: %v", userID, err)
		return nil, false
	case err != nil:
		log.Warn("profile %d update not persisted: %v", userID, err)
	}

	if cur, ok := currentUser(ctx, s.store); ok && cur.ID == updated.ID {
		if err := s.store.Set(ctx, store.KeyCurrentUser, updated); err != nil {
			log.Warn("signed-in copy of %d not refreshed: %v", userID, err)
		}
	}
	return &updated, true
}

func (s *progressionService) SkillModules(skill string) []models.SkillModule {
	return s.catalog(strings.TrimSpace(skill))
}

// CompleteSkillModule marks moduleID done for skill. Marking is idempotent,
// but the full-completion check runs on every call. The first time every
// module is done for a signed-in learner without the skill badge, the badge
// is issued and SkillCompletionXP awarded.
func (s *progressionService) CompleteSkillModule(ctx context.Context, skill string, moduleID int64) (*SkillResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("progression")
	skill = strings.TrimSpace(skill)
	log.Debug("completing skill module: skill=%s, module_id=%d", skill, moduleID)

	if skill == "" {
		return nil, apperrors.NewValidationError("skill", "cannot be empty")
	}
	modules := s.catalog(skill)
	if len(modules) == 0 {
		return nil, apperrors.NewNotFoundError("skill", skill)
	}
	mi := slices.IndexFunc(modules, func(m models.SkillModule) bool { return m.ID == moduleID })
	if mi < 0 {
		return nil, apperrors.NewNotFoundError("skill module", moduleID)
	}

	progress, err := store.Update(ctx, s.store, store.KeySkillProgress, models.SkillProgress{}, func(sp models.SkillProgress) (models.SkillProgress, error) {
		if sp == nil {
			sp = models.SkillProgress{}
		}
		sp.Mark(skill, moduleID)
		return sp, nil
	})
	if errors.Is(err, store.ErrReadFailure) {
		log.Error("skill progress unreadable, %s module %d not marked: %v", skill, moduleID, err)
		return nil, apperrors.NewInternalError(err)
	}
	if err != nil {
		log.Warn("skill progress not persisted: %v", err)
	}

	s.activity.Record(ctx, models.ActivitySkillProgress,
		fmt.Sprintf("Completed %s • %s", skill, modules[mi].Name),
		map[string]any{"skill": skill, "moduleId": moduleID})

	result := &SkillResult{
		Skill:     skill,
		ModuleID:  moduleID,
		Completed: slices.Clone(progress[skill]),
		SkillDone: allDone(progress, skill, modules),
	}
	if !result.SkillDone {
		return result, nil
	}

	user, ok := currentUser(ctx, s.store)
	if !ok {
		log.Debug("skill %s complete but nobody is signed in, no badge issued", skill)
		return result, nil
	}

	badge := progression.BadgeKey(skill)
	if _, ok := s.updateProfile(ctx, user.ID, func(p *models.Profile) error {
		if !p.AddBadge(badge) {
			return errBadgeHeld
		}
		return nil
	}); !ok {
		log.Debug("user %d already holds %s or is gone", user.ID, badge)
		return result, nil
	}

	s.awardXP(ctx, user.ID, progression.SkillCompletionXP, skill+" skill completion")
	s.activity.Record(ctx, models.ActivitySkillComplete,
		fmt.Sprintf("Finished %s and earned %s", skill, badge),
		map[string]any{"skill": skill, "badge": badge, "userId": user.ID})
	result.BadgeAwarded = badge

	log.Info("user %d completed skill %s, badge %s issued", user.ID, skill, badge)
	return result, nil
}

func allDone(progress models.SkillProgress, skill string, modules []models.SkillModule) bool {
	for _, m := range modules {
		if !progress.Completed(skill, m.ID) {
			return false
		}
	}
	return true
}

func (s *progressionService) SkillStatus(ctx context.Context, skill string) ([]models.ModuleStatus, error) {
	skill = strings.TrimSpace(skill)
	modules := s.catalog(skill)
	if skill == "" || len(modules) == 0 {
		return nil, apperrors.NewNotFoundError("skill", skill)
	}

	progress := store.GetOr(ctx, s.store, store.KeySkillProgress, models.SkillProgress{})
	out := make([]models.ModuleStatus, len(modules))
	for i, m := range modules {
		out[i] = models.ModuleStatus{SkillModule: m, Completed: progress.Completed(skill, m.ID)}
	}
	return out, nil
}

// Dashboard summarizes the signed-in learner.
func (s *progressionService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	user, ok := currentUser(ctx, s.store)
	if !ok {
		return nil, apperrors.NewUnauthorizedError(LoginPath)
	}
	return &models.Dashboard{
		Username:         user.DisplayName(),
		Level:            progression.LevelForXP(user.XP),
		XP:               user.XP,
		EnrolledCourses:  len(user.EnrolledCourses),
		CompletedLessons: len(user.CompletedLessons),
		Badges:           len(user.Badges),
		Streak:           user.Streak,
	}, nil
}
