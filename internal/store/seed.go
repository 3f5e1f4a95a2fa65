package store

import (
	"context"

	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/progression"
)

// SeedProfiles is the first-run roster: one sample learner.
func SeedProfiles() models.Profiles {
	xp := 2450
	return models.Profiles{{
		ID:               1,
		Username:         "rahulsharma",
		Email:            "rahul@example.com",
		Password:         "password123",
		Grade:            10,
		XP:               xp,
		Level:            progression.LevelForXP(xp),
		Badges:           []string{"mathwizard", "quicklearner", "quizmaster"},
		Streak:           12,
		EnrolledCourses:  []int64{1, 2, 3},
		CompletedLessons: []int64{1, 2, 3, 4, 5, 6, 7, 8},
	}}
}

func SeedCourses() models.Courses {
	return models.Courses{
		{ID: 1, Title: "Algebra Basics", Subject: "Mathematics", Grade: 9, Description: "Master linear equations and inequalities", Lessons: 12, Enrolled: 1250},
		{ID: 2, Title: "Atomic Structure", Subject: "Science", Grade: 10, Description: "Understand protons, neutrons, and electrons", Lessons: 8, Enrolled: 980},
		{ID: 3, Title: "World Geography", Subject: "Social Studies", Grade: 8, Description: "Explore continents and countries", Lessons: 10, Enrolled: 750},
	}
}

func SeedLeaderboard() models.Leaderboard {
	return models.Leaderboard{
		{ID: 1, Username: "Rahul Sharma", XP: 2450, Grade: 10, Avatar: "RS"},
		{ID: 2, Username: "Priya Singh", XP: 2100, Grade: 9, Avatar: "PS"},
		{ID: 3, Username: "Aarav Shah", XP: 1950, Grade: 11, Avatar: "AS"},
		{ID: 4, Username: "Neha Mehta", XP: 1800, Grade: 10, Avatar: "NM"},
		{ID: 5, Username: "Vikram Kumar", XP: 1650, Grade: 12, Avatar: "VK"},
	}
}

// EnsureSeed writes the first-run data set. Each key is written only when it
// is absent, so a second run changes nothing. Keys that cannot be read are
// left alone.
func EnsureSeed(ctx context.Context, s *Store) error {
	log := logger.FromContext(ctx).WithPrefix("seed")

	seeds := []struct {
		key   string
		value any
	}{
		{KeyUsers, SeedProfiles()},
		{KeyCourses, SeedCourses()},
		{KeyLeaderboard, SeedLeaderboard()},
		{KeyActivity, models.ActivityLog{}},
	}

	var written int
	for _, seed := range seeds {
		ok, err := s.Has(ctx, seed.key)
		if err != nil {
			log.Warn("cannot check %s, not seeding it: %v", seed.key, err)
			continue
		}
		if ok {
			log.Debug("%s already present", seed.key)
			continue
		}
		if err := s.Set(ctx, seed.key, seed.value); err != nil {
			return err
		}
		written++
	}

	if written > 0 {
		log.Info("seeded %d keys", written)
	}
	return nil
}
