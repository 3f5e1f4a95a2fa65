package models

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/vytor/eduplay/internal/progression"
)

// Profile is a learner account as persisted under the user roster key. The
// JSON field names match the roster written by earlier clients.
type Profile struct {
	ID               int64    `json:"id"`
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Password         string   `json:"password,omitempty"`
	Grade            int      `json:"grade"`
	XP               int      `json:"xp"`
	Level            int      `json:"level"`
	Badges           []string `json:"badges"`
	Streak           int      `json:"streak"`
	EnrolledCourses  []int64  `json:"enrolledCourses"`
	CompletedLessons []int64  `json:"completedLessons"`
}

// UnmarshalJSON decodes a stored profile and derives Level from XP, so a
// level written by an older client never outlives the xp it was computed for.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type stored Profile
	var raw stored
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Profile(raw)
	p.Level = progression.LevelForXP(p.XP)
	return nil
}

// DisplayName is the name shown in feeds: username, or email when unset.
func (p Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}

// HasBadge reports whether the profile already holds badge.
func (p Profile) HasBadge(badge string) bool {
	return slices.Contains(p.Badges, badge)
}

// AddBadge inserts badge unless present and reports whether it was added.
func (p *Profile) AddBadge(badge string) bool {
	if p.HasBadge(badge) {
		return false
	}
	p.Badges = append(p.Badges, badge)
	return true
}

func (p Profile) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("profile id must be positive, got %d", p.ID)
	}
	return nil
}

// Profiles is the persisted user roster.
type Profiles []Profile

func (ps Profiles) Validate() error {
	seen := make(map[int64]bool, len(ps))
	for _, p := range ps {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate profile id %d", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// Find returns the index of the profile with id, or -1.
func (ps Profiles) Find(id int64) int {
	return slices.IndexFunc(ps, func(p Profile) bool { return p.ID == id })
}
