package models

import (
	"fmt"
	"time"
)

type ActivityType string

const (
	ActivityLogin         ActivityType = "login"
	ActivityLogout        ActivityType = "logout"
	ActivityXP            ActivityType = "xp"
	ActivityXPAdjust      ActivityType = "xp_adjust"
	ActivityQuizStart     ActivityType = "quiz_start"
	ActivityQuizComplete  ActivityType = "quiz_complete"
	ActivityGameCorrect   ActivityType = "game_correct"
	ActivityGameComplete  ActivityType = "game_complete"
	ActivitySkillProgress ActivityType = "skill_progress"
	ActivitySkillComplete ActivityType = "skill_complete"
	ActivityCourseAdd     ActivityType = "course_add"
	ActivityUserRemove    ActivityType = "user_remove"
)

type ActivityEntry struct {
	ID        int64          `json:"id"`
	Type      ActivityType   `json:"type"`
	Message   string         `json:"message"`
	Meta      map[string]any `json:"meta"`
	Timestamp time.Time      `json:"ts"`
}

// ActivityLog is the append-only persisted feed, oldest first.
type ActivityLog []ActivityEntry

func (l ActivityLog) Validate() error {
	for _, e := range l {
		if e.Type == "" {
			return fmt.Errorf("activity %d has no type", e.ID)
		}
	}
	return nil
}

// LastID returns the id of the newest entry, or 0.
func (l ActivityLog) LastID() int64 {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].ID
}
