package models

import "fmt"

// LeaderboardEntry is one row of the global roster. ProfileID links the row to
// a learner profile; rows without a link are static rivals.
type LeaderboardEntry struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	XP        int    `json:"xp"`
	Grade     int    `json:"grade"`
	Avatar    string `json:"avatar"`
	ProfileID int64  `json:"profileId,omitempty"`
}

// Leaderboard is the persisted roster, kept sorted by xp descending.
type Leaderboard []LeaderboardEntry

func (lb Leaderboard) Validate() error {
	for _, e := range lb {
		if e.ID <= 0 {
			return fmt.Errorf("leaderboard entry id must be positive, got %d", e.ID)
		}
	}
	return nil
}

// RankedEntry is a leaderboard row with its 1-based position.
type RankedEntry struct {
	Rank int `json:"rank"`
	LeaderboardEntry
}
