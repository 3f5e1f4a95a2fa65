package store

// Store keys. The names and JSON shapes are shared with data written by
// earlier clients and must not change.
const (
	KeyUsers         = "eduplay_users"
	KeyCourses       = "eduplay_courses"
	KeyLeaderboard   = "eduplay_leaderboard"
	KeyActivity      = "eduplay_activity"
	KeyCurrentUser   = "currentUser"
	KeySkillProgress = "eduplay_skill_progress"
)
