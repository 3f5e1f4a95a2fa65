package models

import "slices"

// SkillProgress maps a skill name to the ids of its completed modules.
type SkillProgress map[string][]int64

// Mark records moduleID for skill and reports whether it was new.
func (sp SkillProgress) Mark(skill string, moduleID int64) bool {
	if slices.Contains(sp[skill], moduleID) {
		return false
	}
	sp[skill] = append(sp[skill], moduleID)
	return true
}

// Completed reports whether moduleID is marked for skill.
func (sp SkillProgress) Completed(skill string, moduleID int64) bool {
	return slices.Contains(sp[skill], moduleID)
}

// SkillModule is a discrete unit within a skill.
type SkillModule struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ModuleStatus is a module together with its completion flag.
type ModuleStatus struct {
	SkillModule
	Completed bool `json:"completed"`
}

// Dashboard summarizes the signed-in profile.
type Dashboard struct {
	Username         string `json:"username"`
	Level            int    `json:"level"`
	XP               int    `json:"xp"`
	EnrolledCourses  int    `json:"enrolledCourses"`
	CompletedLessons int    `json:"completedLessons"`
	Badges           int    `json:"badges"`
	Streak           int    `json:"streak"`
}
