package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/eduplay/internal/models"
)

func TestProfile_AddBadgeDeduplicates(t *testing.T) {
	p := models.Profile{ID: 1, Badges: []string{"quizmaster"}}

	assert.False(t, p.AddBadge("quizmaster"))
	assert.True(t, p.AddBadge("math_champ"))
	assert.Equal(t, []string{"quizmaster", "math_champ"}, p.Badges)
}

func TestProfiles_Validate(t *testing.T) {
	assert.NoError(t, models.Profiles{{ID: 1}, {ID: 2}}.Validate())
	assert.Error(t, models.Profiles{{ID: 1}, {ID: 1}}.Validate())
	assert.Error(t, models.Profiles{{ID: 0}}.Validate())
}

func TestCourses_NextID(t *testing.T) {
	assert.Equal(t, int64(1), models.Courses{}.NextID())
	assert.Equal(t, int64(8), models.Courses{{ID: 3}, {ID: 7}, {ID: 2}}.NextID())
}

func TestSkillProgress_Mark(t *testing.T) {
	sp := models.SkillProgress{}

	assert.True(t, sp.Mark("Coding", 1))
	assert.False(t, sp.Mark("Coding", 1))
	assert.True(t, sp.Completed("Coding", 1))
	assert.False(t, sp.Completed("Coding", 2))
	assert.Len(t, sp["Coding"], 1)
}

func TestProfile_DecodeDerivesLevelFromXP(t *testing.T) {
	var ps models.Profiles
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"xp":2450,"level":12},{"id":2,"xp":0,"level":7}]`), &ps))

	assert.Equal(t, 13, ps[0].Level)
	assert.Equal(t, 2450, ps[0].XP)
	assert.Equal(t, 1, ps[1].Level)
}
