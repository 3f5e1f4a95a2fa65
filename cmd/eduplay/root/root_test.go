package root

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func tempDB(t *testing.T) string {
	return filepath.Join(t.TempDir(), "eduplay.db")
}

func TestSeed_ReportsFirstRunData(t *testing.T) {
	out, err := run(t, tempDB(t), "seed")
	require.NoError(t, err)

	assert.Contains(t, out, "Store ready")
	assert.Contains(t, out, "Users: 1")
	assert.Contains(t, out, "Courses: 3")
	assert.Contains(t, out, "Leaderboard: 5")
	assert.Contains(t, out, "Activity: 0")
	assert.Contains(t, out, "eduplay_users updated ")
	assert.Contains(t, out, "eduplay_leaderboard updated ")
	assert.NotContains(t, out, "currentUser")
}

func TestLeaderboard_Ranked(t *testing.T) {
	out, err := run(t, tempDB(t), "leaderboard")
	require.NoError(t, err)

	assert.Contains(t, out, "#1 Rahul Sharma")
	assert.Contains(t, out, "#5 Vikram Kumar")
}

func TestXPAward_PersistsAndLogs(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, db, "xp", "award", "1", "150", "--reason", "bonus round")
	require.NoError(t, err)
	assert.Contains(t, out, "+150 XP")
	assert.Contains(t, out, "now 2600 XP, level 14")

	out, err = run(t, db, "users")
	require.NoError(t, err)
	assert.Contains(t, out, "lvl 14, 2600 XP")
	assert.Contains(t, out, "(next level at 2800 XP)")

	out, err = run(t, db, "activity", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[xp]")
	assert.Contains(t, out, "+150 XP for bonus round")

	_, err = run(t, db, "xp", "award", "99", "10")
	assert.Error(t, err)
}

func TestXPSet(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, db, "xp", "set", "1", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 XP, level 1)")

	out, err = run(t, db, "activity")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin set XP of user id 1 to 0")

	_, err = run(t, db, "xp", "set", "abc", "0")
	assert.ErrorContains(t, err, "invalid user id")
}

func TestCourseAdd(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, db, "course", "add", "Poetry", "--subject", "English", "--grade", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "#4 Poetry")

	out, err = run(t, db, "courses")
	require.NoError(t, err)
	assert.Contains(t, out, "Poetry (English, grade 7, 10 lessons)")

	_, err = run(t, db, "course", "add")
	assert.ErrorContains(t, err, "title is required")
}

func TestUserRemove(t *testing.T) {
	db := tempDB(t)

	out, err := run(t, db, "user", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "removed #1 rahulsharma")

	_, err = run(t, db, "user", "remove", "1")
	assert.ErrorContains(t, err, "user not found: 1")

	out, err = run(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Users: 0")
}

func TestActivity_RejectsNonPositiveLimit(t *testing.T) {
	_, err := run(t, tempDB(t), "activity", "-n", "0")
	assert.Error(t, err)
}
