package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/eduplay/internal/errors"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/services"
	"github.com/vytor/eduplay/internal/store"
)

func TestCatalog_AddCourseDefaults(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	c, err := e.catalog.AddCourse(ctx, services.NewCourse{Title: " Poetry "})
	require.NoError(t, err)
	assert.Equal(t, int64(4), c.ID)
	assert.Equal(t, "Poetry", c.Title)
	assert.Equal(t, "General", c.Subject)
	assert.Equal(t, 9, c.Grade)
	assert.Equal(t, 10, c.Lessons)
	assert.Zero(t, c.Enrolled)

	courses := e.catalog.Courses(ctx)
	require.Len(t, courses, 4)
	assert.Equal(t, *c, courses[3])

	log := e.activity.All(ctx)
	require.Len(t, log, 1)
	assert.Equal(t, models.ActivityCourseAdd, log[0].Type)
	assert.Equal(t, "Admin added course: Poetry", log[0].Message)
}

func TestCatalog_AddCourseRequiresTitle(t *testing.T) {
	e := newEngine(t)

	_, err := e.catalog.AddCourse(context.Background(), services.NewCourse{Subject: "Art"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.Len(t, e.catalog.Courses(context.Background()), 3)
}

func TestCatalog_RemoveUser(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, err := e.catalog.RemoveUser(ctx, 42)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	assert.Empty(t, e.activity.All(ctx))

	removed, err := e.catalog.RemoveUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "rahulsharma", removed.Username)
	assert.Empty(t, e.catalog.Users(ctx))

	log := e.activity.All(ctx)
	require.Len(t, log, 1)
	assert.Equal(t, "Admin removed user id 1", log[0].Message)

	_, ok := e.progression.AwardXP(ctx, 1, 10, "gone")
	assert.False(t, ok)
}

func TestCatalog_UsersRederiveStaleLevel(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	e.mem.Raw(store.KeyUsers, []byte(`[{"id":1,"username":"rahulsharma","email":"rahul@example.com","password":"password123","xp":2450,"level":12}]`))

	users := e.catalog.Users(ctx)
	require.Len(t, users, 1)
	assert.Equal(t, 13, users[0].Level)

	p, err := e.auth.Login(ctx, "rahul@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, 13, p.Level)

	cur, ok := e.auth.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, 13, cur.Level)
}
