package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/eduplay/internal/models"
)

// MockXPAwarder is a mock of the xp-granting half of services.ProgressionService
type MockXPAwarder struct {
	mock.Mock
}

func (m *MockXPAwarder) AwardXP(ctx context.Context, userID int64, amount int, reason string) (*models.Profile, bool) {
	args := m.Called(ctx, userID, amount, reason)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.Profile), args.Bool(1)
}

// MockActivityRecorder is a mock of services.ActivityService.Record
type MockActivityRecorder struct {
	mock.Mock
}

func (m *MockActivityRecorder) Record(ctx context.Context, typ models.ActivityType, message string, meta map[string]any) models.ActivityEntry {
	args := m.Called(ctx, typ, message, meta)
	if len(args) > 0 {
		if e, ok := args.Get(0).(models.ActivityEntry); ok {
			return e
		}
	}
	return models.ActivityEntry{Type: typ, Message: message, Meta: meta}
}

// MockCurrentUser is a mock of services.AuthService.CurrentUser
type MockCurrentUser struct {
	mock.Mock
}

func (m *MockCurrentUser) CurrentUser(ctx context.Context) (*models.Profile, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.Profile), args.Bool(1)
}
