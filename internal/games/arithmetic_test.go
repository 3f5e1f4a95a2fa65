package games_test

import (
	"context"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/eduplay/internal/games"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/testutil"
	"github.com/vytor/eduplay/internal/testutil/mocks"
)

func newArithmetic(seed int64) (*games.Arithmetic, *testutil.FakeScheduler, *mocks.MockActivityRecorder) {
	sched := &testutil.FakeScheduler{}
	activity := new(mocks.MockActivityRecorder)
	activity.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(models.ActivityEntry{})
	g := games.NewArithmetic(rand.New(rand.NewSource(seed)), sched, activity, 600*time.Millisecond)
	return g, sched, activity
}

func answerOf(t *testing.T, r *games.ArithmeticRound) int {
	t.Helper()
	switch r.Operator {
	case "+":
		return r.A + r.B
	case "-":
		return r.A - r.B
	case "×":
		return r.A * r.B
	}
	t.Fatalf("unexpected operator %q", r.Operator)
	return 0
}

func TestArithmetic_RoundShape(t *testing.T) {
	g, _, _ := newArithmetic(1)
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		r := g.NewRound(ctx).Round
		require.NotNil(t, r)

		assert.GreaterOrEqual(t, r.A, 2)
		assert.LessOrEqual(t, r.A, 12)
		assert.GreaterOrEqual(t, r.B, 2)
		assert.LessOrEqual(t, r.B, 12)
		assert.Contains(t, []string{"+", "-", "×"}, r.Operator)

		answer := answerOf(t, r)
		require.Len(t, r.Choices, 4)
		hits := 0
		for _, c := range r.Choices {
			if c == answer {
				hits++
			}
			assert.LessOrEqual(t, c-answer, 10)
			assert.GreaterOrEqual(t, c-answer, -10)
		}
		assert.Equal(t, 1, hits)

		sorted := slices.Clone(r.Choices)
		slices.Sort(sorted)
		assert.Len(t, slices.Compact(sorted), 4, "choices must be distinct")
	}
}

func TestArithmetic_WrongPickCountsAttemptOnly(t *testing.T) {
	ctx := context.Background()
	g, sched, activity := newArithmetic(2)
	r := g.NewRound(ctx).Round
	answer := answerOf(t, r)

	var wrong int
	for _, c := range r.Choices {
		if c != answer {
			wrong = c
			break
		}
	}
	res, err := g.Select(ctx, wrong)
	require.NoError(t, err)

	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.View.Attempts)
	assert.Equal(t, 0, res.View.Correct)
	assert.Empty(t, sched.Tasks())
	activity.AssertNotCalled(t, "Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestArithmetic_CorrectPickSchedulesNextRound(t *testing.T) {
	ctx := context.Background()
	g, sched, activity := newArithmetic(3)
	r := g.NewRound(ctx).Round

	res, err := g.Select(ctx, answerOf(t, r))
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.View.Correct)
	assert.True(t, res.View.Round.Solved)
	activity.AssertCalled(t, "Record", mock.Anything, models.ActivityGameCorrect, "Math game correct", mock.Anything)

	tasks := sched.Pending()
	require.Len(t, tasks, 1)
	assert.Equal(t, 600*time.Millisecond, tasks[0].Delay)

	again, err := g.Select(ctx, answerOf(t, r))
	require.NoError(t, err)
	assert.Equal(t, 2, again.View.Attempts)
	assert.Equal(t, 1, again.View.Correct)
	assert.Len(t, sched.Tasks(), 1)
	activity.AssertNumberOfCalls(t, "Record", 1)

	assert.Equal(t, 1, sched.FireAll(ctx))
	next := g.View().Round
	require.NotNil(t, next)
	assert.NotEqual(t, r.ID, next.ID)
	assert.False(t, next.Solved)
}

func TestArithmetic_StopCancelsPendingRound(t *testing.T) {
	ctx := context.Background()
	g, sched, _ := newArithmetic(4)
	r := g.NewRound(ctx).Round
	_, err := g.Select(ctx, answerOf(t, r))
	require.NoError(t, err)

	g.Stop(ctx)

	tasks := sched.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Canceled)

	sched.Fire(ctx, tasks[0])
	assert.Nil(t, g.View().Round)

	_, err = g.Select(ctx, 1)
	assert.ErrorIs(t, err, games.ErrNoRound)
}

func TestArithmetic_NewRoundInvalidatesStaleCallback(t *testing.T) {
	ctx := context.Background()
	g, sched, _ := newArithmetic(5)
	r := g.NewRound(ctx).Round
	_, err := g.Select(ctx, answerOf(t, r))
	require.NoError(t, err)

	manual := g.NewRound(ctx).Round
	stale := sched.Tasks()[0]
	assert.True(t, stale.Canceled)

	sched.Fire(ctx, stale)
	assert.Equal(t, manual.ID, g.View().Round.ID)
}
