package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/testutil"
)

func TestGoalRepo_CreateAndListActive(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	repo := NewSQLiteGoalRepo(database)
	ctx := context.Background()

	target := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	goal := testutil.NewTestGoal("u1", "Run a half marathon", 40)
	goal.TargetDate = &target
	require.NoError(t, repo.Create(ctx, goal))

	inactive := testutil.NewTestGoal("u1", "Abandoned goal", 10)
	inactive.Active = false
	require.NoError(t, repo.Create(ctx, inactive))

	goals, err := repo.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Run a half marathon", goals[0].Title)
	assert.InDelta(t, 40, goals[0].ProgressPct, 1e-9)
	require.NotNil(t, goals[0].TargetDate)
	assert.Equal(t, "2026-12-31", goals[0].TargetDate.Format("2006-01-02"))
}

func TestGoalRepo_UpdateProgress(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	repo := NewSQLiteGoalRepo(database)
	ctx := context.Background()

	goal := testutil.NewTestGoal("u1", "Read 20 books", 25)
	require.NoError(t, repo.Create(ctx, goal))

	goal.ProgressPct = 55
	require.NoError(t, repo.Update(ctx, goal))

	goals, err := repo.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.InDelta(t, 55, goals[0].ProgressPct, 1e-9)
}

func TestGoalRepo_DeactivateRemovesFromActiveList(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	repo := NewSQLiteGoalRepo(database)
	ctx := context.Background()

	goal := testutil.NewTestGoal("u1", "Short-lived", 0)
	require.NoError(t, repo.Create(ctx, goal))

	goal.Active = false
	require.NoError(t, repo.Update(ctx, goal))

	goals, err := repo.ListActive(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestGoalRepo_UpdateAndDelete_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	repo := NewSQLiteGoalRepo(database)
	ctx := context.Background()

	missing := testutil.NewTestGoal("u1", "Never created", 0)
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, missing.ID), ErrNotFound)
}

func TestHabitRepo_CreateAndListActive(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	repo := NewSQLiteHabitRepo(database)
	ctx := context.Background()

	habit := testutil.NewTestHabit("u1", "Morning run", domain.TimeMorning, 30)
	require.NoError(t, repo.Create(ctx, habit))

	paused := testutil.NewTestHabit("u1", "Paused habit", domain.TimeEvening, 15)
	paused.Active = false
	require.NoError(t, repo.Create(ctx, paused))

	habits, err := repo.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Morning run", habits[0].Title)
	assert.Equal(t, domain.TimeMorning, habits[0].PreferredTime)
	assert.Equal(t, 30, habits[0].DurationMin)
	assert.Equal(t, domain.FrequencyDaily, habits[0].Frequency)
}

func TestHabitRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	repo := NewSQLiteHabitRepo(database)
	ctx := context.Background()

	habit := testutil.NewTestHabit("u1", "Journal", domain.TimeEvening, 10)
	require.NoError(t, repo.Create(ctx, habit))

	habit.DurationMin = 20
	habit.Frequency = domain.FrequencyWeekly
	require.NoError(t, repo.Update(ctx, habit))

	habits, err := repo.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, 20, habits[0].DurationMin)
	assert.Equal(t, domain.FrequencyWeekly, habits[0].Frequency)
}
