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

func setupTaskRepo(t *testing.T) *SQLiteTaskRepo {
	t.Helper()
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	return NewSQLiteTaskRepo(database)
}

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task := testutil.NewTestTask("u1", "Write the onboarding doc",
		testutil.WithPriority(domain.PriorityHigh),
		testutil.WithEstimate(90),
		testutil.WithDueDate(due),
	)
	task.Description = "Cover setup and first deploy"
	task.Category = "writing"
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "Write the onboarding doc", got.Title)
	assert.Equal(t, "Cover setup and first deploy", got.Description)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	assert.Equal(t, 90, got.EstimateMin)
	assert.Equal(t, "writing", got.Category)
	assert.False(t, got.Completed)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-09-01", got.DueDate.Format("2006-01-02"))
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	repo := setupTaskRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListOpenExcludesCompleted(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	open := testutil.NewTestTask("u1", "Open task")
	done := testutil.NewTestTask("u1", "Done task", testutil.WithCompleted())
	require.NoError(t, repo.Create(ctx, open))
	require.NoError(t, repo.Create(ctx, done))

	tasks, err := repo.ListOpen(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Open task", tasks[0].Title)

	all, err := repo.List(ctx, "u1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTaskRepo_ListScopedToUser(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	testutil.SeedUser(t, database, "u2")
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("u1", "Mine")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("u2", "Theirs")))

	tasks, err := repo.ListOpen(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Mine", tasks[0].Title)
}

func TestTaskRepo_MarkCompleted(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask("u1", "Finish this")
	require.NoError(t, repo.Create(ctx, task))

	require.NoError(t, repo.MarkCompleted(ctx, task.ID))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	open, err := repo.ListOpen(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestTaskRepo_MarkCompleted_NotFound(t *testing.T) {
	repo := setupTaskRepo(t)
	err := repo.MarkCompleted(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_Update(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask("u1", "Old title")
	require.NoError(t, repo.Create(ctx, task))

	task.Title = "New title"
	task.Priority = domain.PriorityLow
	task.EstimateMin = 25
	require.NoError(t, repo.Update(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, 25, got.EstimateMin)
}

func TestTaskRepo_Delete(t *testing.T) {
	repo := setupTaskRepo(t)
	ctx := context.Background()

	task := testutil.NewTestTask("u1", "Ephemeral")
	require.NoError(t, repo.Create(ctx, task))
	require.NoError(t, repo.Delete(ctx, task.ID))

	_, err := repo.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, task.ID), ErrNotFound)
}
