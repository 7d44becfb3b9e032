package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/avowell/daybreak/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithEstimate(min int) TaskOption {
	return func(t *domain.Task) {
		t.EstimateMin = min
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func NewTestTask(userID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestGoal(userID, title string, progressPct float64) *domain.Goal {
	return &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		ProgressPct: progressPct,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
}

func NewTestHabit(userID, title string, preferred domain.TimeOfDay, durationMin int) *domain.Habit {
	return &domain.Habit{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         title,
		PreferredTime: preferred,
		DurationMin:   durationMin,
		Frequency:     domain.FrequencyDaily,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}
}

func NewTestProfile(userID string) *domain.UserProfile {
	p := &domain.UserProfile{
		UserID:      userID,
		DisplayName: userID,
		Timezone:    "UTC",
	}
	p.Normalize()
	return p
}

// NewTestSample builds an energy sample at the given hour of today.
func NewTestSample(userID string, hour, level int) *domain.EnergySample {
	day := time.Date(2026, 8, 24, hour, 0, 0, 0, time.UTC)
	return &domain.EnergySample{
		ID:         uuid.NewString(),
		UserID:     userID,
		RecordedAt: day,
		Level:      level,
	}
}
