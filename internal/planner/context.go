package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/repository"
)

// recentAggregateDays is how much history the prompt composer sees.
const recentAggregateDays = 7

// ScheduleContext is an immutable snapshot of one user's planning-relevant
// state at generation time. Both the model path and the fallback path
// consume the same snapshot.
type ScheduleContext struct {
	UserName string
	Timezone string
	Profile  domain.UserProfile

	// RecentAggregates is ordered newest first. Used only for prompt
	// averages, never by the fallback scheduler.
	RecentAggregates []domain.DailyAggregate

	TodaysTasks  []domain.Task
	ActiveGoals  []domain.Goal
	ActiveHabits []domain.Habit

	CurrentTime string // HH:MM anchor for schedule start
}

// Aggregator collects the inputs needed to plan a day. It pulls rows from
// the repositories and performs no computation itself.
type Aggregator struct {
	profiles   repository.UserProfileRepo
	aggregates repository.AggregateRepo
	tasks      repository.TaskRepo
	goals      repository.GoalRepo
	habits     repository.HabitRepo
}

// NewAggregator creates an Aggregator over the given repositories.
func NewAggregator(
	profiles repository.UserProfileRepo,
	aggregates repository.AggregateRepo,
	tasks repository.TaskRepo,
	goals repository.GoalRepo,
	habits repository.HabitRepo,
) *Aggregator {
	return &Aggregator{
		profiles:   profiles,
		aggregates: aggregates,
		tasks:      tasks,
		goals:      goals,
		habits:     habits,
	}
}

// BuildScheduleContext assembles a ScheduleContext for the user at the given
// wall-clock moment. A missing profile falls back to defaults rather than
// failing: new users can still be planned for.
func (a *Aggregator) BuildScheduleContext(ctx context.Context, userID string, now time.Time) (*ScheduleContext, error) {
	profile, err := a.profiles.Get(ctx, userID)
	if err != nil {
		if !isNotFound(err) {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
		profile = &domain.UserProfile{UserID: userID}
		profile.Normalize()
	}

	aggs, err := a.aggregates.ListRecent(ctx, userID, recentAggregateDays)
	if err != nil {
		return nil, fmt.Errorf("loading aggregates: %w", err)
	}

	tasks, err := a.tasks.ListOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	goals, err := a.goals.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	habits, err := a.habits.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading habits: %w", err)
	}

	return &ScheduleContext{
		UserName:         domain.CoalesceStr(profile.DisplayName, userID),
		Timezone:         domain.CoalesceStr(profile.Timezone, "UTC"),
		Profile:          *profile,
		RecentAggregates: aggs,
		TodaysTasks:      tasks,
		ActiveGoals:      goals,
		ActiveHabits:     habits,
		CurrentTime:      now.Format("15:04"),
	}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
