package repository

import (
	"context"

	"github.com/avowell/daybreak/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, id, displayName, timezone string) error
	Exists(ctx context.Context, id string) (bool, error)
	ListIDs(ctx context.Context) ([]string, error)
	ListIDsWithOpenTasks(ctx context.Context) ([]string, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListOpen(ctx context.Context, userID string) ([]domain.Task, error)
	List(ctx context.Context, userID string, includeCompleted bool) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	MarkCompleted(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type GoalRepo interface {
	Create(ctx context.Context, g *domain.Goal) error
	ListActive(ctx context.Context, userID string) ([]domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) error
	Delete(ctx context.Context, id string) error
}

type HabitRepo interface {
	Create(ctx context.Context, h *domain.Habit) error
	ListActive(ctx context.Context, userID string) ([]domain.Habit, error)
	Update(ctx context.Context, h *domain.Habit) error
	Delete(ctx context.Context, id string) error
}

type UserProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

type AggregateRepo interface {
	Upsert(ctx context.Context, a *domain.DailyAggregate) error
	ListRecent(ctx context.Context, userID string, days int) ([]domain.DailyAggregate, error)
}

type PlanRepo interface {
	// Upsert writes a plan keyed by (user, plan date); an existing plan for
	// the same day is overwritten.
	Upsert(ctx context.Context, p *domain.AIPlan) error
	GetByDate(ctx context.Context, userID, planDate string) (*domain.AIPlan, error)
}

type EnergyRepo interface {
	// Append stores a sample; samples are append-only.
	Append(ctx context.Context, s *domain.EnergySample) error
	ListByUser(ctx context.Context, userID string) ([]domain.EnergySample, error)
}
