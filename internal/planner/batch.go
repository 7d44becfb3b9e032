package planner

import (
	"context"

	"github.com/avowell/daybreak/internal/repository"
)

// BatchResult is the per-user outcome of a batch planning run.
type BatchResult struct {
	UserID       string
	ModelVersion string
	Err          error
}

// BatchRunner generates one plan per user, sequentially. One user's failure
// is recorded in their result and never aborts the batch.
type BatchRunner struct {
	users   repository.UserRepo
	service *Service
}

// NewBatchRunner creates a BatchRunner over the given user repository and
// planner service.
func NewBatchRunner(users repository.UserRepo, service *Service) *BatchRunner {
	return &BatchRunner{users: users, service: service}
}

// PlanAll plans a day for every user that has open tasks.
func (b *BatchRunner) PlanAll(ctx context.Context) ([]BatchResult, error) {
	userIDs, err := b.users.ListIDsWithOpenTasks(ctx)
	if err != nil {
		return nil, err
	}
	return b.PlanUsers(ctx, userIDs), nil
}

// PlanUsers plans a day for each of the given users in order.
func (b *BatchRunner) PlanUsers(ctx context.Context, userIDs []string) []BatchResult {
	results := make([]BatchResult, 0, len(userIDs))
	for _, userID := range userIDs {
		results = append(results, b.planOne(ctx, userID))
	}
	return results
}

func (b *BatchRunner) planOne(ctx context.Context, userID string) BatchResult {
	sc, err := b.service.BuildScheduleContext(ctx, userID)
	if err != nil {
		return BatchResult{UserID: userID, Err: err}
	}

	plan, err := b.service.GenerateScheduleWithFallback(ctx, userID, sc)
	if err != nil {
		return BatchResult{UserID: userID, Err: err}
	}
	return BatchResult{UserID: userID, ModelVersion: plan.ModelVersion}
}
