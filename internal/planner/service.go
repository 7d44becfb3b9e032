package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/llm"
	"github.com/avowell/daybreak/internal/repository"
)

// Service orchestrates schedule generation: it attempts the model path and,
// on any failure in that chain, discards partial results and substitutes the
// deterministic fallback. Callers of GenerateScheduleWithFallback never see
// a generation failure; the only errors that surface are storage errors.
type Service struct {
	aggregator *Aggregator
	plans      repository.PlanRepo
	client     llm.Client
	log        zerolog.Logger
	now        func() time.Time
}

// NewService creates a planner Service. A nil client disables the model path
// entirely; every plan then comes from the fallback scheduler.
func NewService(aggregator *Aggregator, plans repository.PlanRepo, client llm.Client, log zerolog.Logger) *Service {
	return &Service{
		aggregator: aggregator,
		plans:      plans,
		client:     client,
		log:        log,
		now:        time.Now,
	}
}

// BuildScheduleContext exposes the aggregator for callers that assemble the
// context separately from generation.
func (s *Service) BuildScheduleContext(ctx context.Context, userID string) (*ScheduleContext, error) {
	return s.aggregator.BuildScheduleContext(ctx, userID, s.now())
}

// GenerateDailySchedule runs the model-only path: compose prompt, call the
// generation service, validate the payload, persist. It fails on any
// generation or validation error, so callers can distinguish "model
// succeeded" from "had to fall back".
func (s *Service) GenerateDailySchedule(ctx context.Context, userID string, sc *ScheduleContext) (*domain.AIPlan, error) {
	plan, err := s.modelPlan(ctx, userID, sc)
	if err != nil {
		return nil, err
	}
	if err := s.plans.Upsert(ctx, plan); err != nil {
		return nil, fmt.Errorf("storing plan: %w", err)
	}
	return plan, nil
}

// GenerateScheduleWithFallback always produces a usable plan. Any failure in
// the model chain is logged and converted into the fallback path; the only
// variability the caller sees is the plan's ModelVersion tag.
func (s *Service) GenerateScheduleWithFallback(ctx context.Context, userID string, sc *ScheduleContext) (*domain.AIPlan, error) {
	plan, err := s.modelPlan(ctx, userID, sc)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("model path failed, using fallback schedule")
		plan = s.fallbackPlan(userID, sc)
	}
	if err := s.plans.Upsert(ctx, plan); err != nil {
		return nil, fmt.Errorf("storing plan: %w", err)
	}
	return plan, nil
}

// modelPlan runs the model chain without persisting.
func (s *Service) modelPlan(ctx context.Context, userID string, sc *ScheduleContext) (*domain.AIPlan, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: no client configured", llm.ErrUnavailable)
	}

	prompt, system := ComposeSchedulePrompt(sc)
	payload, err := s.client.GenerateJSON(ctx, llm.GenerateRequest{
		Task:         llm.TaskSchedule,
		SystemPrompt: system,
		UserPrompt:   prompt,
	})
	if err != nil {
		return nil, err
	}

	parsed, err := ValidateSchedulePayload(payload)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &domain.AIPlan{
		ID:           uuid.NewString(),
		UserID:       userID,
		PlanDate:     now.Format("2006-01-02"),
		Schedule:     parsed.Items,
		Explanation:  parsed.Explanation,
		Reasoning:    parsed.Reasoning,
		ModelVersion: s.client.ModelVersion(),
		GeneratedAt:  now,
	}, nil
}

// fallbackPlan wraps the deterministic scheduler's output as an AIPlan.
func (s *Service) fallbackPlan(userID string, sc *ScheduleContext) *domain.AIPlan {
	items := FallbackSchedule(sc)
	now := s.now()

	explanation := fmt.Sprintf("A simple priority-ordered schedule of your top %d tasks, starting at %02d:00.",
		countWorkItems(items), sc.Profile.WorkStartHour)
	if len(items) == 0 {
		explanation = "No open tasks to schedule today."
	}

	return &domain.AIPlan{
		ID:           uuid.NewString(),
		UserID:       userID,
		PlanDate:     now.Format("2006-01-02"),
		Schedule:     items,
		Explanation:  explanation,
		Reasoning:    "Deterministic fallback: tasks ordered by priority with breaks between focus blocks.",
		ModelVersion: domain.ModelVersionFallback,
		GeneratedAt:  now,
	}
}

func countWorkItems(items []domain.ScheduleItem) int {
	n := 0
	for _, it := range items {
		if it.Type == domain.ItemWork {
			n++
		}
	}
	return n
}
