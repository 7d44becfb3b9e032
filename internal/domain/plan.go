package domain

import "time"

// Duration bounds for a single schedule item. The validator clamps any
// out-of-range duration into this interval rather than rejecting it.
const (
	MinItemDurationMin = 5
	MaxItemDurationMin = 240
)

// ModelVersionFallback tags plans produced by the deterministic path.
const ModelVersionFallback = "fallback"

// ScheduleItem is one timed entry in a daily plan. Both the model path and
// the fallback path produce items satisfying the same contract: duration
// within [MinItemDurationMin, MaxItemDurationMin], valid priority and type.
type ScheduleItem struct {
	Time        string   `json:"time"` // HH:MM
	DurationMin int      `json:"duration"`
	Task        string   `json:"task"`
	Priority    Priority `json:"priority"`
	Type        ItemType `json:"type"`
	TaskID      string   `json:"task_id,omitempty"` // non-owning back-reference
}

// AIPlan is a generated daily schedule. At most one live plan exists per
// (user, plan date); regeneration overwrites.
type AIPlan struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	PlanDate     string         `json:"plan_date"` // YYYY-MM-DD
	Schedule     []ScheduleItem `json:"schedule"`
	Explanation  string         `json:"explanation"`
	Reasoning    string         `json:"reasoning,omitempty"`
	ModelVersion string         `json:"model_version"`
	GeneratedAt  time.Time      `json:"generated_at"`
}

// IsFallback reports whether the plan came from the deterministic path.
func (p *AIPlan) IsFallback() bool {
	return p.ModelVersion == ModelVersionFallback
}
