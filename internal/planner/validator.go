package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/avowell/daybreak/internal/domain"
)

var (
	// ErrNoScheduleArray indicates the payload lacks an array under the
	// "schedule" key.
	ErrNoScheduleArray = errors.New("payload has no schedule array")

	// ErrMissingField indicates a schedule item lacks a structurally
	// required field (time, numeric duration, or task).
	ErrMissingField = errors.New("schedule item missing required field")
)

// ParsedSchedule is the validated result of a model schedule payload.
type ParsedSchedule struct {
	Items       []domain.ScheduleItem
	Explanation string
	Reasoning   string
}

// ValidateSchedulePayload converts an untrusted parsed payload into typed
// schedule items. Structure is enforced hard: a missing schedule array or an
// item without time, numeric duration, or task fails the whole payload.
// Content is coerced soft: out-of-range durations are clamped and
// unrecognized priority or type strings default, never reject. A model that
// picks an odd priority label is not a failure; one that omits the task
// description is.
func ValidateSchedulePayload(payload map[string]any) (*ParsedSchedule, error) {
	rawItems, ok := payload["schedule"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNoScheduleArray, payload["schedule"])
	}

	items := make([]domain.ScheduleItem, 0, len(rawItems))
	for i, raw := range rawItems {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: item %d is %T, not an object", ErrMissingField, i, raw)
		}

		timeStr, ok := stringField(obj, "time")
		if !ok {
			return nil, fmt.Errorf("%w: item %d has no time", ErrMissingField, i)
		}
		duration, ok := numberField(obj, "duration")
		if !ok {
			return nil, fmt.Errorf("%w: item %d has no numeric duration", ErrMissingField, i)
		}
		task, ok := stringField(obj, "task")
		if !ok {
			return nil, fmt.Errorf("%w: item %d has no task", ErrMissingField, i)
		}

		priority, _ := stringField(obj, "priority")
		itemType, _ := stringField(obj, "type")
		taskID, _ := stringField(obj, "task_id")

		items = append(items, domain.ScheduleItem{
			Time:        timeStr,
			DurationMin: domain.ClampInt(int(duration), domain.MinItemDurationMin, domain.MaxItemDurationMin),
			Task:        task,
			Priority:    domain.CoercePriority(priority),
			Type:        domain.CoerceItemType(itemType),
			TaskID:      taskID,
		})
	}

	explanation, _ := stringField(payload, "explanation")
	reasoning, _ := stringField(payload, "reasoning")

	return &ParsedSchedule{
		Items:       items,
		Explanation: explanation,
		Reasoning:   reasoning,
	}, nil
}

// stringField reads a non-empty string value; whitespace-only counts as
// missing.
func stringField(obj map[string]any, key string) (string, bool) {
	v, ok := obj[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// numberField reads a numeric value. encoding/json decodes all JSON numbers
// as float64.
func numberField(obj map[string]any, key string) (float64, bool) {
	v, ok := obj[key].(float64)
	return v, ok
}
