package planner

import (
	"fmt"

	"github.com/avowell/daybreak/internal/domain"
)

// maxFallbackTasks bounds how many tasks the deterministic path schedules.
const maxFallbackTasks = 5

// FallbackSchedule builds a priority-ordered schedule using only arithmetic
// and sorting. It is pure and total: it never calls a collaborator and never
// fails, returning an empty slice when there are no incomplete tasks.
//
// The cursor starts at the preferred work start hour. Each task gets a work
// item of min(estimate or focus length, 2x focus length) minutes; the cap
// keeps one oversized task from crowding out the rest of the day. A break of
// the preferred length follows every work item except the last. Minute
// overflow carries into hours; hours deliberately do not wrap past 23, so a
// very long task list runs into late-night times rather than folding back
// onto the morning.
func FallbackSchedule(sc *ScheduleContext) []domain.ScheduleItem {
	var open []domain.Task
	for _, t := range sc.TodaysTasks {
		if !t.Completed {
			open = append(open, t)
		}
	}

	tasks := SortTasksByPriority(open)
	if len(tasks) > maxFallbackTasks {
		tasks = tasks[:maxFallbackTasks]
	}

	focus := domain.CoalesceInt(domain.DefaultFocusDurationMin, sc.Profile.FocusDurationMin)
	breakMin := domain.CoalesceInt(domain.DefaultBreakDurationMin, sc.Profile.BreakDurationMin)
	hour := sc.Profile.WorkStartHour
	if hour <= 0 {
		hour = domain.DefaultWorkStartHour
	}
	minute := 0

	items := make([]domain.ScheduleItem, 0, 2*len(tasks))
	for i, t := range tasks {
		duration := focus
		if t.EstimateMin > 0 {
			duration = t.EstimateMin
		}
		if duration > 2*focus {
			duration = 2 * focus
		}

		items = append(items, domain.ScheduleItem{
			Time:        clockString(hour, minute),
			DurationMin: duration,
			Task:        t.Title,
			Priority:    t.Priority,
			Type:        domain.ItemWork,
			TaskID:      t.ID,
		})
		hour, minute = advance(hour, minute, duration)

		if i < len(tasks)-1 {
			items = append(items, domain.ScheduleItem{
				Time:        clockString(hour, minute),
				DurationMin: breakMin,
				Task:        "Break",
				Priority:    domain.PriorityMedium,
				Type:        domain.ItemBreak,
			})
			hour, minute = advance(hour, minute, breakMin)
		}
	}

	return items
}

// advance moves the cursor forward, normalizing minute overflow into hours.
func advance(hour, minute, durationMin int) (int, int) {
	minute += durationMin
	hour += minute / 60
	minute = minute % 60
	return hour, minute
}

func clockString(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
