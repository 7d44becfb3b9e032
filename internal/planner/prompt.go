package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/llm"
)

// maxPromptTasks bounds the rendered task list; the remainder is summarized
// as a count.
const maxPromptTasks = 10

// ComposeSchedulePrompt renders a ScheduleContext into the user prompt and
// the context-independent system instruction. Deterministic and free of I/O
// so it is testable without the network.
func ComposeSchedulePrompt(sc *ScheduleContext) (prompt, system string) {
	var b strings.Builder

	fmt.Fprintf(&b, "User: %s (timezone %s). Current time: %s.\n\n",
		sc.UserName, sc.Timezone, sc.CurrentTime)

	p := sc.Profile
	fmt.Fprintf(&b, "Preferences: focus blocks of %d minutes, breaks of %d minutes, work hours %02d:00-%02d:00.\n",
		p.FocusDurationMin, p.BreakDurationMin, p.WorkStartHour, p.WorkEndHour)
	if len(p.MostProductiveHours) > 0 {
		fmt.Fprintf(&b, "Most productive hours: %s.\n", joinHours(p.MostProductiveHours))
	}
	if len(p.DistractionHours) > 0 {
		fmt.Fprintf(&b, "Distraction-prone hours: %s.\n", joinHours(p.DistractionHours))
	}

	avgFocus, avgCompletion, avgSatisfaction := aggregateMeans(sc.RecentAggregates)
	fmt.Fprintf(&b, "\nRecent performance (last %d days): avg %.0f focus minutes/day, avg completion rate %.0f%%",
		len(sc.RecentAggregates), avgFocus, avgCompletion*100)
	if avgSatisfaction != nil {
		fmt.Fprintf(&b, ", avg satisfaction %.1f/10", *avgSatisfaction)
	}
	b.WriteString(".\n")

	tasks := SortTasksByPriority(sc.TodaysTasks)
	fmt.Fprintf(&b, "\nOpen tasks (%d):\n", len(tasks))
	shown := tasks
	if len(shown) > maxPromptTasks {
		shown = shown[:maxPromptTasks]
	}
	for _, t := range shown {
		fmt.Fprintf(&b, "- [%s] %s (id: %s, priority: %s", taskEstimateLabel(t), llm.SanitizeFreeText(t.Title), t.ID, t.Priority)
		if t.DueDate != nil {
			fmt.Fprintf(&b, ", due %s", t.DueDate.Format("2006-01-02"))
		}
		if t.Category != "" {
			fmt.Fprintf(&b, ", category %s", llm.SanitizeFreeText(t.Category))
		}
		b.WriteString(")\n")
	}
	if rest := len(tasks) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "...and %d more tasks.\n", rest)
	}

	if len(sc.ActiveGoals) > 0 {
		b.WriteString("\nActive goals:\n")
		for _, g := range sc.ActiveGoals {
			fmt.Fprintf(&b, "- %s (%.0f%% complete", llm.SanitizeFreeText(g.Title), g.ProgressPct)
			if g.TargetDate != nil {
				fmt.Fprintf(&b, ", target %s", g.TargetDate.Format("2006-01-02"))
			}
			b.WriteString(")\n")
		}
	}

	if len(sc.ActiveHabits) > 0 {
		b.WriteString("\nRecurring habits:\n")
		for _, h := range sc.ActiveHabits {
			fmt.Fprintf(&b, "- %s (%s, %d min, %s)\n",
				llm.SanitizeFreeText(h.Title), h.PreferredTime, h.DurationMin, h.Frequency)
		}
	}

	b.WriteString("\nBuild the schedule for the rest of today.")
	return b.String(), scheduleSystemPrompt
}

// SortTasksByPriority returns a copy of tasks stably sorted by priority rank
// (high, medium, low), preserving the relative order of equal-priority items.
// The fallback scheduler uses the same ordering.
func SortTasksByPriority(tasks []domain.Task) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority.Rank() < sorted[j].Priority.Rank()
	})
	return sorted
}

// aggregateMeans computes the arithmetic means over recent aggregates.
// Empty input yields zeros; satisfaction is averaged only over entries where
// it was reported, nil when none were.
func aggregateMeans(aggs []domain.DailyAggregate) (focusMin, completionRate float64, satisfaction *float64) {
	if len(aggs) == 0 {
		return 0, 0, nil
	}

	var focusTotal, completionTotal float64
	var satTotal float64
	satCount := 0
	for _, a := range aggs {
		focusTotal += float64(a.FocusMin)
		completionTotal += a.CompletionRate
		if a.Satisfaction != nil {
			satTotal += float64(*a.Satisfaction)
			satCount++
		}
	}

	focusMin = focusTotal / float64(len(aggs))
	completionRate = completionTotal / float64(len(aggs))
	if satCount > 0 {
		mean := satTotal / float64(satCount)
		satisfaction = &mean
	}
	return focusMin, completionRate, satisfaction
}

func taskEstimateLabel(t domain.Task) string {
	if t.EstimateMin > 0 {
		return fmt.Sprintf("%d min", t.EstimateMin)
	}
	return "no estimate"
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = fmt.Sprintf("%02d:00", h)
	}
	return strings.Join(parts, ", ")
}
