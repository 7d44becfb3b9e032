package domain

// Priority is the urgency class of a task or schedule item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns a sort rank (lower = more urgent). The same ranking is used
// by the prompt composer and the fallback scheduler, so the two paths order
// tasks identically.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// CoercePriority maps an arbitrary string to a valid Priority.
// Unrecognized or empty values become medium.
func CoercePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// ItemType is the kind of entry in a daily schedule.
type ItemType string

const (
	ItemWork    ItemType = "work"
	ItemBreak   ItemType = "break"
	ItemMeeting ItemType = "meeting"
)

// CoerceItemType maps an arbitrary string to a valid ItemType.
// Unrecognized or empty values become work.
func CoerceItemType(s string) ItemType {
	switch ItemType(s) {
	case ItemWork, ItemBreak, ItemMeeting:
		return ItemType(s)
	default:
		return ItemWork
	}
}

// HabitFrequency is how often a recurring habit repeats.
type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
)

// TimeOfDay is a coarse preferred slot for a habit.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)
