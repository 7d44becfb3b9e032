package domain

import "time"

// Habit is a recurring activity the user wants placed into daily plans.
type Habit struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Title         string         `json:"title"`
	PreferredTime TimeOfDay      `json:"preferred_time"`
	DurationMin   int            `json:"duration_min"`
	Frequency     HabitFrequency `json:"frequency"`
	Active        bool           `json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
}
