package domain

import "time"

// Goal is a longer-horizon objective with a progress percentage.
type Goal struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	ProgressPct float64    `json:"progress_pct"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}
