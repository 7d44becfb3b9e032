package domain

// UserProfile holds per-user planning preferences.
type UserProfile struct {
	UserID              string `json:"user_id"`
	DisplayName         string `json:"display_name"`
	Timezone            string `json:"timezone"`
	FocusDurationMin    int    `json:"focus_duration_min"`              // optimal focus block length
	BreakDurationMin    int    `json:"break_duration_min"`              // preferred break length
	WorkStartHour       int    `json:"work_start_hour"`                 // 0-23
	WorkEndHour         int    `json:"work_end_hour"`                   // 0-23
	MostProductiveHours []int  `json:"most_productive_hours,omitempty"` // ordered, 0-23
	DistractionHours    []int  `json:"distraction_hours,omitempty"`     // 0-23
}

// Profile defaults applied when a stored value is missing or zero.
const (
	DefaultFocusDurationMin = 50
	DefaultBreakDurationMin = 5
	DefaultWorkStartHour    = 9
	DefaultWorkEndHour      = 17
)

// Normalize fills zero-valued preferences with defaults. Stored profiles
// created before a preference existed scan as zero values.
func (p *UserProfile) Normalize() {
	if p.FocusDurationMin <= 0 {
		p.FocusDurationMin = DefaultFocusDurationMin
	}
	if p.BreakDurationMin <= 0 {
		p.BreakDurationMin = DefaultBreakDurationMin
	}
	if p.WorkStartHour <= 0 || p.WorkStartHour > 23 {
		p.WorkStartHour = DefaultWorkStartHour
	}
	if p.WorkEndHour <= 0 || p.WorkEndHour > 23 {
		p.WorkEndHour = DefaultWorkEndHour
	}
}
