package domain

import "time"

// Energy levels are self-reported on a 1-5 scale.
const (
	MinEnergyLevel = 1
	MaxEnergyLevel = 5
)

// MinEnergySamples is the threshold below which analysis is refused.
const MinEnergySamples = 3

// EnergySample is one self-reported energy reading.
type EnergySample struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RecordedAt time.Time `json:"recorded_at"`
	Level      int       `json:"level"` // 1-5
}

// EnergyRecommendations holds scheduling advice derived from energy bands.
type EnergyRecommendations struct {
	FocusStartHour    int      `json:"focus_start_hour"`
	FocusEndHour      int      `json:"focus_end_hour"`
	BreakFrequencyMin int      `json:"break_frequency_min"`
	Tips              []string `json:"tips"`
}

// EnergyAnalysis partitions the sampled hours of day into peak, moderate and
// low bands by ranked hourly average, with narrative insights attached.
// When fewer than MinEnergySamples samples exist, InsufficientData is set and
// all other fields are empty; that is an explicit result, not an error.
type EnergyAnalysis struct {
	InsufficientData bool                  `json:"insufficient_data,omitempty"`
	Message          string                `json:"message,omitempty"`
	SampleCount      int                   `json:"sample_count"`
	PeakHours        []int                 `json:"peak_hours"`
	ModerateHours    []int                 `json:"moderate_hours"`
	LowHours         []int                 `json:"low_hours"`
	HourlyAverages   map[int]float64       `json:"hourly_averages"`
	Insights         []string              `json:"insights"`
	Recommendations  EnergyRecommendations `json:"recommendations"`
	Source           string                `json:"source"` // model id or "fallback"
}
