package domain

// DailyAggregate is a per-day performance summary. Sequences are ordered
// newest first. Used only to compute prompt averages, never by the
// fallback scheduler.
type DailyAggregate struct {
	UserID         string
	Day            string // YYYY-MM-DD
	FocusMin       int
	CompletionRate float64 // 0-1
	Satisfaction   *int    // 1-10, nil when not reported
}
