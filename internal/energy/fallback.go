package energy

import (
	"fmt"

	"github.com/avowell/daybreak/internal/domain"
)

// fallbackInsights synthesizes observations purely from the computed bands.
func fallbackInsights(analysis *domain.EnergyAnalysis) []string {
	var insights []string

	if len(analysis.PeakHours) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Your energy peaks around %s; that is your best window for demanding work.",
			hourRangeLabel(analysis.PeakHours)))
	}
	if len(analysis.LowHours) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Energy dips around %s; consider a break or lighter tasks then.",
			hourRangeLabel(analysis.LowHours)))
	}
	if len(analysis.ModerateHours) > 0 {
		insights = append(insights, fmt.Sprintf(
			"Hours like %s show steady mid-level energy, a good fit for routine work.",
			hourRangeLabel(analysis.ModerateHours)))
	}
	insights = append(insights, fmt.Sprintf(
		"Based on %d logged samples; more samples will sharpen this picture.",
		analysis.SampleCount))

	return insights
}

// fallbackRecommendations derives a focus window and break rhythm from the
// bands alone.
func fallbackRecommendations(analysis *domain.EnergyAnalysis) domain.EnergyRecommendations {
	focusStart, focusEnd := 9, 12
	if len(analysis.PeakHours) > 0 {
		focusStart = analysis.PeakHours[0]
		focusEnd = analysis.PeakHours[len(analysis.PeakHours)-1] + 1
		if focusEnd > 23 {
			focusEnd = 23
		}
	}

	// Shorter break intervals when many hours run low.
	breakFreq := 60
	if len(analysis.LowHours) >= len(analysis.PeakHours) && len(analysis.LowHours) > 0 {
		breakFreq = 45
	}

	tips := []string{
		fmt.Sprintf("Schedule your hardest task between %02d:00 and %02d:00.", focusStart, focusEnd),
		fmt.Sprintf("Take a short break roughly every %d minutes.", breakFreq),
		"Keep meetings and routine work out of your peak hours.",
	}
	if len(analysis.LowHours) > 0 {
		tips = append(tips, fmt.Sprintf(
			"Avoid starting deep work around %s.", hourRangeLabel(analysis.LowHours)))
	}

	return domain.EnergyRecommendations{
		FocusStartHour:    focusStart,
		FocusEndHour:      focusEnd,
		BreakFrequencyMin: breakFreq,
		Tips:              tips,
	}
}

func hourRangeLabel(hours []int) string {
	if len(hours) == 1 {
		return fmt.Sprintf("%02d:00", hours[0])
	}
	return fmt.Sprintf("%02d:00-%02d:00", hours[0], hours[len(hours)-1])
}
