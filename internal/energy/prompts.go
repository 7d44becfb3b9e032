package energy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avowell/daybreak/internal/domain"
)

// energySystemPrompt instructs the model to narrate an energy analysis.
// The parsed payload is still validated; this contract is cooperative only.
const energySystemPrompt = `You are an energy-pattern coach for a personal productivity app called Daybreak.
You will receive a user's hourly energy averages (1-5 scale) and their computed peak, moderate, and low hours.

You must output ONLY a JSON object with these exact fields:
- insights: array of 3-4 short observation strings about the user's energy pattern
- tips: array of 3-4 concrete scheduling tips
- focus_start_hour: integer 0-23, start of the recommended deep-focus window
- focus_end_hour: integer 0-23, end of the recommended deep-focus window
- break_frequency_min: integer, recommended minutes between breaks

CRITICAL RULES:
1. Ground every insight in the provided averages; do not invent hours or values
2. The focus window must fall inside the peak hours
3. Use strict JSON numeric literals and output ONLY the JSON object, no markdown`

// composeEnergyPrompt renders the computed analysis for the model.
// Deterministic and free of I/O.
func composeEnergyPrompt(analysis *domain.EnergyAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Energy analysis over %d samples.\n\nHourly averages (1-5):\n", analysis.SampleCount)
	hours := make([]int, 0, len(analysis.HourlyAverages))
	for h := range analysis.HourlyAverages {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		fmt.Fprintf(&b, "- %02d:00 -> %.1f\n", h, analysis.HourlyAverages[h])
	}

	fmt.Fprintf(&b, "\nPeak hours: %v\nModerate hours: %v\nLow hours: %v\n",
		analysis.PeakHours, analysis.ModerateHours, analysis.LowHours)
	b.WriteString("\nDescribe the pattern and recommend a focus window and break rhythm.")
	return b.String()
}
