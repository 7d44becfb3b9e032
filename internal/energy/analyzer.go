package energy

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/llm"
	"github.com/avowell/daybreak/internal/repository"
)

// bandSize is how many hours go into the peak and low bands.
const bandSize = 4

// Analyzer turns self-reported energy samples into an hourly-banded analysis
// with narrative insights. Like the planner, it has a model path and a
// deterministic fallback; the bands themselves are always computed locally.
type Analyzer struct {
	samples repository.EnergyRepo
	client  llm.Client
	log     zerolog.Logger
}

// NewAnalyzer creates an Analyzer. A nil client disables model insights.
func NewAnalyzer(samples repository.EnergyRepo, client llm.Client, log zerolog.Logger) *Analyzer {
	return &Analyzer{samples: samples, client: client, log: log}
}

// Analyze computes a user's energy analysis. With fewer than three samples
// the analysis is refused up front: the result carries InsufficientData and
// a human message instead of empty bands posing as a finding.
func (a *Analyzer) Analyze(ctx context.Context, userID string) (*domain.EnergyAnalysis, error) {
	samples, err := a.samples.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading energy samples: %w", err)
	}

	if len(samples) < domain.MinEnergySamples {
		return &domain.EnergyAnalysis{
			InsufficientData: true,
			SampleCount:      len(samples),
			Message: fmt.Sprintf("Need at least %d energy samples for analysis; have %d. Keep logging your energy levels.",
				domain.MinEnergySamples, len(samples)),
		}, nil
	}

	averages := HourlyAverages(samples)
	peak, moderate, low := BandHours(averages)

	analysis := &domain.EnergyAnalysis{
		SampleCount:    len(samples),
		PeakHours:      peak,
		ModerateHours:  moderate,
		LowHours:       low,
		HourlyAverages: averages,
	}

	if insights, err := a.modelInsights(ctx, analysis); err == nil {
		analysis.Insights = insights.Insights
		analysis.Recommendations = insights.Recommendations
		analysis.Source = a.client.ModelVersion()
	} else {
		a.log.Debug().Err(err).Str("user_id", userID).Msg("model insights failed, using templated insights")
		analysis.Insights = fallbackInsights(analysis)
		analysis.Recommendations = fallbackRecommendations(analysis)
		analysis.Source = domain.ModelVersionFallback
	}

	return analysis, nil
}

// HourlyAverages groups samples by hour of day and averages the levels.
func HourlyAverages(samples []domain.EnergySample) map[int]float64 {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, s := range samples {
		h := s.RecordedAt.Hour()
		sums[h] += float64(s.Level)
		counts[h]++
	}

	averages := make(map[int]float64, len(sums))
	for h, sum := range sums {
		averages[h] = sum / float64(counts[h])
	}
	return averages
}

// BandHours partitions the sampled hours into peak, moderate and low bands by
// ranked average: the top four hours are peak, the bottom four are low, the
// remainder moderate. With few sampled hours the peak band wins ties so the
// partitions stay disjoint. Each band is sorted ascending by hour.
func BandHours(averages map[int]float64) (peak, moderate, low []int) {
	hours := make([]int, 0, len(averages))
	for h := range averages {
		hours = append(hours, h)
	}
	// Rank by average descending; equal averages rank by hour ascending so
	// the partition is deterministic.
	sort.Slice(hours, func(i, j int) bool {
		if averages[hours[i]] != averages[hours[j]] {
			return averages[hours[i]] > averages[hours[j]]
		}
		return hours[i] < hours[j]
	})

	peakN := bandSize
	if peakN > len(hours) {
		peakN = len(hours)
	}
	lowN := bandSize
	if lowN > len(hours)-peakN {
		lowN = len(hours) - peakN
	}

	peak = append([]int{}, hours[:peakN]...)
	low = append([]int{}, hours[len(hours)-lowN:]...)
	moderate = append([]int{}, hours[peakN:len(hours)-lowN]...)

	sort.Ints(peak)
	sort.Ints(moderate)
	sort.Ints(low)
	return peak, moderate, low
}

// modelInsightsResult is the validated shape of the model's insight payload.
type modelInsightsResult struct {
	Insights        []string
	Recommendations domain.EnergyRecommendations
}

func (a *Analyzer) modelInsights(ctx context.Context, analysis *domain.EnergyAnalysis) (*modelInsightsResult, error) {
	if a.client == nil {
		return nil, fmt.Errorf("%w: no client configured", llm.ErrUnavailable)
	}

	payload, err := a.client.GenerateJSON(ctx, llm.GenerateRequest{
		Task:         llm.TaskEnergy,
		SystemPrompt: energySystemPrompt,
		UserPrompt:   composeEnergyPrompt(analysis),
	})
	if err != nil {
		return nil, err
	}
	return parseInsightsPayload(payload)
}

// parseInsightsPayload validates the untrusted insight payload. Unlike the
// schedule validator there is nothing to coerce here; a payload without
// usable insights and recommendations simply fails into the fallback.
func parseInsightsPayload(payload map[string]any) (*modelInsightsResult, error) {
	insights := stringSlice(payload["insights"])
	tips := stringSlice(payload["tips"])
	if len(insights) == 0 || len(tips) == 0 {
		return nil, fmt.Errorf("%w: insights or tips missing", llm.ErrMalformedOutput)
	}

	focusStart, ok1 := intField(payload, "focus_start_hour")
	focusEnd, ok2 := intField(payload, "focus_end_hour")
	breakFreq, ok3 := intField(payload, "break_frequency_min")
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("%w: recommendation hours missing", llm.ErrMalformedOutput)
	}

	return &modelInsightsResult{
		Insights: insights,
		Recommendations: domain.EnergyRecommendations{
			FocusStartHour:    domain.ClampInt(focusStart, 0, 23),
			FocusEndHour:      domain.ClampInt(focusEnd, 0, 23),
			BreakFrequencyMin: domain.ClampInt(breakFreq, 15, 240),
			Tips:              tips,
		},
	}, nil
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func intField(obj map[string]any, key string) (int, bool) {
	v, ok := obj[key].(float64)
	if !ok {
		return 0, false
	}
	return int(v), true
}
