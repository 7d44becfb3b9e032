package energy

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/llm"
	"github.com/avowell/daybreak/internal/repository"
	"github.com/avowell/daybreak/internal/testutil"
)

type fakeClient struct {
	payload map[string]any
	err     error
	model   string
}

func (f *fakeClient) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.GenerateResponse{Text: "{}", Model: f.model}, nil
}

func (f *fakeClient) GenerateJSON(ctx context.Context, req llm.GenerateRequest) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeClient) ModelVersion() string { return f.model }

func seedSamples(t *testing.T, repo repository.EnergyRepo, userID string, hourLevels map[int]int) {
	t.Helper()
	for hour, level := range hourLevels {
		require.NoError(t, repo.Append(context.Background(), testutil.NewTestSample(userID, hour, level)))
	}
}

func validInsightsPayload() map[string]any {
	return map[string]any{
		"insights":            []any{"You are a morning person."},
		"tips":                []any{"Guard your mornings.", "Nap after lunch."},
		"focus_start_hour":    float64(9),
		"focus_end_hour":      float64(12),
		"break_frequency_min": float64(50),
	}
}

func TestAnalyze_InsufficientSamples(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	samples := repository.NewSQLiteEnergyRepo(database)
	seedSamples(t, samples, "u1", map[int]int{9: 4, 15: 2})

	analyzer := NewAnalyzer(samples, nil, zerolog.Nop())
	analysis, err := analyzer.Analyze(context.Background(), "u1")

	require.NoError(t, err)
	assert.True(t, analysis.InsufficientData)
	assert.Equal(t, 2, analysis.SampleCount)
	assert.Contains(t, analysis.Message, "at least 3")
	assert.Empty(t, analysis.PeakHours)
	assert.Empty(t, analysis.Insights)
}

func TestAnalyze_FallbackInsights(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	samples := repository.NewSQLiteEnergyRepo(database)
	seedSamples(t, samples, "u1", map[int]int{9: 5, 10: 5, 11: 4, 14: 3, 15: 2, 16: 1})

	analyzer := NewAnalyzer(samples, nil, zerolog.Nop())
	analysis, err := analyzer.Analyze(context.Background(), "u1")

	require.NoError(t, err)
	assert.False(t, analysis.InsufficientData)
	assert.Equal(t, 6, analysis.SampleCount)
	assert.Equal(t, []int{9, 10, 11, 14}, analysis.PeakHours)
	assert.Equal(t, []int{15, 16}, analysis.LowHours)
	assert.Empty(t, analysis.ModerateHours)
	assert.Equal(t, domain.ModelVersionFallback, analysis.Source)
	assert.NotEmpty(t, analysis.Insights)
	assert.NotEmpty(t, analysis.Recommendations.Tips)
	assert.Equal(t, 9, analysis.Recommendations.FocusStartHour)
	assert.Equal(t, 15, analysis.Recommendations.FocusEndHour)
}

func TestAnalyze_ModelInsights(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	samples := repository.NewSQLiteEnergyRepo(database)
	seedSamples(t, samples, "u1", map[int]int{9: 5, 12: 3, 16: 1})

	client := &fakeClient{payload: validInsightsPayload(), model: "planner-1"}
	analyzer := NewAnalyzer(samples, client, zerolog.Nop())
	analysis, err := analyzer.Analyze(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, "planner-1", analysis.Source)
	assert.Equal(t, []string{"You are a morning person."}, analysis.Insights)
	assert.Equal(t, 50, analysis.Recommendations.BreakFrequencyMin)
	// Bands come from local arithmetic regardless of the model.
	assert.Equal(t, []int{9, 12, 16}, analysis.PeakHours)
}

func TestAnalyze_ModelFailureFallsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	testutil.SeedUser(t, database, "u1")
	samples := repository.NewSQLiteEnergyRepo(database)
	seedSamples(t, samples, "u1", map[int]int{9: 5, 12: 3, 16: 1})

	client := &fakeClient{err: llm.ErrTimeout, model: "planner-1"}
	analyzer := NewAnalyzer(samples, client, zerolog.Nop())
	analysis, err := analyzer.Analyze(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.ModelVersionFallback, analysis.Source)
	assert.NotEmpty(t, analysis.Insights)
}

func TestHourlyAverages(t *testing.T) {
	samples := []domain.EnergySample{
		*testutil.NewTestSample("u1", 9, 5),
		*testutil.NewTestSample("u1", 9, 3),
		*testutil.NewTestSample("u1", 14, 2),
	}

	averages := HourlyAverages(samples)

	require.Len(t, averages, 2)
	assert.InDelta(t, 4.0, averages[9], 1e-9)
	assert.InDelta(t, 2.0, averages[14], 1e-9)
}

func TestBandHours_FullPartition(t *testing.T) {
	averages := map[int]float64{
		8: 3, 9: 5, 10: 5, 11: 4, 12: 1, 13: 3, 14: 4, 15: 2, 16: 2, 17: 1,
	}

	peak, moderate, low := BandHours(averages)

	assert.Equal(t, []int{9, 10, 11, 14}, peak)
	assert.Equal(t, []int{8, 13}, moderate)
	assert.Equal(t, []int{12, 15, 16, 17}, low)
}

func TestBandHours_TiesRankByHour(t *testing.T) {
	averages := map[int]float64{7: 3, 8: 3, 9: 3, 10: 3, 11: 3}

	peak, moderate, low := BandHours(averages)

	assert.Equal(t, []int{7, 8, 9, 10}, peak)
	assert.Empty(t, moderate)
	assert.Equal(t, []int{11}, low)
}

func TestBandHours_FewHoursStayDisjoint(t *testing.T) {
	averages := map[int]float64{9: 5, 15: 2}

	peak, moderate, low := BandHours(averages)

	assert.Equal(t, []int{9, 15}, peak)
	assert.Empty(t, moderate)
	assert.Empty(t, low)
}

func TestParseInsightsPayload(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res, err := parseInsightsPayload(validInsightsPayload())
		require.NoError(t, err)
		assert.Equal(t, []string{"You are a morning person."}, res.Insights)
		assert.Equal(t, 9, res.Recommendations.FocusStartHour)
		assert.Equal(t, []string{"Guard your mornings.", "Nap after lunch."}, res.Recommendations.Tips)
	})

	t.Run("clamps out-of-range values", func(t *testing.T) {
		payload := validInsightsPayload()
		payload["focus_start_hour"] = float64(-2)
		payload["focus_end_hour"] = float64(30)
		payload["break_frequency_min"] = float64(5)

		res, err := parseInsightsPayload(payload)

		require.NoError(t, err)
		assert.Equal(t, 0, res.Recommendations.FocusStartHour)
		assert.Equal(t, 23, res.Recommendations.FocusEndHour)
		assert.Equal(t, 15, res.Recommendations.BreakFrequencyMin)
	})

	malformed := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"no insights", func(p map[string]any) { delete(p, "insights") }},
		{"empty tips", func(p map[string]any) { p["tips"] = []any{} }},
		{"insights not strings", func(p map[string]any) { p["insights"] = []any{float64(1)} }},
		{"missing break frequency", func(p map[string]any) { delete(p, "break_frequency_min") }},
		{"string hour", func(p map[string]any) { p["focus_start_hour"] = "nine" }},
	}
	for _, tc := range malformed {
		t.Run(tc.name, func(t *testing.T) {
			payload := validInsightsPayload()
			tc.mutate(payload)
			_, err := parseInsightsPayload(payload)
			assert.ErrorIs(t, err, llm.ErrMalformedOutput)
		})
	}
}

func TestFallbackRecommendations_ShorterBreaksWhenLowDominates(t *testing.T) {
	analysis := &domain.EnergyAnalysis{
		PeakHours: []int{9},
		LowHours:  []int{13, 14, 15},
	}

	recs := fallbackRecommendations(analysis)

	assert.Equal(t, 45, recs.BreakFrequencyMin)
	assert.Equal(t, 9, recs.FocusStartHour)
	assert.Equal(t, 10, recs.FocusEndHour)
}
