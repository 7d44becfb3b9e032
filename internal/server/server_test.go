package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avowell/daybreak/internal/db"
	"github.com/avowell/daybreak/internal/domain"
	"github.com/avowell/daybreak/internal/energy"
	"github.com/avowell/daybreak/internal/planner"
	"github.com/avowell/daybreak/internal/repository"
	"github.com/avowell/daybreak/internal/testutil"
)

// newTestServer wires a full server over an in-memory database. No generation
// client is configured, so every plan comes from the fallback path.
func newTestServer(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)

	profiles := repository.NewSQLiteUserProfileRepo(database)
	aggregates := repository.NewSQLiteAggregateRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	goals := repository.NewSQLiteGoalRepo(database)
	habits := repository.NewSQLiteHabitRepo(database)
	plans := repository.NewSQLitePlanRepo(database)
	samples := repository.NewSQLiteEnergyRepo(database)

	aggregator := planner.NewAggregator(profiles, aggregates, tasks, goals, habits)
	svc := planner.NewService(aggregator, plans, nil, zerolog.Nop())
	analyzer := energy.NewAnalyzer(samples, nil, zerolog.Nop())

	srv := New(Deps{
		Planner:  svc,
		Analyzer: analyzer,
		Users:    repository.NewSQLiteUserRepo(database),
		Tasks:    tasks,
		Goals:    goals,
		Habits:   habits,
		Profiles: profiles,
		Plans:    plans,
		Energy:   samples,
		UoW:      db.NewSQLiteUnitOfWork(database),
		Log:      zerolog.Nop(),
	})
	return srv.Router(), database
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateUser(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/api/users", gin.H{
		"id": "u1", "display_name": "Avery", "timezone": "Europe/Berlin",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "u1", decodeBody(t, w)["id"])

	// Registration seeds a default profile alongside the user row.
	w = doJSON(t, router, http.MethodGet, "/api/users/u1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeBody(t, w)
	assert.Equal(t, "Avery", profile["display_name"])
	assert.Equal(t, "Europe/Berlin", profile["timezone"])
	assert.Equal(t, float64(50), profile["focus_duration_min"])

	w = doJSON(t, router, http.MethodPost, "/api/users", gin.H{"id": "u1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/users", gin.H{"id": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeneratePlan_FallbackPath(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/tasks", gin.H{
		"title": "Prepare slides", "priority": "high", "estimate_min": 45,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/users/u1/plan", nil)
	require.Equal(t, http.StatusOK, w.Code)

	plan := decodeBody(t, w)
	assert.Equal(t, "fallback", plan["model_version"])
	schedule, ok := plan["schedule"].([]any)
	require.True(t, ok)
	require.Len(t, schedule, 1)
	item := schedule[0].(map[string]any)
	assert.Equal(t, "Prepare slides", item["task"])
	assert.Equal(t, "09:00", item["time"])
	assert.Equal(t, float64(45), item["duration"])
}

func TestGetPlan(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/plan", nil)
	require.Equal(t, http.StatusOK, w.Code)

	today := time.Now().Format("2006-01-02")
	w = doJSON(t, router, http.MethodGet, "/api/users/u1/plan?date="+today, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, today, decodeBody(t, w)["plan_date"])

	w = doJSON(t, router, http.MethodGet, "/api/users/u1/plan?date=1999-01-01", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAppendEnergySample(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/energy", gin.H{"level": 4})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(4), decodeBody(t, w)["level"])

	for _, level := range []int{0, 6, -1} {
		w = doJSON(t, router, http.MethodPost, "/api/users/u1/energy", gin.H{"level": level})
		assert.Equal(t, http.StatusBadRequest, w.Code, "level %d", level)
	}
}

func TestEnergyAnalysis_InsufficientDataIsOK(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodGet, "/api/users/u1/energy/analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["insufficient_data"])
}

func TestEnergyAnalysis_FallbackInsights(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	for i, level := range []int{5, 3, 1} {
		recordedAt := time.Date(2026, 8, 24, 8+i*3, 0, 0, 0, time.UTC)
		w := doJSON(t, router, http.MethodPost, "/api/users/u1/energy", gin.H{
			"level": level, "recorded_at": recordedAt.Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/api/users/u1/energy/analysis", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "fallback", body["source"])
	assert.NotEmpty(t, body["insights"])
}

func TestTaskLifecycle(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/tasks", gin.H{"title": "Review PR"})
	require.Equal(t, http.StatusCreated, w.Code)
	taskID := decodeBody(t, w)["id"].(string)

	w = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/users/u1/tasks/%s/complete", taskID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/u1/tasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/users/u1/tasks?include_completed=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []domain.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	w = doJSON(t, router, http.MethodPost, "/api/users/u1/tasks/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTask_RejectsBlankTitle(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/tasks", gin.H{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateHabit_CoercesEnums(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/habits", gin.H{
		"title": "Stretch", "preferred_time": "midnight", "frequency": "hourly",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "morning", body["preferred_time"])
	assert.Equal(t, "daily", body["frequency"])
	assert.Equal(t, float64(15), body["duration_min"])
}

func TestProfileRoundTrip(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodGet, "/api/users/u1/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/users/u1/profile", gin.H{
		"display_name":          "Avery",
		"focus_duration_min":    25,
		"most_productive_hours": []int{7, 8},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/u1/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Avery", body["display_name"])
	assert.Equal(t, float64(25), body["focus_duration_min"])
	// Unspecified durations are filled with defaults on write.
	assert.Equal(t, float64(5), body["break_duration_min"])
}

func TestCreateGoalAndList(t *testing.T) {
	router, database := newTestServer(t)
	testutil.SeedUser(t, database, "u1")

	w := doJSON(t, router, http.MethodPost, "/api/users/u1/goals", gin.H{
		"title": "Learn sign language", "progress_pct": 12.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/users/u1/goals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var goals []domain.Goal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, "Learn sign language", goals[0].Title)
	assert.InDelta(t, 12.5, goals[0].ProgressPct, 1e-9)
}
