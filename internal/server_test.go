package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/mesocycles/internal/config"
	"github.com/2beens/mesocycles/internal/misc"
	"github.com/2beens/mesocycles/internal/telemetry/metrics"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/catalog"
	"github.com/2beens/mesocycles/internal/training/storage/memory"
)

func newTestRouter(t *testing.T, allowedOrigins ...string) *mux.Router {
	t.Helper()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	s := &Server{
		config: &config.Config{
			Store:               config.StoreMemory,
			AllowedOrigins:      allowedOrigins,
			ExerciseCacheSizeMB: 1,
		},
		versionInfo:    "test-version",
		store:          memory.NewStore(),
		clock:          func() time.Time { return time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC) },
		metricsManager: metrics.NewTestManager(),
	}
	r, _ := s.routerSetup()
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestServer_Health(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var health misc.HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, config.StoreMemory, health.Store)
	assert.Empty(t, health.Postgres)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = doJSON(t, r, http.MethodGet, "/version", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test-version", rr.Body.String())

	rr = doJSON(t, r, http.MethodGet, "/no-such-thing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_MesocycleFlow(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/exercises", training.Exercise{Name: "deadlift", WeightIncrement: 5})
	require.Equal(t, http.StatusCreated, rr.Code)
	var deadlift training.Exercise
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deadlift))

	rr = doJSON(t, r, http.MethodPost, "/plans", catalog.PlanInput{
		Name:          "pull",
		DurationWeeks: 4,
		Days: []catalog.DayInput{{DayOfWeek: 1, Name: "monday", Exercises: []training.PlanDayExercise{
			{ExerciseID: deadlift.ID, Sets: 3, Reps: 5, Weight: 150},
		}}},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var plan catalog.PlanDetails
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &plan))

	createReq := map[string]any{"planId": plan.Plan.ID, "startDate": "2026-01-05"}
	rr = doJSON(t, r, http.MethodPost, "/mesocycles", createReq)
	require.Equal(t, http.StatusCreated, rr.Code)
	var mesocycle training.Mesocycle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &mesocycle))
	assert.Equal(t, training.MesocycleStatusActive, mesocycle.Status)

	rr = doJSON(t, r, http.MethodPost, "/mesocycles", createReq)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/mesocycles/active", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, r, http.MethodGet, "/workouts/today", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/plans/%d", plan.Plan.ID), nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestServer_Cors(t *testing.T) {
	r := newTestRouter(t, "https://app.mesocycles.test")

	req := httptest.NewRequest(http.MethodGet, "/exercises", nil)
	req.Header.Set("Origin", "https://elsewhere.test")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/exercises", nil)
	req.Header.Set("Origin", "https://app.mesocycles.test")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
