//go:build integration_test || all_tests

package integration_testing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/2beens/mesocycles/internal/misc"
	"github.com/2beens/mesocycles/internal/training"
	"github.com/2beens/mesocycles/internal/training/catalog"
	"github.com/2beens/mesocycles/internal/training/workouts"

	"github.com/stretchr/testify/suite"
)

type ServerTestSuite struct {
	suite.Suite

	env    *env
	client *http.Client
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupSuite() {
	e, err := newEnv(context.Background())
	s.Require().NoError(err)
	s.env = e
	s.client = &http.Client{Timeout: 10 * time.Second}

	s.Require().Eventually(func() bool {
		resp, err := s.client.Get(serverEndpoint + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 10*time.Second, 200*time.Millisecond)
}

func (s *ServerTestSuite) TearDownSuite() {
	if s.env != nil {
		s.env.cleanup()
	}
}

func (s *ServerTestSuite) do(method, path string, body, out any) int {
	var reqBody io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *ServerTestSuite) TestHealth() {
	var health misc.HealthResponse
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", nil, &health))
	s.Equal("ok", health.Postgres)
	s.Equal("ok", health.Redis)
}

func (s *ServerTestSuite) TestMesocycleLifecycle() {
	var squat training.Exercise
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/exercises",
		training.Exercise{Name: "front squat", WeightIncrement: 2.5}, &squat))

	var plan catalog.PlanDetails
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/plans", catalog.PlanInput{
		Name:          "legs",
		DurationWeeks: 2,
		Days: []catalog.DayInput{{DayOfWeek: 3, Name: "wednesday", Exercises: []training.PlanDayExercise{
			{ExerciseID: squat.ID, Sets: 2, Reps: 5, Weight: 100},
		}}},
	}, &plan))

	startDate := training.DateOnly(time.Now()).Format(time.DateOnly)
	var mesocycle training.Mesocycle
	s.Require().Equal(http.StatusCreated, s.do(http.MethodPost, "/mesocycles",
		map[string]any{"planId": plan.Plan.ID, "startDate": startDate}, &mesocycle))
	defer s.do(http.MethodPut, fmt.Sprintf("/mesocycles/%d/cancel", mesocycle.ID), nil, nil)

	s.Equal(http.StatusConflict, s.do(http.MethodPost, "/mesocycles",
		map[string]any{"planId": plan.Plan.ID, "startDate": startDate}, nil))

	var today workouts.WorkoutDetails
	s.Require().Equal(http.StatusOK, s.do(http.MethodGet, "/workouts/today", nil, &today))
	s.Require().Len(today.Exercises, 1)
	s.Require().Len(today.Exercises[0].Sets, 2)

	var started workouts.WorkoutDetails
	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, fmt.Sprintf("/workouts/%d/start", today.Workout.ID), nil, &started))
	s.Equal(training.WorkoutStatusInProgress, started.Workout.Status)

	for _, set := range started.Exercises[0].Sets {
		var logged training.WorkoutSet
		s.Require().Equal(http.StatusOK, s.do(http.MethodPut, fmt.Sprintf("/workout-sets/%d/log", set.ID),
			map[string]any{"actualReps": 6, "actualWeight": 100.0}, &logged))
		s.Equal(training.SetStatusCompleted, logged.Status)
	}

	var completed training.Workout
	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, fmt.Sprintf("/workouts/%d/complete", today.Workout.ID), nil, &completed))
	s.Equal(training.WorkoutStatusCompleted, completed.Status)
	s.NotNil(completed.CompletedAt)

	s.Equal(http.StatusConflict, s.do(http.MethodDelete, fmt.Sprintf("/plans/%d", plan.Plan.ID), nil, nil))
}
