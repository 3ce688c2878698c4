//go:build integration_test || all_tests

package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/gymlogger/internal/gymlog/exercises"
	"github.com/2beens/gymlogger/internal/gymlog/logs"
	"github.com/2beens/gymlogger/internal/gymlog/progress"
	"github.com/2beens/gymlogger/internal/gymlog/schedule"
	"github.com/2beens/gymlogger/internal/gymlog/settings"
	"github.com/2beens/gymlogger/internal/middleware"
)

func (s *IntegrationTestSuite) serverHealthy() error {
	resp, err := http.Get(serverEndpoint + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health status: %d", resp.StatusCode)
	}
	return nil
}

// do sends an authorized request; body, when not nil, is sent as JSON
func (s *IntegrationTestSuite) do(method, path string, body any) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	s.Require().NoError(err)
	req.Header.Set(middleware.TokenHeader, testToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) addExercise(e exercises.Exercise) exercises.Exercise {
	status, body := s.do("POST", "/exercises", e)
	s.Require().Equal(http.StatusCreated, status, string(body))
	var added exercises.Exercise
	s.Require().NoError(json.Unmarshal(body, &added))
	return added
}

func (s *IntegrationTestSuite) countRows(query string, args ...any) int {
	var n int
	s.Require().NoError(s.DB.QueryRow(query, args...).Scan(&n))
	return n
}

func (s *IntegrationTestSuite) TestUnauthorized() {
	resp, err := http.Get(serverEndpoint + "/logs/weeks")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestDaysAreSeeded() {
	status, body := s.do("GET", "/days", nil)
	s.Require().Equal(http.StatusOK, status)

	var days []exercises.Day
	s.Require().NoError(json.Unmarshal(body, &days))
	s.Require().Len(days, 7)
	s.Equal("Monday", days[0].Name)
	s.Equal("Sunday", days[6].Name)
}

func (s *IntegrationTestSuite) TestEmptyStore() {
	status, body := s.do("GET", "/logs/weeks", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("null", string(body))

	squat := s.addExercise(exercises.Exercise{DayID: 0, Name: "Squat", Weight: 100, Increment: 5, OrderNum: 1})
	status, body = s.do("GET", "/exercises/"+strconv.Itoa(squat.ID)+"/progress", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("null", string(body))
}

func (s *IntegrationTestSuite) TestSessionLifecycle() {
	squat := s.addExercise(exercises.Exercise{DayID: 0, Name: "Squat", Weight: 100, Increment: 5, OrderNum: 1})
	curl := s.addExercise(exercises.Exercise{DayID: 0, Name: "Curl", IsOneArm: true, Weight: 20, Increment: 2, OrderNum: 2})

	// squat reaches the ceiling on every set, curl misses one on the left arm
	draft := map[string]any{
		strconv.Itoa(squat.ID): map[string]any{
			"left":  []any{"", "", "", ""},
			"right": []any{10, 12, "10", 11},
		},
		strconv.Itoa(curl.ID): map[string]any{
			"left":  []any{10, 10, 9, 10},
			"right": []any{10, 10, 10, ""},
		},
	}
	status, body := s.do("POST", "/logs/session", draft)
	s.Require().Equal(http.StatusCreated, status, string(body))

	var result logs.SessionResult
	s.Require().NoError(json.Unmarshal(body, &result))
	s.Equal(11, result.Written)
	s.Require().Len(result.Progressed, 1)
	s.Equal(logs.WeightBump{ExerciseID: squat.ID, From: 100, To: 105}, result.Progressed[0])

	s.Equal(4, s.countRows(`SELECT COUNT(*) FROM log WHERE exercise_id = $1 AND weight = 105`, squat.ID))
	s.Equal(7, s.countRows(`SELECT COUNT(*) FROM log WHERE exercise_id = $1 AND weight = 20`, curl.ID))

	// a second session on the same day is refused and changes nothing
	status, body = s.do("POST", "/logs/session", draft)
	s.Require().Equal(http.StatusConflict, status, string(body))
	s.Equal(11, s.countRows(`SELECT COUNT(*) FROM log WHERE exercise_id IN ($1, $2)`, squat.ID, curl.ID))
	s.Equal(105.0, s.exerciseWeight(squat.ID))

	status, body = s.do("GET", "/exercises/"+strconv.Itoa(squat.ID), nil)
	s.Require().Equal(http.StatusOK, status)
	var bumped exercises.Exercise
	s.Require().NoError(json.Unmarshal(body, &bumped))
	s.Equal(105.0, bumped.Weight)

	// browse back to the session
	status, body = s.do("GET", "/logs/weeks", nil)
	s.Require().Equal(http.StatusOK, status)
	var weeks []logs.LoggedWeek
	s.Require().NoError(json.Unmarshal(body, &weeks))
	s.Require().Len(weeks, 1)

	status, body = s.do("GET", "/logs/weeks/"+weeks[0].StartDate+"/days", nil)
	s.Require().Equal(http.StatusOK, status)
	var days []*logs.LoggedDay
	s.Require().NoError(json.Unmarshal(body, &days))
	var date string
	for _, d := range days {
		if d != nil {
			date = d.Date
		}
	}
	s.Require().NotEmpty(date)
	s.Equal(result.CreatedAt.UTC().Format(time.DateOnly), date)

	status, body = s.do("GET", "/logs/days/"+date+"/exercises/"+strconv.Itoa(curl.ID), nil)
	s.Require().Equal(http.StatusOK, status)
	var identity logs.DayLogIdentity
	s.Require().NoError(json.Unmarshal(body, &identity))
	s.Require().Len(identity.Left, 4)
	s.Require().Len(identity.Right, 4)
	s.IsType(logs.Unsaved{}, identity.Right[3])

	// fix the 9; the never entered right set stays unsaved
	identity.Left[2] = logs.Saved{ID: identity.Left[2].(logs.Saved).ID, Reps: 10}
	identity.Right[3] = logs.Unsaved{Reps: 10}
	status, body = s.do("PUT", "/logs", identity)
	s.Require().Equal(http.StatusOK, status, string(body))
	s.Equal(7, s.countRows(`SELECT COUNT(*) FROM log WHERE exercise_id = $1 AND reps = 10`, curl.ID))

	// progress of the current week
	status, body = s.do("GET", "/exercises/"+strconv.Itoa(curl.ID)+"/progress", nil)
	s.Require().Equal(http.StatusOK, status)
	var p progress.Progress
	s.Require().NoError(json.Unmarshal(body, &p))
	s.Require().Len(p.Datasets, 2)
	last := progress.WindowWeeks - 1
	s.Require().NotNil(p.Datasets[0].Data[last].Value)
	s.Equal(800.0, *p.Datasets[0].Data[last].Value)
	s.Equal(600.0, *p.Datasets[1].Data[last].Value)

	// destroy the curl logs of that day
	status, body = s.do("GET", "/logs/days/"+date+"/exercises/"+strconv.Itoa(curl.ID), nil)
	s.Require().Equal(http.StatusOK, status)
	s.Require().NoError(json.Unmarshal(body, &identity))
	status, body = s.do("POST", "/logs/delete", identity)
	s.Require().Equal(http.StatusOK, status, string(body))
	s.Zero(s.countRows(`SELECT COUNT(*) FROM log WHERE exercise_id = $1`, curl.ID))
	s.Equal(4, s.countRows(`SELECT COUNT(*) FROM log WHERE exercise_id = $1`, squat.ID))
}

func (s *IntegrationTestSuite) TestDeleteExerciseCascadesLogs() {
	bench := s.addExercise(exercises.Exercise{DayID: 2, Name: "Bench", Weight: 60, Increment: 2.5, OrderNum: 3})
	status, body := s.do("POST", "/logs/session?auto_progression=false", map[string]any{
		strconv.Itoa(bench.ID): map[string]any{"right": []any{12, 12, 12, 12}},
	})
	s.Require().Equal(http.StatusCreated, status, string(body))
	s.Equal(60.0, s.exerciseWeight(bench.ID))

	status, _ = s.do("DELETE", "/exercises/"+strconv.Itoa(bench.ID), nil)
	s.Require().Equal(http.StatusOK, status)
	s.Zero(s.countRows(`SELECT COUNT(*) FROM log WHERE exercise_id = $1`, bench.ID))
}

func (s *IntegrationTestSuite) exerciseWeight(id int) float64 {
	var w float64
	s.Require().NoError(s.DB.QueryRow(`SELECT weight FROM exercise WHERE id = $1`, id).Scan(&w))
	return w
}

func (s *IntegrationTestSuite) TestRestDaysAndToday() {
	var rest settings.RestDays
	rest[2] = true
	status, body := s.do("PUT", "/settings/rest-days", settings.RestDaysPayload{RestDays: rest})
	s.Require().Equal(http.StatusOK, status, string(body))

	status, body = s.do("GET", "/settings/rest-days", nil)
	s.Require().Equal(http.StatusOK, status)
	var payload settings.RestDaysPayload
	s.Require().NoError(json.Unmarshal(body, &payload))
	s.Equal(1<<2, payload.Mask)
	s.True(payload.RestDays[2])
	s.True(payload.RestDays[5])
	s.True(payload.RestDays[6])

	status, body = s.do("GET", "/schedule/today", nil)
	s.Require().Equal(http.StatusOK, status)
	var today schedule.Today
	s.Require().NoError(json.Unmarshal(body, &today))
	weekday := (int(time.Now().UTC().Weekday()) + 6) % 7
	s.Equal(weekday, today.Day.ID)
	s.Equal(payload.RestDays[weekday], today.IsRestDay)
}
