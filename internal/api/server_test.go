package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthaplan/engine/internal/calculation"
	"github.com/arthaplan/engine/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	now := func() time.Time { return time.Date(2026, 1, 17, 10, 30, 0, 0, time.UTC) }
	return NewServer(calculation.NewEngineWithDefaults(), logger, now)
}

func exampleJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(config.ExampleSnapshot())
	require.NoError(t, err)
	return string(data)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(exampleJSON(t)))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AsOf   string `json:"as_of"`
		Result struct {
			TimeMetrics struct {
				RetirementAge int `json:"retirement_age"`
			} `json:"time_metrics"`
			Summary map[string]any `json:"summary"`
			Trace   []any          `json:"trace"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-01-17", resp.AsOf)
	assert.Equal(t, 60, resp.Result.TimeMetrics.RetirementAge)
	assert.Contains(t, resp.Result.Summary, "net_worth")
	assert.NotEmpty(t, resp.Result.Trace)
}

func TestAnalyzeEndpointAsOfOverride(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze?as_of=2030-06-01", strings.NewReader(exampleJSON(t)))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AsOf string `json:"as_of"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2030-06-01", resp.AsOf)
}

func TestAnalyzeEndpointBadAsOf(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze?as_of=June", strings.NewReader(exampleJSON(t)))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointMalformedBody(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointValidationErrors(t *testing.T) {
	srv := newTestServer(t)
	snap := config.ExampleSnapshot()
	snap.UserProfile.Primary.LifeExpectancy = 30
	snap.Goals[0].PersonName = "Nobody"
	body, err := json.Marshal(snap)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error      string `json:"error"`
		Violations []struct {
			Field string `json:"field"`
		} `json:"violations"`
		References []struct {
			GoalID string `json:"goal_id"`
		} `json:"references"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Violations)
	require.Len(t, resp.References, 1)
	assert.Equal(t, "goal-edu-anika", resp.References[0].GoalID)
}

func TestExampleEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/example", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Contains(t, snap, "user_profile")
	assert.Contains(t, snap, "assumptions")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
