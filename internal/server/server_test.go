package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/server"
	"github.com/bryan-cox/ticktock/internal/service"
	"github.com/bryan-cox/ticktock/internal/store/yamlstore"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := yamlstore.Open(filepath.Join(t.TempDir(), "timesheets.yml"))
	require.NoError(t, err)
	require.NoError(t, st.SaveUser(context.Background(), model.User{ID: "u1", Email: "demo@ticktock.dev", Password: "secret"}))

	srv := httptest.NewServer(server.New(
		service.NewTimesheetService(st, logger),
		service.NewAuthService(st, logger),
		logger,
	))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, http.MethodPost, srv.URL+"/login", "", server.LoginRequest{Email: "demo@ticktock.dev", Password: "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out server.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func decodeRecord(t *testing.T, resp *http.Response) model.DailyRecord {
	t.Helper()
	var rec model.DailyRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/login", "", server.LoginRequest{Email: "demo@ticktock.dev", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTimesheets_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/timesheets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/timesheets", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)
	form := timesheet.TaskForm{Project: "Project A", Type: "Testing", Description: "write tests", Hours: 3}

	resp := do(t, http.MethodPost, srv.URL+"/timesheets/2025-01-06/tasks", token, form)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rec := decodeRecord(t, resp)
	require.Len(t, rec.Tasks, 1)
	taskID := rec.Tasks[0].ID

	form.Hours = 5
	resp = do(t, http.MethodPut, srv.URL+"/timesheets/2025-01-06/tasks/"+taskID, token, form)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, decodeRecord(t, resp).Tasks[0].Hours)

	resp = do(t, http.MethodGet, srv.URL+"/timesheets/week/2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var days model.WeekDays
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&days))
	require.Len(t, days.Dates, 1)

	resp = do(t, http.MethodDelete, srv.URL+"/timesheets/"+rec.ID+"/tasks/"+taskID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeRecord(t, resp).Tasks)

	resp = do(t, http.MethodDelete, srv.URL+"/timesheets/"+rec.ID+"/tasks/"+taskID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAddTask_ValidationMessage(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := do(t, http.MethodPost, srv.URL+"/timesheets/2025-01-06/tasks", token, timesheet.TaskForm{Project: "Project A"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, timesheet.ValidationMessage, body["error"])
}

func TestGetWeek_Errors(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := do(t, http.MethodGet, srv.URL+"/timesheets/week/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/timesheets/week/7", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
