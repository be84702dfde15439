// Package client is the data-access layer for the timesheet backend API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

// DefaultBaseURL is where the backend listens when run locally.
const DefaultBaseURL = "http://localhost:5000"

// Session identifies the logged-in user. It is passed explicitly to every
// call that needs authentication.
type Session struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// NetworkError reports a request that could not complete or came back with
// a non-success status. Message carries the server's error text when present.
type NetworkError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: backend returned status %d: %s", e.Op, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("%s: backend returned status %d", e.Op, e.StatusCode)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Client talks to the timesheet backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var sess Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, "/login", Session{}, body, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// FetchAll returns every daily record.
func (c *Client) FetchAll(ctx context.Context, sess Session) ([]model.DailyRecord, error) {
	var records []model.DailyRecord
	if err := c.do(ctx, "fetch timesheets", http.MethodGet, "/timesheets", sess, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchWeek returns the logged days of one week.
func (c *Client) FetchWeek(ctx context.Context, sess Session, week int) (model.WeekDays, error) {
	var days model.WeekDays
	path := fmt.Sprintf("/timesheets/week/%d", week)
	if err := c.do(ctx, "fetch weekly timesheet", http.MethodGet, path, sess, nil, &days); err != nil {
		return model.WeekDays{}, err
	}
	return days, nil
}

// AddTask logs a new task on date and returns the updated day.
func (c *Client) AddTask(ctx context.Context, sess Session, date string, form timesheet.TaskForm) (model.DailyRecord, error) {
	var rec model.DailyRecord
	path := fmt.Sprintf("/timesheets/%s/tasks", url.PathEscape(date))
	if err := c.do(ctx, "add task", http.MethodPost, path, sess, form, &rec); err != nil {
		return model.DailyRecord{}, err
	}
	return rec, nil
}

// EditTask replaces a task on date and returns the updated day.
func (c *Client) EditTask(ctx context.Context, sess Session, date, taskID string, form timesheet.TaskForm) (model.DailyRecord, error) {
	var rec model.DailyRecord
	path := fmt.Sprintf("/timesheets/%s/tasks/%s", url.PathEscape(date), url.PathEscape(taskID))
	if err := c.do(ctx, "update task", http.MethodPut, path, sess, form, &rec); err != nil {
		return model.DailyRecord{}, err
	}
	return rec, nil
}

// DeleteTask removes a task from a record and returns the updated day.
func (c *Client) DeleteTask(ctx context.Context, sess Session, recordID, taskID string) (model.DailyRecord, error) {
	var rec model.DailyRecord
	path := fmt.Sprintf("/timesheets/%s/tasks/%s", url.PathEscape(recordID), url.PathEscape(taskID))
	if err := c.do(ctx, "delete task", http.MethodDelete, path, sess, nil, &rec); err != nil {
		return model.DailyRecord{}, err
	}
	return rec, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, sess Session, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", sess.Token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &NetworkError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}
