// Package server exposes the timesheet backend over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

// Timesheets is the set of timesheet operations the HTTP layer needs.
type Timesheets interface {
	Records(ctx context.Context) ([]model.DailyRecord, error)
	Week(ctx context.Context, week int) (model.WeekDays, error)
	AddTask(ctx context.Context, date string, form timesheet.TaskForm) (model.DailyRecord, error)
	EditTask(ctx context.Context, date, taskID string, form timesheet.TaskForm) (model.DailyRecord, error)
	DeleteTask(ctx context.Context, recordID, taskID string) (model.DailyRecord, error)
}

// Authenticator checks credentials and session tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.User, error)
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Handler serves the REST API.
type Handler struct {
	timesheets Timesheets
	auth       Authenticator
	logger     *slog.Logger
}

// LoginRequest is the JSON body for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the POST /login response body.
type LoginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// New builds the router for the timesheet API.
func New(timesheets Timesheets, auth Authenticator, logger *slog.Logger) http.Handler {
	h := &Handler{timesheets: timesheets, auth: auth, logger: logger}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(RequestLogger(logger))
	r.Get("/healthz", h.Healthz)
	r.Post("/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(RequireToken(auth))
		r.Get("/timesheets", h.ListTimesheets)
		r.Get("/timesheets/week/{week}", h.GetWeek)
		r.Post("/timesheets/{date}/tasks", h.AddTask)
		r.Put("/timesheets/{date}/tasks/{taskID}", h.EditTask)
		r.Delete("/timesheets/{id}/tasks/{taskID}", h.DeleteTask)
	})
	return r
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Email: user.Email, Token: user.Token})
}

// ListTimesheets handles GET /timesheets.
func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	records, err := h.timesheets.Records(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetWeek handles GET /timesheets/week/{week}.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 {
		writeError(w, http.StatusBadRequest, "week must be a positive integer")
		return
	}
	days, err := h.timesheets.Week(r.Context(), week)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// AddTask handles POST /timesheets/{date}/tasks.
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	var form timesheet.TaskForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.timesheets.AddTask(r.Context(), chi.URLParam(r, "date"), form)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.audit(r, "add", rec)
	writeJSON(w, http.StatusCreated, rec)
}

// EditTask handles PUT /timesheets/{date}/tasks/{taskID}.
func (h *Handler) EditTask(w http.ResponseWriter, r *http.Request) {
	var form timesheet.TaskForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rec, err := h.timesheets.EditTask(r.Context(), chi.URLParam(r, "date"), chi.URLParam(r, "taskID"), form)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.audit(r, "edit", rec)
	writeJSON(w, http.StatusOK, rec)
}

// DeleteTask handles DELETE /timesheets/{id}/tasks/{taskID}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	rec, err := h.timesheets.DeleteTask(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "taskID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.audit(r, "delete", rec)
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) audit(r *http.Request, op string, rec model.DailyRecord) {
	user, _ := UserFrom(r.Context())
	h.logger.Info("timesheet updated",
		slog.String("op", op),
		slog.String("user", user.Email),
		slog.String("record_id", rec.ID),
		slog.Int("tasks", len(rec.Tasks)),
	)
}

// fail maps domain errors onto HTTP status codes.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var (
		validation *model.ValidationError
		unauth     *model.UnauthorizedError
		recordNF   *model.RecordNotFoundError
		taskNF     *model.TaskNotFoundError
		index      *model.IndexOutOfRangeError
	)
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Message)
	case errors.As(err, &unauth):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.As(err, &recordNF), errors.As(err, &taskNF):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &index):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
