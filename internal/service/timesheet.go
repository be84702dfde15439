// Package service implements the timesheet backend's business operations on
// top of a store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/store"
	"github.com/bryan-cox/ticktock/internal/telemetry"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

// TimesheetService wraps timesheet reads and task mutations.
type TimesheetService struct {
	store  store.Store
	logger *slog.Logger

	// mu serializes read-modify-write cycles on daily records.
	mu sync.Mutex
}

func NewTimesheetService(s store.Store, logger *slog.Logger) *TimesheetService {
	return &TimesheetService{store: s, logger: logger}
}

// Records returns every daily record in date order.
func (s *TimesheetService) Records(ctx context.Context) ([]model.DailyRecord, error) {
	return s.store.ListRecords(ctx)
}

// Weeks returns the aggregated week summaries.
func (s *TimesheetService) Weeks(ctx context.Context) ([]model.WeekSummary, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return timesheet.Aggregate(records), nil
}

// Week returns the logged days of one week.
func (s *TimesheetService) Week(ctx context.Context, week int) (model.WeekDays, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return model.WeekDays{}, err
	}
	days := timesheet.RecordsForWeek(records, week)
	if len(days) == 0 {
		return model.WeekDays{}, &model.RecordNotFoundError{Key: fmt.Sprintf("week %d", week)}
	}
	return model.WeekDays{Week: week, Dates: days}, nil
}

// AddTask appends a task to the record for date, creating the record when
// the date has none yet.
func (s *TimesheetService) AddTask(ctx context.Context, date string, form timesheet.TaskForm) (rec model.DailyRecord, err error) {
	defer func() { telemetry.TaskMutations.WithLabelValues("add", telemetry.ResultLabel(err)).Inc() }()

	task, err := timesheet.NewTask(form)
	if err != nil {
		return model.DailyRecord{}, err
	}
	week, err := timesheet.WeekFromDate(date)
	if err != nil {
		return model.DailyRecord{}, &model.ValidationError{Message: err.Error()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.FindRecordByDate(ctx, date)
	var notFound *model.RecordNotFoundError
	switch {
	case errors.As(err, &notFound):
		existing = model.DailyRecord{ID: uuid.NewString(), Week: week, Date: date}
	case err != nil:
		return model.DailyRecord{}, err
	}

	rec = timesheet.AddTask(existing, task)
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		return model.DailyRecord{}, err
	}
	s.logger.Info("task added",
		slog.String("record_id", rec.ID),
		slog.String("date", rec.Date),
		slog.String("task_id", task.ID),
	)
	return rec, nil
}

// EditTask replaces the task with taskID in the record for date.
func (s *TimesheetService) EditTask(ctx context.Context, date, taskID string, form timesheet.TaskForm) (rec model.DailyRecord, err error) {
	defer func() { telemetry.TaskMutations.WithLabelValues("edit", telemetry.ResultLabel(err)).Inc() }()

	task, err := timesheet.NewTask(form)
	if err != nil {
		return model.DailyRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.FindRecordByDate(ctx, date)
	if err != nil {
		return model.DailyRecord{}, err
	}
	rec, err = timesheet.EditTaskByID(existing, taskID, task)
	if err != nil {
		return model.DailyRecord{}, err
	}
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		return model.DailyRecord{}, err
	}
	s.logger.Info("task edited", slog.String("record_id", rec.ID), slog.String("task_id", taskID))
	return rec, nil
}

// DeleteTask removes the task with taskID from the record with recordID.
func (s *TimesheetService) DeleteTask(ctx context.Context, recordID, taskID string) (rec model.DailyRecord, err error) {
	defer func() { telemetry.TaskMutations.WithLabelValues("delete", telemetry.ResultLabel(err)).Inc() }()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.GetRecord(ctx, recordID)
	if err != nil {
		return model.DailyRecord{}, err
	}
	rec, err = timesheet.DeleteTaskByID(existing, taskID)
	if err != nil {
		return model.DailyRecord{}, err
	}
	if err := s.store.SaveRecord(ctx, rec); err != nil {
		return model.DailyRecord{}, err
	}
	s.logger.Info("task deleted", slog.String("record_id", rec.ID), slog.String("task_id", taskID))
	return rec, nil
}
