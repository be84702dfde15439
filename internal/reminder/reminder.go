// Package reminder periodically scans timesheets for weeks that still need work.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/telemetry"
)

// DefaultSchedule fires every Friday at 17:00. The seconds field is enabled.
const DefaultSchedule = "0 0 17 * * FRI"

const scanTimeout = 30 * time.Second

// WeekLister yields the aggregated weekly summaries.
type WeekLister interface {
	Weeks(ctx context.Context) ([]model.WeekSummary, error)
}

// Reminder wraps a cron scheduler running the week scan.
type Reminder struct {
	cron   *cron.Cron
	weeks  WeekLister
	logger *slog.Logger
}

// New registers the scan on schedule. An empty schedule uses DefaultSchedule.
func New(weeks WeekLister, schedule string, logger *slog.Logger) (*Reminder, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	r := &Reminder{
		cron:   cron.New(cron.WithSeconds()),
		weeks:  weeks,
		logger: logger,
	}
	if _, err := r.cron.AddFunc(schedule, r.job); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Reminder) Start() {
	r.logger.Info("reminder started", slog.Int("entries", len(r.cron.Entries())))
	r.cron.Start()
}

// Stop halts the scheduler and waits for a running scan to finish.
func (r *Reminder) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Reminder) job() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()
	if _, err := r.Scan(ctx); err != nil {
		r.logger.Error("reminder scan failed", slog.Any("error", err))
	}
}

// Scan logs every week that is not COMPLETED, refreshes the per-status
// gauge, and returns the flagged weeks.
func (r *Reminder) Scan(ctx context.Context) ([]model.WeekSummary, error) {
	weeks, err := r.weeks.Weeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing weeks: %w", err)
	}

	counts := make(map[model.Status]int, len(model.Statuses))
	var flagged []model.WeekSummary
	for _, w := range weeks {
		counts[w.Status]++
		if w.Status == model.StatusCompleted {
			continue
		}
		flagged = append(flagged, w)
		r.logger.Warn("week needs attention",
			slog.Int("week", w.Week),
			slog.String("start_date", w.StartDate),
			slog.String("end_date", w.EndDate),
			slog.Int("total_hours", w.TotalHours),
			slog.String("status", string(w.Status)),
		)
	}

	for _, s := range model.Statuses {
		telemetry.WeeksByStatus.WithLabelValues(string(s)).Set(float64(counts[s]))
	}
	r.logger.Info("reminder scan complete", slog.Int("weeks", len(weeks)), slog.Int("flagged", len(flagged)))
	return flagged, nil
}
