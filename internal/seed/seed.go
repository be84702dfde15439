// Package seed generates demo timesheet data.
package seed

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

// Defaults for Generate.
const (
	DefaultDays  = 100
	DefaultStart = "2025-10-10"

	DemoEmail    = "demo@ticktock.dev"
	DemoPassword = "password"

	daysPerWeek = 5
)

// Options controls the generated data set.
type Options struct {
	Days  int    // working days to generate
	Start string // first candidate date, YYYY-MM-DD
}

// Generate produces one record per working day starting at opts.Start,
// skipping weekends. The week number advances after every five working days.
// Output is deterministic for a given rng.
func Generate(opts Options, rng *rand.Rand) ([]model.DailyRecord, error) {
	if opts.Days <= 0 {
		opts.Days = DefaultDays
	}
	if opts.Start == "" {
		opts.Start = DefaultStart
	}
	current, err := time.Parse(timesheet.DateLayout, opts.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date format, use YYYY-MM-DD: %w", err)
	}

	records := make([]model.DailyRecord, 0, opts.Days)
	week, dayInWeek := 1, 0
	for len(records) < opts.Days {
		if !isWeekend(current) {
			day := len(records) + 1
			tasks, err := generateTasks(day, rng)
			if err != nil {
				return nil, err
			}
			records = append(records, model.DailyRecord{
				ID:    strconv.Itoa(day),
				Week:  week,
				Date:  current.Format(timesheet.DateLayout),
				Tasks: tasks,
			})

			dayInWeek++
			if dayInWeek == daysPerWeek {
				week++
				dayInWeek = 0
			}
		}
		current = current.AddDate(0, 0, 1)
	}
	return records, nil
}

// DemoUser returns the account seeded alongside generated data.
func DemoUser() model.User {
	return model.User{ID: "demo", Email: DemoEmail, Password: DemoPassword}
}

func generateTasks(day int, rng *rand.Rand) ([]model.Task, error) {
	n := randInt(rng, 2, 3)
	tasks := make([]model.Task, 0, n)
	for t := 1; t <= n; t++ {
		id, err := uuid.NewRandomFromReader(rng)
		if err != nil {
			return nil, fmt.Errorf("task id: %w", err)
		}
		tasks = append(tasks, model.Task{
			ID:          id.String(),
			Project:     model.Projects[rng.Intn(len(model.Projects))],
			Type:        model.TaskTypes[rng.Intn(len(model.TaskTypes))],
			Description: fmt.Sprintf("Task description %d-%d", day, t),
			Hours:       randInt(rng, 1, 8),
		})
	}
	return tasks, nil
}

// randInt returns a value in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}

func isWeekend(d time.Time) bool {
	return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
}
