// Package timesheet holds the pure timesheet logic: status classification,
// week aggregation, filtering and pagination, and task mutation.
package timesheet

import "github.com/bryan-cox/ticktock/internal/model"

// Classify maps the total hours worked in a week to its status.
// Order matters: zero hours is MISSING before the 40 hour threshold is checked.
func Classify(totalHours int) model.Status {
	if totalHours == 0 {
		return model.StatusMissing
	}
	if totalHours < model.TargetWeeklyHours {
		return model.StatusIncomplete
	}
	return model.StatusCompleted
}

// TotalHours sums the hours of every task.
func TotalHours(tasks []model.Task) int {
	total := 0
	for _, t := range tasks {
		total += t.Hours
	}
	return total
}

// ActionFor returns the dashboard action offered for a week in the given status.
func ActionFor(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return "View"
	case model.StatusIncomplete:
		return "Update"
	default:
		return "Create"
	}
}
