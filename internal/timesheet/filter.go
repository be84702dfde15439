package timesheet

import (
	"strings"

	"github.com/bryan-cox/ticktock/internal/model"
)

// StatusAll disables status filtering.
const StatusAll = "All"

// Filter narrows the week summaries shown on the dashboard.
// An empty or "All" Status and a zero Week match everything.
type Filter struct {
	Status model.Status
	Week   int
}

// Matches reports whether a summary passes both filters.
func (f Filter) Matches(s model.WeekSummary) bool {
	statusMatch := f.Status == "" || string(f.Status) == StatusAll || s.Status == f.Status
	weekMatch := f.Week == 0 || s.Week == f.Week
	return statusMatch && weekMatch
}

// ParseStatus parses a status filter value case-insensitively.
// "All" and the empty string both mean no status filter.
func ParseStatus(raw string) (model.Status, bool) {
	if raw == "" || strings.EqualFold(raw, StatusAll) {
		return "", true
	}
	for _, s := range model.Statuses {
		if strings.EqualFold(raw, string(s)) {
			return s, true
		}
	}
	return "", false
}

// FilterAndPaginate applies the filter and returns the requested page along
// with the total page count. totalPages is at least 1. A page past the end
// yields no items. pageSize must be positive.
func FilterAndPaginate(summaries []model.WeekSummary, filter Filter, page, pageSize int) ([]model.WeekSummary, int) {
	if pageSize < 1 {
		panic("timesheet: page size must be positive")
	}

	var filtered []model.WeekSummary
	for _, s := range summaries {
		if filter.Matches(s) {
			filtered = append(filtered, s)
		}
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if page < 1 || start >= len(filtered) {
		return []model.WeekSummary{}, totalPages
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}
