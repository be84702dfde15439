package timesheet

import (
	"sort"

	"github.com/bryan-cox/ticktock/internal/model"
)

// Aggregate groups daily records into per-week summaries.
//
// Records are ordered by date (stable) before grouping, so StartDate and
// EndDate are the first and last logged dates of each week and tasks are
// concatenated in date order. A record without a week number gets one
// derived from its date; if the date does not parse either, the record stays
// under its raw week number so its hours are still counted. Weeks with no
// records are absent from the result, which is ordered by week number.
func Aggregate(records []model.DailyRecord) []model.WeekSummary {
	if len(records) == 0 {
		return []model.WeekSummary{}
	}

	ordered := make([]model.DailyRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	weeks := make(map[int]*model.WeekSummary)
	for _, rec := range ordered {
		week := rec.Week
		if week < 1 {
			if derived, err := WeekFromDate(rec.Date); err == nil {
				week = derived
			}
		}

		summary, exists := weeks[week]
		if !exists {
			weeks[week] = &model.WeekSummary{
				Week:      week,
				StartDate: rec.Date,
				EndDate:   rec.Date,
				Tasks:     append([]model.Task(nil), rec.Tasks...),
			}
			continue
		}
		summary.EndDate = rec.Date
		summary.Tasks = append(summary.Tasks, rec.Tasks...)
	}

	var weekNumbers []int
	for w := range weeks {
		weekNumbers = append(weekNumbers, w)
	}
	sort.Ints(weekNumbers)

	summaries := make([]model.WeekSummary, 0, len(weekNumbers))
	for _, w := range weekNumbers {
		summaries = append(summaries, Summarize(*weeks[w]))
	}
	return summaries
}

// Summarize recomputes TotalHours and Status from the summary's tasks.
// Any code path that changes a summary's tasks must pass it through here.
func Summarize(summary model.WeekSummary) model.WeekSummary {
	summary.TotalHours = TotalHours(summary.Tasks)
	summary.Status = Classify(summary.TotalHours)
	return summary
}

// RecordsForWeek returns the records that belong to the given week, in date order.
func RecordsForWeek(records []model.DailyRecord, week int) []model.DailyRecord {
	var days []model.DailyRecord
	for _, rec := range records {
		if rec.Week == week {
			days = append(days, rec)
		}
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}
