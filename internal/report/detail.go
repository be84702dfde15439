// Package report renders timesheet dashboards and week breakdowns as text.
package report

import (
	"math"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

// DayDetail is one logged day within a week breakdown.
type DayDetail struct {
	Date       string
	Label      string // "Jan 6"
	Tasks      []model.Task
	TotalHours int
}

// WeekDetail is the drill-down view of a single week.
type WeekDetail struct {
	Week        int
	Range       string
	TotalHours  int
	TargetHours int
	Percent     int // progress toward TargetHours, capped at 100
	Status      model.Status
	Days        []DayDetail
}

// BuildWeekDetail computes totals and labels for a week's logged days.
// Days are expected in date order; the range spans the first and last day.
func BuildWeekDetail(days model.WeekDays) (WeekDetail, error) {
	detail := WeekDetail{Week: days.Week, TargetHours: model.TargetWeeklyHours}

	for _, rec := range days.Dates {
		label, err := timesheet.FormatDay(rec.Date)
		if err != nil {
			return WeekDetail{}, err
		}
		total := timesheet.TotalHours(rec.Tasks)
		detail.TotalHours += total
		detail.Days = append(detail.Days, DayDetail{
			Date:       rec.Date,
			Label:      label,
			Tasks:      rec.Tasks,
			TotalHours: total,
		})
	}

	if n := len(days.Dates); n > 0 {
		r, err := timesheet.FormatRange(days.Dates[0].Date, days.Dates[n-1].Date)
		if err != nil {
			return WeekDetail{}, err
		}
		detail.Range = r
	}

	pct := math.Min(float64(detail.TotalHours)/float64(detail.TargetHours)*100, 100)
	detail.Percent = int(math.Round(pct))
	detail.Status = timesheet.Classify(detail.TotalHours)
	return detail, nil
}
