package timesheet

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar date format used throughout timesheet records.
const DateLayout = "2006-01-02"

// FormatRange renders a week's date range as "6 - 10 January, 2025".
// The month and year always come from the start date, even when the
// range crosses a month or year boundary.
func FormatRange(startDate, endDate string) (string, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return "", fmt.Errorf("invalid start date format, use YYYY-MM-DD: %w", err)
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return "", fmt.Errorf("invalid end date format, use YYYY-MM-DD: %w", err)
	}
	return fmt.Sprintf("%d - %d %s, %d", start.Day(), end.Day(), start.Month(), start.Year()), nil
}

// FormatDay renders a single date as "Jan 6".
func FormatDay(date string) (string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return d.Format("Jan 2"), nil
}

// WeekFromDate derives a 1-based week-of-year number for a date:
// ceil((dayOfYear + jan1Weekday + 1) / 7), where dayOfYear is the zero-based
// offset from January 1 and jan1Weekday counts from Sunday = 0.
func WeekFromDate(date string) (int, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	jan1 := time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	dayOfYear := d.YearDay() - 1
	return int(math.Ceil(float64(dayOfYear+int(jan1.Weekday())+1) / 7)), nil
}
