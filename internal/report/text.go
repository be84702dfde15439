package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

// Section headers for text output.
const (
	TextHeaderWeeks  = "Your Timesheets"
	TextHeaderDetail = "This week's timesheet"
	TextEmptyWeeks   = "    No timesheets match the current filters."
)

var statusStyles = map[model.Status]lipgloss.Style{
	model.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	model.StatusIncomplete: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	model.StatusMissing:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// StatusLabel renders a status with its terminal color when supported.
func StatusLabel(s model.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return string(s)
	}
	return style.Render(string(s))
}

// PrintWeeks prints one page of the weekly dashboard to the writer.
func PrintWeeks(out io.Writer, weeks []model.WeekSummary, page, totalPages int) {
	fmt.Fprintln(out, TextHeaderWeeks)
	fmt.Fprintln(out, "=======Autogenerated by ticktock=======")

	if len(weeks) == 0 {
		fmt.Fprintln(out, TextEmptyWeeks)
	}
	for _, w := range weeks {
		dateRange, err := timesheet.FormatRange(w.StartDate, w.EndDate)
		if err != nil {
			dateRange = fmt.Sprintf("%s - %s", w.StartDate, w.EndDate)
		}
		fmt.Fprintf(out, "    • Week %-3d %-26s %3d hrs  %s  [%s]\n",
			w.Week, dateRange, w.TotalHours, StatusLabel(w.Status), timesheet.ActionFor(w.Status))
	}

	fmt.Fprintf(out, "\nPage %d of %d\n", page, totalPages)
}

// PrintWeekDetail prints the daily breakdown of a week to the writer.
func PrintWeekDetail(out io.Writer, detail WeekDetail) {
	fmt.Fprintf(out, "%s (Week %d)\n", TextHeaderDetail, detail.Week)
	fmt.Fprintf(out, "%s\n", detail.Range)
	fmt.Fprintf(out, "%d/%d hrs (%d%%) %s\n", detail.TotalHours, detail.TargetHours, detail.Percent, StatusLabel(detail.Status))

	for _, day := range detail.Days {
		fmt.Fprintf(out, "\n%s (%s) - %d hrs\n", day.Label, day.Date, day.TotalHours)
		if len(day.Tasks) == 0 {
			fmt.Fprintln(out, "    • No tasks logged")
			continue
		}
		for _, task := range day.Tasks {
			fmt.Fprintf(out, "    • %s %s - %d hrs [%s]\n", task.Description, task.Type, task.Hours, task.Project)
			fmt.Fprintf(out, "        ◦ id: %s\n", task.ID)
		}
	}
}
