// Package model defines the core data structures for ticktock.
package model

// Status is the completion state of a week, derived from its total hours.
type Status string

// Week status constants.
const (
	StatusCompleted  Status = "COMPLETED"
	StatusIncomplete Status = "INCOMPLETE"
	StatusMissing    Status = "MISSING"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusCompleted, StatusIncomplete, StatusMissing}

// TargetWeeklyHours is the number of hours a week needs to be completed.
const TargetWeeklyHours = 40

// Task represents a single block of work logged against a day.
type Task struct {
	ID          string `json:"id" yaml:"id"`
	Project     string `json:"project" yaml:"project"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Hours       int    `json:"hours" yaml:"hours"`
}

// DailyRecord contains all tasks logged for a single calendar date.
type DailyRecord struct {
	ID    string `json:"id" yaml:"id"`
	Week  int    `json:"week" yaml:"week"`
	Date  string `json:"date" yaml:"date"` // YYYY-MM-DD
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// WeekSummary is the aggregated view of every task logged in one week.
type WeekSummary struct {
	Week       int    `json:"week"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Tasks      []Task `json:"tasks"`
	TotalHours int    `json:"totalHours"`
	Status     Status `json:"status"`
}

// WeekDays is the drill-down view of a single week, one entry per logged day.
type WeekDays struct {
	Week  int           `json:"week"`
	Dates []DailyRecord `json:"dates"`
}

// User is an account that can log in to the timesheet backend.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Email    string `json:"email" yaml:"email"`
	Password string `json:"-" yaml:"password"`
	Token    string `json:"token,omitempty" yaml:"token"`
}

// Projects and TaskTypes are the identifiers offered when logging work.
var (
	Projects  = []string{"Project A", "Project B", "Project C", "Project D"}
	TaskTypes = []string{"Development", "Bug Fixing", "Testing", "Code Review", "Design"}
)
