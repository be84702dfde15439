// Package telemetry exposes Prometheus metrics for the timesheet backend.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticktock",
		Subsystem: "timesheet",
		Name:      "task_mutations_total",
		Help:      "Task add/edit/delete operations, labelled by op and result.",
	}, []string{"op", "result"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ticktock",
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts, labelled by result.",
	}, []string{"result"})

	WeeksByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ticktock",
		Subsystem: "reminder",
		Name:      "weeks",
		Help:      "Weeks per status as of the last reminder scan.",
	}, []string{"status"})
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// ResultLabel maps an error to a result label.
func ResultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}
