package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		hours int
		want  model.Status
	}{
		{0, model.StatusMissing},
		{1, model.StatusIncomplete},
		{39, model.StatusIncomplete},
		{40, model.StatusCompleted},
		{41, model.StatusCompleted},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, timesheet.Classify(tt.hours), "Classify(%d)", tt.hours)
	}
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, "View", timesheet.ActionFor(model.StatusCompleted))
	assert.Equal(t, "Update", timesheet.ActionFor(model.StatusIncomplete))
	assert.Equal(t, "Create", timesheet.ActionFor(model.StatusMissing))
}

func TestTotalHours(t *testing.T) {
	assert.Equal(t, 0, timesheet.TotalHours(nil))
	assert.Equal(t, 11, timesheet.TotalHours([]model.Task{{Hours: 3}, {Hours: 8}}))
}
