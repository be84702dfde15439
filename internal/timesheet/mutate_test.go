package timesheet_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

func threeTasks() model.DailyRecord {
	return model.DailyRecord{
		ID:   "1",
		Week: 1,
		Date: "2025-01-06",
		Tasks: []model.Task{
			{ID: "a", Description: "first", Hours: 1},
			{ID: "b", Description: "second", Hours: 2},
			{ID: "c", Description: "third", Hours: 3},
		},
	}
}

func descriptions(rec model.DailyRecord) []string {
	var out []string
	for _, t := range rec.Tasks {
		out = append(out, t.Description)
	}
	return out
}

func TestNewTask_Validation(t *testing.T) {
	valid := timesheet.TaskForm{Project: "Project A", Type: "Testing", Description: "write tests", Hours: 2}

	task, err := timesheet.NewTask(valid)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, 2, task.Hours)

	invalid := []timesheet.TaskForm{
		{Type: "Testing", Description: "x", Hours: 1},
		{Project: "Project A", Description: "x", Hours: 1},
		{Project: "Project A", Type: "Testing", Description: "  ", Hours: 1},
		{Project: "Project A", Type: "Testing", Description: "x", Hours: 0},
		{Project: "Project A", Type: "Testing", Description: "x", Hours: -3},
	}
	for _, form := range invalid {
		_, err := timesheet.NewTask(form)
		var verr *model.ValidationError
		require.True(t, errors.As(err, &verr), "form %+v", form)
		assert.Equal(t, "All fields are required, and hours must be greater than 0.", verr.Error())
	}
}

func TestAddTask_AppendsWithoutMutatingInput(t *testing.T) {
	rec := threeTasks()
	got := timesheet.AddTask(rec, model.Task{Description: "fourth", Hours: 4})

	assert.Equal(t, []string{"first", "second", "third", "fourth"}, descriptions(got))
	assert.NotEmpty(t, got.Tasks[3].ID)
	assert.Len(t, rec.Tasks, 3)
}

func TestEditTask(t *testing.T) {
	rec := threeTasks()
	got, err := timesheet.EditTask(rec, 1, model.Task{Description: "replaced", Hours: 7})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "replaced", "third"}, descriptions(got))
	assert.Equal(t, "b", got.Tasks[1].ID)
	assert.Equal(t, 7, got.Tasks[1].Hours)
	assert.Equal(t, "second", rec.Tasks[1].Description)
}

func TestEditTask_OutOfRange(t *testing.T) {
	_, err := timesheet.EditTask(threeTasks(), 3, model.Task{})
	var ierr *model.IndexOutOfRangeError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, 3, ierr.Index)
	assert.Equal(t, 3, ierr.Len)
}

func TestDeleteTask(t *testing.T) {
	rec := threeTasks()
	got, err := timesheet.DeleteTask(rec, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, descriptions(got))
	assert.Equal(t, []string{"first", "second", "third"}, descriptions(rec))

	got, err = timesheet.DeleteTask(rec, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "third"}, descriptions(got))
}

func TestDeleteTask_OutOfRangeLeavesTasks(t *testing.T) {
	rec := threeTasks()
	for _, idx := range []int{-1, 3, 10} {
		got, err := timesheet.DeleteTask(rec, idx)
		var ierr *model.IndexOutOfRangeError
		require.True(t, errors.As(err, &ierr), "index %d", idx)
		assert.Equal(t, []string{"first", "second", "third"}, descriptions(got))
	}
}

func TestByIDOperations(t *testing.T) {
	rec := threeTasks()

	edited, err := timesheet.EditTaskByID(rec, "c", model.Task{ID: "ignored", Description: "new third", Hours: 5})
	require.NoError(t, err)
	assert.Equal(t, "c", edited.Tasks[2].ID)
	assert.Equal(t, "new third", edited.Tasks[2].Description)

	deleted, err := timesheet.DeleteTaskByID(edited, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "new third"}, descriptions(deleted))

	_, err = timesheet.DeleteTaskByID(deleted, "a")
	var nf *model.TaskNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "a", nf.TaskID)

	_, err = timesheet.EditTaskByID(deleted, "zzz", model.Task{})
	require.True(t, errors.As(err, &nf))
}

func TestMutationThenSummarizeKeepsInvariant(t *testing.T) {
	rec, err := timesheet.DeleteTask(threeTasks(), 0)
	require.NoError(t, err)

	summary := timesheet.Aggregate([]model.DailyRecord{rec})[0]
	assert.Equal(t, 5, summary.TotalHours)
	assert.Equal(t, model.StatusIncomplete, summary.Status)
}
