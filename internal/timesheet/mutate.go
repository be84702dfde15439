package timesheet

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bryan-cox/ticktock/internal/model"
)

// ValidationMessage is shown when a task form is missing fields or hours.
const ValidationMessage = "All fields are required, and hours must be greater than 0."

// TaskForm carries the user-entered fields for adding or editing a task.
type TaskForm struct {
	Project     string `json:"project"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Hours       int    `json:"hours"`
}

// NewTask validates the form and builds a task with a fresh ID.
func NewTask(form TaskForm) (model.Task, error) {
	if strings.TrimSpace(form.Project) == "" ||
		strings.TrimSpace(form.Type) == "" ||
		strings.TrimSpace(form.Description) == "" ||
		form.Hours <= 0 {
		return model.Task{}, &model.ValidationError{Message: ValidationMessage}
	}
	return model.Task{
		ID:          uuid.NewString(),
		Project:     strings.TrimSpace(form.Project),
		Type:        strings.TrimSpace(form.Type),
		Description: strings.TrimSpace(form.Description),
		Hours:       form.Hours,
	}, nil
}

// AddTask returns a copy of rec with task appended.
func AddTask(rec model.DailyRecord, task model.Task) model.DailyRecord {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	out := cloneRecord(rec)
	out.Tasks = append(out.Tasks, task)
	return out
}

// EditTask returns a copy of rec with the task at index replaced wholesale.
func EditTask(rec model.DailyRecord, index int, task model.Task) (model.DailyRecord, error) {
	if index < 0 || index >= len(rec.Tasks) {
		return rec, &model.IndexOutOfRangeError{Index: index, Len: len(rec.Tasks)}
	}
	if task.ID == "" {
		task.ID = rec.Tasks[index].ID
	}
	out := cloneRecord(rec)
	out.Tasks[index] = task
	return out, nil
}

// DeleteTask returns a copy of rec without the task at index.
func DeleteTask(rec model.DailyRecord, index int) (model.DailyRecord, error) {
	if index < 0 || index >= len(rec.Tasks) {
		return rec, &model.IndexOutOfRangeError{Index: index, Len: len(rec.Tasks)}
	}
	out := cloneRecord(rec)
	out.Tasks = append(out.Tasks[:index], out.Tasks[index+1:]...)
	return out, nil
}

// EditTaskByID replaces the task with the given ID, keeping that ID.
func EditTaskByID(rec model.DailyRecord, taskID string, task model.Task) (model.DailyRecord, error) {
	index := indexOf(rec, taskID)
	if index < 0 {
		return rec, &model.TaskNotFoundError{TaskID: taskID}
	}
	task.ID = taskID
	return EditTask(rec, index, task)
}

// DeleteTaskByID removes the task with the given ID.
func DeleteTaskByID(rec model.DailyRecord, taskID string) (model.DailyRecord, error) {
	index := indexOf(rec, taskID)
	if index < 0 {
		return rec, &model.TaskNotFoundError{TaskID: taskID}
	}
	return DeleteTask(rec, index)
}

func indexOf(rec model.DailyRecord, taskID string) int {
	for i, t := range rec.Tasks {
		if t.ID == taskID {
			return i
		}
	}
	return -1
}

func cloneRecord(rec model.DailyRecord) model.DailyRecord {
	out := rec
	out.Tasks = make([]model.Task, len(rec.Tasks))
	copy(out.Tasks, rec.Tasks)
	return out
}
