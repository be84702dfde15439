package model

import "fmt"

// RecordNotFoundError is returned when no daily record matches the lookup key.
type RecordNotFoundError struct {
	Key string
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("timesheet record not found: %s", e.Key)
}

// TaskNotFoundError is returned when a task ID does not exist in a record.
type TaskNotFoundError struct {
	TaskID string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.TaskID)
}

// IndexOutOfRangeError is returned when a positional task index is stale.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("task index %d out of range for %d tasks", e.Index, e.Len)
}

// ValidationError is returned when a task form is incomplete.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnauthorizedError is returned for bad credentials or unknown session tokens.
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %s", e.Reason)
}
