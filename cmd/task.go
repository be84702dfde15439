package main

import (
	"github.com/spf13/cobra"

	"github.com/bryan-cox/ticktock/internal/client"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

var (
	taskDate     string
	taskRecordID string
	taskID       string
	taskForm     timesheet.TaskForm

	// taskCmd groups the entry mutation commands
	taskCmd = &cobra.Command{
		Use:   "task",
		Short: "Add, edit, or delete logged tasks.",
	}

	taskAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Log a task on a date.",
		RunE:  runTaskAddCommand,
	}

	taskEditCmd = &cobra.Command{
		Use:   "edit",
		Short: "Replace a logged task.",
		RunE:  runTaskEditCommand,
	}

	taskDeleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Remove a logged task.",
		RunE:  runTaskDeleteCommand,
	}
)

func init() {
	for _, c := range []*cobra.Command{taskAddCmd, taskEditCmd} {
		c.Flags().StringVar(&taskDate, "date", "", "date of the entry (YYYY-MM-DD)")
		c.Flags().StringVar(&taskForm.Project, "project", "", "project name")
		c.Flags().StringVar(&taskForm.Type, "type", "", "type of work")
		c.Flags().StringVar(&taskForm.Description, "description", "", "task description")
		c.Flags().IntVar(&taskForm.Hours, "hours", 0, "hours spent")
	}
	taskEditCmd.Flags().StringVar(&taskID, "id", "", "id of the task to edit")
	taskDeleteCmd.Flags().StringVar(&taskRecordID, "record", "", "id of the daily record")
	taskDeleteCmd.Flags().StringVar(&taskID, "id", "", "id of the task to delete")

	taskCmd.AddCommand(taskAddCmd, taskEditCmd, taskDeleteCmd)
}

func runTaskAddCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, err := client.New(cfg.APIURL).AddTask(cmd.Context(), session(cfg), taskDate, taskForm)
	if err != nil {
		return err
	}
	printRecord(cmd, "Added", rec)
	return nil
}

func runTaskEditCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, err := client.New(cfg.APIURL).EditTask(cmd.Context(), session(cfg), taskDate, taskID, taskForm)
	if err != nil {
		return err
	}
	printRecord(cmd, "Updated", rec)
	return nil
}

func runTaskDeleteCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, err := client.New(cfg.APIURL).DeleteTask(cmd.Context(), session(cfg), taskRecordID, taskID)
	if err != nil {
		return err
	}
	printRecord(cmd, "Deleted", rec)
	return nil
}
