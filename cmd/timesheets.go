package main

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/ticktock/internal/client"
	"github.com/bryan-cox/ticktock/internal/clipboard"
	"github.com/bryan-cox/ticktock/internal/config"
	"github.com/bryan-cox/ticktock/internal/dashboard"
	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/report"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

var (
	// Used for flags.
	loginPassword string
	weeksStatus   string
	weeksWeek     int
	weeksPage     int
	copyToClip    bool

	// loginCmd represents the login command
	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Log in and print a session token.",
		Long:  `Authenticates against the backend. Pass the printed token with --token or TICKTOCK_TOKEN on later commands.`,
		RunE:  runLoginCommand,
	}

	// weeksCmd represents the weeks command
	weeksCmd = &cobra.Command{
		Use:   "weeks",
		Short: "Show the weekly timesheet dashboard.",
		Long:  `Lists weeks with their date range, total hours, status, and suggested action, filtered and paginated.`,
		RunE:  runWeeksCommand,
	}

	// weekCmd represents the week command
	weekCmd = &cobra.Command{
		Use:   "week <number>",
		Short: "Show the daily breakdown of a week.",
		Args:  cobra.ExactArgs(1),
		RunE:  runWeekCommand,
	}
)

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")

	weeksCmd.Flags().StringVar(&weeksStatus, "status", timesheet.StatusAll, "filter by status: All | COMPLETED | INCOMPLETE | MISSING")
	weeksCmd.Flags().IntVar(&weeksWeek, "week", 0, "show only this week number; 0 shows all")
	weeksCmd.Flags().IntVar(&weeksPage, "page", 1, "page to show")
	weeksCmd.Flags().Int("page-size", dashboard.DefaultPageSize, "weeks per page")
	bindFlag("page_size", weeksCmd.Flags(), "page-size")

	weekCmd.Flags().BoolVar(&copyToClip, "copy", false, "copy the week breakdown to the clipboard")
}

// --- Command Execution Logic ---

func runLoginCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Email == "" || loginPassword == "" {
		return errors.New("--email and --password are required")
	}

	sess, err := client.New(cfg.APIURL).Login(cmd.Context(), cfg.Email, loginPassword)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", sess.Email)
	fmt.Fprintf(cmd.OutOrStdout(), "export %s_TOKEN=%s\n", config.EnvPrefix, sess.Token)
	return nil
}

func runWeeksCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	status, ok := timesheet.ParseStatus(weeksStatus)
	if !ok {
		return fmt.Errorf("unknown status %q", weeksStatus)
	}

	d := dashboard.New(client.New(cfg.APIURL), session(cfg))
	if err := d.Refresh(cmd.Context()); err != nil {
		return err
	}
	d.SetPageSize(cfg.PageSize)
	d.SetStatusFilter(status)
	d.SetWeekFilter(weeksWeek)
	if !d.SetPage(weeksPage) {
		return fmt.Errorf("page %d is out of range (1-%d)", weeksPage, d.View().TotalPages)
	}

	view := d.View()
	report.PrintWeeks(cmd.OutOrStdout(), view.Weeks, view.Page, view.TotalPages)
	return nil
}

func runWeekCommand(cmd *cobra.Command, args []string) error {
	week, err := strconv.Atoi(args[0])
	if err != nil || week < 1 {
		return fmt.Errorf("invalid week number %q", args[0])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	days, err := client.New(cfg.APIURL).FetchWeek(cmd.Context(), session(cfg), week)
	if err != nil {
		return err
	}
	detail, err := report.BuildWeekDetail(days)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	report.PrintWeekDetail(&b, detail)
	fmt.Fprint(cmd.OutOrStdout(), b.String())

	if copyToClip {
		if err := clipboard.CopyText(b.String()); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nCopied to clipboard.")
	}
	return nil
}

func session(cfg config.Config) client.Session {
	return client.Session{Email: cfg.Email, Token: cfg.Token}
}

func printRecord(cmd *cobra.Command, verb string, rec model.DailyRecord) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (week %d) now has %d tasks, %d hrs\n",
		verb, rec.Date, rec.Week, len(rec.Tasks), timesheet.TotalHours(rec.Tasks))
	for _, task := range rec.Tasks {
		fmt.Fprintf(cmd.OutOrStdout(), "    • %s %s - %d hrs [%s] (%s)\n",
			task.Description, task.Type, task.Hours, task.Project, task.ID)
	}
}
