package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/ticktock/internal/seed"
	"github.com/bryan-cox/ticktock/internal/store"
)

var (
	seedDays  int
	seedStart string
	seedValue int64
	seedOut   string

	// seedCmd represents the seed command
	seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Generate demo timesheet data.",
		Long: `Generates working-day records with random tasks and writes them to the
configured store together with a demo user, or to a JSON file with --out.`,
		RunE: runSeedCommand,
	}
)

func init() {
	seedCmd.Flags().IntVar(&seedDays, "days", seed.DefaultDays, "number of working days to generate")
	seedCmd.Flags().StringVar(&seedStart, "start", seed.DefaultStart, "first date (YYYY-MM-DD)")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "random seed; 0 uses the current time")
	seedCmd.Flags().StringVar(&seedOut, "out", "", "write records as JSON to this file instead of the store")
}

func runSeedCommand(cmd *cobra.Command, _ []string) error {
	value := seedValue
	if value == 0 {
		value = time.Now().UnixNano()
	}
	records, err := seed.Generate(seed.Options{Days: seedDays, Start: seedStart}, rand.New(rand.NewSource(value)))
	if err != nil {
		return err
	}

	if seedOut != "" {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode records: %w", err)
		}
		if err := os.WriteFile(seedOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", seedOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %s with %d working days of tasks!\n", seedOut, len(records))
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store, cfg.StorePath(), slog.Default())
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	ctx := cmd.Context()
	if err := st.SaveUser(ctx, seed.DemoUser()); err != nil {
		return fmt.Errorf("failed to save demo user: %w", err)
	}
	for _, rec := range records {
		if err := st.SaveRecord(ctx, rec); err != nil {
			return fmt.Errorf("failed to save record %s: %w", rec.Date, err)
		}
	}

	slog.Info("seeded store", "store", cfg.Store, "path", cfg.StorePath(), "records", len(records))
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d working days of tasks into %s\n", len(records), cfg.StorePath())
	fmt.Fprintf(cmd.OutOrStdout(), "Demo login: %s / %s\n", seed.DemoEmail, seed.DemoPassword)
	return nil
}
