package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigYAML = `# ticktock config
# Priority: CLI flag > TICKTOCK_* env > this file > default.

log_level: "info"    # debug | info | warn | error

# --- client ---
api_url:   "http://localhost:5000"
# email:   "demo@ticktock.dev"
# token:   ""        # printed by 'ticktock login'
page_size: 5

# --- backend ---
http_addr:    ":5000"
metrics_addr: ":9090"  # empty disables the /metrics endpoint
store:        "yaml"   # yaml | sqlite
file:         "timesheets.yaml"
db:           "ticktock.db"
reminder_schedule: "0 0 17 * * FRI"  # seconds minute hour dom month dow
`

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file.",
		Long: `Write the default ticktock configuration.

If --config is given the file is written to that path.
Otherwise it is written to ~/.ticktock/ticktock.yaml.
Fails if the file already exists unless --force is passed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dest := cfgFile
			if dest == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("home dir: %w", err)
				}
				dest = filepath.Join(home, ".ticktock", "ticktock.yaml")
			}

			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return fmt.Errorf("mkdir: %w", err)
			}

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("stat %s: %w", dest, err)
				}
			}

			if err := os.WriteFile(dest, []byte(defaultConfigYAML), 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", dest)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")
	return cmd
}
