package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/bryan-cox/ticktock/internal/config"
)

// --- Cobra Command Definitions ---

var (
	// Used for flags.
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "ticktock",
		Short: "Track weekly timesheets against a 40 hour target.",
		Long: `ticktock logs daily tasks and hours, groups them into weeks, and flags
weeks that are MISSING or INCOMPLETE. Run 'ticktock serve' for the backend and
use the other commands as its client.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Errors from commands are logged by slog, so we just exit.
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file path (default: ./ticktock.yaml or ~/.ticktock/ticktock.yaml)")
	pf.String("log-level", "info", "log level: debug | info | warn | error")
	pf.String("api-url", "http://localhost:5000", "base URL of the ticktock backend")
	pf.String("token", "", "session token returned by 'ticktock login'")
	pf.String("email", "", "email of the logged in user")
	pf.String("store", "yaml", "storage driver: yaml | sqlite")
	pf.String("file", "timesheets.yaml", "path to the YAML timesheet file")
	pf.String("db", "ticktock.db", "path to the SQLite database")

	bindFlag("log_level", pf, "log-level")
	bindFlag("api_url", pf, "api-url")
	bindFlag("token", pf, "token")
	bindFlag("email", pf, "email")
	bindFlag("store", pf, "store")
	bindFlag("file", pf, "file")
	bindFlag("db", pf, "db")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(weeksCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(newInitCmd())
}

// --- Main Application Entry Point ---

func main() {
	// Setup structured JSON logger for errors.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	Execute()
}

func initConfig() {
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("could not load .env file", "error", err)
	}
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ticktock")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".ticktock"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			slog.Error("error reading config file", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// setupLogging installs the default JSON logger at the configured level.
func setupLogging(_ *cobra.Command, _ []string) error {
	cfg := config.Load(viper.GetViper())
	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}

func buildLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func bindFlag(viperKey string, fs *pflag.FlagSet, flagName string) {
	if err := viper.BindPFlag(viperKey, fs.Lookup(flagName)); err != nil {
		panic(fmt.Sprintf("bindFlag %q → %q: %v", flagName, viperKey, err))
	}
}

// loadConfig returns the validated configuration for the current invocation.
func loadConfig() (config.Config, error) {
	cfg := config.Load(viper.GetViper())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
