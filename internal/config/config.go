// Package config loads typed ticktock settings from viper.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bryan-cox/ticktock/internal/client"
	"github.com/bryan-cox/ticktock/internal/dashboard"
	"github.com/bryan-cox/ticktock/internal/reminder"
	"github.com/bryan-cox/ticktock/internal/store"
)

// EnvPrefix namespaces environment overrides, e.g. TICKTOCK_API_URL.
const EnvPrefix = "TICKTOCK"

// Config holds typed configuration for every ticktock command.
type Config struct {
	LogLevel         string
	APIURL           string
	Token            string
	Email            string
	HTTPAddr         string
	MetricsAddr      string
	Store            string
	File             string
	DB               string
	ReminderSchedule string
	PageSize         int
}

// StorePath returns the location for the selected store driver.
func (c Config) StorePath() string {
	if c.Store == store.DriverSQLite {
		return c.DB
	}
	return c.File
}

// SetDefaults registers defaults for every key and enables environment lookup.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("api_url", client.DefaultBaseURL)
	v.SetDefault("http_addr", ":5000")
	v.SetDefault("metrics_addr", ":9090")
	v.SetDefault("store", store.DriverYAML)
	v.SetDefault("file", "timesheets.yaml")
	v.SetDefault("db", "ticktock.db")
	v.SetDefault("reminder_schedule", reminder.DefaultSchedule)
	v.SetDefault("page_size", dashboard.DefaultPageSize)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding values already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads all values from the given viper instance.
func Load(v *viper.Viper) Config {
	return Config{
		LogLevel:         v.GetString("log_level"),
		APIURL:           v.GetString("api_url"),
		Token:            v.GetString("token"),
		Email:            v.GetString("email"),
		HTTPAddr:         v.GetString("http_addr"),
		MetricsAddr:      v.GetString("metrics_addr"),
		Store:            v.GetString("store"),
		File:             v.GetString("file"),
		DB:               v.GetString("db"),
		ReminderSchedule: v.GetString("reminder_schedule"),
		PageSize:         v.GetInt("page_size"),
	}
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	switch c.Store {
	case store.DriverYAML, store.DriverSQLite:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, store.DriverYAML, store.DriverSQLite)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	return nil
}
