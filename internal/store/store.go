// Package store defines persistence for timesheet records and users.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/store/sqlstore"
	"github.com/bryan-cox/ticktock/internal/store/yamlstore"
)

// Store abstracts all persistence for the timesheet backend.
// Lookups that find nothing return *model.RecordNotFoundError or
// *model.UnauthorizedError for users.
type Store interface {
	ListRecords(ctx context.Context) ([]model.DailyRecord, error)
	GetRecord(ctx context.Context, id string) (model.DailyRecord, error)
	FindRecordByDate(ctx context.Context, date string) (model.DailyRecord, error)
	SaveRecord(ctx context.Context, rec model.DailyRecord) error
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	FindUserByToken(ctx context.Context, token string) (model.User, error)
	SaveUser(ctx context.Context, u model.User) error
	Close() error
}

// Supported drivers.
const (
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Open returns the store selected by driver. path is the YAML file or the
// SQLite DSN.
func Open(driver, path string, logger *slog.Logger) (Store, error) {
	switch driver {
	case DriverYAML, "":
		return yamlstore.Open(path)
	case DriverSQLite:
		return sqlstore.Open(path, logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q (use %s or %s)", driver, DriverYAML, DriverSQLite)
	}
}
