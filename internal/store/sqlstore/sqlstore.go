// Package sqlstore persists timesheet records and users in SQLite through GORM.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/bryan-cox/ticktock/internal/model"
)

// recordRow is one day of the timesheet.
type recordRow struct {
	ID        string    `gorm:"primaryKey"`
	Week      int       `gorm:"index"`
	Date      string    `gorm:"uniqueIndex"`
	Tasks     []taskRow `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (recordRow) TableName() string { return "timesheets" }

// taskRow is one task within a day; Position keeps insertion order.
type taskRow struct {
	ID          string `gorm:"primaryKey"`
	RecordID    string `gorm:"index"`
	Position    int
	Project     string
	Type        string
	Description string
	Hours       int
}

func (taskRow) TableName() string { return "tasks" }

type userRow struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Password  string
	Token     string `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userRow) TableName() string { return "users" }

// Store is a GORM-backed store.
type Store struct {
	db *gorm.DB
}

// Open opens a SQLite database and runs migrations.
func Open(dsn string, log *slog.Logger) (*Store, error) {
	if dsn == "" {
		dsn = "ticktock.db"
	}
	if log == nil {
		log = slog.Default()
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&recordRow{}, &taskRow{}, &userRow{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return &Store{db: db}, nil
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

func orderedTasks(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (s *Store) ListRecords(ctx context.Context) ([]model.DailyRecord, error) {
	var rows []recordRow
	if err := s.db.WithContext(ctx).Preload("Tasks", orderedTasks).
		Order("date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := make([]model.DailyRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

func (s *Store) GetRecord(ctx context.Context, id string) (model.DailyRecord, error) {
	return s.findRecord(ctx, id, "id = ?", id)
}

func (s *Store) FindRecordByDate(ctx context.Context, date string) (model.DailyRecord, error) {
	return s.findRecord(ctx, date, "date = ?", date)
}

func (s *Store) findRecord(ctx context.Context, key string, query string, arg any) (model.DailyRecord, error) {
	var row recordRow
	err := s.db.WithContext(ctx).Preload("Tasks", orderedTasks).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DailyRecord{}, &model.RecordNotFoundError{Key: key}
	}
	if err != nil {
		return model.DailyRecord{}, fmt.Errorf("find record %s: %w", key, err)
	}
	return row.toModel(), nil
}

// SaveRecord upserts the record and replaces its task rows in one transaction.
func (s *Store) SaveRecord(ctx context.Context, rec model.DailyRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("save record for %s: missing id", rec.Date)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := recordRow{ID: rec.ID, Week: rec.Week, Date: rec.Date}
		if err := tx.Omit("Tasks").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"week", "date", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("save record %s: %w", rec.ID, err)
		}
		if err := tx.Where("record_id = ?", rec.ID).Delete(&taskRow{}).Error; err != nil {
			return fmt.Errorf("clear tasks for %s: %w", rec.ID, err)
		}
		if len(rec.Tasks) == 0 {
			return nil
		}
		tasks := make([]taskRow, len(rec.Tasks))
		for i, t := range rec.Tasks {
			if t.ID == "" {
				t.ID = uuid.NewString()
			}
			tasks[i] = taskRow{
				ID:          t.ID,
				RecordID:    rec.ID,
				Position:    i,
				Project:     t.Project,
				Type:        t.Type,
				Description: t.Description,
				Hours:       t.Hours,
			}
		}
		if err := tx.Create(&tasks).Error; err != nil {
			return fmt.Errorf("save tasks for %s: %w", rec.ID, err)
		}
		return nil
	})
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.findUser(ctx, "email = ?", email, "unknown user")
}

func (s *Store) FindUserByToken(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, &model.UnauthorizedError{Reason: "invalid token"}
	}
	return s.findUser(ctx, "token = ?", token, "invalid token")
}

func (s *Store) findUser(ctx context.Context, query, arg, reason string) (model.User, error) {
	var row userRow
	err := s.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, &model.UnauthorizedError{Reason: reason}
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}
	return model.User{ID: row.ID, Email: row.Email, Password: row.Password, Token: row.Token}, nil
}

func (s *Store) SaveUser(ctx context.Context, u model.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row := userRow{ID: u.ID, Email: u.Email, Password: u.Password, Token: u.Token}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password", "token", "updated_at"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("save user %s: %w", u.Email, err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r recordRow) toModel() model.DailyRecord {
	rec := model.DailyRecord{
		ID:    r.ID,
		Week:  r.Week,
		Date:  r.Date,
		Tasks: make([]model.Task, len(r.Tasks)),
	}
	for i, t := range r.Tasks {
		rec.Tasks[i] = model.Task{
			ID:          t.ID,
			Project:     t.Project,
			Type:        t.Type,
			Description: t.Description,
			Hours:       t.Hours,
		}
	}
	return rec
}
