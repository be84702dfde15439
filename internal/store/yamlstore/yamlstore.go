// Package yamlstore keeps timesheet records and users in a single YAML file.
package yamlstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/bryan-cox/ticktock/internal/model"
)

// document is the on-disk layout of the YAML file.
type document struct {
	Users      []model.User        `yaml:"users"`
	Timesheets []model.DailyRecord `yaml:"timesheets"`
}

// Store is a file-backed store. The whole document is held in memory and
// rewritten on every save.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

// Open loads the YAML file at path. A missing file starts an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	doc, err := load(path)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return s, nil
}

func load(filePath string) (document, error) {
	var doc document
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("could not read file '%s': %w", filePath, err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		safeData, _ := json.Marshal(string(data))
		return doc, fmt.Errorf("could not parse YAML from '%s': %w. Content: %s", filePath, err, safeData)
	}
	return doc, nil
}

// flush writes the document to a temp file and renames it over the original.
func (s *Store) flush() error {
	data, err := yaml.Marshal(&s.doc)
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".ticktock-*.yml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace '%s': %w", s.path, err)
	}
	return nil
}

func (s *Store) ListRecords(_ context.Context) ([]model.DailyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.DailyRecord, len(s.doc.Timesheets))
	for i, rec := range s.doc.Timesheets {
		out[i] = clone(rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Store) GetRecord(_ context.Context, id string) (model.DailyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Timesheets {
		if rec.ID == id {
			return clone(rec), nil
		}
	}
	return model.DailyRecord{}, &model.RecordNotFoundError{Key: id}
}

func (s *Store) FindRecordByDate(_ context.Context, date string) (model.DailyRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.doc.Timesheets {
		if rec.Date == date {
			return clone(rec), nil
		}
	}
	return model.DailyRecord{}, &model.RecordNotFoundError{Key: date}
}

// SaveRecord inserts rec or replaces the record with the same ID.
func (s *Store) SaveRecord(_ context.Context, rec model.DailyRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("save record for %s: missing id", rec.Date)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.doc.Timesheets {
		if s.doc.Timesheets[i].ID == rec.ID {
			s.doc.Timesheets[i] = clone(rec)
			replaced = true
			break
		}
	}
	if !replaced {
		s.doc.Timesheets = append(s.doc.Timesheets, clone(rec))
	}
	return s.flush()
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.doc.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, &model.UnauthorizedError{Reason: "unknown user"}
}

func (s *Store) FindUserByToken(_ context.Context, token string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if token != "" {
		for _, u := range s.doc.Users {
			if u.Token == token {
				return u, nil
			}
		}
	}
	return model.User{}, &model.UnauthorizedError{Reason: "invalid token"}
}

// SaveUser inserts u or replaces the user with the same email.
func (s *Store) SaveUser(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.doc.Users {
		if s.doc.Users[i].Email == u.Email {
			s.doc.Users[i] = u
			return s.flush()
		}
	}
	s.doc.Users = append(s.doc.Users, u)
	return s.flush()
}

func (s *Store) Close() error { return nil }

func clone(rec model.DailyRecord) model.DailyRecord {
	tasks := make([]model.Task, len(rec.Tasks))
	copy(tasks, rec.Tasks)
	rec.Tasks = tasks
	return rec
}
