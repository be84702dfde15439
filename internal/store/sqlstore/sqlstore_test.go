package sqlstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/ticktock/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "ticktock.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndListRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, model.DailyRecord{ID: "2", Week: 1, Date: "2025-01-07", Tasks: []model.Task{
		{ID: "t3", Project: "Project B", Type: "Testing", Description: "third", Hours: 3},
	}}))
	require.NoError(t, s.SaveRecord(ctx, model.DailyRecord{ID: "1", Week: 1, Date: "2025-01-06", Tasks: []model.Task{
		{ID: "t1", Project: "Project A", Type: "Design", Description: "first", Hours: 1},
		{ID: "t2", Project: "Project A", Type: "Design", Description: "second", Hours: 2},
	}}))

	records, err := s.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-01-06", records[0].Date)
	require.Len(t, records[0].Tasks, 2)
	assert.Equal(t, "first", records[0].Tasks[0].Description)
	assert.Equal(t, "second", records[0].Tasks[1].Description)
}

func TestSaveRecord_ReplacesTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := model.DailyRecord{ID: "1", Week: 1, Date: "2025-01-06", Tasks: []model.Task{
		{ID: "t1", Description: "first", Hours: 1},
		{ID: "t2", Description: "second", Hours: 2},
	}}
	require.NoError(t, s.SaveRecord(ctx, rec))

	rec.Tasks = []model.Task{{ID: "t2", Description: "second", Hours: 2}, {Description: "new", Hours: 4}}
	require.NoError(t, s.SaveRecord(ctx, rec))

	got, err := s.GetRecord(ctx, "1")
	require.NoError(t, err)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "second", got.Tasks[0].Description)
	assert.Equal(t, "new", got.Tasks[1].Description)
	assert.NotEmpty(t, got.Tasks[1].ID)

	byDate, err := s.FindRecordByDate(ctx, "2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, "1", byDate.ID)
}

func TestRecordNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRecord(context.Background(), "missing")
	var nf *model.RecordNotFoundError
	require.True(t, errors.As(err, &nf))

	_, err = s.FindRecordByDate(context.Background(), "2030-01-01")
	require.True(t, errors.As(err, &nf))
}

func TestUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, model.User{Email: "demo@ticktock.dev", Password: "secret"}))

	u, err := s.FindUserByEmail(ctx, "demo@ticktock.dev")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "secret", u.Password)

	u.Token = "tok-1"
	require.NoError(t, s.SaveUser(ctx, u))

	byToken, err := s.FindUserByToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byToken.ID)

	var unauth *model.UnauthorizedError
	_, err = s.FindUserByToken(ctx, "")
	require.True(t, errors.As(err, &unauth))
	_, err = s.FindUserByEmail(ctx, "nobody@ticktock.dev")
	require.True(t, errors.As(err, &unauth))
}
