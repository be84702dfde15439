package reminder

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/telemetry"
)

// ── fakes ─────────────────────────────────────────────────────────────────────

type fakeWeeks struct {
	weeks []model.WeekSummary
	err   error
}

func (f *fakeWeeks) Weeks(context.Context) ([]model.WeekSummary, error) {
	return f.weeks, f.err
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestScan_FlagsWeeksNotCompleted(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	src := &fakeWeeks{weeks: []model.WeekSummary{
		{Week: 1, TotalHours: 40, Status: model.StatusCompleted},
		{Week: 2, TotalHours: 12, Status: model.StatusIncomplete},
		{Week: 3, TotalHours: 0, Status: model.StatusMissing},
		{Week: 4, TotalHours: 45, Status: model.StatusCompleted},
	}}

	r, err := New(src, "", logger)
	require.NoError(t, err)

	flagged, err := r.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, flagged, 2)
	assert.Equal(t, 2, flagged[0].Week)
	assert.Equal(t, 3, flagged[1].Week)

	assert.Equal(t, 2.0, testutil.ToFloat64(telemetry.WeeksByStatus.WithLabelValues(string(model.StatusCompleted))))
	assert.Equal(t, 1.0, testutil.ToFloat64(telemetry.WeeksByStatus.WithLabelValues(string(model.StatusIncomplete))))
	assert.Equal(t, 1.0, testutil.ToFloat64(telemetry.WeeksByStatus.WithLabelValues(string(model.StatusMissing))))

	assert.Contains(t, logs.String(), `"msg":"week needs attention"`)
	assert.Contains(t, logs.String(), `"week":3`)
}

func TestScan_SourceError(t *testing.T) {
	r, err := New(&fakeWeeks{err: errors.New("store down")}, "", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = r.Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store down")
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&fakeWeeks{}, "every friday", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	r, err := New(&fakeWeeks{}, "@every 1h", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	r.Start()
	r.Stop()
}
