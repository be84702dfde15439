package timesheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

func summaries(statuses ...model.Status) []model.WeekSummary {
	out := make([]model.WeekSummary, len(statuses))
	for i, s := range statuses {
		out[i] = model.WeekSummary{Week: i + 1, Status: s}
	}
	return out
}

func TestFilterAndPaginate_Pages(t *testing.T) {
	all := summaries(
		model.StatusCompleted, model.StatusCompleted, model.StatusIncomplete,
		model.StatusMissing, model.StatusCompleted, model.StatusIncomplete, model.StatusCompleted,
	)

	page1, total := timesheet.FilterAndPaginate(all, timesheet.Filter{Status: timesheet.StatusAll}, 1, 5)
	assert.Len(t, page1, 5)
	assert.Equal(t, 2, total)

	page2, total := timesheet.FilterAndPaginate(all, timesheet.Filter{}, 2, 5)
	require.Len(t, page2, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, 6, page2[0].Week)
	assert.Equal(t, 7, page2[1].Week)
}

func TestFilterAndPaginate_EmptyHasOnePage(t *testing.T) {
	items, total := timesheet.FilterAndPaginate(nil, timesheet.Filter{}, 1, 5)
	assert.Empty(t, items)
	assert.Equal(t, 1, total)

	items, total = timesheet.FilterAndPaginate(summaries(model.StatusCompleted), timesheet.Filter{Status: model.StatusMissing}, 1, 5)
	assert.Empty(t, items)
	assert.Equal(t, 1, total)
}

func TestFilterAndPaginate_PageOvershootIsEmpty(t *testing.T) {
	items, total := timesheet.FilterAndPaginate(summaries(model.StatusCompleted, model.StatusMissing), timesheet.Filter{}, 4, 5)
	assert.Empty(t, items)
	assert.Equal(t, 1, total)
}

func TestFilterAndPaginate_FiltersCompose(t *testing.T) {
	all := summaries(model.StatusCompleted, model.StatusIncomplete, model.StatusIncomplete)

	items, _ := timesheet.FilterAndPaginate(all, timesheet.Filter{Status: model.StatusIncomplete}, 1, 10)
	assert.Len(t, items, 2)

	items, _ = timesheet.FilterAndPaginate(all, timesheet.Filter{Status: model.StatusIncomplete, Week: 3}, 1, 10)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Week)

	items, _ = timesheet.FilterAndPaginate(all, timesheet.Filter{Status: model.StatusCompleted, Week: 3}, 1, 10)
	assert.Empty(t, items)
}

func TestFilterAndPaginate_ZeroPageSizePanics(t *testing.T) {
	assert.Panics(t, func() {
		timesheet.FilterAndPaginate(nil, timesheet.Filter{}, 1, 0)
	})
}

func TestParseStatus(t *testing.T) {
	s, ok := timesheet.ParseStatus("incomplete")
	assert.True(t, ok)
	assert.Equal(t, model.StatusIncomplete, s)

	s, ok = timesheet.ParseStatus("All")
	assert.True(t, ok)
	assert.Equal(t, model.Status(""), s)

	_, ok = timesheet.ParseStatus("late")
	assert.False(t, ok)
}
