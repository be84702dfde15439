// Package dashboard holds the client-side view state of the weekly
// timesheet dashboard: fetched records, derived week summaries, filters,
// and pagination.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/bryan-cox/ticktock/internal/client"
	"github.com/bryan-cox/ticktock/internal/model"
	"github.com/bryan-cox/ticktock/internal/timesheet"
)

// DefaultPageSize is the number of weeks shown per page.
const DefaultPageSize = 5

// ErrStale is returned by Refresh when a newer refresh started before this
// one resolved; its result was discarded.
var ErrStale = errors.New("dashboard: refresh superseded by a newer request")

// Source fetches the raw daily records.
type Source interface {
	FetchAll(ctx context.Context, sess client.Session) ([]model.DailyRecord, error)
}

// Dashboard is safe for concurrent use.
type Dashboard struct {
	src  Source
	sess client.Session

	mu        sync.Mutex
	gen       uint64
	records   []model.DailyRecord
	summaries []model.WeekSummary
	filter    timesheet.Filter
	page      int
	pageSize  int
}

// New returns an empty dashboard on page 1.
func New(src Source, sess client.Session) *Dashboard {
	return &Dashboard{src: src, sess: sess, page: 1, pageSize: DefaultPageSize}
}

// Refresh fetches all records and rebuilds the summaries. Only the most
// recently started refresh may update state.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	records, err := d.src.FetchAll(ctx, d.sess)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return ErrStale
	}
	if err != nil {
		return err
	}
	d.records = records
	d.summaries = timesheet.Aggregate(records)
	return nil
}

// Apply folds an updated daily record returned by a mutation into the
// dashboard and recomputes the summaries. A refresh already in flight
// predates the mutation and will resolve with ErrStale.
func (d *Dashboard) Apply(rec model.DailyRecord) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++

	replaced := false
	for i := range d.records {
		if d.records[i].ID == rec.ID {
			d.records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		d.records = append(d.records, rec)
	}
	d.summaries = timesheet.Aggregate(d.records)
}

// SetStatusFilter filters by status; "" or "All" clears it. Resets to page 1.
func (d *Dashboard) SetStatusFilter(status model.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter.Status = status
	d.page = 1
}

// SetWeekFilter filters to one week; 0 clears it. Resets to page 1.
func (d *Dashboard) SetWeekFilter(week int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filter.Week = week
	d.page = 1
}

// SetPageSize changes the page size and returns to page 1. Non-positive
// sizes are ignored.
func (d *Dashboard) SetPageSize(size int) {
	if size < 1 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pageSize = size
	d.page = 1
}

// SetPage moves to page if it exists and reports whether it moved.
func (d *Dashboard) SetPage(page int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, total := timesheet.FilterAndPaginate(d.summaries, d.filter, 1, d.pageSize)
	if page < 1 || page > total {
		return false
	}
	d.page = page
	return true
}

// View is one rendered page of the dashboard.
type View struct {
	Weeks      []model.WeekSummary
	Page       int
	TotalPages int
}

// View returns the current page of filtered weeks.
func (d *Dashboard) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	weeks, total := timesheet.FilterAndPaginate(d.summaries, d.filter, d.page, d.pageSize)
	return View{Weeks: weeks, Page: d.page, TotalPages: total}
}

// Week returns the summary for one week, if loaded.
func (d *Dashboard) Week(week int) (model.WeekSummary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range d.summaries {
		if s.Week == week {
			return s, true
		}
	}
	return model.WeekSummary{}, false
}
