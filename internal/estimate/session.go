// Package estimate holds the editing session for one project's line-item
// grid: an in-memory working set of rows kept consistent with the store
// through immediate creates, debounced updates, and batch operations
// that tolerate per-row failures.
package estimate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/importer"
	"github.com/whittech/estimator/internal/pricing"
	"github.com/whittech/estimator/internal/repository"
)

const (
	// MinVisibleRows is the smallest working set the grid ever shows.
	// The set is padded back up with blank placeholders after any
	// operation that shrinks it.
	MinVisibleRows = 20

	// DefaultSaveDelay is how long an edited, already-saved row sits
	// before its update is written. Further edits restart the clock.
	DefaultSaveDelay = 500 * time.Millisecond
)

// Session is the grid editing session for one project. All exported
// methods are safe for concurrent use; store writes triggered by timers
// run outside the session lock.
type Session struct {
	projectID int64
	items     repository.LineItemRepo
	projects  repository.ProjectRepo
	defaults  domain.RowDefaults
	terms     pricing.Terms
	log       *slog.Logger
	sched     *writeScheduler

	mu   sync.Mutex
	rows []Row
}

// NewSession builds a session for the given project. Load must be called
// before editing.
func NewSession(items repository.LineItemRepo, projects repository.ProjectRepo, project *domain.Project, defaults domain.RowDefaults) *Session {
	return &Session{
		projectID: project.ID,
		items:     items,
		projects:  projects,
		defaults:  defaults,
		terms: pricing.Terms{
			MaterialTaxRatePct: project.MaterialTaxRatePct,
			ContingencyPct:     project.ContingencyPct,
		},
		log:   slog.New(slog.DiscardHandler),
		sched: newWriteScheduler(DefaultSaveDelay),
	}
}

// SetLogger routes session warnings (failed background writes, failed
// total recomputes) to the given logger.
func (s *Session) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// SetSaveDelay overrides the debounce delay. Call before editing begins.
func (s *Session) SetSaveDelay(d time.Duration) {
	s.sched.mu.Lock()
	s.sched.delay = d
	s.sched.mu.Unlock()
}

// Load reads the project's persisted rows into the working set and pads
// it up to MinVisibleRows with blank placeholders. It also re-reads the
// project's tax and contingency terms, so a session reopened after a
// project update prices against the current terms.
func (s *Session) Load(ctx context.Context) error {
	project, err := s.projects.GetByID(ctx, s.projectID)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	items, err := s.items.ListByProject(ctx, s.projectID)
	if err != nil {
		return fmt.Errorf("loading estimate rows: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.terms = pricing.Terms{
		MaterialTaxRatePct: project.MaterialTaxRatePct,
		ContingencyPct:     project.ContingencyPct,
	}
	s.rows = make([]Row, 0, max(len(items), MinVisibleRows))
	for _, li := range items {
		s.rows = append(s.rows, Row{ID: PersistedRowID(li.ID), Item: *li})
	}
	s.padLocked()
	return nil
}

// Rows returns a snapshot of the working set in display order.
func (s *Session) Rows() []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Row returns the current state of one row by key.
func (s *Session) Row(key string) (Row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(key); idx >= 0 {
		return s.rows[idx], true
	}
	return Row{}, false
}

// SetCell applies one field edit to a row. A never-saved row is written
// to the store as soon as the edit gives it a description; edits to an
// already-saved row are written after the save delay, with rapid edits
// to the same row coalesced into the final state.
func (s *Session) SetCell(ctx context.Context, key, field, raw string) error {
	s.mu.Lock()
	idx := s.indexLocked(key)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("no row %s", key)
	}
	s.rows[idx].Item = s.rows[idx].Item.WithField(field, raw)
	s.mu.Unlock()

	return s.commitRow(ctx, key)
}

// InsertMaterial fills a row from a catalog entry and persists it the
// same way a manual edit would.
func (s *Session) InsertMaterial(ctx context.Context, key string, entry *domain.MaterialCatalogEntry) error {
	s.mu.Lock()
	idx := s.indexLocked(key)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("no row %s", key)
	}
	s.rows[idx].Item = entry.SeedRow(s.rows[idx].Item)
	s.mu.Unlock()

	return s.commitRow(ctx, key)
}

// commitRow pushes a row's current state toward the store: immediate
// create for a described new row, debounced update for a saved row,
// nothing for a blank placeholder.
func (s *Session) commitRow(ctx context.Context, key string) error {
	s.mu.Lock()
	idx := s.indexLocked(key)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	row := s.rows[idx]

	if row.IsNew() {
		if !row.Item.HasDescription() {
			s.mu.Unlock()
			return nil
		}
		item := row.Item
		s.mu.Unlock()

		if err := s.items.Create(ctx, &item); err != nil {
			return fmt.Errorf("saving new row: %w", err)
		}

		s.mu.Lock()
		if idx := s.indexLocked(key); idx >= 0 {
			s.rows[idx].ID = PersistedRowID(item.ID)
			s.rows[idx].Item.ID = item.ID
			s.rows[idx].Item.CreatedAt = item.CreatedAt
			s.rows[idx].Item.UpdatedAt = item.UpdatedAt
		}
		s.mu.Unlock()
		s.recomputeTotal(ctx)
		return nil
	}

	snapshot := row.Item
	s.mu.Unlock()
	s.sched.Schedule(key, func() {
		ctx := context.Background()
		if err := s.items.Update(ctx, &snapshot); err != nil {
			s.log.Warn("row update failed", "row", key, "error", err)
			return
		}
		s.recomputeTotal(ctx)
	})
	return nil
}

// DeleteRow removes one row. A saved row is deleted from the store
// first; on failure the working set is left untouched. The set is padded
// back up to MinVisibleRows afterwards.
func (s *Session) DeleteRow(ctx context.Context, key string) error {
	s.sched.Cancel(key)

	s.mu.Lock()
	idx := s.indexLocked(key)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("no row %s", key)
	}
	row := s.rows[idx]
	s.mu.Unlock()

	persisted := false
	if id, ok := row.ID.Persisted(); ok {
		if err := s.items.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting row: %w", err)
		}
		persisted = true
	}

	s.mu.Lock()
	if idx := s.indexLocked(key); idx >= 0 {
		s.rows = append(s.rows[:idx], s.rows[idx+1:]...)
	}
	s.padLocked()
	s.mu.Unlock()

	if persisted {
		s.recomputeTotal(ctx)
	}
	return nil
}

// DuplicateRow inserts a copy of a row directly below it. The copy gets
// a fresh identity but keeps the source's sort position, so stores that
// order by (sort_order, id) reload it right after its source. When the
// source carries a description the copy is saved immediately.
func (s *Session) DuplicateRow(ctx context.Context, key string) (Row, error) {
	s.mu.Lock()
	idx := s.indexLocked(key)
	if idx < 0 {
		s.mu.Unlock()
		return Row{}, fmt.Errorf("no row %s", key)
	}

	item := s.rows[idx].Item
	item.ID = 0
	item.CreatedAt = time.Time{}
	item.UpdatedAt = time.Time{}
	dup := Row{ID: NewRowToken(), Item: item}

	s.rows = append(s.rows, Row{})
	copy(s.rows[idx+2:], s.rows[idx+1:])
	s.rows[idx+1] = dup
	s.mu.Unlock()

	if err := s.commitRow(ctx, dup.ID.Key()); err != nil {
		return Row{}, err
	}
	r, _ := s.Row(dup.ID.Key())
	return r, nil
}

// AddRows appends n blank placeholder rows to the end of the grid.
func (s *Session) AddRows(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.rows = append(s.rows, s.placeholderLocked())
	}
}

// ClearResult reports a ClearAll run. When Deleted < Attempted some rows
// could not be removed from the store and remain in the working set.
type ClearResult struct {
	Attempted int
	Deleted   int
}

// ClearAll deletes every saved row, each independently, and resets the
// grid to blank placeholders. Rows whose store delete fails stay in the
// working set so nothing on screen silently diverges from storage.
func (s *Session) ClearAll(ctx context.Context) ClearResult {
	s.mu.Lock()
	rows := s.rows
	s.rows = nil
	s.mu.Unlock()

	var res ClearResult
	var kept []Row
	for _, row := range rows {
		s.sched.Cancel(row.ID.Key())
		id, ok := row.ID.Persisted()
		if !ok {
			continue
		}
		res.Attempted++
		if err := s.items.Delete(ctx, id); err != nil {
			s.log.Warn("clear all: row delete failed", "id", id, "error", err)
			kept = append(kept, row)
			continue
		}
		res.Deleted++
	}

	s.mu.Lock()
	s.rows = kept
	s.padLocked()
	s.mu.Unlock()

	s.recomputeTotal(ctx)
	return res
}

// ImportReport summarizes one bulk import: rows created, records skipped
// for having no description, and records whose store write failed.
type ImportReport struct {
	Created int
	Skipped int
	Failed  int
}

// BulkImport maps spreadsheet records to line items and saves each one
// independently; a bad record never aborts the rest. Created rows join
// the working set above the trailing blank placeholders.
func (s *Session) BulkImport(ctx context.Context, records []importer.Record) ImportReport {
	var rep ImportReport
	var created []Row

	s.mu.Lock()
	nextSort := s.nextSortLocked()
	s.mu.Unlock()

	for _, rec := range records {
		li, ok := importer.MapRecord(rec, s.projectID, s.defaults)
		if !ok {
			rep.Skipped++
			continue
		}
		li.SortOrder = nextSort
		nextSort++
		if err := s.items.Create(ctx, &li); err != nil {
			s.log.Warn("import: row create failed", "description", li.Description, "error", err)
			rep.Failed++
			continue
		}
		rep.Created++
		created = append(created, Row{ID: PersistedRowID(li.ID), Item: li})
	}

	if len(created) > 0 {
		s.mu.Lock()
		// Drop trailing blank placeholders, splice the imports in, re-pad.
		n := len(s.rows)
		for n > 0 && s.rows[n-1].IsNew() && !s.rows[n-1].Item.HasDescription() {
			n--
		}
		s.rows = append(s.rows[:n], created...)
		s.padLocked()
		s.mu.Unlock()
		s.recomputeTotal(ctx)
	}
	return rep
}

// Flush writes every pending debounced update immediately. Call before
// closing the session.
func (s *Session) Flush() {
	s.sched.Flush()
}

// Rollup prices the current working set, blank placeholders excluded.
func (s *Session) Rollup() pricing.Rollup {
	s.mu.Lock()
	items := make([]domain.LineItem, len(s.rows))
	for i, row := range s.rows {
		items[i] = row.Item
	}
	terms := s.terms
	s.mu.Unlock()
	return pricing.ComputeRollup(items, terms)
}

// recomputeTotal refreshes the project's cached total from the persisted
// rows. Failures are logged, never surfaced to the edit that triggered
// the recompute.
func (s *Session) recomputeTotal(ctx context.Context) {
	items, err := s.items.ListByProject(ctx, s.projectID)
	if err != nil {
		s.log.Warn("total recompute: listing rows failed", "project", s.projectID, "error", err)
		return
	}
	vals := make([]domain.LineItem, len(items))
	for i, li := range items {
		vals[i] = *li
	}
	s.mu.Lock()
	terms := s.terms
	s.mu.Unlock()
	r := pricing.ComputeRollup(vals, terms)
	if err := s.projects.UpdateTotal(ctx, s.projectID, r.GrandTotal); err != nil {
		s.log.Warn("total recompute: update failed", "project", s.projectID, "error", err)
	}
}

func (s *Session) indexLocked(key string) int {
	for i, row := range s.rows {
		if row.ID.Key() == key {
			return i
		}
	}
	return -1
}

func (s *Session) padLocked() {
	for len(s.rows) < MinVisibleRows {
		s.rows = append(s.rows, s.placeholderLocked())
	}
}

func (s *Session) placeholderLocked() Row {
	item := domain.NewRow(s.projectID, s.defaults)
	item.SortOrder = s.nextSortLocked()
	return Row{ID: NewRowToken(), Item: item}
}

func (s *Session) nextSortLocked() int {
	next := 1
	for _, row := range s.rows {
		if row.Item.SortOrder >= next {
			next = row.Item.SortOrder + 1
		}
	}
	return next
}
