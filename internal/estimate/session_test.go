package estimate

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/importer"
	"github.com/whittech/estimator/internal/repository"
	"github.com/whittech/estimator/internal/testutil"
)

// countingLineItemRepo tracks how many Update calls reach the store, for
// asserting that rapid edits coalesce.
type countingLineItemRepo struct {
	repository.LineItemRepo

	mu      sync.Mutex
	updates int
}

func (c *countingLineItemRepo) Update(ctx context.Context, li *domain.LineItem) error {
	c.mu.Lock()
	c.updates++
	c.mu.Unlock()
	return c.LineItemRepo.Update(ctx, li)
}

func (c *countingLineItemRepo) updateCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates
}

type sessionEnv struct {
	session  *Session
	items    repository.LineItemRepo
	projects repository.ProjectRepo
	project  *domain.Project
}

// newSessionEnv builds a loaded session over an in-memory store. wrap,
// when non-nil, intercepts the line-item repo (fault injection, counting).
func newSessionEnv(t *testing.T, wrap func(repository.LineItemRepo) repository.LineItemRepo, opts ...testutil.ProjectOption) sessionEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(db)
	project := testutil.NewTestProject("Session", opts...)
	require.NoError(t, projects.Create(context.Background(), project))

	var items repository.LineItemRepo = repository.NewSQLiteLineItemRepo(db)
	if wrap != nil {
		items = wrap(items)
	}

	s := NewSession(items, projects, project, domain.FallbackRowDefaults())
	require.NoError(t, s.Load(context.Background()))
	return sessionEnv{session: s, items: items, projects: projects, project: project}
}

func (e sessionEnv) storedTotal(t *testing.T) float64 {
	t.Helper()
	p, err := e.projects.GetByID(context.Background(), e.project.ID)
	require.NoError(t, err)
	return p.TotalAmount
}

func TestSession_LoadPadsToMinimum(t *testing.T) {
	env := newSessionEnv(t, nil)

	rows := env.session.Rows()
	require.Len(t, rows, MinVisibleRows)
	for _, row := range rows {
		assert.True(t, row.IsNew())
		assert.False(t, row.Item.HasDescription())
	}
}

func TestSession_LoadPutsSavedRowsFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(db)
	items := repository.NewSQLiteLineItemRepo(db)
	ctx := context.Background()

	project := testutil.NewTestProject("Loaded")
	require.NoError(t, projects.Create(ctx, project))
	li := testutil.NewTestLineItem(project.ID, "existing work")
	require.NoError(t, items.Create(ctx, li))

	s := NewSession(items, projects, project, domain.FallbackRowDefaults())
	require.NoError(t, s.Load(ctx))

	rows := s.Rows()
	require.Len(t, rows, MinVisibleRows)
	assert.False(t, rows[0].IsNew())
	assert.Equal(t, "existing work", rows[0].Item.Description)
	assert.True(t, rows[1].IsNew())
}

func TestSession_PlaceholderEditsStayInMemory(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldQuantity, "12"))
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldMaterialCost, "9.99"))

	row, ok := env.session.Row(key)
	require.True(t, ok)
	assert.True(t, row.IsNew(), "no description, so nothing is saved")
	assert.Equal(t, 12.0, row.Item.Quantity)

	stored, err := env.items.ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSession_FirstDescriptionSavesImmediately(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldQuantity, "2"))
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "Pull Cat6 drops"))

	// The row key changes once the database id takes over.
	rows := env.session.Rows()
	saved := rows[0]
	assert.False(t, saved.IsNew())
	id, ok := saved.ID.Persisted()
	require.True(t, ok)
	assert.Greater(t, id, int64(0))
	assert.Equal(t, id, saved.Item.ID)

	stored, err := env.items.ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Pull Cat6 drops", stored[0].Description)
	assert.Equal(t, 2.0, stored[0].Quantity)

	assert.Greater(t, env.storedTotal(t), 0.0, "cached total recomputed after create")
}

func TestSession_SavedRowNeverBecomesNewAgain(t *testing.T) {
	env := newSessionEnv(t, nil)
	env.session.SetSaveDelay(5 * time.Millisecond)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "camera rough-in"))
	saved := env.session.Rows()[0]
	require.False(t, saved.IsNew())

	// Blanking the description does not revert the row to unsaved.
	require.NoError(t, env.session.SetCell(ctx, saved.ID.Key(), domain.FieldDescription, ""))
	env.session.Flush()
	row, ok := env.session.Row(saved.ID.Key())
	require.True(t, ok)
	assert.False(t, row.IsNew())
}

func TestSession_RapidEditsCoalesceIntoOneUpdate(t *testing.T) {
	var counting *countingLineItemRepo
	env := newSessionEnv(t, func(inner repository.LineItemRepo) repository.LineItemRepo {
		counting = &countingLineItemRepo{LineItemRepo: inner}
		return counting
	})
	env.session.SetSaveDelay(50 * time.Millisecond)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "patch panel"))
	savedKey := env.session.Rows()[0].ID.Key()

	for _, qty := range []string{"1", "12", "123"} {
		require.NoError(t, env.session.SetCell(ctx, savedKey, domain.FieldQuantity, qty))
	}

	require.Eventually(t, func() bool {
		stored, err := env.items.ListByProject(ctx, env.project.ID)
		return err == nil && len(stored) == 1 && stored[0].Quantity == 123
	}, time.Second, 10*time.Millisecond, "only the final edit is written")

	assert.Equal(t, 1, counting.updateCount(), "rapid edits coalesce into one store write")
}

func TestSession_FlushWritesPendingEdits(t *testing.T) {
	env := newSessionEnv(t, nil)
	env.session.SetSaveDelay(time.Hour)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "door contact"))
	savedKey := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, savedKey, domain.FieldQuantity, "8"))

	env.session.Flush()

	stored, err := env.items.ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 8.0, stored[0].Quantity)
}

func TestSession_DeleteRowKeepsMinimum(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "to be removed"))
	savedKey := env.session.Rows()[0].ID.Key()

	require.NoError(t, env.session.DeleteRow(ctx, savedKey))

	rows := env.session.Rows()
	require.Len(t, rows, MinVisibleRows, "grid pads back up after delete")
	for _, row := range rows {
		assert.False(t, row.Item.HasDescription())
	}

	stored, err := env.items.ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Zero(t, env.storedTotal(t))
}

func TestSession_DeleteFailureLeavesRowInPlace(t *testing.T) {
	flaky := &testutil.FlakyLineItemRepo{FailDeleteIDs: map[int64]bool{}}
	env := newSessionEnv(t, func(inner repository.LineItemRepo) repository.LineItemRepo {
		flaky.Inner = inner
		return flaky
	})
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "stubborn row"))
	saved := env.session.Rows()[0]
	id, _ := saved.ID.Persisted()
	flaky.FailDeleteIDs[id] = true

	err := env.session.DeleteRow(ctx, saved.ID.Key())
	assert.ErrorIs(t, err, testutil.ErrInjected)

	row, ok := env.session.Row(saved.ID.Key())
	require.True(t, ok, "failed delete keeps the row on screen")
	assert.Equal(t, "stubborn row", row.Item.Description)
}

func TestSession_DuplicateRow(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "strobe install"))
	require.NoError(t, env.session.SetCell(ctx, env.session.Rows()[0].ID.Key(), domain.FieldQuantity, "4"))
	env.session.Flush()

	dup, err := env.session.DuplicateRow(ctx, env.session.Rows()[0].ID.Key())
	require.NoError(t, err)
	assert.False(t, dup.IsNew(), "described duplicate is saved immediately")
	assert.Equal(t, "strobe install", dup.Item.Description)
	assert.Equal(t, 4.0, dup.Item.Quantity)

	rows := env.session.Rows()
	assert.Equal(t, dup.ID.Key(), rows[1].ID.Key(), "copy sits directly below the source")
	assert.NotEqual(t, rows[0].Item.ID, rows[1].Item.ID)

	stored, err := env.items.ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestSession_DuplicateRowReloadsNextToSource(t *testing.T) {
	db := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(db)
	items := repository.NewSQLiteLineItemRepo(db)
	ctx := context.Background()

	project := testutil.NewTestProject("Reload")
	require.NoError(t, projects.Create(ctx, project))
	require.NoError(t, items.Create(ctx, testutil.NewTestLineItem(project.ID, "pull cable", testutil.WithSortOrder(1))))
	require.NoError(t, items.Create(ctx, testutil.NewTestLineItem(project.ID, "terminate jacks", testutil.WithSortOrder(2))))

	s := NewSession(items, projects, project, domain.FallbackRowDefaults())
	require.NoError(t, s.Load(ctx))
	_, err := s.DuplicateRow(ctx, s.Rows()[0].ID.Key())
	require.NoError(t, err)

	// A fresh session sees the copy right after its source, not at the end.
	reloaded := NewSession(items, projects, project, domain.FallbackRowDefaults())
	require.NoError(t, reloaded.Load(ctx))
	var descs []string
	for _, row := range reloaded.Rows()[:3] {
		descs = append(descs, row.Item.Description)
	}
	assert.Equal(t, []string{"pull cable", "pull cable", "terminate jacks"}, descs)
}

func TestSession_DuplicateBlankRowStaysInMemory(t *testing.T) {
	env := newSessionEnv(t, nil)

	key := env.session.Rows()[5].ID.Key()
	dup, err := env.session.DuplicateRow(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, dup.IsNew())

	stored, err := env.items.ListByProject(context.Background(), env.project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSession_AddRows(t *testing.T) {
	env := newSessionEnv(t, nil)
	env.session.AddRows(10)
	assert.Len(t, env.session.Rows(), MinVisibleRows+10)
}

func TestSession_InsertMaterial(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	entry := &domain.MaterialCatalogEntry{
		Category:          "Structured Cabling",
		ItemName:          "Cat6 Keystone Jack",
		Unit:              "EA",
		MaterialCost:      4.25,
		TypicalLaborHours: 0.1,
	}
	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.InsertMaterial(ctx, key, entry))

	row := env.session.Rows()[0]
	assert.False(t, row.IsNew(), "catalog insert saves like a manual edit")
	assert.Equal(t, "Cat6 Keystone Jack", row.Item.Description)
	assert.Equal(t, 4.25, row.Item.MaterialCost)
	assert.Equal(t, 0.1, row.Item.LaborHours)
}

func TestSession_ClearAll(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	for _, desc := range []string{"one", "two", "three"} {
		key := blankRowKey(t, env.session)
		require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, desc))
	}

	res := env.session.ClearAll(ctx)
	assert.Equal(t, ClearResult{Attempted: 3, Deleted: 3}, res)

	rows := env.session.Rows()
	require.Len(t, rows, MinVisibleRows)
	for _, row := range rows {
		assert.True(t, row.IsNew())
	}
	assert.Zero(t, env.storedTotal(t))
}

func TestSession_ClearAllKeepsRowsThatFailedToDelete(t *testing.T) {
	flaky := &testutil.FlakyLineItemRepo{FailDeleteIDs: map[int64]bool{}}
	env := newSessionEnv(t, func(inner repository.LineItemRepo) repository.LineItemRepo {
		flaky.Inner = inner
		return flaky
	})
	ctx := context.Background()

	for _, desc := range []string{"deletable", "stuck"} {
		key := blankRowKey(t, env.session)
		require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, desc))
	}
	for _, row := range env.session.Rows() {
		if row.Item.Description == "stuck" {
			id, _ := row.ID.Persisted()
			flaky.FailDeleteIDs[id] = true
		}
	}

	res := env.session.ClearAll(ctx)
	assert.Equal(t, ClearResult{Attempted: 2, Deleted: 1}, res)

	rows := env.session.Rows()
	require.Len(t, rows, MinVisibleRows)
	assert.Equal(t, "stuck", rows[0].Item.Description, "undeleted row survives the clear")
	assert.False(t, rows[0].IsNew())
}

func TestSession_BulkImport(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	records := []importer.Record{
		{"description": "Cat6 drop", "qty": "24", "unit_cost": "12.50"},
		{"qty": "5"},
		{"item": "Patch panel", "qty": "2", "unit_cost": "145"},
	}
	rep := env.session.BulkImport(ctx, records)
	assert.Equal(t, ImportReport{Created: 2, Skipped: 1}, rep)

	rows := env.session.Rows()
	require.Len(t, rows, MinVisibleRows, "imports land above the placeholders")
	assert.Equal(t, "Cat6 drop", rows[0].Item.Description)
	assert.Equal(t, "Patch panel", rows[1].Item.Description)
	assert.False(t, rows[0].IsNew())
	assert.True(t, rows[2].IsNew())

	stored, err := env.items.ListByProject(ctx, env.project.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Greater(t, env.storedTotal(t), 0.0)
}

func TestSession_BulkImportCountsStoreFailures(t *testing.T) {
	flaky := &testutil.FlakyLineItemRepo{
		FailCreateDescriptions: map[string]bool{"cursed row": true},
	}
	env := newSessionEnv(t, func(inner repository.LineItemRepo) repository.LineItemRepo {
		flaky.Inner = inner
		return flaky
	})

	records := []importer.Record{
		{"description": "fine row"},
		{"description": "cursed row"},
	}
	rep := env.session.BulkImport(context.Background(), records)
	assert.Equal(t, ImportReport{Created: 1, Failed: 1}, rep)

	stored, err := env.items.ListByProject(context.Background(), env.project.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "fine row", stored[0].Description)
}

func TestSession_RollupMatchesHandComputedTotal(t *testing.T) {
	env := newSessionEnv(t, nil, testutil.WithTerms(8, 5))
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "device install"))
	savedKey := env.session.Rows()[0].ID.Key()
	for field, raw := range map[string]string{
		domain.FieldQuantity:          "1",
		domain.FieldMaterialCost:      "20",
		domain.FieldMaterialMarkupPct: "10",
		domain.FieldLaborHours:        "1",
		domain.FieldLaborRate:         "50",
		domain.FieldLaborMarkupPct:    "0",
		domain.FieldOverheadPct:       "10",
		domain.FieldProfitPct:         "10",
	} {
		require.NoError(t, env.session.SetCell(ctx, savedKey, field, raw))
	}
	env.session.Flush()

	r := env.session.Rollup()
	assert.Equal(t, 1, r.ItemCount, "placeholders never price")
	assert.InDelta(t, 87.12, r.SubtotalPreTax, 1e-9)
	assert.InDelta(t, 93.324, r.GrandTotal, 1e-9)

	assert.InDelta(t, 93.324, env.storedTotal(t), 1e-9, "cached total matches the rollup")
}

func TestSession_LoadRefreshesProjectTerms(t *testing.T) {
	env := newSessionEnv(t, nil)
	ctx := context.Background()

	key := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, key, domain.FieldDescription, "keypad"))
	savedKey := env.session.Rows()[0].ID.Key()
	require.NoError(t, env.session.SetCell(ctx, savedKey, domain.FieldMaterialCost, "100"))
	env.session.Flush()

	before := env.session.Rollup()
	assert.Zero(t, before.MaterialTax)
	assert.Zero(t, before.Contingency)

	env.project.MaterialTaxRatePct = 8
	env.project.ContingencyPct = 5
	require.NoError(t, env.projects.Update(ctx, env.project))

	// Reloading picks up the changed terms.
	require.NoError(t, env.session.Load(ctx))
	after := env.session.Rollup()
	assert.Greater(t, after.MaterialTax, 0.0)
	assert.Greater(t, after.Contingency, 0.0)
	assert.Greater(t, after.GrandTotal, before.GrandTotal)
}

// blankRowKey returns the first blank placeholder's key.
func blankRowKey(t *testing.T, s *Session) string {
	t.Helper()
	for _, row := range s.Rows() {
		if row.IsNew() && !row.Item.HasDescription() {
			return row.ID.Key()
		}
	}
	t.Fatal("no blank row available")
	return ""
}
