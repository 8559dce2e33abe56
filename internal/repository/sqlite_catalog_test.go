package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whittech/estimator/internal/domain"
	"github.com/whittech/estimator/internal/repository"
	"github.com/whittech/estimator/internal/testutil"
)

func TestCatalogRepo_ListAndFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, all, "seed data should be present")

	cabling, err := repo.List(ctx, "Structured Cabling")
	require.NoError(t, err)
	assert.NotEmpty(t, cabling)
	for _, m := range cabling {
		assert.Equal(t, "Structured Cabling", m.Category)
	}
}

func TestCatalogRepo_Search_PrefixRankedFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	// "Cat6 Keystone Jack" is a prefix match for "Cat6"; "Cat6 Patch Cord"
	// descriptions also match as substrings.
	results, err := repo.Search(ctx, "Cat6")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.True(t, len(results) <= 20)
	assert.Contains(t, results[0].ItemName, "Cat6", "prefix matches should rank first")
}

func TestCatalogRepo_Add(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCatalogRepo(db)
	ctx := context.Background()

	m := &domain.MaterialCatalogEntry{
		Category:          "Access Control",
		ItemName:          "Turnstile",
		Description:       "Optical turnstile lane",
		MaterialCost:      8500,
		TypicalLaborHours: 16,
		Manufacturer:      "Boon Edam",
	}
	require.NoError(t, repo.Add(ctx, m))
	assert.Greater(t, m.ID, int64(0))

	results, err := repo.Search(ctx, "Turnstile")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "EA", results[0].Unit, "unit defaults when omitted")
}

func TestCatalogRepo_Add_RequiresName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCatalogRepo(db)

	err := repo.Add(context.Background(), &domain.MaterialCatalogEntry{Category: "Misc"})
	assert.Error(t, err)
}

func TestCategoryRepo_List_SeededInOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteCategoryRepo(db)

	cats, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 10)
	assert.Equal(t, "Structured Cabling", cats[0].Name)
}

func TestSettingsRepo_GetAndUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSettingsRepo(db)
	ctx := context.Background()

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 75.0, s.DefaultLaborRate)
	assert.Equal(t, 10.0, s.DefaultOverheadPct)

	s.CompanyName = "WhitTech Integration"
	s.DefaultLaborRate = 95
	s.MaterialTaxRatePct = 8.25
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "WhitTech Integration", got.CompanyName)
	assert.Equal(t, 95.0, got.DefaultLaborRate)
	assert.Equal(t, 8.25, got.MaterialTaxRatePct)
}
