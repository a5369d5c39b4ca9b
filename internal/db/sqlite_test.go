package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/career-advisor/internal/catalog"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "careers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_ReplaceAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	table, err := catalog.ToTable(catalog.FallbackCareers())
	require.NoError(t, err)
	require.NoError(t, s.ReplaceTable(ctx, "careers", table))

	columns, rows, err := s.QueryTable(ctx, "careers")
	require.NoError(t, err)
	assert.Equal(t, catalog.RequiredColumns, columns)
	require.Len(t, rows, 2)

	// Ordered by id.
	assert.Equal(t, "data_scientist", rows[0][catalog.ColumnID])
	assert.Equal(t, "80000", rows[0][catalog.ColumnSalaryMin])
	assert.Equal(t, `["remote","hybrid"]`, rows[0][catalog.ColumnWorkStyles])

	// Replacing again does not duplicate rows.
	require.NoError(t, s.ReplaceTable(ctx, "careers", table))
	_, rows, err = s.QueryTable(ctx, "careers")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSQLite_BlankCellsReadBackBlank(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	table, err := catalog.ToTable(catalog.FallbackCareers()[:1])
	require.NoError(t, err)
	table.Rows[0][catalog.ColumnRelevantInterests] = ""
	table.Rows[0][catalog.ColumnGrowthPotential] = ""
	require.NoError(t, s.ReplaceTable(ctx, "careers", table))

	_, rows, err := s.QueryTable(ctx, "careers")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0][catalog.ColumnRelevantInterests])
	assert.Equal(t, "", rows[0][catalog.ColumnGrowthPotential])
}

func TestSQLite_AsCatalogSource(t *testing.T) {
	ctx := context.Background()
	s := openTestSQLite(t)

	table, err := catalog.ToTable(catalog.FallbackCareers())
	require.NoError(t, err)
	require.NoError(t, s.ReplaceTable(ctx, "careers", table))

	src := &catalog.QuerySource{Kind: "sqlite", Table: "careers", Querier: s}

	report := catalog.Validate(ctx, src)
	assert.True(t, report.Valid)
	assert.Equal(t, 2, report.Stats.TotalCareers)

	c := catalog.Load(ctx, src, zap.NewNop())
	assert.False(t, c.Fallback)
	assert.Equal(t, "sqlite:careers", c.Source)

	ds, ok := c.Get(catalog.FallbackDataScientistID)
	require.True(t, ok)
	assert.Equal(t, catalog.FallbackCareers()[1], ds)
}

func TestSQLite_MissingTableIsSourceError(t *testing.T) {
	s := openTestSQLite(t)
	src := &catalog.QuerySource{Kind: "sqlite", Table: "nope", Querier: s}

	report := catalog.Validate(context.Background(), src)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "Failed to read catalog source")
}

func TestSQLite_RejectsBadTableName(t *testing.T) {
	s := openTestSQLite(t)

	_, _, err := s.QueryTable(context.Background(), "careers; DROP TABLE x")
	assert.Error(t, err)
	assert.Error(t, s.ReplaceTable(context.Background(), "bad name", &catalog.Table{}))
}
