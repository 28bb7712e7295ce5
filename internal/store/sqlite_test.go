package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nss-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}

func TestSQLite_ProjectionsRequireRun(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.SaveProjections(context.Background(), "missing-run", []model.RegionalProjection{
		{RegionCode: "SA-01", Region: "Riyadh", Scenario: model.ScenarioBaseline, Year: 2030, Population: 10},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert run_projections row 0")
}

func TestSQLite_EmptyProjections(t *testing.T) {
	st := newTestSQLiteStore(t)

	n, err := st.SaveProjections(context.Background(), "any", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_ClosedStore(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Close())

	_, err := st.CreateRun(context.Background(), model.RunParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: insert run")
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
