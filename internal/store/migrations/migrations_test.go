package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/ecuprobe/cli/internal/store/migrations"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	all, err := migrations.Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 2)

	for i := 1; i < len(all); i++ {
		require.Greater(t, all[i].Version, all[i-1].Version)
	}
	require.Equal(t, "runs", all[0].Description)
}

func TestRunIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, migrations.Run(ctx, db))
	v1, err := migrations.CurrentVersion(ctx, db)
	require.NoError(t, err)

	require.NoError(t, migrations.Run(ctx, db))
	v2, err := migrations.CurrentVersion(ctx, db)
	require.NoError(t, err)

	require.Equal(t, v1, v2)
}

func TestPending(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	all, err := migrations.Load()
	require.NoError(t, err)

	pending, err := migrations.Pending(ctx, db)
	require.NoError(t, err)
	require.Len(t, pending, len(all))

	require.NoError(t, migrations.Run(ctx, db))

	pending, err = migrations.Pending(ctx, db)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestTablesCreated(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, migrations.Run(ctx, db))

	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='runs'").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "runs", name)

	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_runs_started_at'").Scan(&name)
	require.NoError(t, err)
}
