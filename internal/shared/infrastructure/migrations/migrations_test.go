package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

func TestPending(t *testing.T) {
	for _, driver := range []database.Driver{database.DriverSQLite, database.DriverPostgres} {
		names, err := migrations.Pending(driver)
		require.NoError(t, err)
		assert.Equal(t, []string{"001_schema.up.sql", "002_reference_data.up.sql"}, names, driver)
	}
}

func TestRun_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "m.db")})
	require.NoError(t, err)
	defer conn.Close()

	applied, err := migrations.Run(ctx, conn, observability.DiscardLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"001_schema", "002_reference_data"}, applied)

	applied, err = migrations.Run(ctx, conn, observability.DiscardLogger())
	require.NoError(t, err)
	assert.Empty(t, applied)

	var name string
	require.NoError(t, conn.QueryRow(ctx, `SELECT name FROM venues WHERE id = ?`, "1256").Scan(&name))
	assert.Equal(t, "Fox Court", name)
}
