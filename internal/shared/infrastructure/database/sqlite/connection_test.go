package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database/sqlite"
)

func open(t *testing.T) database.Connection {
	t.Helper()
	conn, err := sqlite.NewConnection(context.Background(), database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "nested", "tribunal.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewConnection(t *testing.T) {
	conn := open(t)

	assert.NoError(t, conn.Ping(context.Background()))
	assert.Equal(t, database.DriverSQLite, conn.Driver())
}

func TestNewConnection_ViaFactory(t *testing.T) {
	conn, err := database.NewConnection(context.Background(), database.Config{
		SQLitePath: filepath.Join(t.TempDir(), "factory.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, database.DriverSQLite, conn.Driver())
}

func TestConnection_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	conn := open(t)

	_, err := conn.Exec(ctx, `CREATE TABLE venues (id TEXT PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)

	res, err := conn.Exec(ctx, `INSERT INTO venues (id, name) VALUES (?, ?), (?, ?)`,
		"1256", "Fox Court", "1030", "Leeds Magistrates")
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	var name string
	require.NoError(t, conn.QueryRow(ctx, `SELECT name FROM venues WHERE id = ?`, "1256").Scan(&name))
	assert.Equal(t, "Fox Court", name)

	rows, err := conn.Query(ctx, `SELECT name FROM venues ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		require.NoError(t, rows.Scan(&n))
		names = append(names, n)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"Fox Court", "Leeds Magistrates"}, names)

	err = conn.QueryRow(ctx, `SELECT name FROM venues WHERE id = ?`, "missing").Scan(&name)
	assert.True(t, database.IsNoRows(err))
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()
	conn := open(t)
	_, err := conn.Exec(ctx, `CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT)`)
	require.NoError(t, err)

	uow := database.NewUnitOfWork(conn)
	count := func() int {
		var n int
		require.NoError(t, conn.QueryRow(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n))
		return n
	}

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO notes (body) VALUES (?)`, "kept")
	require.NoError(t, err)

	// A nested unit joins the outer transaction and does not commit it.
	nested, err := uow.Begin(txCtx)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(nested))

	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, 1, count())

	txCtx, err = uow.Begin(ctx)
	require.NoError(t, err)
	_, err = database.ExecutorFromContext(txCtx, conn).Exec(txCtx, `INSERT INTO notes (body) VALUES (?)`, "dropped")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))
	assert.Equal(t, 1, count())

	assert.Error(t, uow.Commit(ctx))
}
