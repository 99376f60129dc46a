// Package migrations applies the embedded schema for the configured backend.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/felixgeelhaar/tribunal/internal/shared/application"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

const versionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TEXT NOT NULL
)`

// Pending lists the migration files for driver in application order.
func Pending(driver database.Driver) ([]string, error) {
	entries, err := fs.ReadDir(files, driver.String())
	if err != nil {
		return nil, fmt.Errorf("read %s migrations: %w", driver, err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Run applies every migration not yet recorded in schema_migrations, each in
// its own transaction. It returns the versions applied.
func Run(ctx context.Context, conn database.Connection, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	driver := conn.Driver()

	if _, err := conn.Exec(ctx, versionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := Pending(driver)
	if err != nil {
		return nil, err
	}

	uow := database.NewUnitOfWork(conn)
	var applied []string
	for _, name := range names {
		version := strings.TrimSuffix(name, ".up.sql")

		var seen int
		err := conn.QueryRow(ctx,
			database.Rebind(driver, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`),
			version,
		).Scan(&seen)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if seen > 0 {
			continue
		}

		body, err := fs.ReadFile(files, driver.String()+"/"+name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}

		err = application.WithUnitOfWork(ctx, uow, func(ctx context.Context) error {
			exec := database.ExecutorFromContext(ctx, conn)
			if _, err := exec.Exec(ctx, string(body)); err != nil {
				return err
			}
			_, err := exec.Exec(ctx,
				database.Rebind(driver, `INSERT INTO schema_migrations (version, applied_at) VALUES (?, CURRENT_TIMESTAMP)`),
				version,
			)
			return err
		})
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", version, err)
		}

		logger.InfoContext(ctx, "applied migration", "version", version, "driver", driver.String())
		applied = append(applied, version)
	}
	return applied, nil
}
