// Package storage provides the data access layer for the admin API.
// It abstracts the underlying database (SQLite, PostgreSQL, MySQL) behind
// bun, allowing the rest of the application to interact with persistence in
// a uniform way. Store misses and query failures surface as the typed signal
// errors the response renderer classifies.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Abdallah-SE/ecommerce-api/model"
	"github.com/Abdallah-SE/ecommerce-api/pkg/retry"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Open connects to the database identified by driver ("sqlite", "postgres",
// "mysql") and dsn, returning a bun handle with the matching dialect. The
// readiness ping retries with backoff so the service survives a database
// that comes up slightly after it.
func Open(ctx context.Context, driver, dsn string) (*bun.DB, error) {
	driverName := driver
	// The pgx stdlib driver registers under "pgx"; map "postgres" to it.
	if driver == "postgres" {
		driverName = "pgx"
	}

	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage.Open: open %s database failed: %w", driver, err)
	}
	err = retry.Do(ctx, retry.Startup(), func() error {
		return sqlDB.PingContext(ctx)
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("storage.Open: ping %s database failed: %w", driver, err)
	}

	switch driver {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New()), nil
	case "sqlite":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	default:
		_ = sqlDB.Close()
		return nil, fmt.Errorf("storage.Open: unsupported driver %q", driver)
	}
}

// Migrate creates the tables the admin API needs if they do not exist yet.
func Migrate(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*model.Admin)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("storage.Migrate: create admins table failed: %w", err)
	}
	return nil
}
