package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/globalos/accounts/internal/common"
	"github.com/globalos/accounts/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported values for the database driver setting.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// sqlitePragmas are appended to file DSNs. busy_timeout lets concurrent
// writers queue instead of failing with SQLITE_BUSY; _txlock=immediate takes
// the write lock at BEGIN so read-then-write transactions cannot deadlock.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"

// Open connects to the configured database and pings it.
//
// For SQLite, dsn is a file path (or a "file:" URI); the parent directory is
// created if missing. For PostgreSQL, dsn is passed to the pgx stdlib driver.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		name string
		src  string
	)
	switch driver {
	case DriverSQLite:
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if _, err := filex.EnsureParentDir(dsn); err != nil {
				return nil, err
			}
		}
		name, src = "sqlite", SQLiteDSN(dsn)
	case DriverPostgres:
		name, src = "pgx", dsn
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnsupportedDriver, driver)
	}

	db, err := sql.Open(name, src)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	return db, nil
}

// SQLiteDSN adds the service pragmas to a SQLite path or URI.
func SQLiteDSN(dsn string) string {
	if dsn == ":memory:" {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + sqlitePragmas
}
