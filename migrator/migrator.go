package migrator

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/*.sql
var SqlFiles embed.FS

// Migrate applies the embedded migrations using the dialect of the given driver
func Migrate(db *sql.DB, driver string) error {
	var dialect darwin.Dialect
	switch driver {
	case "sqlite3", "":
		dialect = darwin.SqliteDialect{}
	case "postgres":
		dialect = darwin.PostgresDialect{}
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}

	migrator := sqlmigrator.New(db, dialect)

	return migrator.Migrate(SqlFiles, "sql")
}
