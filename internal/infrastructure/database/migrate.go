package database

import (
	"embed"
	"fmt"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-digest/errors"
)

//go:embed migrations
var migrationFS embed.FS

// migrationDialect maps gorm dialector names onto sql-migrate dialect names
func migrationDialect(name string) (string, error) {
	switch name {
	case DialectSQLite:
		return "sqlite3", nil
	case DialectPostgres:
		return "postgres", nil
	case DialectMySQL:
		return "mysql", nil
	}
	return "", fmt.Errorf("no migrations for dialect %q", name)
}

// InitSchema applies the embedded migrations for the connected dialect.
// Applied migrations are tracked in gorp_migrations, so running it again
// leaves existing tables and rows untouched.
func InitSchema(db *gorm.DB) (int, error) {
	dialect, err := migrationDialect(db.Dialector.Name())
	if err != nil {
		return 0, err
	}

	log.Printf("🔄 Applying %s migrations using sql-migrate...", dialect)

	migrations := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations/" + dialect,
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate up, error: %v", err)
	}

	n, err := migrate.Exec(sqlDB, dialect, migrations, migrate.Up)
	if err != nil {
		return 0, errors.ErrDBMigrationFailed(err)
	}

	log.Printf("✅ Applied %d migrations!", n)
	return n, nil
}
