package sqlkv

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/dtroode/shopfront/database"
	"github.com/dtroode/shopfront/internal/logger"
)

// Dialect describes the SQL flavour of a connection.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string
	// Goose is the migration dialect name.
	Goose string
	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string
}

var (
	Postgres = Dialect{
		Driver:      "pgx",
		Goose:       "postgres",
		Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
	SQLite = Dialect{
		Driver:      "sqlite",
		Goose:       "sqlite3",
		Placeholder: func(int) string { return "?" },
	}
)

type Connection struct {
	*sql.DB
	dialect Dialect
}

// NewConnection opens dsn with the dialect's driver and migrates the schema.
func NewConnection(ctx context.Context, dialect Dialect, dsn string, log *logger.Logger) (*Connection, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect.Driver, err)
	}

	if dialect.Driver == SQLite.Driver {
		// sqlite allows one writer at a time
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db, dialect.Goose, log); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Connection{
		DB:      db,
		dialect: dialect,
	}, nil
}

func (c *Connection) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
