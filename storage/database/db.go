package database

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/fs"
)

// driver names registered by modernc.org/sqlite & lib/pq
const (
	sqliteDriver   = "sqlite"
	postgresDriver = "postgres"
)

var gooseDialects = map[string]string{
	core.EngineSQLite:   "sqlite3",
	core.EnginePostgres: "postgres",
}

// SQLiteDSN returns the modernc.org/sqlite DSN of the database file at path, with foreign keys enforced.
func SQLiteDSN(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func postgresDSN(conf core.DatabaseConfig) string {
	sslMode := "require"
	if conf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   postgresDriver,
		Host:     conf.Address(),
		Path:     conf.Name,
		RawQuery: q.Encode(),
	}
	if conf.User != "" {
		u.User = url.UserPassword(conf.User, conf.Password)
	}
	return u.String()
}

// Open opens (without connecting) the database configured in conf.Database.
func Open(conf core.DatabaseConfig) (*sqlx.DB, error) {
	switch conf.Engine {
	case core.EngineSQLite:
		if dir := filepath.Dir(conf.Path); dir != "." && conf.Path != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(err, "creating database directory")
			}
		}
		db, err := sqlx.Open(sqliteDriver, SQLiteDSN(conf.Path))
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite database")
		}
		// one shared connection: pragmas are per connection and the engine is embedded
		db.SetMaxOpenConns(1)
		return db, nil
	case core.EnginePostgres:
		db, err := sqlx.Open(postgresDriver, postgresDSN(conf))
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres database")
		}
		return db, nil
	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Engine)
	}
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB, maxAttempts int) error {
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate brings the schema up to date.
func Migrate(db *sqlx.DB, engine string, logger core.Logger) error {
	return RunMigrations("up", db, engine, logger)
}

// RunMigrations runs a goose command ("up", "down", "status", "version", ...) against the embedded migrations.
// goose output is written to logger.
func RunMigrations(command string, db *sqlx.DB, engine string, logger core.Logger, args ...string) error {
	dialect, ok := gooseDialects[engine]
	if !ok {
		return errors.Errorf("unsupported database engine %q", engine)
	}
	goose.SetLogger(gooseLogger{logger: logger})
	goose.SetBaseFS(appfs.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err := goose.Run(command, db.DB, path.Join("migrations", engine), args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

// Setup is the single initialization step of the relational backend: it opens the database,
// waits for it to answer and migrates the schema. The returned handle is shared by all repositories
// and must be released with Close on exit.
func Setup(ctx context.Context, conf core.DatabaseConfig, logger core.Logger) (*sqlx.DB, error) {
	db, err := Open(conf)
	if err != nil {
		return nil, err
	}

	attempts := 30
	if conf.Engine == core.EngineSQLite {
		attempts = 1
	}
	if err = ping(ctx, db, attempts); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}

	if err = Migrate(db, conf.Engine, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the shared handle; for the embedded engine this flushes and closes the database file.
func Close(db *sqlx.DB) error {
	if db == nil {
		return nil
	}
	return errors.Wrap(db.Close(), "closing database")
}
