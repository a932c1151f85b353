package database

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/url"
	"path"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // registers "postgres"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/trezcool/unirecords/core"
	appfs "github.com/trezcool/unirecords/fs"
)

// Supported engines. Each one is also the name of its database/sql driver.
const (
	EnginePostgres = "postgres" // lib/pq
	EnginePgx      = "pgx"      // jackc/pgx stdlib
	EngineSQLite   = "sqlite"   // modernc.org/sqlite
)

var ErrUnknownEngine = errors.New("unknown database engine")

func isPostgres(engine string) bool {
	return engine == EnginePostgres || engine == EnginePgx
}

func dataSourceName(dbName string, conf *core.Config) (string, error) {
	switch engine := conf.Database.Engine; {
	case isPostgres(engine):
		sslMode := "require"
		if conf.Database.DisableTLS {
			sslMode = "disable"
		}
		q := make(url.Values)
		q.Set("sslmode", sslMode)
		q.Set("timezone", "utc")

		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(conf.Database.User, conf.Database.Password),
			Host:     conf.Database.Address(),
			Path:     dbName,
			RawQuery: q.Encode(),
		}
		return u.String(), nil
	case engine == EngineSQLite:
		// foreign keys are off by default in sqlite
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbName), nil
	default:
		return "", errors.Wrap(ErrUnknownEngine, engine)
	}
}

func open(dbName string, conf *core.Config) (*sqlx.DB, error) {
	dsn, err := dataSourceName(dbName, conf)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(conf.Database.Engine, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if conf.Database.Engine == EngineSQLite {
		// a single connection keeps in-memory databases alive and serializes writers
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// Open connects to the configured database and waits for it to be ready.
func Open(conf *core.Config) (*sqlx.DB, error) {
	db, err := open(conf.Database.Name, conf)
	if err != nil {
		return nil, err
	}
	if err = ping(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func createDB(db *sql.DB, conf *core.Config) error {
	var exists bool
	err := db.QueryRow("SELECT true FROM pg_database WHERE datname = $1", conf.Database.Name).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, "checking DB")
	}
	if !exists {
		// identifiers cannot be bound as parameters
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", conf.Database.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the configured postgres database. Sqlite creates its file on open.
func CreateIfNotExist(conf *core.Config) error {
	if !isPostgres(conf.Database.Engine) {
		return nil
	}

	db, err := open("postgres", conf)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err = ping(db.DB); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	return createDB(db.DB, conf)
}

// MigrationsDir returns the embedded migrations directory of engine.
func MigrationsDir(engine string) string {
	if isPostgres(engine) {
		return path.Join("migrations", "postgres")
	}
	return path.Join("migrations", "sqlite")
}

// SetupMigrations points goose at the embedded migrations of engine.
func SetupMigrations(engine string) error {
	dialect := "sqlite3"
	if isPostgres(engine) {
		dialect = "postgres"
	}
	goose.SetBaseFS(appfs.FS)
	return errors.Wrap(goose.SetDialect(dialect), "setting migration dialect")
}

// Migrate silently applies every pending migration.
func Migrate(db *sql.DB, engine string) error {
	if err := SetupMigrations(engine); err != nil {
		return err
	}
	goose.SetLogger(log.New(io.Discard, "", 0))
	if err := goose.Up(db, MigrationsDir(engine)); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
