package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // PostgreSQL driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator applies the embedded schema migrations to the lists database.
type Migrator struct {
	m  *migrate.Migrate
	db *sql.DB
}

// Open connects to the given database and prepares the embedded migrations.
func Open(databaseURL string) (*Migrator, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{m: m, db: db}, nil
}

// OpenFromEnv connects using the same DB_* variables the server reads.
func OpenFromEnv() (*Migrator, error) {
	return Open(databaseURLFromEnv())
}

func databaseURLFromEnv() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(envOr("DB_USER", "postgres"), envOr("DB_PASSWORD", "postgres")),
		Host:     envOr("DB_HOST", "localhost") + ":" + envOr("DB_PORT", "5432"),
		Path:     envOr("DB_NAME", "giftlist"),
		RawQuery: "sslmode=" + envOr("DB_SSL_MODE", "disable"),
	}
	return u.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Up applies all pending migrations. Already up to date is not an error.
func (mg *Migrator) Up() error {
	return noChangeOK(mg.m.Up())
}

// Down rolls back the most recent migration.
func (mg *Migrator) Down() error {
	return noChangeOK(mg.m.Steps(-1))
}

// Steps runs n migrations; negative n rolls back.
func (mg *Migrator) Steps(n int) error {
	return noChangeOK(mg.m.Steps(n))
}

// Version reports the current schema version and whether it is dirty.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Force overwrites the recorded version without running migrations. Meant
// for recovering from a dirty state.
func (mg *Migrator) Force(version int) error {
	return mg.m.Force(version)
}

// Close releases the database connection.
func (mg *Migrator) Close() error {
	return mg.db.Close()
}

func noChangeOK(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
