package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	defaultMigrationsDir = "db/migrations"
	defaultSeedsDir      = "db/seeds"

	// Dedicated bookkeeping table so migrate never collides with schema
	// state managed by another tool on the same database
	migrationsTable = "minflow_schema_migrations"
)

var (
	readyAttempts = 30
	readyInterval = 2 * time.Second
)

// Migrator applies SQL migrations and seed files over a dedicated
// connection. The seed files are the source of the shared default
// categories (ids 1 through 10, "Other" last), so they only run once the
// schema is current.
type Migrator struct {
	db            *sql.DB
	migrationsDir string
	seedsDir      string
	logger        *slog.Logger
}

func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	return &Migrator{
		db:            db,
		migrationsDir: defaultMigrationsDir,
		seedsDir:      defaultSeedsDir,
		logger:        logger,
	}
}

// WaitForDatabase pings until the database accepts connections or the
// attempt budget runs out
func (m *Migrator) WaitForDatabase() error {
	for attempt := 1; attempt <= readyAttempts; attempt++ {
		if err := m.db.Ping(); err == nil {
			m.logger.Info("database ready", "attempt", attempt)
			return nil
		} else {
			m.logger.Warn("database not ready",
				"attempt", attempt,
				"max_attempts", readyAttempts,
				"error", err)
		}

		if attempt < readyAttempts {
			time.Sleep(readyInterval)
		}
	}

	return fmt.Errorf("database not ready after %d attempts", readyAttempts)
}

func (m *Migrator) instance() (*migrate.Migrate, error) {
	absDir, err := filepath.Abs(m.migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations dir: %w", err)
	}

	driver, err := postgres.WithInstance(m.db, &postgres.Config{
		MigrationsTable: migrationsTable,
	})
	if err != nil {
		return nil, fmt.Errorf("create postgres driver: %w", err)
	}

	return migrate.NewWithDatabaseInstance("file://"+absDir, "postgres", driver)
}

// Up applies every pending migration. A dirty version left behind by a
// crashed run is forced back to its recorded version first so migrate can
// retry it. A missing migrations directory is skipped, so a binary started
// outside the repo root still comes up.
func (m *Migrator) Up() error {
	if _, err := os.Stat(m.migrationsDir); os.IsNotExist(err) {
		m.logger.Warn("migrations directory missing, skipping", "dir", m.migrationsDir)
		return nil
	}

	mi, err := m.instance()
	if err != nil {
		return err
	}

	version, dirty, err := mi.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		m.logger.Warn("dirty migration state, forcing recorded version", "version", version)
		if err := mi.Force(int(version)); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
	}

	switch err := mi.Up(); {
	case err == nil:
		newVersion, _, verr := mi.Version()
		if verr != nil {
			return fmt.Errorf("read migration version: %w", verr)
		}
		m.logger.Info("migrations applied", "from", version, "to", newVersion)
	case errors.Is(err, migrate.ErrNoChange):
		m.logger.Info("schema up to date", "version", version)
	default:
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Seed executes the seed files in name order. A failing file is logged and
// skipped, so rerunning against already-seeded data stays harmless.
func (m *Migrator) Seed() error {
	if _, err := os.Stat(m.seedsDir); os.IsNotExist(err) {
		m.logger.Warn("seeds directory missing, skipping", "dir", m.seedsDir)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(m.seedsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("list seed files: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("read seed file %s: %w", filepath.Base(file), err)
		}

		if _, err := m.db.Exec(string(content)); err != nil {
			m.logger.Warn("seed file failed, skipping",
				"file", filepath.Base(file),
				"error", err)
			continue
		}

		m.logger.Info("seed file applied", "file", filepath.Base(file))
	}

	return nil
}

// Status reports the current migration version and dirty flag
func (m *Migrator) Status() (version uint, dirty bool, err error) {
	if _, statErr := os.Stat(m.migrationsDir); os.IsNotExist(statErr) {
		return 0, false, fmt.Errorf("migrations directory not found at %s", m.migrationsDir)
	}

	mi, err := m.instance()
	if err != nil {
		return 0, false, err
	}

	return mi.Version()
}

// RunMigrationsIfEnabled migrates and seeds over db when AUTO_MIGRATE=true.
// Seeding additionally requires SEED_DATABASE=true; a seed failure is logged
// but does not abort startup.
func RunMigrationsIfEnabled(db *sql.DB) error {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		slog.Info("auto-migration disabled (AUTO_MIGRATE != true)")
		return nil
	}

	migrator := NewMigrator(db, slog.Default())

	if err := migrator.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	if os.Getenv("SEED_DATABASE") == "true" {
		if err := migrator.Seed(); err != nil {
			slog.Warn("seed loading failed", "error", err)
		}
	} else {
		slog.Info("seed loading disabled (SEED_DATABASE != true)")
	}

	if version, dirty, err := migrator.Status(); err == nil {
		slog.Info("migration status", "version", version, "dirty", dirty)
	}

	return nil
}
