package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"minflow/internal/config"
	"minflow/internal/models"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (db *DB) Transaction(fn func(*gorm.DB) error) error {
	return db.DB.Transaction(fn)
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users(LOWER(email))",
		"CREATE INDEX IF NOT EXISTS idx_users_deleted_at ON users(deleted_at) WHERE deleted_at IS NULL",
		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_categories_is_default ON categories(is_default)",
		"CREATE INDEX IF NOT EXISTS idx_categories_deleted_at ON categories(deleted_at) WHERE deleted_at IS NULL",
		// Expense indexes
		"CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_category_id ON expenses(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_expense_date ON expenses(expense_date)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, expense_date)",
		"CREATE INDEX IF NOT EXISTS idx_expenses_deleted_at ON expenses(deleted_at) WHERE deleted_at IS NULL",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// SeedDefaultCategories inserts the shared default categories if they are
// missing. Insert order matters: clients fall back to the "Other" category,
// which must be the last of the ten defaults.
func (db *DB) SeedDefaultCategories() error {
	for _, name := range models.DefaultCategoryNames() {
		var existing models.Category
		err := db.DB.Where("name = ? AND is_default = ?", name, true).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check default category %q: %w", name, err)
		}

		category := &models.Category{
			Name:      name,
			IsDefault: true,
		}
		if err := db.DB.Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed default category %q: %w", name, err)
		}
	}

	return nil
}

func (db *DB) SeedAdminUser(email, passwordHash, name string) (*models.User, error) {
	var existingUser models.User
	if err := db.DB.Where("email = ?", email).First(&existingUser).Error; err == nil {
		return &existingUser, nil
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		IsAdmin:      true,
	}

	if err := db.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	return user, nil
}

// Initialize creates and configures the database connection
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	// Migrations run over their own lib/pq connection so migrate's session
	// locks never tie up the GORM pool
	migrateDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	if err := RunMigrationsIfEnabled(migrateDB); err != nil {
		log.Printf("Warning: migration runner failed: %v", err)
		log.Println("Falling back to GORM AutoMigrate...")

		// Fallback to GORM AutoMigrate
		if err := db.AutoMigrate(); err != nil {
			migrateDB.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	migrateDB.Close()

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	if err := db.SeedDefaultCategories(); err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	// Bootstrap an admin account when configured, so a fresh deployment has
	// someone who can reach the user management endpoints
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		adminPassword := os.Getenv("ADMIN_PASSWORD")
		if adminPassword == "" {
			return nil, fmt.Errorf("ADMIN_EMAIL is set but ADMIN_PASSWORD is empty")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}

		adminName := os.Getenv("ADMIN_NAME")
		if adminName == "" {
			adminName = "Administrator"
		}

		if _, err := db.SeedAdminUser(adminEmail, string(hash), adminName); err != nil {
			return nil, fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	log.Println("Database initialized successfully")

	return db.DB, nil
}
