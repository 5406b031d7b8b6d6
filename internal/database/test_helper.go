package database

import (
	"fmt"
	"testing"

	"minflow/internal/config"
	"minflow/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

// SeedTestCategories installs the ten default categories and returns them in
// insertion order.
func SeedTestCategories(t *testing.T, db *DB) []models.Category {
	t.Helper()

	if err := db.SeedDefaultCategories(); err != nil {
		t.Fatalf("failed to seed default categories: %v", err)
	}

	var categories []models.Category
	if err := db.Where("is_default = ?", true).Order("id ASC").Find(&categories).Error; err != nil {
		t.Fatalf("failed to load default categories: %v", err)
	}

	return categories
}

func CreateTestUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		Name:         "Test User",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

func CreateTestAdminUser(t *testing.T, db *DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:        email,
		PasswordHash: "hashed_password",
		Name:         "Admin User",
		IsAdmin:      true,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test admin user: %v", err)
	}

	return user
}

type TestDB struct {
	*DB
	t *testing.T
}

func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	return &TestDB{
		DB: SetupTestDB(t),
		t:  t,
	}
}

func (tdb *TestDB) Cleanup() {
	tdb.t.Helper()
	CleanupTestDB(tdb.t, tdb.DB)
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"expenses",
		"categories",
		"users",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
