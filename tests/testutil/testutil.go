package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/kendall-kelly/orders-api/config"
	"github.com/kendall-kelly/orders-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// This prevents accidental execution of tests against production or development databases.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test to prevent data loss. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
	if os.Getenv("GO_ENV") != "test" {
		t.Fatal("Failed to verify GO_ENV=test")
	}
}

// OpenTestDB opens a migrated in-memory SQLite database. Every connection
// to ":memory:" is a separate database, so the pool is limited to one.
func OpenTestDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.MigrateDatabase(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewTestDB opens a test database, installs it as config.DB and closes it
// when the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenTestDB()
	if err != nil {
		t.Fatalf("Failed to set up test database: %v", err)
	}
	config.SetDB(db)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// ResetTables empties every table, children first
func ResetTables(db *gorm.DB) error {
	for _, table := range []string{"order_products", "orders", "products", "customers"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateCustomer inserts a customer with a unique document number
func CreateCustomer(t *testing.T, db *gorm.DB, documentNumber int64) models.Customer {
	t.Helper()

	customer := models.Customer{
		Email:          fmt.Sprintf("customer%d@example.com", documentNumber),
		Name:           "Test Customer",
		DocumentNumber: documentNumber,
		PhoneNumber:    59899000000 + documentNumber,
		Address:        "Main St 123",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to create customer: %v", err)
	}
	return customer
}

// CreateProduct inserts a visible product with the given stock
func CreateProduct(t *testing.T, db *gorm.DB, title string, units int) models.Product {
	t.Helper()
	return createProduct(t, db, title, units, false)
}

// CreateHiddenProduct inserts a hidden product with the given stock
func CreateHiddenProduct(t *testing.T, db *gorm.DB, title string, units int) models.Product {
	t.Helper()
	return createProduct(t, db, title, units, true)
}

func createProduct(t *testing.T, db *gorm.DB, title string, units int, hidden bool) models.Product {
	t.Helper()

	description := strings.ToLower(title) + " description"
	product := models.Product{
		Title:          title,
		Description:    &description,
		UnitsAvailable: units,
		UnitPrice:      decimal.RequireFromString("9.99"),
		Hidden:         hidden,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return product
}

// UnitsAvailable reloads a product's stock
func UnitsAvailable(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("Failed to reload product %d: %v", productID, err)
	}
	return product.UnitsAvailable
}

// Count returns the number of rows of a model
func Count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
