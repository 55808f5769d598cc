package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"chakula/internal/models"
)

var db *gorm.DB

// InitDB opens the database connection. Dialect is "sqlite3" or
// "postgres"; dsn is a file path for sqlite and a connection string
// for postgres.
func InitDB(dialect, dsn string) error {
	var err error
	db, err = gorm.Open(dialect, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// SetDB swaps the database instance; used by tests with an in-memory sqlite.
func SetDB(d *gorm.DB) {
	db = d
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Migrate creates and updates all tables.
func Migrate(d *gorm.DB) {
	d.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.Restaurant{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.InventoryItem{},
		&models.StockMovement{},
		&models.Reservation{},
	)
}
