// Package database owns the persistent store handle. The connection is
// opened once at startup by the process entry point and passed down by
// injection; it is closed on shutdown.
package database

import (
	"fmt"
	"time"

	"comanda/internal/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect (hosted backend)
	_ "github.com/mattn/go-sqlite3"              // SQLite driver (embedded backend)
)

// Open connects to the store using the given driver ("sqlite3" or
// "postgres") and DSN, and configures the connection pool.
func Open(driver, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates and updates all required tables and indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	).Error
}

// Seed ensures the catalog has content so the kiosk can sell something
// on a fresh install. Existing data is left untouched.
func Seed(db *gorm.DB) error {
	var categoryCount int64
	if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Hamburguesas", SortOrder: 1},
		{Name: "Tortas", SortOrder: 2},
		{Name: "Papas", SortOrder: 3},
		{Name: "Alitas", SortOrder: 4},
		{Name: "Snacks", SortOrder: 5},
	}
	categoryIDs := make(map[string]uint, len(categories))
	for i := range categories {
		if err := db.Create(&categories[i]).Error; err != nil {
			return err
		}
		categoryIDs[categories[i].Name] = categories[i].ID
	}

	products := []models.Product{
		{CategoryID: categoryIDs["Hamburguesas"], Name: "Hamburguesa clásica", Description: "Res, lechuga, tomate, queso", PriceCents: 9900, Station: models.StationGrill, IsAvailable: true, SortOrder: 1},
		{CategoryID: categoryIDs["Hamburguesas"], Name: "Hamburguesa doble", Description: "Doble carne, queso", PriceCents: 12900, Station: models.StationGrill, IsAvailable: true, SortOrder: 2},
		{CategoryID: categoryIDs["Tortas"], Name: "Torta de res", Description: "Res guisada, frijoles, queso", PriceCents: 10500, Station: models.StationGrill, IsAvailable: true, SortOrder: 1},
		{CategoryID: categoryIDs["Papas"], Name: "Papas", Description: "Papas fritas clásicas", PriceCents: 4500, Station: models.StationFryer, IsAvailable: true, SortOrder: 1},
		{CategoryID: categoryIDs["Alitas"], Name: "Alitas", Description: "Alitas crujientes", PriceCents: 8900, Station: models.StationFryer, IsAvailable: true, SortOrder: 1},
		{CategoryID: categoryIDs["Snacks"], Name: "Dedos de queso", Description: "Deditos empanizados", PriceCents: 6200, Station: models.StationFryer, IsAvailable: true, SortOrder: 2},
		{CategoryID: categoryIDs["Snacks"], Name: "Aros", Description: "Aros de cebolla", PriceCents: 5900, Station: models.StationFryer, IsAvailable: true, SortOrder: 3},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
