package database

import (
	"log"

	"shopstock/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs the schema migration for every model. Tests call this against
// their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Shop{},
		&model.Unit{},
		&model.Category{},
		&model.SubCategory{},
		&model.ShopProduct{},
		&model.ProductPrice{},
		&model.Transaction{},
		&model.TransactionItem{},
		&model.Supplier{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
		&model.CostCategory{},
		&model.CostEntry{},
		&model.LossCategory{},
		&model.LossEntry{},
	)
}
