package database

import (
	"log"

	"backend/internal/model"

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

// Migrate runs AutoMigrate for every model. Split out so tests can run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.PagePermission{},
		&model.RolePermission{},
		&model.Temple{},
		&model.Devotee{},
		&model.Donation{},
		&model.Event{},
		&model.InventoryItem{},
		&model.Sale{},
		&model.Pooja{},
		&model.PoojaBooking{},
		&model.ContributionScheme{},
		&model.Contribution{},
	)
}
