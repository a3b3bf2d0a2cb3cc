package database

import (
	"fmt"
	"log"

	"gallery-backend/config"
	"gallery-backend/internal/domain/catalog"
	"gallery-backend/internal/domain/contact"
	"gallery-backend/internal/domain/exhibitions"
	"gallery-backend/internal/domain/orders"
	"gallery-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := Open(postgres.Open(dsn))
	if err != nil {
		log.Fatal("❌ ", err)
	}

	DB = db
	fmt.Println("✅ Connected and migrated successfully")
}

// Open connects through dialector and migrates every model. Tests pass an
// in-memory sqlite dialector here.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		// core
		&users.User{},

		// catalog
		&catalog.Artwork{},
		&exhibitions.Exhibition{},

		// orders
		&orders.ArtworkOrder{},
		&orders.ExhibitionBooking{},

		// inbox
		&contact.Message{},
	); err != nil {
		return fmt.Errorf("AutoMigrate error: %w", err)
	}
	return nil
}
