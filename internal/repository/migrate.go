package repository

import (
	"studiobooking/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates the full schema. Booking tables are private to this
// package, so the migration list lives here rather than in database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Studio{},
		&domain.Package{},
		&domain.Addon{},
		&domain.AvailabilityDay{},
		&domain.Slot{},
		&bookingModel{},
		&bookingHourModel{},
	)
}
