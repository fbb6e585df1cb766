package database

import (
	"aerobook/internal/bookings"
	"aerobook/internal/flights"
	"aerobook/internal/payments"
	"aerobook/internal/seats"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults require the extension before AutoMigrate runs
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&flights.Flight{},
		&seats.Seat{},
		&bookings.Passenger{},
		&bookings.Booking{},
		&bookings.BookingDetail{},
		&payments.Payment{},
	); err != nil {
		return err
	}

	return applyConstraints(db)
}
