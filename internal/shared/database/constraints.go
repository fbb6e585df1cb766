package database

import (
	"gorm.io/gorm"
)

// applyConstraints adds database constraints and indexes for concurrency control
func applyConstraints(db *gorm.DB) error {
	// Index for loading a booking's details; seats may legitimately appear in
	// multiple details over time once a cancelled payment releases them
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_details_booking_id
		ON booking_details (booking_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for seat availability lookups by flight and status
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_seats_flight_status
		ON seats (flight_id, status);
	`).Error
	if err != nil {
		return err
	}

	// Index for listing a user's bookings
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_user_id
		ON bookings (user_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
