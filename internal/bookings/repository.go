package bookings

import (
	"context"
	"errors"
	"fmt"

	"aerobook/internal/seats"
	"aerobook/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Concurrency-safe booking creation
	CreateBookingWithSeatCheck(ctx context.Context, booking *Booking, flightIDs []uuid.UUID, seatIDs []uuid.UUID) error

	// Lookups
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByIDWithDetails(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetBookingByCode(ctx context.Context, code string) (*Booking, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBookingWithSeatCheck persists the booking aggregate atomically.
// Inside one transaction it locks the requested seat rows, verifies that
// every requested seat is AVAILABLE on one of the requested flights, creates
// the booking with its details and passengers, and flips the seats to
// LOCKED. Two concurrent bookings racing for the same seat serialize on the
// row locks; exactly one passes the availability check.
func (r *repository) CreateBookingWithSeatCheck(ctx context.Context, booking *Booking, flightIDs []uuid.UUID, seatIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockedSeats []struct {
			ID uuid.UUID `gorm:"column:id"`
		}

		err := availableSeatsQuery(tx, flightIDs, seatIDs).Find(&lockedSeats).Error
		if err != nil {
			return fmt.Errorf("failed to lock seats: %w", err)
		}

		if len(lockedSeats) != len(seatIDs) {
			return apperrors.Conflict("seats not available")
		}

		if err := tx.Create(booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Booking code collision, caller regenerates and retries.
				return err
			}
			return fmt.Errorf("failed to create booking: %w", err)
		}

		err = tx.Model(&seats.Seat{}).
			Where("id IN ?", seatIDs).
			Update("status", seats.StatusLocked).Error
		if err != nil {
			return fmt.Errorf("failed to lock seat inventory: %w", err)
		}

		return nil
	})
}

// availableSeatsQuery selects the requested seats that are still AVAILABLE
// on the requested flights, taking row locks so concurrent bookings for the
// same seat serialize instead of both passing the availability check.
func availableSeatsQuery(tx *gorm.DB, flightIDs, seatIDs []uuid.UUID) *gorm.DB {
	return tx.Table("seats").
		Select("id").
		Where("id IN ? AND flight_id IN ? AND status = ?", seatIDs, flightIDs, seats.StatusAvailable).
		Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByIDWithDetails(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Passenger").
		First(&booking, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetBookingByCode(ctx context.Context, code string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.Passenger").
		First(&booking, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	if limit <= 0 {
		limit = 10
	}

	var bookingList []Booking
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&bookingList).Error
	return bookingList, err
}
