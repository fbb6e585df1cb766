package seats

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Seat CRUD (seeding and lookups)
	CreateSeats(ctx context.Context, seats []Seat) error
	GetSeatsByFlightID(ctx context.Context, flightID uuid.UUID) ([]Seat, error)

	// Inventory store operations
	CountAvailable(ctx context.Context, flightIDs []uuid.UUID, seatIDs []uuid.UUID) (int64, error)
	SetStatus(ctx context.Context, seatIDs []uuid.UUID, status Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSeats(ctx context.Context, seats []Seat) error {
	return r.db.WithContext(ctx).Create(&seats).Error
}

func (r *repository) GetSeatsByFlightID(ctx context.Context, flightID uuid.UUID) ([]Seat, error) {
	var seatList []Seat
	err := r.db.WithContext(ctx).
		Where("flight_id = ?", flightID).
		Order("seat_number ASC").
		Find(&seatList).Error
	return seatList, err
}

// CountAvailable counts AVAILABLE seats among seatIDs restricted to
// flightIDs. The read here is advisory; the authoritative check runs inside
// the booking creation transaction with the rows locked.
func (r *repository) CountAvailable(ctx context.Context, flightIDs []uuid.UUID, seatIDs []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id IN ? AND flight_id IN ? AND status = ?", seatIDs, flightIDs, StatusAvailable).
		Count(&count).Error
	return count, err
}

// SetStatus assigns status to all seats in one set-based update. The update
// is idempotent: repeating it leaves the rows unchanged.
func (r *repository) SetStatus(ctx context.Context, seatIDs []uuid.UUID, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Seat{}).
		Where("id IN ?", seatIDs).
		Update("status", status).Error
}
