package flights

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateFlights(ctx context.Context, flights []Flight) error
	GetFlightByID(ctx context.Context, id uuid.UUID) (*Flight, error)
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFlights(ctx context.Context, flights []Flight) error {
	return r.db.WithContext(ctx).Create(&flights).Error
}

func (r *repository) GetFlightByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).First(&flight, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &flight, nil
}

// CountByIDs counts how many of the given flight ids exist. Callers compare
// the count against the distinct id set to validate a booking request.
func (r *repository) CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Flight{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}
