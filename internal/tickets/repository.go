package tickets

import (
	"context"

	"aerobook/internal/bookings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// SetCredential writes the ticket credential onto a booking detail.
	// The write is guarded so a token is only ever set once.
	SetCredential(ctx context.Context, detailID uuid.UUID, token string, image []byte) error

	// FindByCredential resolves a booking detail by the exact
	// (bookingID, detailID, token) triple.
	FindByCredential(ctx context.Context, bookingID, detailID uuid.UUID, token string) (*bookings.BookingDetail, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SetCredential(ctx context.Context, detailID uuid.UUID, token string, image []byte) error {
	res := r.db.WithContext(ctx).
		Model(&bookings.BookingDetail{}).
		Where("id = ? AND qr_token = ''", detailID).
		Updates(map[string]interface{}{
			"qr_token":      token,
			"qr_code_image": image,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByCredential(ctx context.Context, bookingID, detailID uuid.UUID, token string) (*bookings.BookingDetail, error) {
	var detail bookings.BookingDetail
	err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Passenger").
		Where("id = ? AND booking_id = ? AND qr_token = ? AND qr_token <> ''", detailID, bookingID, token).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}
