package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aerobook/internal/seats"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoTransition is returned by ApplyTransition when the payment row was
// not in PENDING anymore. The caller re-reads the row to distinguish a
// harmless replay from a conflicting transition.
var ErrNoTransition = errors.New("payment not pending, no transition applied")

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)
	SetSnapToken(ctx context.Context, id uuid.UUID, token string) error

	// ApplyTransition moves the payment out of PENDING and flips the seat
	// statuses in one transaction.
	ApplyTransition(ctx context.Context, paymentID uuid.UUID, target Status, result *GatewayResult, seatIDs []uuid.UUID, seatStatus seats.Status) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, payment *Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).First(&payment, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	var payment Payment
	err := r.db.WithContext(ctx).First(&payment, "booking_id = ?", bookingID).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repository) SetSnapToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ?", id).
		Update("snap_token", token).Error
}

// ApplyTransition updates the payment row guarded on its current status and
// the seat rows in a single transaction. The guard makes concurrent webhook
// deliveries race-safe: only one delivery observes PENDING and applies the
// transition, the rest get ErrNoTransition. The seat update is a set-based
// assignment and safe to apply exactly once alongside the status write.
func (r *repository) ApplyTransition(ctx context.Context, paymentID uuid.UUID, target Status, result *GatewayResult, seatIDs []uuid.UUID, seatStatus seats.Status) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":     target,
			"updated_at": time.Now().UTC(),
		}
		if result != nil {
			if result.PaymentType != "" {
				updates["payment_type"] = result.PaymentType
			}
			if result.TransactionID != "" {
				updates["transaction_id"] = result.TransactionID
			}
			if result.TransactionTime != nil {
				updates["transaction_time"] = result.TransactionTime
			}
		}

		res := tx.Model(&Payment{}).
			Where("id = ? AND status = ?", paymentID, StatusPending).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to update payment status: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNoTransition
		}

		if len(seatIDs) > 0 {
			err := tx.Model(&seats.Seat{}).
				Where("id IN ?", seatIDs).
				Update("status", seatStatus).Error
			if err != nil {
				return fmt.Errorf("failed to update seat status: %w", err)
			}
		}

		return nil
	})
}
