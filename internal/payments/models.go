package payments

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the authoritative reconciliation record for a booking. Exactly
// one payment exists per booking, enforced by the unique index on
// booking_id; order_id correlates gateway notifications back to it.
type Payment struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID       uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	OrderID         string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_id"`
	SnapToken       string     `gorm:"type:varchar(128);default:''" json:"snap_token,omitempty"`
	Amount          float64    `gorm:"not null" json:"amount"`
	Status          Status     `gorm:"type:varchar(15);check:status IN ('PENDING', 'SETTLEMENT', 'CANCEL', 'EXPIRE');default:'PENDING'" json:"status"`
	PaymentType     *string    `gorm:"type:varchar(30)" json:"payment_type,omitempty"`
	TransactionID   *string    `gorm:"type:varchar(64)" json:"transaction_id,omitempty"`
	TransactionTime *time.Time `json:"transaction_time,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

// GatewayResult carries the settlement metadata delivered by a webhook.
type GatewayResult struct {
	PaymentType     string
	TransactionID   string
	TransactionTime *time.Time
}

// WebhookRequest is the gateway notification payload. Field names follow the
// gateway's wire format and are accepted case-sensitively.
type WebhookRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
	TransactionTime   string `json:"transaction_time"`
	GrossAmount       string `json:"gross_amount"`
}

// InitiatePaymentRequest carries the customer contact handed to the gateway
type InitiatePaymentRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        string  `json:"id"`
	BookingID string  `json:"booking_id"`
	OrderID   string  `json:"order_id"`
	SnapToken string  `json:"snap_token,omitempty"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
}

func ToPaymentResponse(payment *Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        payment.ID.String(),
		BookingID: payment.BookingID.String(),
		OrderID:   payment.OrderID,
		SnapToken: payment.SnapToken,
		Amount:    payment.Amount,
		Status:    string(payment.Status),
	}
}
