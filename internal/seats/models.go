package seats

import (
	"time"

	"github.com/google/uuid"
)

// Seat defines one physical seat on a flight. Status is only mutated by the
// booking aggregate builder (AVAILABLE -> LOCKED) and the payment
// reconciliation state machine (LOCKED -> UNAVAILABLE or back to AVAILABLE),
// always inside a transaction that also validates or mutates the related
// booking or payment.
type Seat struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FlightID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_seats_flight_number" json:"flight_id"`
	SeatNumber string    `gorm:"type:varchar(5);not null;uniqueIndex:idx_seats_flight_number" json:"seat_number"`
	Class      Class     `gorm:"type:varchar(10);check:class IN ('ECONOMY', 'BUSINESS', 'FIRST');not null" json:"class"`
	Price      float64   `gorm:"not null" json:"price"`
	Status     Status    `gorm:"type:varchar(15);check:status IN ('AVAILABLE', 'LOCKED', 'UNAVAILABLE');default:'AVAILABLE'" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}
