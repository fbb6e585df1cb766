package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking defines the booking aggregate root. A booking is created once with
// all its details and passengers in a single transaction and is immutable
// afterwards; its effective lifecycle is carried by the associated Payment.
type Booking struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code           string     `gorm:"type:varchar(20);unique;not null" json:"code"`
	UserID         uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	FlightID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"flight_id"`
	ReturnFlightID *uuid.UUID `gorm:"type:uuid" json:"return_flight_id,omitempty"`
	BookingDate    time.Time  `gorm:"not null" json:"booking_date"`
	TotalPrice     float64    `gorm:"not null" json:"total_price"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Relationships
	Details []BookingDetail `json:"details,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingDetail links one passenger to one seat of a booking. QRToken and
// QRCodeImage are set exactly once at ticket issuance time; the token is the
// only valid credential for gate validation.
type BookingDetail struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID   uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	SeatID      uuid.UUID `gorm:"type:uuid;index;not null" json:"seat_id"`
	PassengerID uuid.UUID `gorm:"type:uuid;not null" json:"passenger_id"`
	Price       float64   `gorm:"not null" json:"price"`
	QRToken     string    `gorm:"type:varchar(64);default:''" json:"qr_token,omitempty"`
	QRCodeImage []byte    `gorm:"type:bytea" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Booking   *Booking   `json:"booking,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Passenger *Passenger `json:"passenger,omitempty" gorm:"foreignKey:PassengerID;constraint:OnDelete:RESTRICT;"`
}

// Passenger is created alongside its BookingDetail in the same transaction
// and is immutable.
type Passenger struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	FamilyName     string    `gorm:"type:varchar(100)" json:"family_name"`
	Gender         string    `gorm:"type:varchar(10);check:gender IN ('MALE', 'FEMALE')" json:"gender"`
	IdentityNumber string    `gorm:"type:varchar(50);not null" json:"identity_number"`
	Citizenship    string    `gorm:"type:varchar(50)" json:"citizenship"`
	CountryOfIssue string    `gorm:"type:varchar(50)" json:"country_of_issue"`
	Title          string    `gorm:"type:varchar(10)" json:"title"`
	DOB            time.Time `json:"dob"`
	ExpiredDate    time.Time `json:"expired_date"`
	Type           string    `gorm:"type:varchar(10);check:type IN ('ADULT', 'CHILD', 'INFANT');default:'ADULT'" json:"type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingDetail
func (BookingDetail) TableName() string {
	return "booking_details"
}

// TableName sets the table name for Passenger
func (Passenger) TableName() string {
	return "passengers"
}

// SeatIDs returns the seat id list of the booking's details.
func (b *Booking) SeatIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Details))
	for _, detail := range b.Details {
		ids = append(ids, detail.SeatID)
	}
	return ids
}

// FlightIDs returns the distinct flight id set (1 or 2 entries).
func (b *Booking) FlightIDs() []uuid.UUID {
	ids := []uuid.UUID{b.FlightID}
	if b.ReturnFlightID != nil {
		ids = append(ids, *b.ReturnFlightID)
	}
	return ids
}
