package flights

import (
	"time"

	"github.com/google/uuid"
)

// Flight defines the flight a seat inventory belongs to. Catalog CRUD lives
// outside this service; flights are only looked up for booking validation
// and seeded up front together with their seats.
type Flight struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code          string    `gorm:"type:varchar(10);unique;not null" json:"code"`
	Origin        string    `gorm:"type:varchar(5);not null" json:"origin"`
	Destination   string    `gorm:"type:varchar(5);not null" json:"destination"`
	DepartureTime time.Time `gorm:"not null" json:"departure_time"`
	ArrivalTime   time.Time `gorm:"not null" json:"arrival_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName sets the table name for Flight
func (Flight) TableName() string {
	return "flights"
}
