package bookings

// PassengerRequest carries passenger identity for one booking detail
type PassengerRequest struct {
	Name           string `json:"name" binding:"required"`
	FamilyName     string `json:"family_name"`
	Gender         string `json:"gender" binding:"required,oneof=MALE FEMALE"`
	IdentityNumber string `json:"identity_number" binding:"required"`
	Citizenship    string `json:"citizenship"`
	CountryOfIssue string `json:"country_of_issue"`
	Title          string `json:"title"`
	DOB            string `json:"dob" binding:"required,datetime=2006-01-02"`
	ExpiredDate    string `json:"expired_date" binding:"omitempty,datetime=2006-01-02"`
	Type           string `json:"type" binding:"omitempty,oneof=ADULT CHILD INFANT"`
}

// BookingDetailRequest names one seat and the passenger taking it
type BookingDetailRequest struct {
	SeatID    string           `json:"seat_id" binding:"required,uuid"`
	Price     float64          `json:"price" binding:"required,gt=0"`
	Passenger PassengerRequest `json:"passenger" binding:"required"`
}

// CreateBookingRequest represents the booking creation request
type CreateBookingRequest struct {
	FlightID       string                 `json:"flight_id" binding:"required,uuid"`
	ReturnFlightID string                 `json:"return_flight_id" binding:"omitempty,uuid"`
	Details        []BookingDetailRequest `json:"details" binding:"required,min=1,dive"`
}
