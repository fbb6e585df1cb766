package tickets

import "time"

// TicketPayload is the JSON document encoded into each ticket's QR image.
// Together with the booking and detail ids, the token forms the capability
// credential checked at the gate.
type TicketPayload struct {
	BookingID       string `json:"booking_id"`
	BookingDetailID string `json:"booking_detail_id"`
	BookingCode     string `json:"booking_code"`
	FlightID        string `json:"flight_id"`
	ReturnFlightID  string `json:"return_flight_id,omitempty"`
	PassengerID     string `json:"passenger_id"`
	SeatID          string `json:"seat_id"`
	Token           string `json:"token"`
}

// IssuedTicket is one issuance record per passenger/seat
type IssuedTicket struct {
	BookingDetailID string `json:"booking_detail_id"`
	PassengerName   string `json:"passenger_name"`
	SeatID          string `json:"seat_id"`
	Token           string `json:"token"`
	QRCodeImage     []byte `json:"qr_code_image"`
}

// ValidateRequest is the gate-check scan payload
type ValidateRequest struct {
	BookingID       string `json:"booking_id" binding:"required,uuid"`
	BookingDetailID string `json:"booking_detail_id" binding:"required,uuid"`
	Token           string `json:"token" binding:"required"`
}

// ValidationResponse carries booking/passenger/seat context for gate-check
// display.
type ValidationResponse struct {
	Valid          bool      `json:"valid"`
	BookingCode    string    `json:"booking_code"`
	FlightID       string    `json:"flight_id"`
	ReturnFlightID string    `json:"return_flight_id,omitempty"`
	PassengerName  string    `json:"passenger_name"`
	PassengerType  string    `json:"passenger_type"`
	SeatID         string    `json:"seat_id"`
	BookingDate    time.Time `json:"booking_date"`
}
