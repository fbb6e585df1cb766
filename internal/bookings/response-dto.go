package bookings

import "time"

// BookingDetailResponse represents one passenger/seat pair of a booking
type BookingDetailResponse struct {
	ID            string  `json:"id"`
	SeatID        string  `json:"seat_id"`
	PassengerName string  `json:"passenger_name"`
	Price         float64 `json:"price"`
	Ticketed      bool    `json:"ticketed"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID             string                  `json:"id"`
	Code           string                  `json:"code"`
	FlightID       string                  `json:"flight_id"`
	ReturnFlightID string                  `json:"return_flight_id,omitempty"`
	BookingDate    time.Time               `json:"booking_date"`
	TotalPrice     float64                 `json:"total_price"`
	Details        []BookingDetailResponse `json:"details,omitempty"`
}

func ToBookingResponse(booking *Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:          booking.ID.String(),
		Code:        booking.Code,
		FlightID:    booking.FlightID.String(),
		BookingDate: booking.BookingDate,
		TotalPrice:  booking.TotalPrice,
	}
	if booking.ReturnFlightID != nil {
		resp.ReturnFlightID = booking.ReturnFlightID.String()
	}
	for _, detail := range booking.Details {
		detailResp := BookingDetailResponse{
			ID:       detail.ID.String(),
			SeatID:   detail.SeatID.String(),
			Price:    detail.Price,
			Ticketed: detail.QRToken != "",
		}
		if detail.Passenger != nil {
			detailResp.PassengerName = detail.Passenger.Name
		}
		resp.Details = append(resp.Details, detailResp)
	}
	return resp
}
