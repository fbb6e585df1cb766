package seats

// SeatResponse represents one seat in a seat map response
type SeatResponse struct {
	ID         string  `json:"id"`
	SeatNumber string  `json:"seat_number"`
	Class      string  `json:"class"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

// SeatMapResponse represents the full seat map of a flight
type SeatMapResponse struct {
	FlightID string         `json:"flight_id"`
	Seats    []SeatResponse `json:"seats"`
}

func ToSeatResponses(seatList []Seat) []SeatResponse {
	responses := make([]SeatResponse, 0, len(seatList))
	for _, seat := range seatList {
		responses = append(responses, SeatResponse{
			ID:         seat.ID.String(),
			SeatNumber: seat.SeatNumber,
			Class:      string(seat.Class),
			Price:      seat.Price,
			Status:     string(seat.Status),
		})
	}
	return responses
}
