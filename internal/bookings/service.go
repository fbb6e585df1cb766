package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"aerobook/internal/shared/apperrors"
	"aerobook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FlightChecker validates flight ids without pulling in the flights package
// surface (to avoid circular dependency with routing setup).
type FlightChecker interface {
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// SeatMapInvalidator drops cached seat maps after seats flip to LOCKED.
type SeatMapInvalidator interface {
	InvalidateSeatMap(ctx context.Context, flightIDs []uuid.UUID)
}

// EventPublisher is the fire-and-forget notification side-channel. Publish
// failures must never roll back a booking.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// Service interface defines the contract for booking business logic
type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	GetBookingByCode(ctx context.Context, code string, userID uuid.UUID, isAdmin bool) (*BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]BookingResponse, error)
}

type service struct {
	repo         Repository
	flights      FlightChecker
	seatMaps     SeatMapInvalidator
	publisher    EventPublisher
	bookingTopic string
	log          *logger.Logger
}

// NewService creates a new booking service instance
func NewService(repo Repository, flights FlightChecker, seatMaps SeatMapInvalidator, publisher EventPublisher, bookingTopic string) Service {
	return &service{
		repo:         repo,
		flights:      flights,
		seatMaps:     seatMaps,
		publisher:    publisher,
		bookingTopic: bookingTopic,
		log:          logger.GetDefault(),
	}
}

const codeCollisionRetries = 3

// CreateBooking validates the request, then atomically reserves the seats
// and persists the booking aggregate.
func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	if len(req.Details) == 0 {
		return nil, apperrors.Validation("at least one booking detail is required")
	}

	flightID, err := uuid.Parse(req.FlightID)
	if err != nil {
		return nil, apperrors.Validation("invalid flight id")
	}

	var returnFlightID *uuid.UUID
	flightIDs := []uuid.UUID{flightID}
	if req.ReturnFlightID != "" {
		parsed, err := uuid.Parse(req.ReturnFlightID)
		if err != nil {
			return nil, apperrors.Validation("invalid return flight id")
		}
		if parsed == flightID {
			return nil, apperrors.Validation("return flight must differ from outbound flight")
		}
		returnFlightID = &parsed
		flightIDs = append(flightIDs, parsed)
	}

	flightCount, err := s.flights.CountByIDs(ctx, flightIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to validate flights", err)
	}
	if flightCount != int64(len(flightIDs)) {
		return nil, apperrors.NotFound("flight not found")
	}

	details, seatIDs, totalPrice, err := s.buildDetails(req.Details)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:         userID,
		FlightID:       flightID,
		ReturnFlightID: returnFlightID,
		BookingDate:    time.Now().UTC(),
		TotalPrice:     totalPrice,
		Details:        details,
	}

	// The booking code is unique; on the rare collision we regenerate and
	// retry the whole transaction.
	for attempt := 0; attempt < codeCollisionRetries; attempt++ {
		code, err := generateBookingCode()
		if err != nil {
			return nil, apperrors.Internal("failed to generate booking code", err)
		}
		booking.Code = code

		err = s.repo.CreateBookingWithSeatCheck(ctx, booking, flightIDs, seatIDs)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			continue
		}
		return nil, err
	}
	if booking.ID == uuid.Nil {
		return nil, apperrors.Internal("failed to allocate a unique booking code", nil)
	}

	if s.seatMaps != nil {
		s.seatMaps.InvalidateSeatMap(ctx, flightIDs)
	}

	s.publishCreated(ctx, booking)
	s.log.LogBookingCreated(ctx, booking.ID.String(), booking.FlightID.String(), userID.String())

	return ToBookingResponse(booking), nil
}

// GetBooking retrieves a booking; non-admin callers only see their own.
func (s *service) GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByIDWithDetails(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}

	if !isAdmin && booking.UserID != userID {
		return nil, apperrors.NotFound("booking not found")
	}

	return ToBookingResponse(booking), nil
}

// GetBookingByCode resolves a booking by its human-facing code, for
// check-in desks that work from the code printed on the itinerary. The
// same ownership rule as GetBooking applies.
func (s *service) GetBookingByCode(ctx context.Context, code string, userID uuid.UUID, isAdmin bool) (*BookingResponse, error) {
	booking, err := s.repo.GetBookingByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}

	if !isAdmin && booking.UserID != userID {
		return nil, apperrors.NotFound("booking not found")
	}

	return ToBookingResponse(booking), nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]BookingResponse, error) {
	bookingList, err := s.repo.GetUserBookings(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}

	responses := make([]BookingResponse, 0, len(bookingList))
	for i := range bookingList {
		responses = append(responses, *ToBookingResponse(&bookingList[i]))
	}
	return responses, nil
}

// buildDetails maps request details onto model rows, rejecting duplicate
// seats up front and summing the total price.
func (s *service) buildDetails(requests []BookingDetailRequest) ([]BookingDetail, []uuid.UUID, float64, error) {
	details := make([]BookingDetail, 0, len(requests))
	seatIDs := make([]uuid.UUID, 0, len(requests))
	seen := make(map[uuid.UUID]bool, len(requests))
	var totalPrice float64

	for _, detailReq := range requests {
		seatID, err := uuid.Parse(detailReq.SeatID)
		if err != nil {
			return nil, nil, 0, apperrors.Validation("invalid seat id")
		}
		if seen[seatID] {
			return nil, nil, 0, apperrors.Validation("duplicate seat in booking details")
		}
		seen[seatID] = true

		passenger, err := buildPassenger(detailReq.Passenger)
		if err != nil {
			return nil, nil, 0, err
		}

		details = append(details, BookingDetail{
			SeatID:    seatID,
			Price:     detailReq.Price,
			Passenger: passenger,
		})
		seatIDs = append(seatIDs, seatID)
		totalPrice += detailReq.Price
	}

	return details, seatIDs, totalPrice, nil
}

func buildPassenger(req PassengerRequest) (*Passenger, error) {
	dob, err := time.Parse("2006-01-02", req.DOB)
	if err != nil {
		return nil, apperrors.Validation("invalid passenger date of birth")
	}

	var expired time.Time
	if req.ExpiredDate != "" {
		expired, err = time.Parse("2006-01-02", req.ExpiredDate)
		if err != nil {
			return nil, apperrors.Validation("invalid passenger document expiry date")
		}
	}

	passengerType := PassengerAdult
	if req.Type != "" {
		passengerType, err = ParsePassengerType(req.Type)
		if err != nil {
			return nil, apperrors.Validation("invalid passenger type")
		}
	}

	return &Passenger{
		Name:           req.Name,
		FamilyName:     req.FamilyName,
		Gender:         req.Gender,
		IdentityNumber: req.IdentityNumber,
		Citizenship:    req.Citizenship,
		CountryOfIssue: req.CountryOfIssue,
		Title:          req.Title,
		DOB:            dob,
		ExpiredDate:    expired,
		Type:           string(passengerType),
	}, nil
}

func (s *service) publishCreated(ctx context.Context, booking *Booking) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"type":        "booking.created",
		"booking_id":  booking.ID.String(),
		"code":        booking.Code,
		"user_id":     booking.UserID.String(),
		"flight_id":   booking.FlightID.String(),
		"total_price": booking.TotalPrice,
		"seats":       len(booking.Details),
		"created_at":  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.bookingTopic, event); err != nil {
		s.log.Warn("failed to publish booking event", "booking_id", booking.ID.String(), "error", err)
	}
}

// generateBookingCode generates a unique human-shareable booking code
func generateBookingCode() (string, error) {
	timestamp := time.Now().Format("20060102")

	// Generate 6 random uppercase letters
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	randomPart := make([]byte, 6)

	for i := range randomPart {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if err != nil {
			return "", err
		}
		randomPart[i] = letters[num.Int64()]
	}

	return fmt.Sprintf("FLT-%s-%s", timestamp, string(randomPart)), nil
}
