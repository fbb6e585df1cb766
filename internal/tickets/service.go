package tickets

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"aerobook/internal/bookings"
	"aerobook/internal/payments"
	"aerobook/internal/shared/apperrors"
	"aerobook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStore resolves the booking aggregate tickets are issued for.
type BookingStore interface {
	GetBookingByIDWithDetails(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// PaymentStore checks the reconciliation state gating issuance.
type PaymentStore interface {
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*payments.Payment, error)
}

// EventPublisher is the fire-and-forget notification side-channel.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// Service interface defines the contract for ticket issuance and validation
type Service interface {
	Create(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) ([]IssuedTicket, error)
	Validate(ctx context.Context, req ValidateRequest) (*ValidationResponse, error)
}

type service struct {
	repo         Repository
	bookingStore BookingStore
	paymentStore PaymentStore
	encoder      Encoder
	publisher    EventPublisher
	ticketTopic  string
	log          *logger.Logger
}

// NewService creates a new ticket service instance
func NewService(repo Repository, bookingStore BookingStore, paymentStore PaymentStore, encoder Encoder, publisher EventPublisher, ticketTopic string) Service {
	return &service{
		repo:         repo,
		bookingStore: bookingStore,
		paymentStore: paymentStore,
		encoder:      encoder,
		publisher:    publisher,
		ticketTopic:  ticketTopic,
		log:          logger.GetDefault(),
	}
}

// Create issues one signed ticket per booking detail once the booking's
// payment has settled. Issuance is idempotent: details that already carry a
// token keep their existing credential.
func (s *service) Create(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) ([]IssuedTicket, error) {
	booking, err := s.bookingStore.GetBookingByIDWithDetails(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found or payment not yet paid")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}

	// Someone else's booking looks like a missing one.
	if !isAdmin && booking.UserID != userID {
		return nil, apperrors.NotFound("booking not found or payment not yet paid")
	}

	payment, err := s.paymentStore.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found or payment not yet paid")
		}
		return nil, apperrors.Internal("failed to load payment", err)
	}
	if payment.Status != payments.StatusSettlement {
		return nil, apperrors.NotFound("booking not found or payment not yet paid")
	}

	issued := make([]IssuedTicket, 0, len(booking.Details))
	for i := range booking.Details {
		detail := &booking.Details[i]

		ticket, err := s.issueDetail(ctx, booking, detail)
		if err != nil {
			return nil, err
		}
		issued = append(issued, *ticket)
	}

	s.publishIssued(ctx, booking, len(issued))
	s.log.LogTicketIssued(ctx, booking.ID.String(), len(issued))
	return issued, nil
}

func (s *service) issueDetail(ctx context.Context, booking *bookings.Booking, detail *bookings.BookingDetail) (*IssuedTicket, error) {
	passengerName := ""
	if detail.Passenger != nil {
		passengerName = detail.Passenger.Name
	}

	if detail.QRToken != "" {
		return &IssuedTicket{
			BookingDetailID: detail.ID.String(),
			PassengerName:   passengerName,
			SeatID:          detail.SeatID.String(),
			Token:           detail.QRToken,
			QRCodeImage:     detail.QRCodeImage,
		}, nil
	}

	token, err := generateToken()
	if err != nil {
		return nil, apperrors.Internal("failed to generate ticket token", err)
	}

	payload := TicketPayload{
		BookingID:       booking.ID.String(),
		BookingDetailID: detail.ID.String(),
		BookingCode:     booking.Code,
		FlightID:        booking.FlightID.String(),
		PassengerID:     detail.PassengerID.String(),
		SeatID:          detail.SeatID.String(),
		Token:           token,
	}
	if booking.ReturnFlightID != nil {
		payload.ReturnFlightID = booking.ReturnFlightID.String()
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Internal("failed to marshal ticket payload", err)
	}

	image, err := s.encoder.Encode(payloadBytes)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetCredential(ctx, detail.ID, token, image); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost a race with a concurrent issuance; the stored
			// credential wins.
			return nil, apperrors.Conflict("ticket already issued for booking detail")
		}
		return nil, apperrors.Internal("failed to persist ticket credential", err)
	}

	return &IssuedTicket{
		BookingDetailID: detail.ID.String(),
		PassengerName:   passengerName,
		SeatID:          detail.SeatID.String(),
		Token:           token,
		QRCodeImage:     image,
	}, nil
}

// Validate checks the exact (bookingID, detailID, token) triple. All three
// must match; guessing any one field without the others must not validate.
func (s *service) Validate(ctx context.Context, req ValidateRequest) (*ValidationResponse, error) {
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, apperrors.Validation("invalid booking id")
	}
	detailID, err := uuid.Parse(req.BookingDetailID)
	if err != nil {
		return nil, apperrors.Validation("invalid booking detail id")
	}

	detail, err := s.repo.FindByCredential(ctx, bookingID, detailID, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("invalid ticket")
		}
		return nil, apperrors.Internal("failed to validate ticket", err)
	}

	resp := &ValidationResponse{
		Valid:  true,
		SeatID: detail.SeatID.String(),
	}
	if detail.Booking != nil {
		resp.BookingCode = detail.Booking.Code
		resp.FlightID = detail.Booking.FlightID.String()
		resp.BookingDate = detail.Booking.BookingDate
		if detail.Booking.ReturnFlightID != nil {
			resp.ReturnFlightID = detail.Booking.ReturnFlightID.String()
		}
	}
	if detail.Passenger != nil {
		resp.PassengerName = detail.Passenger.Name
		resp.PassengerType = detail.Passenger.Type
	}
	return resp, nil
}

func (s *service) publishIssued(ctx context.Context, booking *bookings.Booking, count int) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"type":       "ticket.issued",
		"booking_id": booking.ID.String(),
		"code":       booking.Code,
		"tickets":    count,
		"issued_at":  time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.ticketTopic, event); err != nil {
		s.log.Warn("failed to publish ticket event", "booking_id", booking.ID.String(), "error", err)
	}
}

// generateToken generates the random per-ticket credential.
func generateToken() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
