package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aerobook/internal/bookings"
	"aerobook/internal/seats"
	"aerobook/internal/shared/apperrors"
	"aerobook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingStore resolves the booking aggregate a payment reconciles against.
type BookingStore interface {
	GetBookingByIDWithDetails(ctx context.Context, id uuid.UUID) (*bookings.Booking, error)
}

// SeatMapInvalidator drops cached seat maps after reconciliation flips seats.
type SeatMapInvalidator interface {
	InvalidateSeatMap(ctx context.Context, flightIDs []uuid.UUID)
}

// EventPublisher is the fire-and-forget notification side-channel.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// Service interface defines the contract for payment reconciliation logic
type Service interface {
	Initiate(ctx context.Context, bookingID, userID uuid.UUID, req InitiatePaymentRequest) (*PaymentResponse, error)
	ProcessWebhook(ctx context.Context, req WebhookRequest) error
	CancelByUser(ctx context.Context, bookingID, userID uuid.UUID) (*PaymentResponse, error)
	GetByBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*PaymentResponse, error)
}

type service struct {
	repo         Repository
	bookingStore BookingStore
	gateway      Gateway
	seatMaps     SeatMapInvalidator
	publisher    EventPublisher
	paymentTopic string
	log          *logger.Logger
}

// NewService creates a new payment reconciliation service instance
func NewService(repo Repository, bookingStore BookingStore, gateway Gateway, seatMaps SeatMapInvalidator, publisher EventPublisher, paymentTopic string) Service {
	return &service{
		repo:         repo,
		bookingStore: bookingStore,
		gateway:      gateway,
		seatMaps:     seatMaps,
		publisher:    publisher,
		paymentTopic: paymentTopic,
		log:          logger.GetDefault(),
	}
}

// Initiate creates the hosted gateway transaction for a booking and the
// payment row correlating it. The unique index on booking_id makes the call
// retry-safe: a retry after a gateway failure finds the pending row and
// re-requests a token for the same order id.
func (s *service) Initiate(ctx context.Context, bookingID, userID uuid.UUID, req InitiatePaymentRequest) (*PaymentResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID, userID, false)
	if err != nil {
		return nil, err
	}

	customer := Customer{Name: req.Name, Email: req.Email, Phone: req.Phone}

	existing, err := s.repo.GetByBookingID(ctx, bookingID)
	if err == nil {
		return s.resumePayment(ctx, existing, customer)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to load payment", err)
	}

	payment := &Payment{
		BookingID: bookingID,
		OrderID:   generateOrderID(booking.Code),
		Amount:    booking.TotalPrice,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("payment already exists for booking")
		}
		return nil, apperrors.Internal("failed to create payment", err)
	}

	token, err := s.gateway.CreateTransaction(ctx, payment.OrderID, payment.Amount, customer)
	if err != nil {
		// The pending row stays behind; a retry resumes with the same
		// order id.
		return nil, err
	}

	if err := s.repo.SetSnapToken(ctx, payment.ID, token); err != nil {
		return nil, apperrors.Internal("failed to store payment token", err)
	}
	payment.SnapToken = token

	return ToPaymentResponse(payment), nil
}

// resumePayment handles re-initiation for an existing payment row.
func (s *service) resumePayment(ctx context.Context, payment *Payment, customer Customer) (*PaymentResponse, error) {
	if payment.Status.IsTerminal() {
		return nil, apperrors.Conflict("payment already exists for booking")
	}

	if payment.SnapToken != "" {
		return ToPaymentResponse(payment), nil
	}

	token, err := s.gateway.CreateTransaction(ctx, payment.OrderID, payment.Amount, customer)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SetSnapToken(ctx, payment.ID, token); err != nil {
		return nil, apperrors.Internal("failed to store payment token", err)
	}
	payment.SnapToken = token

	return ToPaymentResponse(payment), nil
}

// ProcessWebhook applies one gateway notification to internal payment and
// seat state. Redelivered notifications are absorbed idempotently: applying
// the same settlement twice leaves the system exactly as applying it once.
func (s *service) ProcessWebhook(ctx context.Context, req WebhookRequest) error {
	target, err := MapGatewayStatus(req.TransactionStatus)
	if err != nil {
		return err
	}

	payment, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("payment not found for order id")
		}
		return apperrors.Internal("failed to load payment", err)
	}

	if target == StatusPending {
		// Nothing to reconcile yet, acknowledge and wait for settlement.
		s.log.Debug("pending gateway notification acknowledged", "order_id", req.OrderID)
		return nil
	}

	booking, err := s.bookingStore.GetBookingByIDWithDetails(ctx, payment.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("booking not found for payment")
		}
		return apperrors.Internal("failed to load booking", err)
	}

	if payment.Status == target {
		s.log.LogWebhookReplay(ctx, req.OrderID, string(target))
		return nil
	}
	if payment.Status.IsTerminal() {
		return apperrors.Conflict(fmt.Sprintf("payment already %s, cannot apply %s",
			strings.ToLower(string(payment.Status)), strings.ToLower(string(target))))
	}

	result := &GatewayResult{
		PaymentType:     req.PaymentType,
		TransactionID:   req.TransactionID,
		TransactionTime: parseTransactionTime(req.TransactionTime),
	}

	if err := s.applyTransition(ctx, payment, booking, target, result); err != nil {
		return err
	}

	s.log.LogPaymentReconciled(ctx, req.OrderID, string(target))
	return nil
}

// CancelByUser cancels an unpaid booking on the user's request. A settled
// or otherwise closed payment cannot be cancelled.
func (s *service) CancelByUser(ctx context.Context, bookingID, userID uuid.UUID) (*PaymentResponse, error) {
	booking, err := s.loadBooking(ctx, bookingID, userID, false)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found for booking")
		}
		return nil, apperrors.Internal("failed to load payment", err)
	}

	if payment.Status == StatusSettlement {
		return nil, apperrors.Conflict("payment already settled, cannot cancel")
	}
	if payment.Status.IsTerminal() {
		return nil, apperrors.Conflict("payment already closed")
	}

	if err := s.gateway.CancelTransaction(ctx, payment.OrderID); err != nil {
		return nil, err
	}

	if err := s.applyTransition(ctx, payment, booking, StatusCancel, nil); err != nil {
		return nil, err
	}

	payment.Status = StatusCancel
	s.log.LogPaymentReconciled(ctx, payment.OrderID, string(StatusCancel))
	return ToPaymentResponse(payment), nil
}

func (s *service) GetByBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*PaymentResponse, error) {
	if _, err := s.loadBooking(ctx, bookingID, userID, isAdmin); err != nil {
		return nil, err
	}

	payment, err := s.repo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("payment not found for booking")
		}
		return nil, apperrors.Internal("failed to load payment", err)
	}
	return ToPaymentResponse(payment), nil
}

// applyTransition runs the guarded transition and absorbs the race where a
// concurrent delivery applied it first.
func (s *service) applyTransition(ctx context.Context, payment *Payment, booking *bookings.Booking, target Status, result *GatewayResult) error {
	seatIDs := booking.SeatIDs()
	seatStatus := seatStatusFor(target)

	err := s.repo.ApplyTransition(ctx, payment.ID, target, result, seatIDs, seatStatus)
	if errors.Is(err, ErrNoTransition) {
		current, readErr := s.repo.GetByOrderID(ctx, payment.OrderID)
		if readErr != nil {
			return apperrors.Internal("failed to re-read payment after transition race", readErr)
		}
		if current.Status == target {
			s.log.LogWebhookReplay(ctx, payment.OrderID, string(target))
			return nil
		}
		return apperrors.Conflict(fmt.Sprintf("payment already %s, cannot apply %s",
			strings.ToLower(string(current.Status)), strings.ToLower(string(target))))
	}
	if err != nil {
		return apperrors.Internal("failed to apply payment transition", err)
	}

	if s.seatMaps != nil {
		s.seatMaps.InvalidateSeatMap(ctx, booking.FlightIDs())
	}
	s.publishReconciled(ctx, payment, booking, target)
	return nil
}

func (s *service) loadBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*bookings.Booking, error) {
	booking, err := s.bookingStore.GetBookingByIDWithDetails(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking not found")
		}
		return nil, apperrors.Internal("failed to load booking", err)
	}
	if !isAdmin && booking.UserID != userID {
		return nil, apperrors.NotFound("booking not found")
	}
	return booking, nil
}

// seatStatusFor maps the payment transition onto its seat inventory effect:
// settlement sells the seats, cancel and expire release them.
func seatStatusFor(target Status) seats.Status {
	if target == StatusSettlement {
		return seats.StatusUnavailable
	}
	return seats.StatusAvailable
}

func parseTransactionTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	// Gateway sends local wall-clock time without a zone designator.
	parsed, err := time.Parse("2006-01-02 15:04:05", raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func (s *service) publishReconciled(ctx context.Context, payment *Payment, booking *bookings.Booking, target Status) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"type":       "payment.reconciled",
		"order_id":   payment.OrderID,
		"booking_id": payment.BookingID.String(),
		"code":       booking.Code,
		"status":     string(target),
		"amount":     payment.Amount,
		"applied_at": time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, s.paymentTopic, event); err != nil {
		s.log.Warn("failed to publish payment event", "order_id", payment.OrderID, "error", err)
	}
}

// generateOrderID derives a gateway-correlatable order id from the booking
// code plus a random suffix, keeping it unique across re-created bookings.
func generateOrderID(bookingCode string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s-%s", bookingCode, strings.ToUpper(suffix))
}
