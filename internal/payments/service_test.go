package payments

import (
	"context"
	"testing"

	"aerobook/internal/bookings"
	"aerobook/internal/seats"
	"aerobook/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, payment *Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockRepository) GetByOrderID(ctx context.Context, orderID string) (*Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockRepository) SetSnapToken(ctx context.Context, id uuid.UUID, token string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockRepository) ApplyTransition(ctx context.Context, paymentID uuid.UUID, target Status, result *GatewayResult, seatIDs []uuid.UUID, seatStatus seats.Status) error {
	args := m.Called(ctx, paymentID, target, result, seatIDs, seatStatus)
	return args.Error(0)
}

// MockBookingStore is a mock implementation of BookingStore
type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetBookingByIDWithDetails(ctx context.Context, id uuid.UUID) (*bookings.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookings.Booking), args.Error(1)
}

// MockGateway is a mock implementation of Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateTransaction(ctx context.Context, orderID string, amount float64, customer Customer) (string, error) {
	args := m.Called(ctx, orderID, amount, customer)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) CancelTransaction(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func testBooking(userID uuid.UUID) *bookings.Booking {
	bookingID := uuid.New()
	return &bookings.Booking{
		ID:         bookingID,
		Code:       "FLT-20260830-ABCDEF",
		UserID:     userID,
		FlightID:   uuid.New(),
		TotalPrice: 2500000,
		Details: []bookings.BookingDetail{
			{ID: uuid.New(), BookingID: bookingID, SeatID: uuid.New(), Price: 1250000},
			{ID: uuid.New(), BookingID: bookingID, SeatID: uuid.New(), Price: 1250000},
		},
	}
}

func TestService_Initiate_CreatesPaymentAndToken(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	gateway := &MockGateway{}
	svc := NewService(repo, store, gateway, nil, nil, "payment-events")

	userID := uuid.New()
	booking := testBooking(userID)

	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("GetByBookingID", mock.Anything, booking.ID).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*payments.Payment")).
		Run(func(args mock.Arguments) {
			payment := args.Get(1).(*Payment)
			payment.ID = uuid.New()
		}).Return(nil)
	gateway.On("CreateTransaction", mock.Anything, mock.AnythingOfType("string"), booking.TotalPrice, mock.Anything).
		Return("snap-token-123", nil)
	repo.On("SetSnapToken", mock.Anything, mock.AnythingOfType("uuid.UUID"), "snap-token-123").Return(nil)

	resp, err := svc.Initiate(context.Background(), booking.ID, userID, InitiatePaymentRequest{
		Name: "Jane", Email: "jane@example.com", Phone: "+628123456789",
	})

	assert.NoError(t, err)
	assert.Equal(t, "snap-token-123", resp.SnapToken)
	assert.Equal(t, string(StatusPending), resp.Status)
	assert.Contains(t, resp.OrderID, booking.Code)
	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestService_Initiate_GatewayFailureLeavesPendingRow(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	gateway := &MockGateway{}
	svc := NewService(repo, store, gateway, nil, nil, "payment-events")

	userID := uuid.New()
	booking := testBooking(userID)

	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("GetByBookingID", mock.Anything, booking.ID).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*payments.Payment")).Return(nil)
	gateway.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", apperrors.Upstream("gateway unreachable", nil))

	_, err := svc.Initiate(context.Background(), booking.ID, userID, InitiatePaymentRequest{Name: "Jane"})

	assert.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	repo.AssertNotCalled(t, "SetSnapToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Initiate_ResumesPendingPaymentWithSameOrderID(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	gateway := &MockGateway{}
	svc := NewService(repo, store, gateway, nil, nil, "payment-events")

	userID := uuid.New()
	booking := testBooking(userID)
	existing := &Payment{
		ID:        uuid.New(),
		BookingID: booking.ID,
		OrderID:   "FLT-20260830-ABCDEF-1A2B3C4D",
		Amount:    booking.TotalPrice,
		Status:    StatusPending,
	}

	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("GetByBookingID", mock.Anything, booking.ID).Return(existing, nil)
	gateway.On("CreateTransaction", mock.Anything, existing.OrderID, existing.Amount, mock.Anything).
		Return("snap-token-retry", nil)
	repo.On("SetSnapToken", mock.Anything, existing.ID, "snap-token-retry").Return(nil)

	resp, err := svc.Initiate(context.Background(), booking.ID, userID, InitiatePaymentRequest{Name: "Jane"})

	assert.NoError(t, err)
	assert.Equal(t, existing.OrderID, resp.OrderID)
	assert.Equal(t, "snap-token-retry", resp.SnapToken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Initiate_TerminalPaymentConflicts(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	gateway := &MockGateway{}
	svc := NewService(repo, store, gateway, nil, nil, "payment-events")

	userID := uuid.New()
	booking := testBooking(userID)
	existing := &Payment{ID: uuid.New(), BookingID: booking.ID, Status: StatusSettlement}

	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("GetByBookingID", mock.Anything, booking.ID).Return(existing, nil)

	_, err := svc.Initiate(context.Background(), booking.ID, userID, InitiatePaymentRequest{Name: "Jane"})

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	gateway.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ProcessWebhook_SettlementSellsSeats(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	svc := NewService(repo, store, &MockGateway{}, nil, nil, "payment-events")

	userID := uuid.New()
	booking := testBooking(userID)
	payment := &Payment{
		ID:        uuid.New(),
		BookingID: booking.ID,
		OrderID:   "FLT-20260830-ABCDEF-1A2B3C4D",
		Status:    StatusPending,
	}

	repo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(payment, nil)
	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("ApplyTransition", mock.Anything, payment.ID, StatusSettlement,
		mock.AnythingOfType("*payments.GatewayResult"), booking.SeatIDs(), seats.StatusUnavailable).Return(nil)

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           payment.OrderID,
		TransactionStatus: "settlement",
		PaymentType:       "bank_transfer",
		TransactionID:     "mid-12345",
		TransactionTime:   "2026-08-30 10:15:00",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_ProcessWebhook_ExpireReleasesSeats(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	svc := NewService(repo, store, &MockGateway{}, nil, nil, "payment-events")

	booking := testBooking(uuid.New())
	payment := &Payment{ID: uuid.New(), BookingID: booking.ID, OrderID: "ORD-1", Status: StatusPending}

	repo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(payment, nil)
	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("ApplyTransition", mock.Anything, payment.ID, StatusExpire,
		mock.AnythingOfType("*payments.GatewayResult"), booking.SeatIDs(), seats.StatusAvailable).Return(nil)

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           payment.OrderID,
		TransactionStatus: "expire",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_ProcessWebhook_ReplayIsIdempotent(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	svc := NewService(repo, store, &MockGateway{}, nil, nil, "payment-events")

	booking := testBooking(uuid.New())
	payment := &Payment{ID: uuid.New(), BookingID: booking.ID, OrderID: "ORD-1", Status: StatusSettlement}

	repo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(payment, nil)
	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           payment.OrderID,
		TransactionStatus: "settlement",
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ProcessWebhook_TerminalMismatchConflicts(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	svc := NewService(repo, store, &MockGateway{}, nil, nil, "payment-events")

	booking := testBooking(uuid.New())
	payment := &Payment{ID: uuid.New(), BookingID: booking.ID, OrderID: "ORD-1", Status: StatusSettlement}

	repo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(payment, nil)
	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           payment.OrderID,
		TransactionStatus: "cancel",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}

func TestService_ProcessWebhook_PendingIsAcknowledged(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, &MockBookingStore{}, &MockGateway{}, nil, nil, "payment-events")

	payment := &Payment{ID: uuid.New(), BookingID: uuid.New(), OrderID: "ORD-1", Status: StatusPending}
	repo.On("GetByOrderID", mock.Anything, "ORD-1").Return(payment, nil)

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           "ORD-1",
		TransactionStatus: "pending",
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ProcessWebhook_PendingForUnknownOrderReported(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, &MockBookingStore{}, &MockGateway{}, nil, nil, "payment-events")

	repo.On("GetByOrderID", mock.Anything, "ORD-MISSING").Return(nil, gorm.ErrRecordNotFound)

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           "ORD-MISSING",
		TransactionStatus: "pending",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestService_ProcessWebhook_UnknownOrderID(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, &MockBookingStore{}, &MockGateway{}, nil, nil, "payment-events")

	repo.On("GetByOrderID", mock.Anything, "ORD-MISSING").Return(nil, gorm.ErrRecordNotFound)

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           "ORD-MISSING",
		TransactionStatus: "settlement",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestService_ProcessWebhook_InvalidVocabulary(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, &MockBookingStore{}, &MockGateway{}, nil, nil, "payment-events")

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           "ORD-1",
		TransactionStatus: "refund",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	repo.AssertNotCalled(t, "GetByOrderID", mock.Anything, mock.Anything)
}

func TestService_ProcessWebhook_LostRaceAbsorbedAsReplay(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	svc := NewService(repo, store, &MockGateway{}, nil, nil, "payment-events")

	booking := testBooking(uuid.New())
	payment := &Payment{ID: uuid.New(), BookingID: booking.ID, OrderID: "ORD-1", Status: StatusPending}
	settled := &Payment{ID: payment.ID, BookingID: booking.ID, OrderID: "ORD-1", Status: StatusSettlement}

	repo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(payment, nil).Once()
	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("ApplyTransition", mock.Anything, payment.ID, StatusSettlement,
		mock.Anything, booking.SeatIDs(), seats.StatusUnavailable).Return(ErrNoTransition)
	repo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(settled, nil).Once()

	err := svc.ProcessWebhook(context.Background(), WebhookRequest{
		OrderID:           payment.OrderID,
		TransactionStatus: "settlement",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_CancelByUser_PendingPayment(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	gateway := &MockGateway{}
	svc := NewService(repo, store, gateway, nil, nil, "payment-events")

	userID := uuid.New()
	booking := testBooking(userID)
	payment := &Payment{ID: uuid.New(), BookingID: booking.ID, OrderID: "ORD-1", Status: StatusPending}

	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("GetByBookingID", mock.Anything, booking.ID).Return(payment, nil)
	gateway.On("CancelTransaction", mock.Anything, payment.OrderID).Return(nil)
	repo.On("ApplyTransition", mock.Anything, payment.ID, StatusCancel,
		(*GatewayResult)(nil), booking.SeatIDs(), seats.StatusAvailable).Return(nil)

	resp, err := svc.CancelByUser(context.Background(), booking.ID, userID)

	assert.NoError(t, err)
	assert.Equal(t, string(StatusCancel), resp.Status)
	gateway.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestService_CancelByUser_SettledPaymentRejected(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	gateway := &MockGateway{}
	svc := NewService(repo, store, gateway, nil, nil, "payment-events")

	userID := uuid.New()
	booking := testBooking(userID)
	payment := &Payment{ID: uuid.New(), BookingID: booking.ID, OrderID: "ORD-1", Status: StatusSettlement}

	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	repo.On("GetByBookingID", mock.Anything, booking.ID).Return(payment, nil)

	_, err := svc.CancelByUser(context.Background(), booking.ID, userID)

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	gateway.AssertNotCalled(t, "CancelTransaction", mock.Anything, mock.Anything)
}

func TestService_CancelByUser_OtherUsersBookingHidden(t *testing.T) {
	repo := &MockRepository{}
	store := &MockBookingStore{}
	svc := NewService(repo, store, &MockGateway{}, nil, nil, "payment-events")

	booking := testBooking(uuid.New())
	store.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)

	_, err := svc.CancelByUser(context.Background(), booking.ID, uuid.New())

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}
