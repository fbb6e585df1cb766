package tickets

import (
	"context"
	"encoding/json"
	"testing"

	"aerobook/internal/bookings"
	"aerobook/internal/payments"
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

func (m *MockRepository) SetCredential(ctx context.Context, detailID uuid.UUID, token string, image []byte) error {
	args := m.Called(ctx, detailID, token, image)
	return args.Error(0)
}

func (m *MockRepository) FindByCredential(ctx context.Context, bookingID, detailID uuid.UUID, token string) (*bookings.BookingDetail, error) {
	args := m.Called(ctx, bookingID, detailID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookings.BookingDetail), args.Error(1)
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

// MockPaymentStore is a mock implementation of PaymentStore
type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*payments.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.Payment), args.Error(1)
}

// MockEncoder is a mock implementation of Encoder
type MockEncoder struct {
	mock.Mock
}

func (m *MockEncoder) Encode(payload []byte) ([]byte, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func settledFixture() (*bookings.Booking, *payments.Payment) {
	bookingID := uuid.New()
	booking := &bookings.Booking{
		ID:       bookingID,
		Code:     "FLT-20260830-ABCDEF",
		UserID:   uuid.New(),
		FlightID: uuid.New(),
		Details: []bookings.BookingDetail{
			{
				ID:          uuid.New(),
				BookingID:   bookingID,
				SeatID:      uuid.New(),
				PassengerID: uuid.New(),
				Price:       1250000,
				Passenger:   &bookings.Passenger{Name: "Jane", Type: "ADULT"},
			},
		},
	}
	payment := &payments.Payment{
		ID:        uuid.New(),
		BookingID: bookingID,
		Status:    payments.StatusSettlement,
	}
	return booking, payment
}

func TestService_Create_IssuesTokenAndQRPerDetail(t *testing.T) {
	repo := &MockRepository{}
	bookingStore := &MockBookingStore{}
	paymentStore := &MockPaymentStore{}
	encoder := &MockEncoder{}
	svc := NewService(repo, bookingStore, paymentStore, encoder, nil, "ticket-events")

	booking, payment := settledFixture()
	detail := booking.Details[0]

	bookingStore.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	paymentStore.On("GetByBookingID", mock.Anything, booking.ID).Return(payment, nil)
	encoder.On("Encode", mock.AnythingOfType("[]uint8")).Return([]byte("png-bytes"), nil)
	repo.On("SetCredential", mock.Anything, detail.ID, mock.AnythingOfType("string"), []byte("png-bytes")).Return(nil)

	issued, err := svc.Create(context.Background(), booking.ID, booking.UserID, false)

	assert.NoError(t, err)
	assert.Len(t, issued, 1)
	assert.Len(t, issued[0].Token, 32)
	assert.Equal(t, detail.ID.String(), issued[0].BookingDetailID)
	assert.Equal(t, "Jane", issued[0].PassengerName)

	// The encoded payload must carry the full credential triple.
	var payload TicketPayload
	encoded := encoder.Calls[0].Arguments.Get(0).([]byte)
	assert.NoError(t, json.Unmarshal(encoded, &payload))
	assert.Equal(t, booking.ID.String(), payload.BookingID)
	assert.Equal(t, detail.ID.String(), payload.BookingDetailID)
	assert.Equal(t, issued[0].Token, payload.Token)

	repo.AssertExpectations(t)
}

func TestService_Create_UnpaidBookingRejected(t *testing.T) {
	repo := &MockRepository{}
	bookingStore := &MockBookingStore{}
	paymentStore := &MockPaymentStore{}
	svc := NewService(repo, bookingStore, paymentStore, &MockEncoder{}, nil, "ticket-events")

	booking, payment := settledFixture()
	payment.Status = payments.StatusPending

	bookingStore.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	paymentStore.On("GetByBookingID", mock.Anything, booking.ID).Return(payment, nil)

	_, err := svc.Create(context.Background(), booking.ID, booking.UserID, false)

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	repo.AssertNotCalled(t, "SetCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_ForeignBookingHidden(t *testing.T) {
	repo := &MockRepository{}
	bookingStore := &MockBookingStore{}
	paymentStore := &MockPaymentStore{}
	encoder := &MockEncoder{}
	svc := NewService(repo, bookingStore, paymentStore, encoder, nil, "ticket-events")

	booking, _ := settledFixture()

	bookingStore.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)

	_, err := svc.Create(context.Background(), booking.ID, uuid.New(), false)

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	paymentStore.AssertNotCalled(t, "GetByBookingID", mock.Anything, mock.Anything)
	encoder.AssertNotCalled(t, "Encode", mock.Anything)
}

func TestService_Create_AdminCanIssueForAnyBooking(t *testing.T) {
	repo := &MockRepository{}
	bookingStore := &MockBookingStore{}
	paymentStore := &MockPaymentStore{}
	encoder := &MockEncoder{}
	svc := NewService(repo, bookingStore, paymentStore, encoder, nil, "ticket-events")

	booking, payment := settledFixture()

	bookingStore.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	paymentStore.On("GetByBookingID", mock.Anything, booking.ID).Return(payment, nil)
	encoder.On("Encode", mock.AnythingOfType("[]uint8")).Return([]byte("png-bytes"), nil)
	repo.On("SetCredential", mock.Anything, booking.Details[0].ID, mock.AnythingOfType("string"), []byte("png-bytes")).Return(nil)

	issued, err := svc.Create(context.Background(), booking.ID, uuid.New(), true)

	assert.NoError(t, err)
	assert.Len(t, issued, 1)
}

func TestService_Create_MissingPaymentRejected(t *testing.T) {
	repo := &MockRepository{}
	bookingStore := &MockBookingStore{}
	paymentStore := &MockPaymentStore{}
	svc := NewService(repo, bookingStore, paymentStore, &MockEncoder{}, nil, "ticket-events")

	booking, _ := settledFixture()

	bookingStore.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	paymentStore.On("GetByBookingID", mock.Anything, booking.ID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), booking.ID, booking.UserID, false)

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestService_Create_ReissueKeepsExistingCredential(t *testing.T) {
	repo := &MockRepository{}
	bookingStore := &MockBookingStore{}
	paymentStore := &MockPaymentStore{}
	encoder := &MockEncoder{}
	svc := NewService(repo, bookingStore, paymentStore, encoder, nil, "ticket-events")

	booking, payment := settledFixture()
	booking.Details[0].QRToken = "aabbccddeeff00112233445566778899"
	booking.Details[0].QRCodeImage = []byte("existing-png")

	bookingStore.On("GetBookingByIDWithDetails", mock.Anything, booking.ID).Return(booking, nil)
	paymentStore.On("GetByBookingID", mock.Anything, booking.ID).Return(payment, nil)

	issued, err := svc.Create(context.Background(), booking.ID, booking.UserID, false)

	assert.NoError(t, err)
	assert.Len(t, issued, 1)
	assert.Equal(t, "aabbccddeeff00112233445566778899", issued[0].Token)
	assert.Equal(t, []byte("existing-png"), issued[0].QRCodeImage)
	repo.AssertNotCalled(t, "SetCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	encoder.AssertNotCalled(t, "Encode", mock.Anything)
}

func TestService_Validate_ExactTriple(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, &MockBookingStore{}, &MockPaymentStore{}, &MockEncoder{}, nil, "ticket-events")

	booking, _ := settledFixture()
	detail := &booking.Details[0]
	detail.QRToken = "aabbccddeeff00112233445566778899"
	detail.Booking = booking

	repo.On("FindByCredential", mock.Anything, booking.ID, detail.ID, detail.QRToken).Return(detail, nil)

	resp, err := svc.Validate(context.Background(), ValidateRequest{
		BookingID:       booking.ID.String(),
		BookingDetailID: detail.ID.String(),
		Token:           detail.QRToken,
	})

	assert.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.Equal(t, booking.Code, resp.BookingCode)
	assert.Equal(t, "Jane", resp.PassengerName)
	assert.Equal(t, detail.SeatID.String(), resp.SeatID)
}

func TestService_Validate_WrongTokenRejected(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, &MockBookingStore{}, &MockPaymentStore{}, &MockEncoder{}, nil, "ticket-events")

	bookingID := uuid.New()
	detailID := uuid.New()

	repo.On("FindByCredential", mock.Anything, bookingID, detailID, "guessed-token").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Validate(context.Background(), ValidateRequest{
		BookingID:       bookingID.String(),
		BookingDetailID: detailID.String(),
		Token:           "guessed-token",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestService_Validate_MalformedIDs(t *testing.T) {
	repo := &MockRepository{}
	svc := NewService(repo, &MockBookingStore{}, &MockPaymentStore{}, &MockEncoder{}, nil, "ticket-events")

	_, err := svc.Validate(context.Background(), ValidateRequest{
		BookingID:       "not-a-uuid",
		BookingDetailID: uuid.New().String(),
		Token:           "token",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	repo.AssertNotCalled(t, "FindByCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
