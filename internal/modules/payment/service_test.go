package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/apperr"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 70
	}
	return args.Error(0)
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	args := m.Called(ctx, bookingID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPaymentRepo) List(ctx context.Context, f repository.PaymentFilter, limit, offset int) ([]domain.Payment, error) {
	args := m.Called(ctx, f, limit, offset)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *mockPaymentRepo) MarkSucceeded(ctx context.Context, id int64, transactionID string, paidAt time.Time) error {
	return m.Called(ctx, id, transactionID, paidAt).Error(0)
}

type mockBookingReader struct {
	mock.Mock
}

func (m *mockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

var (
	client   = domain.Actor{UserID: 1, Role: domain.RoleClient}
	designer = domain.Actor{UserID: 2, Role: domain.RoleDesigner}
	admin    = domain.Actor{UserID: 3, Role: domain.RoleAdmin}
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newTestService() (*Service, *mockPaymentRepo, *mockBookingReader) {
	payments := new(mockPaymentRepo)
	bookings := new(mockBookingReader)
	svc := NewService(payments, bookings)
	svc.now = func() time.Time { return fixedNow }
	svc.newTxID = func() string { return "generated-tx" }
	return svc, payments, bookings
}

func booking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:          40,
		ClientID:    client.UserID,
		DesignerID:  designer.UserID,
		Status:      status,
		DesignPrice: decimal.NewFromInt(1500),
	}
}

func TestService_CreatePayment_Success(t *testing.T) {
	svc, payments, bookings := newTestService()
	bookings.On("GetByID", mock.Anything, int64(40)).Return(booking(domain.BookingConfirmed), nil)
	payments.On("ExistsForBooking", mock.Anything, int64(40)).Return(false, nil)
	payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.BookingID == 40 && p.TransactionID == "generated-tx" && !p.Successful && p.PaymentMethod == "card"
	})).Return(nil)

	p, err := svc.CreatePayment(context.Background(), client, CreatePaymentRequest{
		BookingID:     40,
		Amount:        decimal.NewFromInt(750),
		PaymentMethod: " card ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(70), p.ID)
	payments.AssertExpectations(t)
}

func TestService_CreatePayment_RepeatIsConflict(t *testing.T) {
	svc, payments, bookings := newTestService()
	bookings.On("GetByID", mock.Anything, int64(40)).Return(booking(domain.BookingPending), nil)
	payments.On("ExistsForBooking", mock.Anything, int64(40)).Return(true, nil)

	_, err := svc.CreatePayment(context.Background(), client, CreatePaymentRequest{BookingID: 40, Amount: decimal.NewFromInt(10), PaymentMethod: "card"})

	assert.ErrorIs(t, err, ErrPaymentExists)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreatePayment_StorageUniqueViolation(t *testing.T) {
	svc, payments, bookings := newTestService()
	bookings.On("GetByID", mock.Anything, int64(40)).Return(booking(domain.BookingPending), nil)
	payments.On("ExistsForBooking", mock.Anything, int64(40)).Return(false, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.CreatePayment(context.Background(), client, CreatePaymentRequest{BookingID: 40, Amount: decimal.NewFromInt(10), PaymentMethod: "card"})

	assert.ErrorIs(t, err, ErrPaymentExists)
}

func TestService_CreatePayment_Rules(t *testing.T) {
	negotiated := decimal.NewFromInt(1000)
	withDeal := booking(domain.BookingPending)
	withDeal.ID = 41
	withDeal.NegotiatedPrice = &negotiated

	cases := []struct {
		name    string
		actor   domain.Actor
		b       *domain.Booking
		amount  string
		wantErr error
	}{
		{"designer cannot pay", designer, booking(domain.BookingPending), "10", apperr.ErrPermissionDenied},
		{"other client cannot pay", domain.Actor{UserID: 9, Role: domain.RoleClient}, booking(domain.BookingPending), "10", ErrPaymentAccessDenied},
		{"cancelled booking", client, booking(domain.BookingCancelled), "10", ErrBookingCancelled},
		{"zero amount", client, booking(domain.BookingPending), "0", ErrInvalidAmount},
		{"above catalog price", client, booking(domain.BookingPending), "1500.01", ErrAmountExceedsBooking},
		{"above negotiated price", client, withDeal, "1200", ErrAmountExceedsBooking},
		{"sub-cent amount", client, booking(domain.BookingPending), "0.001", ErrAmountPrecision},
		{"fraction of a cent", client, booking(domain.BookingPending), "10.005", ErrAmountPrecision},
		{"beyond column range", client, booking(domain.BookingPending), "100000000", ErrAmountTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, payments, bookings := newTestService()
			bookings.On("GetByID", mock.Anything, tc.b.ID).Return(tc.b, nil)

			_, err := svc.CreatePayment(context.Background(), tc.actor, CreatePaymentRequest{
				BookingID:     tc.b.ID,
				Amount:        decimal.RequireFromString(tc.amount),
				PaymentMethod: "card",
			})

			assert.ErrorIs(t, err, tc.wantErr)
			payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreatePayment_AdminMayPayAnyBooking(t *testing.T) {
	svc, payments, bookings := newTestService()
	bookings.On("GetByID", mock.Anything, int64(40)).Return(booking(domain.BookingPending), nil)
	payments.On("ExistsForBooking", mock.Anything, int64(40)).Return(false, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.CreatePayment(context.Background(), admin, CreatePaymentRequest{BookingID: 40, Amount: decimal.NewFromInt(1500), PaymentMethod: "cash", TransactionID: "manual-1"})

	assert.NoError(t, err)
}

func TestService_CreatePayment_BookingNotFound(t *testing.T) {
	svc, _, bookings := newTestService()
	bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.CreatePayment(context.Background(), client, CreatePaymentRequest{BookingID: 404, Amount: decimal.NewFromInt(1), PaymentMethod: "card"})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_ListPayments_Partitions(t *testing.T) {
	cases := []struct {
		actor domain.Actor
		want  repository.PaymentFilter
	}{
		{client, repository.PaymentFilter{ClientID: client.UserID}},
		{designer, repository.PaymentFilter{DesignerID: designer.UserID}},
		{admin, repository.PaymentFilter{}},
	}
	for _, tc := range cases {
		svc, payments, _ := newTestService()
		payments.On("List", mock.Anything, tc.want, 20, 0).Return([]domain.Payment{}, nil)

		_, err := svc.ListPayments(context.Background(), tc.actor, utils.Page{Limit: 20})

		require.NoError(t, err)
		payments.AssertExpectations(t)
	}
}

func TestService_MarkSucceeded_FlipsOnce(t *testing.T) {
	svc, payments, bookings := newTestService()
	pending := &domain.Payment{ID: 70, BookingID: 40, Amount: decimal.NewFromInt(750)}
	settled := &domain.Payment{ID: 70, BookingID: 40, Amount: decimal.NewFromInt(750), Successful: true, PaidAt: &fixedNow}
	derived := booking(domain.BookingConfirmed)
	derived.PaymentStatus = domain.PaymentHalf

	payments.On("GetByID", mock.Anything, int64(70)).Return(pending, nil).Once()
	payments.On("MarkSucceeded", mock.Anything, int64(70), "gw-7", fixedNow).Return(nil).Once()
	payments.On("GetByID", mock.Anything, int64(70)).Return(settled, nil)
	bookings.On("GetByID", mock.Anything, int64(40)).Return(derived, nil)

	p, err := svc.MarkSucceeded(context.Background(), admin, 70, SucceedPaymentRequest{TransactionID: "gw-7"})
	require.NoError(t, err)
	assert.True(t, p.Successful)
	require.NotNil(t, p.Booking)
	assert.Equal(t, domain.PaymentHalf, p.Booking.PaymentStatus)

	_, err = svc.MarkSucceeded(context.Background(), admin, 70, SucceedPaymentRequest{})
	assert.ErrorIs(t, err, ErrPaymentAlreadyPaid)
	payments.AssertNumberOfCalls(t, "MarkSucceeded", 1)
}

func TestService_MarkSucceeded_AdminOnly(t *testing.T) {
	svc, payments, _ := newTestService()

	_, err := svc.MarkSucceeded(context.Background(), client, 70, SucceedPaymentRequest{})

	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))
	payments.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestService_MarkSucceeded_Race(t *testing.T) {
	svc, payments, _ := newTestService()
	payments.On("GetByID", mock.Anything, int64(70)).Return(&domain.Payment{ID: 70, BookingID: 40}, nil)
	payments.On("MarkSucceeded", mock.Anything, int64(70), "", fixedNow).Return(repository.ErrStale)

	_, err := svc.MarkSucceeded(context.Background(), admin, 70, SucceedPaymentRequest{})

	assert.ErrorIs(t, err, ErrPaymentAlreadyPaid)
}
