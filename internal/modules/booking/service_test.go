package booking

import (
	"context"
	"errors"
	"strings"
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

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithNotification(ctx context.Context, b *domain.Booking, n *domain.Notification) error {
	args := m.Called(ctx, b, n)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
		n.ID = 1
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilter, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateDetails(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.BookingStatus, n *domain.Notification) error {
	return m.Called(ctx, id, from, to, n).Error(0)
}

type MockDesignReader struct {
	mock.Mock
}

func (m *MockDesignReader) GetByID(ctx context.Context, id int64) (*domain.Design, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Design), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var (
	fixedNow = time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC)

	clientActor   = domain.Actor{UserID: 1, Role: domain.RoleClient}
	designerActor = domain.Actor{UserID: 2, Role: domain.RoleDesigner}
	adminActor    = domain.Actor{UserID: 3, Role: domain.RoleAdmin}
	strangerActor = domain.Actor{UserID: 4, Role: domain.RoleDesigner}
)

type fixture struct {
	svc      *Service
	bookings *MockBookingRepository
	designs  *MockDesignReader
	users    *MockUserReader
}

func newFixture() fixture {
	f := fixture{
		bookings: new(MockBookingRepository),
		designs:  new(MockDesignReader),
		users:    new(MockUserReader),
	}
	f.svc = NewService(f.bookings, f.designs, f.users)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func loftDesign() *domain.Design {
	return &domain.Design{ID: 10, DesignerID: designerActor.UserID, Title: "Loft", Price: decimal.NewFromInt(1500)}
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:          50,
		ClientID:    clientActor.UserID,
		DesignID:    10,
		DesignerID:  designerActor.UserID,
		Status:      domain.BookingPending,
		DesignTitle: "Loft",
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	f := newFixture()
	f.designs.On("GetByID", mock.Anything, int64(10)).Return(loftDesign(), nil)
	f.users.On("GetByID", mock.Anything, clientActor.UserID).Return(&domain.User{ID: 1, Username: "carol"}, nil)

	var notice *domain.Notification
	f.bookings.On("CreateWithNotification", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { notice = args.Get(2).(*domain.Notification) }).
		Return(nil)

	b, err := f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{
		DesignID:    10,
		BookingDate: "2026-06-16",
		Notes:       "  Test booking ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, clientActor.UserID, b.ClientID)
	assert.Equal(t, designerActor.UserID, b.DesignerID)
	assert.Equal(t, "Test booking", b.Notes)
	require.NotNil(t, b.BookingDate)
	assert.Equal(t, "2026-06-16", b.BookingDate.Format(dateLayout))

	require.NotNil(t, notice)
	assert.Equal(t, designerActor.UserID, notice.UserID)
	assert.Contains(t, notice.Message, "Loft")
	assert.Contains(t, notice.Message, "carol")
	f.bookings.AssertNumberOfCalls(t, "CreateWithNotification", 1)
}

func TestService_CreateBooking_TodayAllowed(t *testing.T) {
	f := newFixture()
	f.designs.On("GetByID", mock.Anything, int64(10)).Return(loftDesign(), nil)
	f.users.On("GetByID", mock.Anything, clientActor.UserID).Return(&domain.User{ID: 1, Username: "carol"}, nil)
	f.bookings.On("CreateWithNotification", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{DesignID: 10, BookingDate: "2026-06-15"})

	assert.NoError(t, err)
}

func TestService_CreateBooking_NonClientDenied(t *testing.T) {
	for _, actor := range []domain.Actor{designerActor, adminActor} {
		f := newFixture()

		_, err := f.svc.CreateBooking(context.Background(), actor, CreateBookingRequest{DesignID: 10})

		assert.True(t, errors.Is(err, apperr.ErrPermissionDenied), "role %s", actor.Role)
		f.bookings.AssertNotCalled(t, "CreateWithNotification", mock.Anything, mock.Anything, mock.Anything)
		f.designs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	}
}

func TestService_CreateBooking_PastDate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{DesignID: 10, BookingDate: "2026-06-14"})

	assert.ErrorIs(t, err, ErrPastBookingDate)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	f.bookings.AssertNotCalled(t, "CreateWithNotification", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_CreateBooking_BadInput(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{DesignID: 10, BookingDate: "15/06/2026"})
	assert.ErrorIs(t, err, ErrInvalidBookingDate)

	negative := decimal.NewFromInt(-5)
	_, err = f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{DesignID: 10, NegotiatedPrice: &negative})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestService_CreateBooking_NegotiatedPriceMustFitColumn(t *testing.T) {
	cases := []struct {
		price string
		want  error
	}{
		{"0.001", ErrPricePrecision},
		{"250.125", ErrPricePrecision},
		{"123456789", ErrPriceTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			f := newFixture()
			price := decimal.RequireFromString(tc.price)

			_, err := f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{DesignID: 10, NegotiatedPrice: &price})

			assert.ErrorIs(t, err, tc.want)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
			f.bookings.AssertNotCalled(t, "CreateWithNotification", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateBooking_DesignNotFound(t *testing.T) {
	f := newFixture()
	f.designs.On("GetByID", mock.Anything, int64(77)).Return(nil, repository.ErrNotFound)

	_, err := f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{DesignID: 77})

	assert.ErrorIs(t, err, ErrDesignNotFound)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestService_CreateBooking_LongTitleClipped(t *testing.T) {
	f := newFixture()
	d := loftDesign()
	d.Title = strings.Repeat("x", 300)
	f.designs.On("GetByID", mock.Anything, int64(10)).Return(d, nil)
	f.users.On("GetByID", mock.Anything, clientActor.UserID).Return(&domain.User{ID: 1, Username: "carol"}, nil)
	f.bookings.On("CreateWithNotification", mock.Anything, mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return len([]rune(n.Message)) == maxNotificationLen
	})).Return(nil)

	_, err := f.svc.CreateBooking(context.Background(), clientActor, CreateBookingRequest{DesignID: 10})

	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

func TestService_ListBookings_Partitions(t *testing.T) {
	page := utils.Page{Limit: 20, Offset: 0}
	cases := []struct {
		actor domain.Actor
		want  repository.BookingFilter
	}{
		{designerActor, repository.BookingFilter{DesignerID: designerActor.UserID}},
		{clientActor, repository.BookingFilter{ClientID: clientActor.UserID}},
		{adminActor, repository.BookingFilter{}},
	}

	for _, tc := range cases {
		t.Run(string(tc.actor.Role), func(t *testing.T) {
			f := newFixture()
			f.bookings.On("List", mock.Anything, tc.want, 20, 0).Return([]domain.Booking{}, nil)

			_, err := f.svc.ListBookings(context.Background(), tc.actor, "", page)

			require.NoError(t, err)
			f.bookings.AssertExpectations(t)
		})
	}
}

func TestService_ListBookings_StatusFilter(t *testing.T) {
	f := newFixture()
	want := repository.BookingFilter{ClientID: clientActor.UserID, Status: domain.BookingConfirmed}
	f.bookings.On("List", mock.Anything, want, 5, 10).Return([]domain.Booking{{ID: 1}}, nil)

	out, err := f.svc.ListBookings(context.Background(), clientActor, domain.BookingConfirmed, utils.Page{Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = f.svc.ListBookings(context.Background(), clientActor, "archived", utils.Page{Limit: 5})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestService_GetBooking_Visibility(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(pendingBooking(), nil)
	f.bookings.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	for _, actor := range []domain.Actor{clientActor, designerActor, adminActor} {
		_, err := f.svc.GetBooking(context.Background(), actor, 50)
		assert.NoError(t, err, "role %s", actor.Role)
	}

	_, err := f.svc.GetBooking(context.Background(), strangerActor, 50)
	assert.ErrorIs(t, err, ErrBookingAccessDenied)

	_, err = f.svc.GetBooking(context.Background(), clientActor, 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_UpdateBooking(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(pendingBooking(), nil)
	f.bookings.On("UpdateDetails", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Notes == "late afternoon" && b.NegotiatedPrice != nil && b.NegotiatedPrice.Equal(decimal.NewFromInt(1200))
	})).Return(nil)

	notes := "late afternoon"
	price := decimal.NewFromInt(1200)
	_, err := f.svc.UpdateBooking(context.Background(), clientActor, 50, UpdateBookingRequest{Notes: &notes, NegotiatedPrice: &price})

	require.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

func TestService_UpdateBooking_Rules(t *testing.T) {
	f := newFixture()
	confirmed := pendingBooking()
	confirmed.ID = 51
	confirmed.Status = domain.BookingConfirmed
	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(pendingBooking(), nil)
	f.bookings.On("GetByID", mock.Anything, int64(51)).Return(confirmed, nil)

	notes := "x"
	_, err := f.svc.UpdateBooking(context.Background(), clientActor, 51, UpdateBookingRequest{Notes: &notes})
	assert.ErrorIs(t, err, ErrBookingNotEditable)

	other := domain.Actor{UserID: 42, Role: domain.RoleClient}
	_, err = f.svc.UpdateBooking(context.Background(), other, 50, UpdateBookingRequest{Notes: &notes})
	assert.ErrorIs(t, err, ErrBookingAccessDenied)

	_, err = f.svc.UpdateBooking(context.Background(), designerActor, 50, UpdateBookingRequest{Notes: &notes})
	assert.True(t, errors.Is(err, apperr.ErrPermissionDenied))

	past := "2026-01-01"
	_, err = f.svc.UpdateBooking(context.Background(), clientActor, 50, UpdateBookingRequest{BookingDate: &past})
	assert.ErrorIs(t, err, ErrPastBookingDate)

	tiny := decimal.RequireFromString("0.001")
	_, err = f.svc.UpdateBooking(context.Background(), clientActor, 50, UpdateBookingRequest{NegotiatedPrice: &tiny})
	assert.ErrorIs(t, err, ErrPricePrecision)

	f.bookings.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything)
}

func TestService_StatusMachine(t *testing.T) {
	type op func(s *Service, ctx context.Context, a domain.Actor, id int64) (*domain.Booking, error)
	confirm := (*Service).ConfirmBooking
	complete := (*Service).CompleteBooking
	cancel := (*Service).CancelBooking

	cases := []struct {
		name    string
		from    domain.BookingStatus
		actor   domain.Actor
		do      op
		to      domain.BookingStatus
		notify  int64
		wantErr error
	}{
		{"designer confirms pending", domain.BookingPending, designerActor, confirm, domain.BookingConfirmed, clientActor.UserID, nil},
		{"admin confirms pending", domain.BookingPending, adminActor, confirm, domain.BookingConfirmed, clientActor.UserID, nil},
		{"designer completes confirmed", domain.BookingConfirmed, designerActor, complete, domain.BookingCompleted, clientActor.UserID, nil},
		{"client cancels pending", domain.BookingPending, clientActor, cancel, domain.BookingCancelled, designerActor.UserID, nil},
		{"designer cancels confirmed", domain.BookingConfirmed, designerActor, cancel, domain.BookingCancelled, clientActor.UserID, nil},
		{"client cannot confirm", domain.BookingPending, clientActor, confirm, "", 0, apperr.ErrPermissionDenied},
		{"client cannot cancel confirmed", domain.BookingConfirmed, clientActor, cancel, "", 0, ErrCancelNotAllowed},
		{"other designer denied", domain.BookingPending, strangerActor, confirm, "", 0, ErrBookingAccessDenied},
		{"complete from pending", domain.BookingPending, designerActor, complete, "", 0, ErrInvalidTransition},
		{"confirm twice", domain.BookingConfirmed, designerActor, confirm, "", 0, ErrInvalidTransition},
		{"cancel cancelled", domain.BookingCancelled, designerActor, cancel, "", 0, ErrInvalidTransition},
		{"reopen completed", domain.BookingCompleted, adminActor, cancel, "", 0, ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			b := pendingBooking()
			b.Status = tc.from
			f.bookings.On("GetByID", mock.Anything, int64(50)).Return(b, nil)
			if tc.wantErr == nil {
				f.bookings.On("TransitionStatus", mock.Anything, int64(50), tc.from, tc.to, mock.MatchedBy(func(n *domain.Notification) bool {
					return n.UserID == tc.notify && strings.Contains(n.Message, "Loft")
				})).Return(nil)
			}

			_, err := tc.do(f.svc, context.Background(), tc.actor, 50)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				f.bookings.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			f.bookings.AssertExpectations(t)
		})
	}
}

func TestService_Transition_ConcurrentChange(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(50)).Return(pendingBooking(), nil)
	f.bookings.On("TransitionStatus", mock.Anything, int64(50), domain.BookingPending, domain.BookingConfirmed, mock.Anything).
		Return(repository.ErrStale)

	_, err := f.svc.ConfirmBooking(context.Background(), designerActor, 50)

	assert.ErrorIs(t, err, ErrBookingChanged)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}
