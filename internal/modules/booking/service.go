package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/policy"
	"designmarket/internal/repository"
)

const maxNotificationLen = 255

type Service struct {
	bookings BookingRepository
	designs  DesignReader
	users    UserReader
	now      func() time.Time
}

func NewService(bookings BookingRepository, designs DesignReader, users UserReader) *Service {
	return &Service{
		bookings: bookings,
		designs:  designs,
		users:    users,
		now:      time.Now,
	}
}

// CreateBooking books a design for the calling client and notifies the
// design's designer in the same transaction.
func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	if err := policy.Check(actor, policy.Booking, policy.Create); err != nil {
		return nil, err
	}

	date, err := s.parseDate(req.BookingDate)
	if err != nil {
		return nil, err
	}
	if req.NegotiatedPrice != nil {
		if err := domain.CheckMoney(*req.NegotiatedPrice); err != nil {
			return nil, priceErrors[err]
		}
	}

	design, err := s.designs.GetByID(ctx, req.DesignID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("load design: %w", err)
	}

	client, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}

	b := &domain.Booking{
		ClientID:        actor.UserID,
		DesignID:        design.ID,
		DesignerID:      design.DesignerID,
		NegotiatedPrice: req.NegotiatedPrice,
		Status:          domain.BookingPending,
		BookingDate:     date,
		Notes:           strings.TrimSpace(req.Notes),
		DesignTitle:     design.Title,
		DesignPrice:     design.Price,
	}
	n := &domain.Notification{
		UserID:  design.DesignerID,
		Message: clip(fmt.Sprintf("New booking for your design '%s' by %s", design.Title, client.Username)),
	}

	if err := s.bookings.CreateWithNotification(ctx, b, n); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	logger.FromContext(ctx).Info("booking created",
		"booking_id", b.ID,
		"design_id", b.DesignID,
		"designer_id", b.DesignerID,
	)
	return b, nil
}

// ListBookings returns the caller's side of the booking table: designers see
// bookings of their designs, clients their own, admins everything.
func (s *Service) ListBookings(ctx context.Context, actor domain.Actor, status domain.BookingStatus, page utils.Page) ([]domain.Booking, error) {
	if err := policy.Check(actor, policy.Booking, policy.List); err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, ErrInvalidStatus
	}

	f := repository.BookingFilter{Status: status}
	switch actor.Role {
	case domain.RoleDesigner:
		f.DesignerID = actor.UserID
	case domain.RoleClient:
		f.ClientID = actor.UserID
	}

	return s.bookings.List(ctx, f, page.Limit, page.Offset)
}

func (s *Service) GetBooking(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	if err := policy.Check(actor, policy.Booking, policy.Read); err != nil {
		return nil, err
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Is(domain.RoleAdmin) && !b.IsParty(actor.UserID) {
		return nil, ErrBookingAccessDenied
	}
	return b, nil
}

// UpdateBooking lets the booking's client edit notes, date and negotiated
// price while the booking is still pending.
func (s *Service) UpdateBooking(ctx context.Context, actor domain.Actor, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	if err := policy.Check(actor, policy.Booking, policy.Update); err != nil {
		return nil, err
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.ClientID != actor.UserID {
		return nil, ErrBookingAccessDenied
	}
	if b.Status != domain.BookingPending {
		return nil, ErrBookingNotEditable
	}

	if req.BookingDate != nil {
		date, err := s.parseDate(*req.BookingDate)
		if err != nil {
			return nil, err
		}
		b.BookingDate = date
	}
	if req.NegotiatedPrice != nil {
		if err := domain.CheckMoney(*req.NegotiatedPrice); err != nil {
			return nil, priceErrors[err]
		}
		price := *req.NegotiatedPrice
		b.NegotiatedPrice = &price
	}
	if req.Notes != nil {
		b.Notes = strings.TrimSpace(*req.Notes)
	}

	if err := s.bookings.UpdateDetails(ctx, b); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrBookingNotEditable
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return s.load(ctx, id)
}

func (s *Service) ConfirmBooking(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, domain.BookingConfirmed, policy.Confirm)
}

func (s *Service) CompleteBooking(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, domain.BookingCompleted, policy.Complete)
}

func (s *Service) CancelBooking(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, domain.BookingCancelled, policy.Cancel)
}

func (s *Service) transition(ctx context.Context, actor domain.Actor, id int64, to domain.BookingStatus, action policy.Action) (*domain.Booking, error) {
	if err := policy.Check(actor, policy.Booking, action); err != nil {
		return nil, err
	}

	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case domain.RoleDesigner:
		if b.DesignerID != actor.UserID {
			return nil, ErrBookingAccessDenied
		}
	case domain.RoleClient:
		if b.ClientID != actor.UserID {
			return nil, ErrBookingAccessDenied
		}
		if b.Status == domain.BookingConfirmed {
			return nil, ErrCancelNotAllowed
		}
	}

	if !b.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition.WithFields(map[string]string{
			"status": fmt.Sprintf("cannot change from %s to %s", b.Status, to),
		})
	}

	n := transitionNotice(b, to, actor)
	if err := s.bookings.TransitionStatus(ctx, b.ID, b.Status, to, n); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrBookingChanged
		}
		return nil, fmt.Errorf("change booking status: %w", err)
	}

	logger.FromContext(ctx).Info("booking status changed",
		"booking_id", b.ID,
		"from", b.Status,
		"to", to,
		"by", actor.UserID,
	)
	return s.load(ctx, id)
}

// transitionNotice addresses the counter-party of whoever made the change.
func transitionNotice(b *domain.Booking, to domain.BookingStatus, actor domain.Actor) *domain.Notification {
	if actor.Is(domain.RoleClient) {
		return &domain.Notification{
			UserID:  b.DesignerID,
			Message: clip(fmt.Sprintf("Booking #%d for your design '%s' was cancelled by the client", b.ID, b.DesignTitle)),
		}
	}

	var verb string
	switch to {
	case domain.BookingConfirmed:
		verb = "confirmed"
	case domain.BookingCompleted:
		verb = "marked as completed"
	default:
		verb = "cancelled"
	}
	return &domain.Notification{
		UserID:  b.ClientID,
		Message: clip(fmt.Sprintf("Your booking for '%s' has been %s", b.DesignTitle, verb)),
	}
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return b, nil
}

// parseDate accepts an empty string (no date) or a YYYY-MM-DD date that is
// not before today in UTC.
func (s *Service) parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, ErrInvalidBookingDate
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(today) {
		return nil, ErrPastBookingDate
	}
	return &date, nil
}

func clip(msg string) string {
	if utf8.RuneCountInString(msg) <= maxNotificationLen {
		return msg
	}
	r := []rune(msg)
	return string(r[:maxNotificationLen-3]) + "..."
}
