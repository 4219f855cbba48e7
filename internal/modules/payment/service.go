package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/policy"
	"designmarket/internal/repository"

	"github.com/google/uuid"
)

// Service keeps the payment ledger. It records payments; it never talks to a
// payment provider.
type Service struct {
	payments paymentRepo
	bookings bookingReader
	now      func() time.Time
	newTxID  func() string
}

func NewService(payments paymentRepo, bookings bookingReader) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		now:      time.Now,
		newTxID:  uuid.NewString,
	}
}

func (s *Service) ListPayments(ctx context.Context, actor domain.Actor, page utils.Page) ([]domain.Payment, error) {
	if err := policy.Check(actor, policy.Payment, policy.List); err != nil {
		return nil, err
	}

	var f repository.PaymentFilter
	switch actor.Role {
	case domain.RoleDesigner:
		f.DesignerID = actor.UserID
	case domain.RoleClient:
		f.ClientID = actor.UserID
	}
	return s.payments.List(ctx, f, page.Limit, page.Offset)
}

// CreatePayment records the single payment a booking may have. A repeat
// attempt is rejected, never merged into the existing row.
func (s *Service) CreatePayment(ctx context.Context, actor domain.Actor, req CreatePaymentRequest) (*domain.Payment, error) {
	if err := policy.Check(actor, policy.Payment, policy.Create); err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if !actor.Is(domain.RoleAdmin) && b.ClientID != actor.UserID {
		return nil, ErrPaymentAccessDenied
	}
	if b.Status == domain.BookingCancelled {
		return nil, ErrBookingCancelled
	}
	if err := domain.CheckMoney(req.Amount); err != nil {
		return nil, amountErrors[err]
	}
	if req.Amount.GreaterThan(b.AgreedPrice()) {
		return nil, ErrAmountExceedsBooking
	}

	exists, err := s.payments.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("check existing payment: %w", err)
	}
	if exists {
		return nil, ErrPaymentExists
	}

	txID := strings.TrimSpace(req.TransactionID)
	if txID == "" {
		txID = s.newTxID()
	}

	p := &domain.Payment{
		BookingID:     b.ID,
		Amount:        req.Amount,
		PaymentMethod: strings.TrimSpace(req.PaymentMethod),
		TransactionID: txID,
	}
	if err := s.payments.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPaymentExists
		}
		return nil, fmt.Errorf("create payment: %w", err)
	}

	logger.FromContext(ctx).Info("payment recorded",
		"payment_id", p.ID,
		"booking_id", p.BookingID,
		"amount", p.Amount.String(),
	)
	return p, nil
}

// MarkSucceeded flips the payment to successful once and returns it with the
// booking's recomputed payment status.
func (s *Service) MarkSucceeded(ctx context.Context, actor domain.Actor, id int64, req SucceedPaymentRequest) (*domain.Payment, error) {
	if err := policy.Check(actor, policy.Payment, policy.Succeed); err != nil {
		return nil, err
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Successful {
		return nil, ErrPaymentAlreadyPaid
	}

	paidAt := s.now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	err = s.payments.MarkSucceeded(ctx, id, strings.TrimSpace(req.TransactionID), paidAt)
	if err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrPaymentAlreadyPaid
		}
		return nil, fmt.Errorf("mark payment succeeded: %w", err)
	}

	p, err = s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := s.bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	p.Booking = b

	logger.FromContext(ctx).Info("payment succeeded",
		"payment_id", p.ID,
		"booking_id", p.BookingID,
		"payment_status", b.PaymentStatus,
	)
	return p, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("load payment: %w", err)
	}
	return p, nil
}
