package payment

import (
	"context"
	"time"

	"designmarket/internal/domain"
	"designmarket/internal/repository"
)

type paymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	List(ctx context.Context, f repository.PaymentFilter, limit, offset int) ([]domain.Payment, error)
	MarkSucceeded(ctx context.Context, id int64, transactionID string, paidAt time.Time) error
}

type bookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
