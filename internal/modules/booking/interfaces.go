package booking

import (
	"context"

	"designmarket/internal/domain"
	"designmarket/internal/repository"
)

// BookingRepository defines the interface for booking operations
type BookingRepository interface {
	CreateWithNotification(ctx context.Context, b *domain.Booking, n *domain.Notification) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter, limit, offset int) ([]domain.Booking, error)
	UpdateDetails(ctx context.Context, b *domain.Booking) error
	TransitionStatus(ctx context.Context, id int64, from, to domain.BookingStatus, n *domain.Notification) error
}

type DesignReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Design, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
