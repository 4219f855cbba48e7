package message

import (
	"context"

	"designmarket/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListForUser(ctx context.Context, userID, designID int64, limit, offset int) ([]domain.Message, error)
	HasThread(ctx context.Context, designID, a, b int64) (bool, error)
	MarkAsRead(ctx context.Context, id, receiverID int64) error
}

type DesignReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Design, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
