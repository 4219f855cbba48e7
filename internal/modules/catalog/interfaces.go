package catalog

import (
	"context"

	"designmarket/internal/domain"
	"designmarket/internal/repository"
)

type DesignRepository interface {
	Create(ctx context.Context, d *domain.Design) error
	GetByID(ctx context.Context, id int64) (*domain.Design, error)
	List(ctx context.Context, f repository.DesignFilter, limit, offset int) ([]domain.Design, error)
	Update(ctx context.Context, d *domain.Design) error
	Delete(ctx context.Context, id int64) error
}

type DesignerRepository interface {
	GetProfile(ctx context.Context, userID int64) (*domain.DesignerProfile, error)
	UpsertProfile(ctx context.Context, p *domain.DesignerProfile) error
}
