package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/policy"
	"designmarket/internal/repository"
)

type Service struct {
	designs   DesignRepository
	designers DesignerRepository
}

func NewService(designs DesignRepository, designers DesignerRepository) *Service {
	return &Service{designs: designs, designers: designers}
}

func (s *Service) ListDesigns(ctx context.Context, f repository.DesignFilter, page utils.Page) ([]domain.Design, error) {
	return s.designs.List(ctx, f, page.Limit, page.Offset)
}

func (s *Service) GetDesign(ctx context.Context, id int64) (*domain.Design, error) {
	d, err := s.designs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("load design: %w", err)
	}
	return d, nil
}

func (s *Service) CreateDesign(ctx context.Context, actor domain.Actor, req DesignRequest) (*domain.Design, error) {
	if err := policy.Check(actor, policy.Design, policy.Create); err != nil {
		return nil, err
	}
	if err := domain.CheckMoney(req.Price); err != nil {
		return nil, priceErrors[err]
	}

	d := &domain.Design{
		DesignerID:  actor.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Features:    req.Features,
		Price:       req.Price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if err := s.designs.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}

	logger.FromContext(ctx).Info("design created", "design_id", d.ID, "designer_id", d.DesignerID)
	return d, nil
}

func (s *Service) UpdateDesign(ctx context.Context, actor domain.Actor, id int64, req DesignRequest) (*domain.Design, error) {
	if err := policy.Check(actor, policy.Design, policy.Update); err != nil {
		return nil, err
	}
	if err := domain.CheckMoney(req.Price); err != nil {
		return nil, priceErrors[err]
	}

	d, err := s.GetDesign(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.DesignerID != actor.UserID {
		return nil, ErrNotDesignOwner
	}

	d.Title = strings.TrimSpace(req.Title)
	d.Description = req.Description
	d.Features = req.Features
	d.Price = req.Price
	d.ImageURL = strings.TrimSpace(req.ImageURL)

	if err := s.designs.Update(ctx, d); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("update design: %w", err)
	}
	return s.GetDesign(ctx, id)
}

// DeleteDesign removes the design along with its bookings, payments and thread.
// Admins may delete any design.
func (s *Service) DeleteDesign(ctx context.Context, actor domain.Actor, id int64) error {
	if err := policy.Check(actor, policy.Design, policy.Delete); err != nil {
		return err
	}

	d, err := s.GetDesign(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Is(domain.RoleAdmin) && d.DesignerID != actor.UserID {
		return ErrNotDesignOwner
	}

	if err := s.designs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDesignNotFound
		}
		return fmt.Errorf("delete design: %w", err)
	}

	logger.FromContext(ctx).Info("design deleted", "design_id", id, "by", actor.UserID)
	return nil
}

func (s *Service) GetDesigner(ctx context.Context, userID int64) (*domain.DesignerProfile, error) {
	p, err := s.designers.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignerNotFound
		}
		return nil, fmt.Errorf("load designer: %w", err)
	}
	return p, nil
}

func (s *Service) UpdateMyProfile(ctx context.Context, actor domain.Actor, req UpdateProfileRequest) (*domain.DesignerProfile, error) {
	if err := policy.Check(actor, policy.DesignerProfile, policy.Update); err != nil {
		return nil, err
	}

	err := s.designers.UpsertProfile(ctx, &domain.DesignerProfile{
		UserID:      actor.UserID,
		Bio:         strings.TrimSpace(req.Bio),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		CompanyName: strings.TrimSpace(req.CompanyName),
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.GetDesigner(ctx, actor.UserID)
}
