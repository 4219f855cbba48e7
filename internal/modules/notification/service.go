package notification

import (
	"context"
	"errors"
	"fmt"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/utils"
	"designmarket/internal/policy"
	"designmarket/internal/repository"
)

// Service exposes the caller's own inbox. Notifications are written by the
// booking workflow, never through this service.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetUserNotifications(ctx context.Context, actor domain.Actor, page utils.Page) ([]domain.Notification, int64, error) {
	if err := policy.Check(actor, policy.Notification, policy.List); err != nil {
		return nil, 0, err
	}

	list, err := s.repo.ListByUser(ctx, actor.UserID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	unread, err := s.repo.CountUnread(ctx, actor.UserID)
	if err != nil {
		return nil, 0, fmt.Errorf("count unread: %w", err)
	}
	return list, unread, nil
}

func (s *Service) UnreadCount(ctx context.Context, actor domain.Actor) (int64, error) {
	if err := policy.Check(actor, policy.Notification, policy.List); err != nil {
		return 0, err
	}
	return s.repo.CountUnread(ctx, actor.UserID)
}

// MarkAsRead reports notifications of other users as missing.
func (s *Service) MarkAsRead(ctx context.Context, actor domain.Actor, id int64) error {
	if err := policy.Check(actor, policy.Notification, policy.Update); err != nil {
		return err
	}

	if err := s.repo.MarkAsRead(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *Service) MarkAllAsRead(ctx context.Context, actor domain.Actor) (int64, error) {
	if err := policy.Check(actor, policy.Notification, policy.Update); err != nil {
		return 0, err
	}
	return s.repo.MarkAllAsRead(ctx, actor.UserID)
}
