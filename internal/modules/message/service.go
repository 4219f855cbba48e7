package message

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
	messages MessageRepository
	designs  DesignReader
	users    UserReader
}

func NewService(messages MessageRepository, designs DesignReader, users UserReader) *Service {
	return &Service{messages: messages, designs: designs, users: users}
}

// SendMessage posts into a design thread. The sender is always the caller.
// The receiver must be the design's designer or someone the caller already
// exchanged messages with about that design.
func (s *Service) SendMessage(ctx context.Context, actor domain.Actor, req SendMessageRequest) (*domain.Message, error) {
	if err := policy.Check(actor, policy.Message, policy.Create); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if req.ReceiverID == actor.UserID {
		return nil, ErrSelfMessage
	}

	design, err := s.designs.GetByID(ctx, req.DesignID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, fmt.Errorf("load design: %w", err)
	}

	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReceiverNotFound
		}
		return nil, fmt.Errorf("load receiver: %w", err)
	}

	if req.ReceiverID != design.DesignerID {
		ok, err := s.messages.HasThread(ctx, design.ID, actor.UserID, req.ReceiverID)
		if err != nil {
			return nil, fmt.Errorf("check thread: %w", err)
		}
		if !ok {
			return nil, ErrReceiverNotInThread
		}
	}

	m := &domain.Message{
		SenderID:   actor.UserID,
		ReceiverID: req.ReceiverID,
		DesignID:   design.ID,
		Content:    content,
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	logger.FromContext(ctx).Debug("message sent", "message_id", m.ID, "design_id", m.DesignID)
	return m, nil
}

func (s *Service) ListMessages(ctx context.Context, actor domain.Actor, designID int64, page utils.Page) ([]domain.Message, error) {
	if err := policy.Check(actor, policy.Message, policy.List); err != nil {
		return nil, err
	}
	return s.messages.ListForUser(ctx, actor.UserID, designID, page.Limit, page.Offset)
}

func (s *Service) MarkAsRead(ctx context.Context, actor domain.Actor, id int64) error {
	if err := policy.Check(actor, policy.Message, policy.Update); err != nil {
		return err
	}

	if err := s.messages.MarkAsRead(ctx, id, actor.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}
