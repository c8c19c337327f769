package services

import (
	"context"
	"errors"

	"github.com/alnoor/community-platform/internal/model"
	"github.com/alnoor/community-platform/internal/repository"
)

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) (*model.Message, error)
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.MessageStatus) error
	List(ctx context.Context, f model.MessageFilter) ([]*model.Message, int64, error)
}

type MessageService struct {
	repo MessageRepository
}

func NewMessageService(repo MessageRepository) *MessageService {
	return &MessageService{repo: repo}
}

func (s *MessageService) Create(ctx context.Context, p model.MessageCreateRequest) (*model.Message, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m := &model.Message{
		Name:    p.Name,
		Email:   p.Email,
		Subject: p.Subject,
		Body:    p.Body,
		Status:  model.MessageStatusUnread,
	}
	return s.repo.Create(ctx, m)
}

// MarkRead and MarkReplied only ever move the message forward. Replying to an
// unread message is allowed and skips the read state.
func (s *MessageService) MarkRead(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.MessageStatusRead)
}

func (s *MessageService) MarkReplied(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.MessageStatusReplied)
}

func (s *MessageService) transition(ctx context.Context, id int64, to model.MessageStatus) error {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrNotFound
		}
		return err
	}
	err = s.repo.UpdateStatus(ctx, id, m.Status, to)
	if errors.Is(err, repository.ErrMessageNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *MessageService) Get(ctx context.Context, id int64) (*model.Message, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrMessageNotFound) {
		return nil, ErrNotFound
	}
	return m, err
}

func (s *MessageService) List(ctx context.Context, f model.MessageFilter) ([]*model.Message, int64, error) {
	return s.repo.List(ctx, f)
}
