//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"

	"message-hub/domain"
	"message-hub/repositories"
	"message-hub/runtime"
)

type IMessageService interface {
	PostMessage(ctx context.Context, cmd domain.PostMessageCommand, sender domain.Sender) (domain.MessageID, error)
	PostPrivateMessage(ctx context.Context, cmd domain.PostPrivateMessageCommand, sender domain.Sender) (domain.MessageID, error)
	GetOrCreateConversation(ctx context.Context, sender domain.Sender, other domain.Identity) (domain.PrivateConversation, error)
	LookupConversation(ctx context.Context, sender domain.Sender, other domain.Identity) (domain.PrivateConversation, bool, error)
	GetConversation(ctx context.Context, id string) (domain.PrivateConversation, error)
	GetMessages(query repositories.MessageRange) ([]domain.Message, error)
	GetMessage(id domain.MessageID) (domain.Message, error)
	CheckPrivAccess(ctx context.Context, conversationID string, sender domain.Sender) (bool, error)
	CheckAccess(ctx context.Context, toType, toID string, roles []string, sender domain.Sender) (bool, error)
}

type MessageService struct {
	orchestrator *runtime.Orchestrator
}

func NewMessageService(o *runtime.Orchestrator) *MessageService {
	return &MessageService{orchestrator: o}
}

func (s *MessageService) PostMessage(ctx context.Context, cmd domain.PostMessageCommand, sender domain.Sender) (domain.MessageID, error) {
	return s.orchestrator.PostMessage(ctx, cmd, sender)
}

func (s *MessageService) PostPrivateMessage(ctx context.Context, cmd domain.PostPrivateMessageCommand, sender domain.Sender) (domain.MessageID, error) {
	return s.orchestrator.PostPrivateMessage(ctx, cmd, sender)
}

func (s *MessageService) GetOrCreateConversation(ctx context.Context, sender domain.Sender, other domain.Identity) (domain.PrivateConversation, error) {
	return s.orchestrator.GetOrCreateConversation(ctx, sender, other)
}

func (s *MessageService) LookupConversation(ctx context.Context, sender domain.Sender, other domain.Identity) (domain.PrivateConversation, bool, error) {
	return s.orchestrator.LookupConversation(ctx, sender, other)
}

func (s *MessageService) GetConversation(ctx context.Context, id string) (domain.PrivateConversation, error) {
	return s.orchestrator.GetConversation(ctx, id)
}

func (s *MessageService) GetMessages(query repositories.MessageRange) ([]domain.Message, error) {
	return s.orchestrator.GetMessages(query)
}

func (s *MessageService) GetMessage(id domain.MessageID) (domain.Message, error) {
	return s.orchestrator.GetMessage(id)
}

func (s *MessageService) CheckPrivAccess(ctx context.Context, conversationID string, sender domain.Sender) (bool, error) {
	return s.orchestrator.CheckPrivAccess(ctx, conversationID, sender)
}

func (s *MessageService) CheckAccess(ctx context.Context, toType, toID string, roles []string, sender domain.Sender) (bool, error) {
	return s.orchestrator.CheckAccess(ctx, toType, toID, roles, sender)
}
