package services

import (
	"context"
	"log/slog"

	"message-hub/domain"
)

// WelcomeService greets newly registered users with a private message
// from a configured greeter account. An empty greeter disables the
// feature.
type WelcomeService struct {
	log      *slog.Logger
	messages IMessageService
	greeter  string
	text     string
}

func NewWelcomeService(log *slog.Logger, messages IMessageService, greeter, text string) *WelcomeService {
	return &WelcomeService{log: log, messages: messages, greeter: greeter, text: text}
}

func (s *WelcomeService) Enabled() bool { return s.greeter != "" && s.text != "" }

// OnRegisterComplete creates the greeter's conversation with the new
// user and posts the welcome message. Fan-out then notifies the user
// the same way as any other private message.
func (s *WelcomeService) OnRegisterComplete(ctx context.Context, user string) error {
	if !s.Enabled() {
		return nil
	}
	cmd := domain.PostPrivateMessageCommand{User: user, Text: s.text}
	id, err := s.messages.PostPrivateMessage(ctx, cmd, domain.Sender{User: s.greeter})
	if err != nil {
		return err
	}
	s.log.Info("Welcome message posted", "user", user, "message", id)
	return nil
}
