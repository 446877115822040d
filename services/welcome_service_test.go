package services

import (
	"context"
	"log/slog"
	"testing"

	"message-hub/domain"
	"message-hub/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWelcomeService_PostsAsGreeter(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	messages := mocks.NewMockIMessageService(ctrl)

	messages.EXPECT().PostPrivateMessage(gomock.Any(),
		domain.PostPrivateMessageCommand{User: "newcomer", Text: "hello there"},
		domain.Sender{User: "greeter"}).
		Return(domain.MessageID("priv_c-1_0000000001000"), nil)

	service := NewWelcomeService(slog.Default(), messages, "greeter", "hello there")
	req.NoError(service.OnRegisterComplete(context.Background(), "newcomer"))
}

func TestWelcomeService_DisabledWithoutGreeter(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	// No expectations: a disabled service must never post.
	messages := mocks.NewMockIMessageService(ctrl)

	service := NewWelcomeService(slog.Default(), messages, "", "hello there")
	req.False(service.Enabled())
	req.NoError(service.OnRegisterComplete(context.Background(), "newcomer"))
}
