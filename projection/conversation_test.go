package projection

import (
	"context"
	"log/slog"
	"testing"

	"message-hub/domain"
	"message-hub/domain/event"
	"message-hub/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConversations_AppliesCreationEvents(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repository := mocks.NewMockIConversationRepository(ctrl)

	repository.EXPECT().Create(domain.PrivateConversation{
		ID: "c-1", User1: "alice", Session2: "psi-b",
	}).Return(nil).Times(1)

	projection := NewConversations(repository, slog.Default())
	err := projection.Consume(context.Background(), event.PrivateConversationCreated{
		Conversation: "c-1", User1: "alice", Session2: "psi-b",
	})
	req.NoError(err)
}

func TestConversations_IgnoresOtherEvents(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repository := mocks.NewMockIConversationRepository(ctrl)

	projection := NewConversations(repository, slog.Default())
	err := projection.Consume(context.Background(), event.MessageCreated{})
	req.NoError(err)
}
