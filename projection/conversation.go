// Package projection materializes queryable records from observed
// events. It never emits events of its own.
package projection

import (
	"context"
	"log/slog"

	"message-hub/domain"
	"message-hub/domain/event"
	"message-hub/repositories"
)

// Conversations applies privateConversationCreated events to the
// conversation repository. Replaying the event log through this sink
// rebuilds the exact same records, making the log the single source of
// truth for conversation identifiers.
type Conversations struct {
	repository repositories.IConversationRepository
	log        *slog.Logger
}

func NewConversations(repository repositories.IConversationRepository, log *slog.Logger) Conversations {
	return Conversations{repository: repository, log: log}
}

func (p Conversations) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.PrivateConversationCreated:
		return p.repository.Create(domain.PrivateConversation{
			ID:       evt.Conversation,
			User1:    evt.User1,
			User2:    evt.User2,
			Session1: evt.Session1,
			Session2: evt.Session2,
		})
	}
	return nil
}
