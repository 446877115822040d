// Package conversation implements get-or-create semantics over
// private conversation records keyed by their canonical participant
// pair.
package conversation

import (
	"context"
	stderrors "errors"
	"log/slog"

	"message-hub/contract"
	"message-hub/domain"
	"message-hub/domain/event"
	"message-hub/errors"
	"message-hub/repositories"
)

type IStore interface {
	Get(ctx context.Context, id string) (domain.PrivateConversation, error)
	Lookup(ctx context.Context, pair domain.CanonicalPair) (domain.PrivateConversation, bool, error)
	GetOrCreate(ctx context.Context, pair domain.CanonicalPair) (domain.PrivateConversation, error)
	CheckPrivAccess(ctx context.Context, id string, sender domain.Sender) (bool, error)
}

type Store struct {
	log           *slog.Logger
	conversations repositories.IConversationRepository
	events        repositories.IEventLog
	ids           contract.IDGenerator
	access        contract.AccessControl
}

func NewStore(log *slog.Logger, conversations repositories.IConversationRepository,
	events repositories.IEventLog, ids contract.IDGenerator, access contract.AccessControl) *Store {
	return &Store{
		log:           log,
		conversations: conversations,
		events:        events,
		ids:           ids,
		access:        access,
	}
}

func (s *Store) Get(ctx context.Context, id string) (domain.PrivateConversation, error) {
	if err := ctx.Err(); err != nil {
		return domain.PrivateConversation{}, err
	}
	return s.conversations.Get(id)
}

// Lookup resolves a canonical pair without creating anything.
func (s *Store) Lookup(ctx context.Context, pair domain.CanonicalPair) (domain.PrivateConversation, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.PrivateConversation{}, false, err
	}
	return s.conversations.GetByParticipants(pair)
}

// GetOrCreate returns the single conversation for the pair, creating
// it lazily on first contact. The creation event is appended to the
// log before the record is materialized: the event is the source of
// truth and the record its deterministic projection.
//
// Two concurrent first contacts are not mutually excluded here. Both
// may append a creation event; their records overwrite the same index
// key, so later lookups converge on the last writer's id and the
// losing event stays in the log unreferenced.
func (s *Store) GetOrCreate(ctx context.Context, pair domain.CanonicalPair) (domain.PrivateConversation, error) {
	if pair.First.IsZero() || pair.Second.IsZero() {
		return domain.PrivateConversation{}, errors.ErrMalformedParticipant
	}
	existing, found, err := s.Lookup(ctx, pair)
	if err != nil {
		return domain.PrivateConversation{}, err
	}
	if found {
		return existing, nil
	}

	conversation := pair.Conversation(s.ids.NewID())
	created := event.PrivateConversationCreated{
		Conversation: conversation.ID,
		User1:        conversation.User1,
		User2:        conversation.User2,
		Session1:     conversation.Session1,
		Session2:     conversation.Session2,
	}
	if err = s.events.Append(created); err != nil {
		return domain.PrivateConversation{}, err
	}
	if err = s.conversations.Create(conversation); err != nil {
		return domain.PrivateConversation{}, err
	}
	s.log.Info("private conversation created", "conversation", conversation.ID)
	return conversation, nil
}

// CheckPrivAccess reports whether the sender occupies one of the two
// slots of the conversation. Anonymous senders are compared through
// their public session info.
func (s *Store) CheckPrivAccess(ctx context.Context, id string, sender domain.Sender) (bool, error) {
	conversation, err := s.Get(ctx, id)
	if stderrors.Is(err, errors.ErrConversationNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if sender.Authenticated() {
		return conversation.User1 == sender.User || conversation.User2 == sender.User, nil
	}
	info, err := s.access.ResolvePublicSessionInfo(ctx, sender.Session)
	if err != nil {
		return false, err
	}
	return conversation.Session1 == info.ID || conversation.Session2 == info.ID, nil
}
