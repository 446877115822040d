//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"message-hub/domain"
	"message-hub/errors"

	"github.com/dgraph-io/badger/v4"
)

const (
	convPrefix    = "conv:"
	convIdxPrefix = "convidx:"
)

type IConversationRepository interface {
	Get(id string) (domain.PrivateConversation, error)
	GetByParticipants(pair domain.CanonicalPair) (domain.PrivateConversation, bool, error)
	Create(conversation domain.PrivateConversation) error
}

type ConversationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewConversationRepository(db *badger.DB, log *slog.Logger) ConversationRepository {
	return ConversationRepository{db: db, log: log}
}

type diskConversation struct {
	ID       string `json:"id"`
	User1    string `json:"user1,omitempty"`
	User2    string `json:"user2,omitempty"`
	Session1 string `json:"session1,omitempty"`
	Session2 string `json:"session2,omitempty"`
}

// indexKey places the pair in one of the four index spaces of the
// convidx family. Lookups always go through the same family, so the
// record is found however the pair is phrased.
func indexKey(pair domain.CanonicalPair) []byte {
	return []byte(convIdxPrefix + pair.IndexSpace() + ":" + pair.First.ID + ":" + pair.Second.ID)
}

// Create materializes a conversation record and its participant index
// entry in one transaction. Concurrent creations for the same pair
// overwrite the same index key, so the index converges on a single id.
func (c ConversationRepository) Create(conversation domain.PrivateConversation) error {
	raw, err := json.Marshal(fromConversation(conversation))
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(convPrefix+conversation.ID), raw); err != nil {
			return err
		}
		return txn.Set(indexKey(conversation.Participants()), []byte(conversation.ID))
	})
}

func (c ConversationRepository) Get(id string) (domain.PrivateConversation, error) {
	var raw []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(convPrefix + id))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.PrivateConversation{}, errors.ErrConversationNotFound
	}
	if err != nil {
		return domain.PrivateConversation{}, err
	}
	var dc diskConversation
	if err = json.Unmarshal(raw, &dc); err != nil {
		return domain.PrivateConversation{}, err
	}
	return toConversation(dc), nil
}

// GetByParticipants resolves the canonical pair through the index.
// Absence is not an error: it is the get-or-create trigger.
func (c ConversationRepository) GetByParticipants(pair domain.CanonicalPair) (domain.PrivateConversation, bool, error) {
	var id []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(indexKey(pair))
		if err != nil {
			return err
		}
		id, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.PrivateConversation{}, false, nil
	}
	if err != nil {
		return domain.PrivateConversation{}, false, err
	}
	conversation, err := c.Get(string(id))
	if err != nil {
		return domain.PrivateConversation{}, false, err
	}
	return conversation, true, nil
}

func fromConversation(conversation domain.PrivateConversation) diskConversation {
	return diskConversation{
		ID:       conversation.ID,
		User1:    conversation.User1,
		User2:    conversation.User2,
		Session1: conversation.Session1,
		Session2: conversation.Session2,
	}
}

func toConversation(dc diskConversation) domain.PrivateConversation {
	return domain.PrivateConversation{
		ID:       dc.ID,
		User1:    dc.User1,
		User2:    dc.User2,
		Session1: dc.Session1,
		Session2: dc.Session2,
	}
}
