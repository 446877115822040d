//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"strings"
	"time"

	"message-hub/domain"
	"message-hub/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const (
	msgPrefix = "msg:"

	// DefaultLimit bounds range queries when the caller supplies none.
	DefaultLimit = 100
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessage(id domain.MessageID) (domain.Message, error)
	RangeMessages(query MessageRange) ([]domain.Message, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// MessageRange describes an id-ordered range query over one channel.
// Bounds are message ids or id fragments: whatever channel prefix a
// caller supplies in a bound is discarded and the bound is re-anchored
// to the queried channel.
type MessageRange struct {
	ToType  string
	ToID    string
	GT      string
	LT      string
	GTE     string
	LTE     string
	Limit   int
	Reverse bool
}

// diskMessage is the stored representation of a message.
type diskMessage struct {
	ID        string    `json:"id"`
	ToType    string    `json:"toType"`
	ToID      string    `json:"toId"`
	User      string    `json:"user,omitempty"`
	Session   string    `json:"session,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// StoreMessage persists a message under its own id. The key embeds the
// channel id followed by the 13-digit padded sequenced timestamp, so a
// prefix scan over "msg:{channelId}_" yields the channel's messages in
// time order.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	key := msgPrefix + string(message.ID)
	raw, err := json.Marshal(fromMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}

func (m MessageRepository) GetMessage(id domain.MessageID) (domain.Message, error) {
	var raw []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(msgPrefix + string(id)))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, errors.ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	var dm diskMessage
	if err = json.Unmarshal(raw, &dm); err != nil {
		return domain.Message{}, err
	}
	return toMessage(dm), nil
}

// RangeMessages scans the channel's key prefix between the re-anchored
// bounds. Defaults follow the view contract: everything in the channel,
// at most DefaultLimit entries, ascending id order unless Reverse.
func (m MessageRepository) RangeMessages(query MessageRange) ([]domain.Message, error) {
	prefix := []byte(msgPrefix + domain.Channel{ToType: query.ToType, ToID: query.ToID}.ID() + "_")
	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	lower, lowerExclusive := lowerBound(prefix, query)
	upper, upperExclusive := upperBound(prefix, query)

	var raws [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = query.Reverse
		it := txn.NewIterator(options)
		defer it.Close()

		var seek, skip []byte
		if query.Reverse {
			// Reverse seek lands on the largest key <= seek.
			seek = upper
			if seek == nil {
				seek = append(bytes.Clone(prefix), 0xff, 0xff, 0xff, 0xff)
			}
			if upperExclusive {
				skip = upper
			}
		} else {
			seek = lower
			if seek == nil {
				seek = prefix
			}
			if lowerExclusive {
				skip = lower
			}
		}

		it.Seek(seek)
		if skip != nil && it.ValidForPrefix(prefix) && bytes.Equal(it.Item().Key(), skip) {
			it.Next()
		}
		for ; it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			if query.Reverse {
				if outOfLower(key, lower, lowerExclusive) {
					break
				}
			} else if outOfUpper(key, upper, upperExclusive) {
				break
			}
			if len(raws) == limit {
				break
			}
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			raws = append(raws, value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	diskMessages := make([]diskMessage, 0, len(raws))
	for _, raw := range raws {
		var dm diskMessage
		if err = json.Unmarshal(raw, &dm); err != nil {
			return nil, err
		}
		diskMessages = append(diskMessages, dm)
	}
	return lo.Map(diskMessages, func(dm diskMessage, _ int) domain.Message {
		return toMessage(dm)
	}), nil
}

func outOfUpper(key, upper []byte, exclusive bool) bool {
	if upper == nil {
		return false
	}
	cmp := bytes.Compare(key, upper)
	return cmp > 0 || (cmp == 0 && exclusive)
}

func outOfLower(key, lower []byte, exclusive bool) bool {
	if lower == nil {
		return false
	}
	cmp := bytes.Compare(key, lower)
	return cmp < 0 || (cmp == 0 && exclusive)
}

func lowerBound(prefix []byte, query MessageRange) (key []byte, exclusive bool) {
	if query.GT != "" {
		return anchored(prefix, query.GT), true
	}
	if query.GTE != "" {
		return anchored(prefix, query.GTE), false
	}
	return nil, false
}

func upperBound(prefix []byte, query MessageRange) (key []byte, exclusive bool) {
	if query.LT != "" {
		return anchored(prefix, query.LT), true
	}
	if query.LTE != "" {
		return anchored(prefix, query.LTE), false
	}
	return nil, false
}

// anchored rebuilds a bound against the current channel: only the
// portion after the last separator of the supplied value is kept.
func anchored(prefix []byte, bound string) []byte {
	if i := strings.LastIndex(bound, "_"); i >= 0 {
		bound = bound[i+1:]
	}
	return append(bytes.Clone(prefix), bound...)
}

func fromMessage(message domain.Message) diskMessage {
	return diskMessage{
		ID:        string(message.ID),
		ToType:    message.ToType,
		ToID:      message.ToID,
		User:      message.User,
		Session:   message.Session,
		Text:      message.Text,
		Timestamp: message.Timestamp.UTC(),
	}
}

func toMessage(dm diskMessage) domain.Message {
	return domain.Message{
		ID:        domain.MessageID(dm.ID),
		ToType:    dm.ToType,
		ToID:      dm.ToID,
		User:      dm.User,
		Session:   dm.Session,
		Text:      dm.Text,
		Timestamp: dm.Timestamp.UTC(),
	}
}
