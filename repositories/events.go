//go:generate go run go.uber.org/mock/mockgen -source=events.go -destination=../mocks/mock_event_log.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"message-hub/domain/event"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const evtPrefix = "evt:"

// IEventLog is the persisted, replayable record of everything the
// service decided. Creation events are appended here before any
// queryable record is materialized; projections and direct readers
// therefore always agree on identifiers.
type IEventLog interface {
	Append(e event.DomainEvent) error
	All() ([]Envelope, error)
}

type EventLog struct {
	db  *badger.DB
	log *slog.Logger
}

func NewEventLog(db *badger.DB, log *slog.Logger) EventLog {
	return EventLog{db: db, log: log}
}

type Envelope struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	At   time.Time       `json:"at"`
	Data json.RawMessage `json:"data"`
}

// Decode rebuilds the typed event from the envelope.
func (e Envelope) Decode() (event.DomainEvent, error) {
	switch e.Type {
	case event.MessageCreated{}.Name():
		var evt event.MessageCreated
		err := json.Unmarshal(e.Data, &evt)
		return evt, err
	case event.PrivateConversationCreated{}.Name():
		var evt event.PrivateConversationCreated
		err := json.Unmarshal(e.Data, &evt)
		return evt, err
	case event.ReadHistoryEvent{}.Name():
		var evt event.ReadHistoryEvent
		err := json.Unmarshal(e.Data, &evt)
		return evt, err
	}
	return nil, fmt.Errorf("unknown event type %q", e.Type)
}

// Append stores the event in append order. The key is formatted as
// "evt:{nanos_padded}:{uuid}" so 19-digit zero padding keeps the log
// sorted and the uuid disambiguates same-nanosecond appends.
func (l EventLog) Append(e event.DomainEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	envelope := Envelope{
		ID:   uuid.NewString(),
		Type: e.Name(),
		At:   time.Now().UTC(),
		Data: data,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s%019d:%s", evtPrefix, envelope.At.UnixNano(), envelope.ID)
	return l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}

// All replays the log in append order.
func (l EventLog) All() ([]Envelope, error) {
	var envelopes []Envelope
	err := l.db.View(func(txn *badger.Txn) error {
		prefix := []byte(evtPrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				var envelope Envelope
				if err := json.Unmarshal(value, &envelope); err != nil {
					return err
				}
				envelopes = append(envelopes, envelope)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return envelopes, err
}
