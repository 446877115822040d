// Package event defines the persisted, replayable domain events of
// the messaging service. Event names keep the wire taxonomy of the
// event log.
package event

import (
	"message-hub/domain"
)

type DomainEvent interface {
	// Name is the envelope type tag used in the event log.
	Name() string
	Channel() domain.Channel
}

// MessageCreated is the authoritative creation record of a message.
type MessageCreated struct {
	Message domain.MessageID `json:"message"`
	Data    domain.Message   `json:"data"`
}

func (e MessageCreated) Name() string { return "MessageCreated" }

func (e MessageCreated) Channel() domain.Channel { return e.Data.Channel() }

// PrivateConversationCreated is the authoritative creation record of a
// conversation. The queryable record is a deterministic projection of
// this event.
type PrivateConversationCreated struct {
	Conversation string `json:"conversation"`
	User1        string `json:"user1,omitempty"`
	User2        string `json:"user2,omitempty"`
	Session1     string `json:"session1,omitempty"`
	Session2     string `json:"session2,omitempty"`
}

func (e PrivateConversationCreated) Name() string { return "privateConversationCreated" }

func (e PrivateConversationCreated) Channel() domain.Channel {
	return domain.Channel{ToType: domain.ToTypePrivate, ToID: e.Conversation}
}

// ReadHistoryEvent is the downstream notification trigger raised after
// fan-out. EventID carries the message id so the consumer can
// re-derive the range to summarize.
type ReadHistoryEvent struct {
	FromUser    string           `json:"fromUser,omitempty"`
	ToUsers     []string         `json:"toUsers"`
	FromSession string           `json:"fromSession,omitempty"`
	ToSessions  []string         `json:"toSessions"`
	ToType      string           `json:"toType"`
	ToID        string           `json:"toId"`
	EventID     domain.MessageID `json:"eventId"`
}

func (e ReadHistoryEvent) Name() string { return "readHistoryEvent" }

func (e ReadHistoryEvent) Channel() domain.Channel {
	return domain.Channel{ToType: e.ToType, ToID: e.ToID}
}
