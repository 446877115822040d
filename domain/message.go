// This file defines Message records and their identifiers.
// Messages are immutable once created.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// MessageID has the form {toType}_{toId}_{sequencedTimestamp}.
// Ids are globally unique and sort lexicographically by channel then
// time, which is what makes range-query pagination stable.
type MessageID string

// Message is an immutable chat record. Exactly one of User or Session
// identifies the sender: User carries an authenticated user id,
// Session the public session info id of an anonymous sender.
type Message struct {
	ID        MessageID `json:"id"`
	ToType    string    `json:"toType"`
	ToID      string    `json:"toId"`
	User      string    `json:"user,omitempty"`
	Session   string    `json:"session,omitempty"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

func (m Message) Channel() Channel {
	return Channel{ToType: m.ToType, ToID: m.ToID}
}

// Sender returns the tagged identity of the message author.
func (m Message) Sender() Identity {
	if m.User != "" {
		return UserIdentity(m.User)
	}
	return SessionIdentity(m.Session)
}

func NewMessageID(channel Channel, sequenced time.Time) MessageID {
	return MessageID(channel.ID() + "_" + FormatSequencedTime(sequenced))
}

// FormatSequencedTime renders an assigned timestamp as 13-digit
// zero-padded unix milliseconds so that ids within a channel sort
// lexicographically in time order.
func FormatSequencedTime(t time.Time) string {
	return fmt.Sprintf("%013d", t.UnixMilli())
}

// ParseMessageID splits an id into its channel and sequenced-time
// parts. The toId segment may itself contain separators; toType and
// the trailing timestamp may not.
func ParseMessageID(id MessageID) (Channel, string, error) {
	s := string(id)
	first := strings.Index(s, "_")
	last := strings.LastIndex(s, "_")
	if first < 0 || last <= first {
		return Channel{}, "", fmt.Errorf("malformed message id %q", id)
	}
	return Channel{ToType: s[:first], ToID: s[first+1 : last]}, s[last+1:], nil
}
