package repositories

import (
	"log/slog"
	"testing"

	"message-hub/domain/event"

	"github.com/stretchr/testify/require"
)

func TestEventLog_AppendOrderAndDecode(t *testing.T) {
	req := require.New(t)
	log := NewEventLog(testDB(t), slog.Default())

	created := event.PrivateConversationCreated{Conversation: "c-1", User1: "alice", User2: "bob"}
	trigger := event.ReadHistoryEvent{
		FromUser: "alice", ToUsers: []string{"bob"},
		ToSessions: []string{},
		ToType:     "priv", ToID: "c-1", EventID: "priv_c-1_0000000001000",
	}
	req.NoError(log.Append(created))
	req.NoError(log.Append(trigger))

	envelopes, err := log.All()
	req.NoError(err)
	req.Len(envelopes, 2)
	req.Equal(created.Name(), envelopes[0].Type)
	req.Equal(trigger.Name(), envelopes[1].Type)

	decoded, err := envelopes[0].Decode()
	req.NoError(err)
	req.Equal(created, decoded)

	decoded, err = envelopes[1].Decode()
	req.NoError(err)
	req.Equal(trigger, decoded)
}

func TestEnvelope_DecodeUnknownType(t *testing.T) {
	req := require.New(t)
	_, err := Envelope{Type: "somethingElse"}.Decode()
	req.Error(err)
}
