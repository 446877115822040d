package repositories

import (
	"log/slog"
	"testing"
	"time"

	"message-hub/domain"
	"message-hub/errors"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func storedMessage(channel domain.Channel, millis int64, text string) domain.Message {
	at := time.UnixMilli(millis).UTC()
	return domain.Message{
		ID:        domain.NewMessageID(channel, at),
		ToType:    channel.ToType,
		ToID:      channel.ToID,
		User:      "alice",
		Text:      text,
		Timestamp: at,
	}
}

func TestMessageRepository_StoreAndGet(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(testDB(t), slog.Default())
	message := storedMessage(domain.Channel{ToType: "grp", ToID: "7"}, 1_000, "hello")

	req.NoError(repository.StoreMessage(message))

	fetched, err := repository.GetMessage(message.ID)
	req.NoError(err)
	req.Equal(message, fetched)
}

func TestMessageRepository_GetMissing(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(testDB(t), slog.Default())

	_, err := repository.GetMessage("grp_7_0000000001000")
	req.ErrorIs(err, errors.ErrMessageNotFound)
}

func TestMessageRepository_RangeDefaults(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(testDB(t), slog.Default())
	channel := domain.Channel{ToType: "grp", ToID: "7"}
	other := domain.Channel{ToType: "grp", ToID: "8"}

	for i := int64(0); i < 5; i++ {
		req.NoError(repository.StoreMessage(storedMessage(channel, 1_000+i, "in range")))
	}
	// A neighbour channel must never leak into the scan.
	req.NoError(repository.StoreMessage(storedMessage(other, 1_000, "other channel")))

	messages, err := repository.RangeMessages(MessageRange{ToType: "grp", ToID: "7"})
	req.NoError(err)
	req.Len(messages, 5)
	texts := lo.Map(messages, func(m domain.Message, _ int) string { return m.Text })
	req.NotContains(texts, "other channel")
	// Ascending id order.
	for i := 1; i < len(messages); i++ {
		req.Less(string(messages[i-1].ID), string(messages[i].ID))
	}
}

func TestMessageRepository_RangeBounds(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(testDB(t), slog.Default())
	channel := domain.Channel{ToType: "grp", ToID: "7"}

	ids := make([]domain.MessageID, 0, 5)
	for i := int64(0); i < 5; i++ {
		message := storedMessage(channel, 1_000+i, "bounded")
		ids = append(ids, message.ID)
		req.NoError(repository.StoreMessage(message))
	}

	// gt excludes its bound, lte includes it.
	messages, err := repository.RangeMessages(MessageRange{
		ToType: "grp", ToID: "7",
		GT:  string(ids[0]),
		LTE: string(ids[3]),
	})
	req.NoError(err)
	req.Len(messages, 3)
	req.Equal(ids[1], messages[0].ID)
	req.Equal(ids[3], messages[2].ID)

	// gte and lt flip the inclusivity.
	messages, err = repository.RangeMessages(MessageRange{
		ToType: "grp", ToID: "7",
		GTE: string(ids[1]),
		LT:  string(ids[3]),
	})
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(ids[1], messages[0].ID)
	req.Equal(ids[2], messages[1].ID)
}

func TestMessageRepository_RangeReanchorsForeignBounds(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(testDB(t), slog.Default())
	channel := domain.Channel{ToType: "priv", ToID: "42"}

	ids := make([]domain.MessageID, 0, 3)
	for i := int64(0); i < 3; i++ {
		message := storedMessage(channel, 2_000+i, "anchored")
		ids = append(ids, message.ID)
		req.NoError(repository.StoreMessage(message))
	}

	// A bound copied from another channel keeps only its timestamp
	// part; the queried channel supplies the prefix.
	foreign := domain.NewMessageID(domain.Channel{ToType: "priv", ToID: "99"}, time.UnixMilli(2_000).UTC())
	messages, err := repository.RangeMessages(MessageRange{
		ToType: "priv", ToID: "42",
		GT: string(foreign),
	})
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(ids[1], messages[0].ID)
}

func TestMessageRepository_RangeReverseAndLimit(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(testDB(t), slog.Default())
	channel := domain.Channel{ToType: "grp", ToID: "7"}

	ids := make([]domain.MessageID, 0, 5)
	for i := int64(0); i < 5; i++ {
		message := storedMessage(channel, 3_000+i, "latest first")
		ids = append(ids, message.ID)
		req.NoError(repository.StoreMessage(message))
	}

	messages, err := repository.RangeMessages(MessageRange{
		ToType: "grp", ToID: "7",
		Reverse: true,
		Limit:   2,
	})
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(ids[4], messages[0].ID)
	req.Equal(ids[3], messages[1].ID)
}

func TestMessageRepository_RangeReverseExcludesUpperBound(t *testing.T) {
	req := require.New(t)
	repository := NewMessageRepository(testDB(t), slog.Default())
	channel := domain.Channel{ToType: "grp", ToID: "7"}

	ids := make([]domain.MessageID, 0, 3)
	for i := int64(0); i < 3; i++ {
		message := storedMessage(channel, 4_000+i, "paging back")
		ids = append(ids, message.ID)
		req.NoError(repository.StoreMessage(message))
	}

	messages, err := repository.RangeMessages(MessageRange{
		ToType: "grp", ToID: "7",
		LT:      string(ids[2]),
		Reverse: true,
	})
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal(ids[1], messages[0].ID)
	req.Equal(ids[0], messages[1].ID)
}
