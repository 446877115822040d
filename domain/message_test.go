package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessageID_RoundTrip(t *testing.T) {
	req := require.New(t)
	channel := Channel{ToType: "grp", ToID: "7"}
	at := time.UnixMilli(1_700_000_000_000).UTC()

	// The sequenced part always renders at 13 digits: a small value
	// like 1000 becomes 0000000001000 rather than a bare 1000, so ids
	// in a channel sort bytewise in time order.
	req.Equal(MessageID("grp_7_0000000001000"), NewMessageID(channel, time.UnixMilli(1_000).UTC()))

	id := NewMessageID(channel, at)
	req.Equal(MessageID("grp_7_1700000000000"), id)

	parsed, sequenced, err := ParseMessageID(id)
	req.NoError(err)
	req.Equal(channel, parsed)
	req.Equal("1700000000000", sequenced)
}

func TestParseMessageID_ToIDMayContainSeparators(t *testing.T) {
	req := require.New(t)
	channel, sequenced, err := ParseMessageID("priv_ab_cd_1700000000000")
	req.NoError(err)
	req.Equal(Channel{ToType: "priv", ToID: "ab_cd"}, channel)
	req.Equal("1700000000000", sequenced)
}

func TestParseMessageID_Malformed(t *testing.T) {
	req := require.New(t)
	_, _, err := ParseMessageID("nounderscore")
	req.Error(err)
	_, _, err = ParseMessageID("grp_only")
	req.Error(err)
}

func TestFormatSequencedTime_SortsLexicographically(t *testing.T) {
	req := require.New(t)
	earlier := FormatSequencedTime(time.UnixMilli(999))
	later := FormatSequencedTime(time.UnixMilli(1_000))

	req.Len(earlier, 13)
	req.Less(earlier, later)
}

func TestMessage_Sender(t *testing.T) {
	req := require.New(t)
	req.Equal(UserIdentity("zoe"), Message{User: "zoe"}.Sender())
	req.Equal(SessionIdentity("psi-1"), Message{Session: "psi-1"}.Sender())
}
