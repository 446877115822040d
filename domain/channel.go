package domain

// ToTypePrivate marks channels backed by a PrivateConversation.
// Any other toType is a group or role scoped destination.
const ToTypePrivate = "priv"

// Channel is a destination scope for messages.
type Channel struct {
	ToType string
	ToID   string
}

// ID is the channel part of every message id.
func (c Channel) ID() string { return c.ToType + "_" + c.ToID }

func (c Channel) Private() bool { return c.ToType == ToTypePrivate }
