package domain

// PostMessageCommand posts to an existing channel.
type PostMessageCommand struct {
	ToType string `json:"toType" validate:"required"`
	ToID   string `json:"toId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// PostPrivateMessageCommand posts to the other participant, creating
// the conversation on first contact. Exactly one of User or Session
// designates the recipient; Session is a public session info id.
type PostPrivateMessageCommand struct {
	User    string `json:"user,omitempty"`
	Session string `json:"session,omitempty"`
	Text    string `json:"text" validate:"required"`
}

// Other returns the recipient's tagged identity.
func (c PostPrivateMessageCommand) Other() Identity {
	if c.User != "" {
		return UserIdentity(c.User)
	}
	return SessionIdentity(c.Session)
}
