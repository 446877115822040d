// This file mirrors the records owned by the access-control
// collaborator. They are read here, never written by the message flow.
package domain

// PublicSessionInfo is the public descriptor of an anonymous session.
// Messages and conversations reference its ID, never the raw session.
type PublicSessionInfo struct {
	ID      string
	Session string
}

// AccessRecord grants a destination its access configuration.
type AccessRecord struct {
	ID     string
	ToType string
	ToID   string
}

// SessionGrant is a session-level access grant tied to an AccessRecord.
type SessionGrant struct {
	Access     string
	Session    string
	PublicInfo string
	Roles      []string
}

// Membership is an authenticated user's membership in a destination.
type Membership struct {
	ToType string
	ToID   string
	User   string
	Role   string
}

// Sender identifies the author of a request: an authenticated user or
// an anonymous session, never both. Session holds the raw session id;
// the public descriptor is resolved during ingest.
type Sender struct {
	User    string
	Session string
}

func (s Sender) Authenticated() bool { return s.User != "" }

func (s Sender) Valid() bool {
	return (s.User == "") != (s.Session == "")
}
