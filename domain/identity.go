// Package domain contains core concepts of the messaging system.
// This file defines participant identities.
// A participant is exactly one of an authenticated user or an
// anonymous session, never both.
package domain

type IdentityKind int

const (
	KindUser IdentityKind = iota + 1
	KindSession
)

// Identity is a tagged reference to a participant. The ID is an opaque
// string: a user id for KindUser, a public session info id for
// KindSession.
type Identity struct {
	Kind IdentityKind
	ID   string
}

func UserIdentity(id string) Identity {
	return Identity{Kind: KindUser, ID: id}
}

func SessionIdentity(id string) Identity {
	return Identity{Kind: KindSession, ID: id}
}

func (i Identity) IsUser() bool { return i.Kind == KindUser }

func (i Identity) IsZero() bool { return i.ID == "" || i.Kind == 0 }

// Key is the comparison key used by the canonical ordering.
// Identity ids are unique across kinds, so the raw id suffices.
func (i Identity) Key() string { return i.ID }
