// This file defines private conversations and the canonical ordering
// of their participants. Canonicalization is the correctness core of
// private messaging: both participants must converge on one record no
// matter who initiates.
package domain

// PrivateConversation links two participants. Slot 1 holds the
// participant with the smaller identity key, slot 2 the larger one.
// Each slot is exactly one of a user reference or a public session
// info reference; mixed pairs are allowed.
type PrivateConversation struct {
	ID       string `json:"id"`
	User1    string `json:"user1,omitempty"`
	User2    string `json:"user2,omitempty"`
	Session1 string `json:"session1,omitempty"`
	Session2 string `json:"session2,omitempty"`
}

func (c PrivateConversation) Channel() Channel {
	return Channel{ToType: ToTypePrivate, ToID: c.ID}
}

// IsFirst reports whether the participant occupies slot 1.
func (c PrivateConversation) IsFirst(p Identity) bool {
	if p.IsUser() {
		return c.User1 == p.ID
	}
	return c.Session1 == p.ID
}

// Participants recovers the canonical pair from the stored slots.
func (c PrivateConversation) Participants() CanonicalPair {
	return CanonicalPair{First: slotIdentity(c.User1, c.Session1), Second: slotIdentity(c.User2, c.Session2)}
}

func slotIdentity(user, session string) Identity {
	if user != "" {
		return UserIdentity(user)
	}
	return SessionIdentity(session)
}

// CanonicalPair is the deterministic, order-independent assignment of
// two participants to slot 1 and slot 2.
type CanonicalPair struct {
	First  Identity
	Second Identity
}

// CanonicalParticipants maps an unordered pair of participants to its
// canonical pair. Resolving (a, b) and (b, a) yields the identical
// result; ties cannot occur because identity keys are unique.
func CanonicalParticipants(me, other Identity) CanonicalPair {
	if me.Key() < other.Key() {
		return CanonicalPair{First: me, Second: other}
	}
	return CanonicalPair{First: other, Second: me}
}

// IndexSpace selects one of the four conversation index spaces based
// on the slot kinds. All four live in the same index family, so a pair
// stored under one combination is found however a later query phrases
// it.
func (p CanonicalPair) IndexSpace() string {
	switch {
	case p.First.IsUser() && p.Second.IsUser():
		return "uu"
	case p.First.IsUser():
		return "us"
	case p.Second.IsUser():
		return "su"
	default:
		return "ss"
	}
}

// Conversation materializes a conversation record for this pair under
// the given id.
func (p CanonicalPair) Conversation(id string) PrivateConversation {
	c := PrivateConversation{ID: id}
	if p.First.IsUser() {
		c.User1 = p.First.ID
	} else {
		c.Session1 = p.First.ID
	}
	if p.Second.IsUser() {
		c.User2 = p.Second.ID
	} else {
		c.Session2 = p.Second.ID
	}
	return c
}
