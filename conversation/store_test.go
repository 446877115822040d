package conversation

import (
	"context"
	"log/slog"
	"testing"

	"message-hub/domain"
	"message-hub/domain/event"
	"message-hub/errors"
	"message-hub/mocks"
	"message-hub/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testStore(t *testing.T, ids *mocks.MockIDGenerator) (*Store, repositories.EventLog, *repositories.AccessRepository) {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.Default()
	events := repositories.NewEventLog(db, log)
	access := repositories.NewAccessRepository(db, log)
	store := NewStore(log, repositories.NewConversationRepository(db, log), events, ids, access)
	return store, events, access
}

func TestStore_GetOrCreateIsIdempotent(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ids := mocks.NewMockIDGenerator(ctrl)
	store, events, _ := testStore(t, ids)
	ctx := context.Background()

	// A single id is ever generated: the second call hits the index.
	ids.EXPECT().NewID().Return("c-1").Times(1)

	alice := domain.UserIdentity("alice")
	bob := domain.UserIdentity("bob")

	created, err := store.GetOrCreate(ctx, domain.CanonicalParticipants(alice, bob))
	req.NoError(err)
	req.Equal("c-1", created.ID)
	req.Equal("alice", created.User1)
	req.Equal("bob", created.User2)

	// Same pair phrased the other way around.
	again, err := store.GetOrCreate(ctx, domain.CanonicalParticipants(bob, alice))
	req.NoError(err)
	req.Equal(created, again)

	// Exactly one creation event was appended.
	envelopes, err := events.All()
	req.NoError(err)
	req.Len(envelopes, 1)
	decoded, err := envelopes[0].Decode()
	req.NoError(err)
	req.Equal(event.PrivateConversationCreated{
		Conversation: "c-1", User1: "alice", User2: "bob",
	}, decoded)
}

func TestStore_GetOrCreateRejectsMalformedPairs(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store, _, _ := testStore(t, mocks.NewMockIDGenerator(ctrl))

	pair := domain.CanonicalPair{First: domain.UserIdentity("alice")}
	_, err := store.GetOrCreate(context.Background(), pair)
	req.ErrorIs(err, errors.ErrMalformedParticipant)
}

func TestStore_LookupDoesNotCreate(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store, events, _ := testStore(t, mocks.NewMockIDGenerator(ctrl))

	pair := domain.CanonicalParticipants(domain.UserIdentity("alice"), domain.UserIdentity("bob"))
	_, found, err := store.Lookup(context.Background(), pair)
	req.NoError(err)
	req.False(found)

	envelopes, err := events.All()
	req.NoError(err)
	req.Empty(envelopes)
}

func TestStore_CheckPrivAccess(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ids := mocks.NewMockIDGenerator(ctrl)
	store, _, access := testStore(t, ids)
	ctx := context.Background()

	// An anonymous participant occupies a slot through its public
	// session info id, never the raw session id.
	info, err := access.ResolvePublicSessionInfo(ctx, "raw-session")
	req.NoError(err)

	ids.EXPECT().NewID().Return("c-1").Times(1)
	pair := domain.CanonicalParticipants(domain.UserIdentity("zoe"), domain.SessionIdentity(info.ID))
	_, err = store.GetOrCreate(ctx, pair)
	req.NoError(err)

	allowed, err := store.CheckPrivAccess(ctx, "c-1", domain.Sender{User: "zoe"})
	req.NoError(err)
	req.True(allowed)

	allowed, err = store.CheckPrivAccess(ctx, "c-1", domain.Sender{Session: "raw-session"})
	req.NoError(err)
	req.True(allowed)

	allowed, err = store.CheckPrivAccess(ctx, "c-1", domain.Sender{User: "mallory"})
	req.NoError(err)
	req.False(allowed)

	// A missing conversation denies rather than fails.
	allowed, err = store.CheckPrivAccess(ctx, "c-unknown", domain.Sender{User: "zoe"})
	req.NoError(err)
	req.False(allowed)
}
