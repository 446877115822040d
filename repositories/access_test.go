package repositories

import (
	"context"
	"log/slog"
	"testing"

	"message-hub/domain"
	"message-hub/errors"

	"github.com/stretchr/testify/require"
)

func TestAccessRepository_ResolvePublicSessionInfoIsStable(t *testing.T) {
	req := require.New(t)
	repository := NewAccessRepository(testDB(t), slog.Default())
	ctx := context.Background()

	first, err := repository.ResolvePublicSessionInfo(ctx, "raw-session")
	req.NoError(err)
	req.NotEmpty(first.ID)
	req.Equal("raw-session", first.Session)

	// Resolving again returns the same descriptor, not a new one.
	second, err := repository.ResolvePublicSessionInfo(ctx, "raw-session")
	req.NoError(err)
	req.Equal(first, second)
}

func TestAccessRepository_GetAccessRecordMissing(t *testing.T) {
	req := require.New(t)
	repository := NewAccessRepository(testDB(t), slog.Default())

	_, err := repository.GetAccessRecord(context.Background(), "grp", "7")
	req.ErrorIs(err, errors.ErrNoAccess)
}

func TestAccessRepository_CheckAccessForMembers(t *testing.T) {
	req := require.New(t)
	repository := NewAccessRepository(testDB(t), slog.Default())
	ctx := context.Background()

	req.NoError(repository.PutMember(domain.Membership{ToType: "grp", ToID: "7", User: "alice", Role: "speaker"}))
	req.NoError(repository.PutMember(domain.Membership{ToType: "grp", ToID: "7", User: "bob", Role: "banned"}))

	roles := []string{"speaker", "vip", "moderator", "owner"}

	allowed, err := repository.CheckAccess(ctx, "grp", "7", roles, domain.Sender{User: "alice"})
	req.NoError(err)
	req.True(allowed)

	allowed, err = repository.CheckAccess(ctx, "grp", "7", roles, domain.Sender{User: "bob"})
	req.NoError(err)
	req.False(allowed)

	allowed, err = repository.CheckAccess(ctx, "grp", "7", roles, domain.Sender{User: "mallory"})
	req.NoError(err)
	req.False(allowed)
}

func TestAccessRepository_CheckAccessForSessions(t *testing.T) {
	req := require.New(t)
	repository := NewAccessRepository(testDB(t), slog.Default())
	ctx := context.Background()

	req.NoError(repository.PutAccessRecord(domain.AccessRecord{ID: "acc-1", ToType: "grp", ToID: "7"}))
	req.NoError(repository.PutSessionGrant(domain.SessionGrant{
		Access: "acc-1", Session: "sess-1", PublicInfo: "psi-1", Roles: []string{"speaker"},
	}))

	roles := []string{"speaker", "vip"}

	allowed, err := repository.CheckAccess(ctx, "grp", "7", roles, domain.Sender{Session: "sess-1"})
	req.NoError(err)
	req.True(allowed)

	allowed, err = repository.CheckAccess(ctx, "grp", "7", roles, domain.Sender{Session: "sess-2"})
	req.NoError(err)
	req.False(allowed)

	// Destination without an access record denies without failing.
	allowed, err = repository.CheckAccess(ctx, "grp", "8", roles, domain.Sender{Session: "sess-1"})
	req.NoError(err)
	req.False(allowed)
}

func TestAccessRepository_ListGrantsAndMembers(t *testing.T) {
	req := require.New(t)
	repository := NewAccessRepository(testDB(t), slog.Default())
	ctx := context.Background()

	req.NoError(repository.PutSessionGrant(domain.SessionGrant{Access: "acc-1", Session: "s1", PublicInfo: "p1", Roles: []string{"speaker"}}))
	req.NoError(repository.PutSessionGrant(domain.SessionGrant{Access: "acc-1", Session: "s2", PublicInfo: "p2", Roles: []string{"vip"}}))
	req.NoError(repository.PutSessionGrant(domain.SessionGrant{Access: "acc-2", Session: "s3", PublicInfo: "p3", Roles: []string{"speaker"}}))
	req.NoError(repository.PutMember(domain.Membership{ToType: "grp", ToID: "7", User: "alice", Role: "owner"}))

	grants, err := repository.ListSessionGrants(ctx, "acc-1")
	req.NoError(err)
	req.Len(grants, 2)

	members, err := repository.ListMembers(ctx, "grp", "7")
	req.NoError(err)
	req.Len(members, 1)
	req.Equal("alice", members[0].User)
}
