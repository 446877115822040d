package repositories

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"

	"message-hub/contract"
	"message-hub/domain"
	"message-hub/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Static assertion: the repository satisfies the collaborator
// interface consumed by ingest and fan-out.
var _ contract.AccessControl = (*AccessRepository)(nil)

const (
	psiPrefix    = "psi:"
	accessPrefix = "access:"
	grantPrefix  = "grant:"
	memberPrefix = "member:"
)

// AccessRepository reads the records owned by the access-control
// service from the shared store. The Put methods exist for the sync
// path that mirrors those records locally, and for tests.
type AccessRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewAccessRepository(db *badger.DB, log *slog.Logger) *AccessRepository {
	return &AccessRepository{db: db, log: log}
}

// ResolvePublicSessionInfo returns the public descriptor of a session,
// creating it lazily on first sight. Callers bound the call with a
// context deadline; expiry is a hard failure for the request.
func (a *AccessRepository) ResolvePublicSessionInfo(ctx context.Context, sessionID string) (domain.PublicSessionInfo, error) {
	if err := ctx.Err(); err != nil {
		return domain.PublicSessionInfo{}, err
	}
	var info domain.PublicSessionInfo
	err := a.db.Update(func(txn *badger.Txn) error {
		key := []byte(psiPrefix + sessionID)
		item, err := txn.Get(key)
		if err == nil {
			return item.Value(func(value []byte) error {
				return json.Unmarshal(value, &info)
			})
		}
		if !stderrors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		info = domain.PublicSessionInfo{ID: uuid.NewString(), Session: sessionID}
		raw, err := json.Marshal(info)
		if err != nil {
			return err
		}
		return txn.Set(key, raw)
	})
	if err != nil {
		return domain.PublicSessionInfo{}, err
	}
	return info, nil
}

// GetAccessRecord returns the access record of a destination. A group
// destination without one is a configuration error, surfaced as
// ErrNoAccess.
func (a *AccessRepository) GetAccessRecord(ctx context.Context, toType, toID string) (domain.AccessRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.AccessRecord{}, err
	}
	var record domain.AccessRecord
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(accessPrefix + toType + "_" + toID))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &record)
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return domain.AccessRecord{}, errors.ErrNoAccess
	}
	if err != nil {
		return domain.AccessRecord{}, err
	}
	return record, nil
}

func (a *AccessRepository) ListSessionGrants(ctx context.Context, accessID string) ([]domain.SessionGrant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var grants []domain.SessionGrant
	err := a.scan(grantPrefix+accessID+":", func(value []byte) error {
		var grant domain.SessionGrant
		if err := json.Unmarshal(value, &grant); err != nil {
			return err
		}
		grants = append(grants, grant)
		return nil
	})
	return grants, err
}

func (a *AccessRepository) ListMembers(ctx context.Context, toType, toID string) ([]domain.Membership, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var members []domain.Membership
	err := a.scan(memberPrefix+toType+"_"+toID+":", func(value []byte) error {
		var membership domain.Membership
		if err := json.Unmarshal(value, &membership); err != nil {
			return err
		}
		members = append(members, membership)
		return nil
	})
	return members, err
}

// CheckAccess reports whether the sender holds one of the required
// roles on the destination, either through membership (users) or a
// session grant (anonymous senders).
func (a *AccessRepository) CheckAccess(ctx context.Context, toType, toID string, roles []string, sender domain.Sender) (bool, error) {
	if sender.Authenticated() {
		members, err := a.ListMembers(ctx, toType, toID)
		if err != nil {
			return false, err
		}
		return lo.SomeBy(members, func(m domain.Membership) bool {
			return m.User == sender.User && lo.Contains(roles, m.Role)
		}), nil
	}
	record, err := a.GetAccessRecord(ctx, toType, toID)
	if stderrors.Is(err, errors.ErrNoAccess) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	grants, err := a.ListSessionGrants(ctx, record.ID)
	if err != nil {
		return false, err
	}
	return lo.SomeBy(grants, func(g domain.SessionGrant) bool {
		return g.Session == sender.Session && lo.Some(g.Roles, roles)
	}), nil
}

func (a *AccessRepository) PutPublicSessionInfo(info domain.PublicSessionInfo) error {
	return a.put(psiPrefix+info.Session, info)
}

func (a *AccessRepository) PutAccessRecord(record domain.AccessRecord) error {
	return a.put(accessPrefix+record.ToType+"_"+record.ToID, record)
}

func (a *AccessRepository) PutSessionGrant(grant domain.SessionGrant) error {
	return a.put(grantPrefix+grant.Access+":"+grant.Session, grant)
}

func (a *AccessRepository) PutMember(membership domain.Membership) error {
	return a.put(memberPrefix+membership.ToType+"_"+membership.ToID+":"+membership.User, membership)
}

func (a *AccessRepository) put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
}

func (a *AccessRepository) scan(prefix string, fn func(value []byte) error) error {
	return a.db.View(func(txn *badger.Txn) error {
		p := []byte(prefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}
