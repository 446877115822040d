//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"message-hub/domain"
	"message-hub/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// AccessControl is the narrow interface to the access-control
// collaborator. The message flow only ever reads through it.
type AccessControl interface {
	ResolvePublicSessionInfo(ctx context.Context, sessionID string) (domain.PublicSessionInfo, error)
	CheckAccess(ctx context.Context, toType, toID string, roles []string, sender domain.Sender) (bool, error)
	GetAccessRecord(ctx context.Context, toType, toID string) (domain.AccessRecord, error)
	ListSessionGrants(ctx context.Context, accessID string) ([]domain.SessionGrant, error)
	ListMembers(ctx context.Context, toType, toID string) ([]domain.Membership, error)
}

// IDGenerator produces opaque unique identifiers.
type IDGenerator interface {
	NewID() string
}
