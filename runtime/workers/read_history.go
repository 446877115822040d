package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"message-hub/contract"
	"message-hub/domain"
	"message-hub/domain/event"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var _ contract.Worker = (*ReadHistoryFanout)(nil)

// ConversationGetter is the narrow slice of the conversation store the
// fan-out needs when a job arrives without its conversation attached.
type ConversationGetter interface {
	Get(ctx context.Context, id string) (domain.PrivateConversation, error)
}

// FanoutJob carries an accepted message to the fan-out worker. The
// conversation is attached when ingest just created or fetched it, so
// the worker does not have to query again.
type FanoutJob struct {
	Message      domain.Message
	Sender       domain.Sender
	Conversation *domain.PrivateConversation
}

// ReadHistoryFanout computes the recipient set of each accepted
// message and raises the read-history trigger.
//
// Fan-out runs decoupled from message creation: each job has its own
// time budget, a failed or expired job is logged and abandoned, and
// the already-persisted message is never rolled back or retried.
type ReadHistoryFanout struct {
	log           *slog.Logger
	access        contract.AccessControl
	conversations ConversationGetter
	jobs          <-chan FanoutJob
	sinks         []contract.EventSink
	budget        time.Duration
}

func NewReadHistoryFanout(log *slog.Logger, access contract.AccessControl,
	conversations ConversationGetter, jobs <-chan FanoutJob,
	sinks []contract.EventSink, budget time.Duration) *ReadHistoryFanout {
	return &ReadHistoryFanout{
		log:           log,
		access:        access,
		conversations: conversations,
		jobs:          jobs,
		sinks:         sinks,
		budget:        budget,
	}
}

func (w *ReadHistoryFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping read history fanout")
			return nil
		case job := <-w.jobs:
			jobCtx, cancel := context.WithTimeout(ctx, w.budget)
			if err := w.Fanout(jobCtx, job); err != nil {
				w.log.Error("Read history fanout failed",
					"message", job.Message.ID, "error", err)
			}
			cancel()
		}
	}
}

// Fanout computes the trigger for one message and hands it to the
// sinks. Exported for direct use in tests and synchronous callers.
func (w *ReadHistoryFanout) Fanout(ctx context.Context, job FanoutJob) error {
	var trigger event.ReadHistoryEvent
	var err error
	if job.Message.Channel().Private() {
		trigger, err = w.privateTrigger(ctx, job)
	} else {
		trigger, err = w.groupTrigger(ctx, job)
	}
	if err != nil {
		return err
	}
	for _, sink := range w.sinks {
		if err := sink.Consume(ctx, trigger); err != nil {
			w.log.Error(fmt.Sprintf("Trigger sink failed for %s", trigger.EventID), "error", err)
		}
	}
	return nil
}

// privateTrigger addresses the other participant of the conversation.
// The sender's slot is found by comparing against slot 1; the opposite
// slot may hold a user or a session, and an absent slot kind simply
// yields no recipient of that kind.
func (w *ReadHistoryFanout) privateTrigger(ctx context.Context, job FanoutJob) (event.ReadHistoryEvent, error) {
	conversation := job.Conversation
	if conversation == nil {
		fetched, err := w.conversations.Get(ctx, job.Message.ToID)
		if err != nil {
			return event.ReadHistoryEvent{}, err
		}
		conversation = &fetched
	}

	first := conversation.IsFirst(job.Message.Sender())
	fromUser, toUser := conversation.User1, conversation.User2
	fromSession, toSession := conversation.Session1, conversation.Session2
	if !first {
		fromUser, toUser = toUser, fromUser
		fromSession, toSession = toSession, fromSession
	}

	trigger := event.ReadHistoryEvent{
		FromUser:    fromUser,
		ToUsers:     []string{},
		FromSession: fromSession,
		ToSessions:  []string{},
		ToType:      job.Message.ToType,
		ToID:        job.Message.ToID,
		EventID:     job.Message.ID,
	}
	if toUser != "" {
		trigger.ToUsers = []string{toUser}
	}
	if toSession != "" {
		trigger.ToSessions = []string{toSession}
	}
	return trigger, nil
}

// groupTrigger addresses every granted session and member of the
// destination except the sender. Empty recipient lists are valid: a
// sole member posting notifies nobody.
func (w *ReadHistoryFanout) groupTrigger(ctx context.Context, job FanoutJob) (event.ReadHistoryEvent, error) {
	message := job.Message
	record, err := w.access.GetAccessRecord(ctx, message.ToType, message.ToID)
	if err != nil {
		return event.ReadHistoryEvent{}, fmt.Errorf("access record for %s: %w", message.Channel().ID(), err)
	}

	var grants []domain.SessionGrant
	var members []domain.Membership
	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		grants, err = w.access.ListSessionGrants(groupCtx, record.ID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = w.access.ListMembers(groupCtx, message.ToType, message.ToID)
		return err
	})
	if err = g.Wait(); err != nil {
		return event.ReadHistoryEvent{}, err
	}

	toSessions := lo.FilterMap(grants, func(grant domain.SessionGrant, _ int) (string, bool) {
		return grant.PublicInfo, grant.Session != job.Sender.Session
	})
	toUsers := lo.FilterMap(members, func(membership domain.Membership, _ int) (string, bool) {
		return membership.User, membership.User != job.Sender.User
	})

	return event.ReadHistoryEvent{
		FromUser:    message.User,
		ToUsers:     toUsers,
		FromSession: message.Session,
		ToSessions:  toSessions,
		ToType:      message.ToType,
		ToID:        message.ToID,
		EventID:     message.ID,
	}, nil
}
