// Package runtime wires the ingest pipeline: sequencing, event
// emission, persistence and the detached fan-out. It contains no
// storage or transport details of its own.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"message-hub/contract"
	"message-hub/conversation"
	"message-hub/domain"
	"message-hub/domain/event"
	"message-hub/errors"
	"message-hub/repositories"
	"message-hub/runtime/workers"
	"message-hub/sequencer"
	"message-hub/sink"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Orchestrator struct {
	log             *slog.Logger
	supervisor      contract.ISupervisor
	sequencer       *sequencer.Sequencer
	messages        repositories.IMessageRepository
	conversations   conversation.IStore
	events          repositories.IEventLog
	access          contract.AccessControl
	messageSinks    []contract.EventSink
	triggerSinks    []contract.EventSink
	fanoutJobs      chan workers.FanoutJob
	identityTimeout time.Duration
	fanoutTimeout   time.Duration
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	seq *sequencer.Sequencer, messages repositories.IMessageRepository,
	conversations conversation.IStore, events repositories.IEventLog,
	access contract.AccessControl, bufferSize int,
	identityTimeout, fanoutTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:             log,
		supervisor:      supervisor,
		sequencer:       seq,
		messages:        messages,
		conversations:   conversations,
		events:          events,
		access:          access,
		messageSinks:    []contract.EventSink{sink.NewDiskSink(messages, log)},
		fanoutJobs:      make(chan workers.FanoutJob, bufferSize),
		identityTimeout: identityTimeout,
		fanoutTimeout:   fanoutTimeout,
	}
}

// AddTriggerSinks registers consumers of the read-history trigger.
func (o *Orchestrator) AddTriggerSinks(sinks ...contract.EventSink) {
	o.triggerSinks = append(o.triggerSinks, sinks...)
}

// Start registers the fan-out worker and launches supervision. It
// returns immediately; workers stop when ctx is canceled or Stop is
// called.
func (o *Orchestrator) Start(ctx context.Context) error {
	fanout := workers.NewReadHistoryFanout(
		o.log, o.access, o.conversations,
		o.fanoutJobs, o.triggerSinks, o.fanoutTimeout,
	)
	o.supervisor.Add(fanout)
	go o.supervisor.Run(ctx)
	o.log.Info("Orchestrator started, fanout worker supervised")
	return nil
}

func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}

// PostMessage accepts a message for an existing channel. The empty id
// with a nil error is the overload drop: the request completed as a
// no-op and nothing was persisted or emitted.
func (o *Orchestrator) PostMessage(ctx context.Context, cmd domain.PostMessageCommand, sender domain.Sender) (domain.MessageID, error) {
	if err := validate.Struct(cmd); err != nil {
		return "", err
	}
	if !sender.Valid() {
		return "", errors.ErrMalformedParticipant
	}
	me, err := o.senderIdentity(ctx, sender)
	if err != nil {
		return "", err
	}
	return o.post(ctx, cmd, sender, me, nil)
}

// PostPrivateMessage posts to the other participant, creating the
// conversation on first contact. The conversation travels with the
// fan-out job so the worker does not refetch it.
func (o *Orchestrator) PostPrivateMessage(ctx context.Context, cmd domain.PostPrivateMessageCommand, sender domain.Sender) (domain.MessageID, error) {
	if err := validate.Struct(cmd); err != nil {
		return "", err
	}
	other := cmd.Other()
	if other.IsZero() {
		return "", errors.ErrMalformedParticipant
	}
	if !sender.Valid() {
		return "", errors.ErrMalformedParticipant
	}
	me, err := o.senderIdentity(ctx, sender)
	if err != nil {
		return "", err
	}
	conv, err := o.conversations.GetOrCreate(ctx, domain.CanonicalParticipants(me, other))
	if err != nil {
		return "", err
	}
	post := domain.PostMessageCommand{ToType: domain.ToTypePrivate, ToID: conv.ID, Text: cmd.Text}
	return o.post(ctx, post, sender, me, &conv)
}

// post runs the accepted-message pipeline. The sender's identity is
// resolved exactly once by the callers and passed in, so an anonymous
// sender costs a single public-info round trip per request.
func (o *Orchestrator) post(ctx context.Context, cmd domain.PostMessageCommand, sender domain.Sender, me domain.Identity, conv *domain.PrivateConversation) (domain.MessageID, error) {
	now := time.Now().UTC()
	data := domain.Message{
		ToType:    cmd.ToType,
		ToID:      cmd.ToID,
		Text:      cmd.Text,
		Timestamp: now,
	}
	if me.IsUser() {
		data.User = me.ID
	} else {
		data.Session = me.ID
	}

	channel := data.Channel()
	assigned, accepted := o.sequencer.Next(channel.ID(), now)
	if !accepted {
		// Intentional lossy-under-overload policy: the caller sees a
		// successful no-op, nothing is persisted or emitted.
		o.log.Warn(fmt.Sprintf("Channel %s overloaded, dropping message", channel.ID()))
		return "", nil
	}
	data.ID = domain.NewMessageID(channel, assigned)

	created := event.MessageCreated{Message: data.ID, Data: data}
	if err := o.events.Append(created); err != nil {
		return "", err
	}
	for _, messageSink := range o.messageSinks {
		if err := messageSink.Consume(ctx, created); err != nil {
			return "", err
		}
	}

	job := workers.FanoutJob{Message: data, Sender: sender, Conversation: conv}
	select {
	case o.fanoutJobs <- job:
	default:
		o.log.Warn(fmt.Sprintf("Fanout queue full, skipping read history for %s", data.ID))
	}
	return data.ID, nil
}

// GetOrCreateConversation resolves the sender's identity and returns
// the single conversation shared with the other participant.
func (o *Orchestrator) GetOrCreateConversation(ctx context.Context, sender domain.Sender, other domain.Identity) (domain.PrivateConversation, error) {
	if !sender.Valid() || other.IsZero() {
		return domain.PrivateConversation{}, errors.ErrMalformedParticipant
	}
	me, err := o.senderIdentity(ctx, sender)
	if err != nil {
		return domain.PrivateConversation{}, err
	}
	return o.conversations.GetOrCreate(ctx, domain.CanonicalParticipants(me, other))
}

// LookupConversation resolves without creating.
func (o *Orchestrator) LookupConversation(ctx context.Context, sender domain.Sender, other domain.Identity) (domain.PrivateConversation, bool, error) {
	if !sender.Valid() || other.IsZero() {
		return domain.PrivateConversation{}, false, errors.ErrMalformedParticipant
	}
	me, err := o.senderIdentity(ctx, sender)
	if err != nil {
		return domain.PrivateConversation{}, false, err
	}
	return o.conversations.Lookup(ctx, domain.CanonicalParticipants(me, other))
}

func (o *Orchestrator) GetConversation(ctx context.Context, id string) (domain.PrivateConversation, error) {
	return o.conversations.Get(ctx, id)
}

func (o *Orchestrator) GetMessages(query repositories.MessageRange) ([]domain.Message, error) {
	return o.messages.RangeMessages(query)
}

func (o *Orchestrator) GetMessage(id domain.MessageID) (domain.Message, error) {
	return o.messages.GetMessage(id)
}

func (o *Orchestrator) CheckPrivAccess(ctx context.Context, conversationID string, sender domain.Sender) (bool, error) {
	return o.conversations.CheckPrivAccess(ctx, conversationID, sender)
}

func (o *Orchestrator) CheckAccess(ctx context.Context, toType, toID string, roles []string, sender domain.Sender) (bool, error) {
	return o.access.CheckAccess(ctx, toType, toID, roles, sender)
}

// senderIdentity turns the request sender into a tagged identity,
// resolving the public descriptor of anonymous sessions within the
// identity budget.
func (o *Orchestrator) senderIdentity(ctx context.Context, sender domain.Sender) (domain.Identity, error) {
	if sender.Authenticated() {
		return domain.UserIdentity(sender.User), nil
	}
	info, err := o.resolvePublicInfo(ctx, sender.Session)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.SessionIdentity(info.ID), nil
}

func (o *Orchestrator) resolvePublicInfo(ctx context.Context, sessionID string) (domain.PublicSessionInfo, error) {
	infoCtx, cancel := context.WithTimeout(ctx, o.identityTimeout)
	defer cancel()
	info, err := o.access.ResolvePublicSessionInfo(infoCtx, sessionID)
	if err != nil {
		return domain.PublicSessionInfo{}, fmt.Errorf("%w: %v", errors.ErrPublicSessionInfo, err)
	}
	return info, nil
}
