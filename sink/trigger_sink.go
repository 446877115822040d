package sink

import (
	"context"
	"fmt"
	"log/slog"

	"message-hub/domain/event"
)

// TriggerSink hands read-history events to the downstream notification
// consumer over a buffered channel. Delivery is best effort: a full
// buffer drops the trigger, never blocks the fan-out.
type TriggerSink struct {
	log      *slog.Logger
	triggers chan event.ReadHistoryEvent
}

func NewTriggerSink(log *slog.Logger, buffer int) *TriggerSink {
	return &TriggerSink{log: log, triggers: make(chan event.ReadHistoryEvent, buffer)}
}

// Triggers is consumed by the notification subsystem.
func (t *TriggerSink) Triggers() <-chan event.ReadHistoryEvent {
	return t.triggers
}

func (t *TriggerSink) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.ReadHistoryEvent)
	if !ok {
		return nil
	}
	select {
	case t.triggers <- evt:
	default:
		t.log.Warn(fmt.Sprintf("Trigger buffer full, dropping read history event %s", evt.EventID))
	}
	return nil
}
