// Package sink holds the event consumers attached to the ingest
// pipeline.
package sink

import (
	"context"
	"log/slog"

	"message-hub/domain/event"
	"message-hub/repositories"
)

// DiskSink persists accepted messages. Like the conversation
// projection, the stored record is derived from the creation event.
type DiskSink struct {
	repository repositories.IMessageRepository
	log        *slog.Logger
}

func NewDiskSink(repository repositories.IMessageRepository, log *slog.Logger) DiskSink {
	return DiskSink{repository: repository, log: log}
}

func (d DiskSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageCreated:
		return d.repository.StoreMessage(evt.Data)
	}
	return nil
}
