package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"message-hub/api"
	"message-hub/conversation"
	"message-hub/projection"
	"message-hub/repositories"
	"message-hub/runtime"
	"message-hub/runtime/workers"
	"message-hub/sequencer"
	"message-hub/services"
	"message-hub/sink"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and owns the server lifecycle, so
// that every defer (database close included) executes before the
// process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & domain services
	messageRepository := repositories.NewMessageRepository(db, log)
	conversationRepository := repositories.NewConversationRepository(db, log)
	eventLog := repositories.NewEventLog(db, log)
	accessRepository := repositories.NewAccessRepository(db, log)

	store := conversation.NewStore(log, conversationRepository, eventLog,
		runtime.UUIDGenerator{}, accessRepository)

	// Replay the event log through the conversation projection so the
	// queryable records always agree with the log, even after a crash
	// between append and materialization.
	if err = replayConversations(eventLog, projection.NewConversations(conversationRepository, log)); err != nil {
		return fmt.Errorf("conversation replay failed: %w", err)
	}

	// 4. Supervision & orchestration
	sup := workers.NewSupervisor(log, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(
		log, sup, sequencer.New(), messageRepository, store,
		eventLog, accessRepository,
		config.BufferSize, config.IdentityTimeout, config.FanoutTimeout,
	)

	triggerSink := sink.NewTriggerSink(log, config.TriggerBufferSize)
	orchestrator.AddTriggerSinks(triggerSink)

	// 5. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Start the engine
	if err = orchestrator.Start(ctx); err != nil {
		return fmt.Errorf("orchestrator failed to start: %w", err)
	}

	// The trigger consumer is the notification gateway's attachment
	// point; until one is attached, delivered triggers are logged.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case trigger := <-triggerSink.Triggers():
				log.Info("Read history trigger delivered",
					"event", trigger.EventID, "channel", trigger.ToType+"_"+trigger.ToID)
			}
		}
	}()

	// 7. HTTP server setup
	messageService := services.NewMessageService(orchestrator)
	welcomeService := services.NewWelcomeService(log, messageService,
		config.WelcomeUser, config.WelcomeText)
	server := api.NewServer(log, messageService, welcomeService)

	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{Addr: address, Handler: server.Router()}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 8. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 9. Final cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	orchestrator.Stop()
	log.Info("Program stopped cleanly")

	return nil
}

func replayConversations(eventLog repositories.EventLog, conversations projection.Conversations) error {
	envelopes, err := eventLog.All()
	if err != nil {
		return err
	}
	for _, envelope := range envelopes {
		evt, err := envelope.Decode()
		if err != nil {
			return err
		}
		if err = conversations.Consume(context.Background(), evt); err != nil {
			return err
		}
	}
	return nil
}
