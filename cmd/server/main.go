package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opsroom/auth"
	"opsroom/envelope"
	"opsroom/infrastructure/httpapi"
	"opsroom/infrastructure/ws"
	"opsroom/internal"
	"opsroom/observability"
	"opsroom/repositories"
	"opsroom/repositories/search"
	"opsroom/runtime"
	"opsroom/runtime/workers"
	"opsroom/services"

	"github.com/Netflix/go-env"
	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so every defer (database close, index close)
// executes before the process exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := internal.NewLogger(config.LogLevel)

	// 2. Storage (BadgerDB + Bluge index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	writer, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	index := search.NewMessageIndex(writer, log)
	defer func() {
		log.Info("Closing search index...")
		_ = index.Close()
	}()

	// 3. Crypto & tokens
	cipher, err := envelope.NewCipher(config.MessageEncryptionKey)
	if err != nil {
		return fmt.Errorf("encryption key invalid: %w", err)
	}
	tokens, err := auth.NewTokenManager(config.TokenSecret, config.AuthTokenDuration)
	if err != nil {
		return fmt.Errorf("token manager: %w", err)
	}

	// 4. Repositories
	users := repositories.NewUserRepository(db)
	teams := repositories.NewTeamRepository(db)
	memberships := repositories.NewMembershipRepository(db)
	missions := repositories.NewMissionRepository(db)
	messages := repositories.NewMessageRepository(db, log, config.LimitMessages)
	notifications := repositories.NewNotificationRepository(db)

	// 5. Realtime core & services
	registry := runtime.NewRegistry()
	authority := services.NewMembershipAuthority(memberships)
	router := runtime.NewRouter(log, registry, authority, memberships, config.BufferSize)

	fanout := services.NewNotificationFanout(log, notifications, memberships, router)
	statusService := services.NewStatusService(log, authority, memberships, fanout, router)
	// Sessions closing mark their user offline in every team they were in.
	router.SetDisconnectListener(statusService)

	authService := services.NewAuthService(log, users, tokens)
	teamService := services.NewTeamService(log, authority, teams, memberships, fanout, router)
	missionService := services.NewMissionService(log, authority, missions, fanout, router)
	messageService := services.NewMessageService(log, authority, cipher, messages, index, fanout, router)

	// 6. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 7. Supervised workers
	monitor, err := observability.NewMonitor(log, registry.Sizes, config.MetricInterval)
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	sup := workers.NewSupervisor(log)
	sup.Add(
		workers.NewDeliveryFanout(log, registry, router.Deliveries(), config.SinkTimeout),
		workers.NewStorageGC(log, db, config.GCInterval),
		monitor,
	)
	go sup.Run(ctx)

	// 8. HTTP server (REST + realtime upgrade)
	realtime := ws.NewHandler(log, tokens, router, statusService, monitor, config.BufferSize)
	httpRouter := httpapi.NewRouter(log, tokens, monitor, httpapi.Handlers{
		Auth:          httpapi.NewAuthHandler(log, authService),
		Teams:         httpapi.NewTeamHandler(log, teamService, statusService),
		Missions:      httpapi.NewMissionHandler(log, missionService),
		Messages:      httpapi.NewMessageHandler(log, messageService),
		Notifications: httpapi.NewNotificationHandler(log, notifications),
		Realtime:      realtime,
	})

	server := &http.Server{
		Addr:              config.Address(),
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", config.Address(), "at", time.Now().UTC())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 9. Wait for stop or error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 10. Final cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	sup.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
