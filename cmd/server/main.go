// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	workflowv1 "github.com/ledgerly111/ledgerly111.github.io-sub000/api/workflow/v1"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/api"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/config"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/database"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/directory"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/events"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/logger"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/middleware"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/repository"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/scheduler"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/service"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/workflow"
	"github.com/ledgerly111/ledgerly111.github.io-sub000/pkg/notify"
)

const serviceName = "workflow-engine"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.Server.LogLevel,
		Environment: cfg.Server.Environment,
		ServiceName: serviceName,
	})
	log.Info().
		Str("environment", cfg.Server.Environment).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting workflow engine")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir, err := directory.Load(cfg.Directory.File)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load directory")
	}

	// Snapshot store
	repo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot store")
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to close snapshot store")
		}
	}()

	state, err := repo.Load(ctx, cfg.Storage.Key)
	switch {
	case errors.Is(err, repository.ErrSnapshotNotFound):
		log.Info().Str("key", cfg.Storage.Key).Msg("No snapshot found, starting empty")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to load snapshot")
	default:
		log.Info().
			Int("tasks", len(state.Tasks)).
			Int("messages", len(state.Messages)).
			Msg("Snapshot restored")
	}
	snapshotter := repository.NewSnapshotter(repo, cfg.Storage.Key, log)

	// Notifications
	var (
		publisher notify.Publisher = notify.NewLogPublisher(log)
		natsConn  *nats.Conn
	)
	if cfg.NATS.URL != "" {
		natsConn, err = notify.Connect(notify.Config{
			URL:           cfg.NATS.URL,
			SubjectPrefix: cfg.NATS.NotifySubjectPrefix,
			ClientName:    cfg.NATS.ClientName,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		defer natsConn.Close()
		publisher = notify.NewNATSPublisher(natsConn, cfg.NATS.NotifySubjectPrefix, log)
		log.Info().Str("url", cfg.NATS.URL).Msg("NATS connection established")
	}

	engine := workflow.New(state, workflow.Dependencies{
		Users:     dir,
		Branches:  dir,
		Products:  dir,
		Inventory: dir,
		Snapshots: snapshotter,
		Publisher: publisher,
		Logger:    log,
	})

	// Sale events
	if natsConn != nil {
		subscriber, err := events.NewSaleSubscriber(engine, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create sale subscriber")
		}
		if _, err := subscriber.Subscribe(ctx, natsConn, cfg.NATS.SalesSubject); err != nil {
			log.Fatal().Err(err).Msg("Failed to subscribe to sale events")
		}
		log.Info().Str("subject", cfg.NATS.SalesSubject).Msg("Consuming sale events")
	}

	// Progress reports
	var reports *scheduler.ReportScheduler
	if cfg.Reports.Enabled {
		reports, err = scheduler.NewReportScheduler(engine, scheduler.Schedules{
			Daily:   cfg.Reports.Daily,
			Weekly:  cfg.Reports.Weekly,
			Monthly: cfg.Reports.Monthly,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create report scheduler")
		}
		reports.Start()
	}

	// gRPC server
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.NewMetadataExtractorInterceptor().Unary(),
			middleware.NewIdentityInterceptor(dir).Unary(),
			middleware.NewLoggingInterceptor(log).Unary(),
			middleware.NewValidationInterceptor(nil).Unary(),
		),
	)
	workflowv1.RegisterWorkflowServiceServer(grpcServer, service.NewWorkflowService(engine, log))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(workflowv1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	if cfg.IsDevelopment() {
		reflection.Register(grpcServer)
		log.Info().Msg("gRPC reflection enabled")
	}

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}
	go func() {
		log.Info().Str("port", cfg.Server.GRPCPort).Msg("gRPC server listening")
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("gRPC server failed")
		}
	}()

	// HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      api.SetupRouter(api.NewReportHandler(engine, log), log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Server.HTTPPort).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	shutdown(cfg.Server.ShutdownTimeout, log, func(ctx context.Context) {
		healthServer.Shutdown()
		cancel()
		if reports != nil {
			reports.Stop(ctx)
		}
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("HTTP shutdown failed")
		}
		grpcServer.GracefulStop()
		if err := snapshotter.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("Final snapshot not written")
		}
	})
	log.Info().Msg("Shutdown complete")
}

// openRepository selects the snapshot store named by STORAGE_DRIVER.
func openRepository(ctx context.Context, cfg *config.Config) (repository.SnapshotRepository, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgresDB(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresSnapshotRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil
	case config.StorageDriverMongo:
		return repository.NewMongoSnapshotRepository(ctx, repository.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return repository.NewMemorySnapshotRepository(), nil
	}
}

func shutdown(timeout time.Duration, log zerolog.Logger, fn func(ctx context.Context)) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		fn(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn().Dur("timeout", timeout).Msg("Shutdown timed out")
	}
}
