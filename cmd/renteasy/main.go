package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	bookingapp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/booking"
	historyapp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/history"
	listingapp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/listings"
	"github.com/krushna001m/RentEasy-sub000/internal/app/middleware"
	appoutbox "github.com/krushna001m/RentEasy-sub000/internal/app/outbox"
	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	authservice "github.com/krushna001m/RentEasy-sub000/internal/app/services/auth"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/broker/kafka"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/config"
	mongodb "github.com/krushna001m/RentEasy-sub000/internal/infra/db/mongo"
	ginserver "github.com/krushna001m/RentEasy-sub000/internal/infra/http/gin"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/obs"
	infraoutbox "github.com/krushna001m/RentEasy-sub000/internal/infra/outbox"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/security"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/storage/docstore"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/storage/memory"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, cleanup, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var (
		store   policies.DataStore
		idStore middleware.IdempotencyStore
		box     appoutbox.Outbox
		ready   = func() error { return nil }
	)

	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		p, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			cleanup()
			return application{}, nil, err
		}
		producer = p
		cleanups = append(cleanups, func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
		})
		logger.Info("kafka producer connected", "brokers", strings.Join(cfg.KafkaBrokers, ","))
	}

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			cleanup()
			return application{}, nil, err
		}
		store = mongodb.NewDocumentStore(client.DB)
		idStore = mongodb.NewIdempotencyStore(client.DB)
		outboxStore := infraoutbox.NewStore(client.DB)
		box = outboxStore
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		if producer != nil {
			worker := &infraoutbox.Worker{
				Store:       outboxStore,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
			go func() {
				if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("outbox worker stopped", "error", err)
				}
			}()
		}
		logger.Info("mongo document store attached", "db", cfg.MongoDB)
	} else {
		store = memory.NewDocumentStore()
		idStore = memory.NewIdempotencyStore()
		box = memory.NewOutbox(directPublisher(producer, cfg.KafkaTopicPrefix))
		logger.Info("in-memory document store attached")
	}

	var uploader s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(s3.Options{
			Endpoint:      cfg.S3Endpoint,
			UseSSL:        cfg.S3UseSSL,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicEndpoint,
			Logger:        logger,
		})
		if err != nil {
			cleanup()
			return application{}, nil, err
		}
		uploader = client
	}

	auth := &authservice.Service{
		Users:      memory.NewUserRepository(),
		Sessions:   memory.NewSessionStore(),
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	listings := docstore.NewListingRepository(store)
	notifier := obs.LogNotifier{Logger: logger}
	encoder := appoutbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), &bookingapp.ConfirmBookingHandler{
		Identity: ginserver.ContextIdentity{},
		Store:    store,
		Outbox:   box,
		Encoder:  encoder,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, listingapp.CreateListingCommand{}.Key(), &listingapp.CreateListingHandler{
		Listings: listings,
		Outbox:   box,
		Encoder:  encoder,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, listingapp.UploadPhotoCommand{}.Key(), &listingapp.UploadPhotoHandler{
		Listings: listings,
		Uploader: uploader,
		Logger:   logger,
	})
	commands.RegisterHandler(commandBus, historyapp.DeleteHistoryCommand{}.Key(), &historyapp.DeleteHistoryHandler{
		Store: store,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.GetQuoteQuery{}.Key(), bookingapp.GetQuoteHandler{})
	queries.RegisterHandler(queryBus, historyapp.ListHistoryQuery{}.Key(), &historyapp.ListHistoryHandler{Store: store})
	queries.RegisterHandler(queryBus, listingapp.GetOverviewQuery{}.Key(), &listingapp.GetOverviewHandler{Listings: listings})
	queries.RegisterHandler(queryBus, listingapp.SearchCatalogQuery{}.Key(), &listingapp.SearchCatalogHandler{Listings: listings})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Validation(),
		middleware.Idempotency(idStore, nil),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	return application{
		handlers: ginserver.Handlers{
			Auth: ginserver.AuthHandler{Service: auth},
			Booking: ginserver.BookingHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
				Notifier: notifier,
			},
			Listing: ginserver.ListingHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			History: ginserver.HistoryHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
			AuthMiddleware: ginserver.AuthMiddleware{Service: auth, Logger: logger}.Handle,
		},
		ready: ready,
	}, cleanup, nil
}

// directPublisher ships flushed records straight to the broker when the
// service runs without a durable outbox. A nil producer drops them.
func directPublisher(producer *kafka.Producer, topicPrefix string) func(context.Context, appoutbox.EventRecord) error {
	if producer == nil {
		return nil
	}
	return func(ctx context.Context, rec appoutbox.EventRecord) error {
		base := rec.Name
		if idx := strings.IndexRune(rec.Name, '.'); idx > 0 {
			base = rec.Name[:idx]
		}
		topic := topicPrefix + base + ".events.v1"
		return producer.Publish(ctx, topic, rec.Aggregate, rec.Payload, rec.Headers)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
