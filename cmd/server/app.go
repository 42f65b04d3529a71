package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Skarbonka1/serwerfinal/internal/config"
	"github.com/Skarbonka1/serwerfinal/internal/events"
	"github.com/Skarbonka1/serwerfinal/internal/notify"
	"github.com/Skarbonka1/serwerfinal/internal/platform/fcm"
	"github.com/Skarbonka1/serwerfinal/internal/platform/logger"
	"github.com/Skarbonka1/serwerfinal/internal/platform/postgres"
	"github.com/Skarbonka1/serwerfinal/internal/service"
	"github.com/Skarbonka1/serwerfinal/internal/service/auth"
	"github.com/Skarbonka1/serwerfinal/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore       store.UserStore
	taskStore       store.TaskStore
	assignmentStore store.AssignmentStore
	commentStore    store.CommentStore
	statisticStore  store.StatisticStore

	// Services
	jwtService       auth.JWTService
	taskService      service.TaskService
	userService      service.UserService
	commentService   service.CommentService
	statisticService service.StatisticService

	// Notification pipeline
	eventEmitter *events.InMemoryEventEmitter
	dispatcher   *notify.Dispatcher
}

// initializeApp loads configuration and wires every component together.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app := &application{
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, appLogger)
	app.taskStore = postgres.NewPostgresTaskStore(db, appLogger)
	app.assignmentStore = postgres.NewPostgresAssignmentStore(db, appLogger)
	app.commentStore = postgres.NewPostgresCommentStore(db, appLogger)
	app.statisticStore = postgres.NewPostgresStatisticStore(db, appLogger)

	// Auth
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Notification pipeline: FCM client behind a worker pool, fed by
	// task publication events.
	notifier := fcm.NewClient(cfg.Push, appLogger)
	dispatcherConfig := notify.DefaultDispatcherConfig()
	if cfg.Notify.WorkerCount > 0 {
		dispatcherConfig.WorkerCount = cfg.Notify.WorkerCount
	}
	if cfg.Notify.QueueSize > 0 {
		dispatcherConfig.QueueSize = cfg.Notify.QueueSize
	}
	if cfg.Push.TimeoutSeconds > 0 {
		dispatcherConfig.SendTimeout = time.Duration(cfg.Push.TimeoutSeconds) * time.Second
	}
	app.dispatcher = notify.NewDispatcher(notifier, dispatcherConfig, appLogger)

	app.eventEmitter = events.NewInMemoryEventEmitter(appLogger)
	app.eventEmitter.RegisterHandler(
		notify.NewTaskPublishedHandler(app.userStore, app.dispatcher, appLogger),
	)

	// Services
	transactor := store.NewSQLTransactor(db)
	app.taskService = service.NewTaskService(
		transactor,
		app.taskStore,
		app.assignmentStore,
		app.eventEmitter,
		appLogger,
	)
	app.userService = service.NewUserService(app.userStore, app.jwtService, hasher, appLogger)
	app.commentService = service.NewCommentService(app.commentStore, appLogger)
	app.statisticService = service.NewStatisticService(app.statisticStore, appLogger)

	return app, nil
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
