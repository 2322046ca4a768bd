package app

import (
	"context"

	"savvy/config"
	"savvy/internal/controllers"
	"savvy/internal/database"
	"savvy/internal/events"
	"savvy/internal/handlers/middleware"
	"savvy/internal/jobs"
	"savvy/internal/jobstore"
	"savvy/internal/seed"
	"savvy/internal/services"
	"savvy/internal/websockets"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Websocket   *websockets.Manager
	EventBus    *events.EventBus
	Config      config.Config
	Store       *jobstore.Store
	Services    services.Service
	Controllers controllers.Controllers
}

func New(ctx context.Context) (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(ctx, config)
}

// NewWithConfig connects the configured backends, loads the seed data into
// a fresh store and wires everything on top of it.
func NewWithConfig(ctx context.Context, config config.Config) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	source, err := seed.New(config, db)
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to create seed source", err)
	}

	seedJobs, seedCleaners, err := source.Load(ctx)
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to load seed data", err, "source", source.Name())
	}

	store, err := jobstore.New(seedJobs, seedCleaners)
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to build job store", err)
	}
	log.Info(
		"Job store ready",
		"source", source.Name(),
		"jobs", len(seedJobs),
		"cleaners", len(seedCleaners),
	)

	app, err := Assemble(ctx, config, db, store)
	if err != nil {
		_ = db.Close()
		return &App{}, err
	}

	return app, nil
}

// Assemble wires services, controllers and the websocket hub around an
// already populated store.
func Assemble(
	ctx context.Context,
	config config.Config,
	db database.DB,
	store *jobstore.Store,
) (*App, error) {
	log := logger.New("app").Function("Assemble")

	eventBus := events.New(db.Cache.Events)
	services := services.New(db, config, eventBus)
	controllers := controllers.New(store, services, eventBus)

	websocket, err := websockets.New(eventBus, Snapshot(store))
	if err != nil {
		_ = eventBus.Close()
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	if err := jobs.RegisterAllJobs(services.Scheduler, config, controllers.Jobs); err != nil {
		_ = websocket.Close()
		_ = eventBus.Close()
		return &App{}, log.Err("failed to register jobs", err)
	}

	if err := services.Scheduler.Start(ctx); err != nil {
		_ = websocket.Close()
		_ = eventBus.Close()
		return &App{}, log.Err("failed to start scheduler", err)
	}

	app := &App{
		Database:    db,
		Middleware:  middleware.New(config),
		Websocket:   websocket,
		EventBus:    eventBus,
		Config:      config,
		Store:       store,
		Services:    services,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		_ = app.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

// Snapshot is the dashboard state pushed to a websocket client on connect.
func Snapshot(store *jobstore.Store) websockets.SnapshotFunc {
	return func() map[string]any {
		return map[string]any{
			"version":   store.Version(),
			"stats":     store.Stats(),
			"selection": store.Selected(),
			"locations": store.Locations(),
		}
	}
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []struct {
		name  string
		isNil bool
	}{
		{"store", a.Store == nil},
		{"websocket", a.Websocket == nil},
		{"eventBus", a.EventBus == nil},
		{"transactionService", a.Services.Transaction == nil},
		{"schedulerService", a.Services.Scheduler == nil},
		{"notificationService", a.Services.Notification == nil},
		{"jobsController", a.Controllers.Jobs == nil},
		{"cleanersController", a.Controllers.Cleaners == nil},
	}

	for _, check := range nilChecks {
		if check.isNil {
			return log.Error("nil check failed", "component", check.name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Websocket != nil {
		if closeErr := a.Websocket.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
