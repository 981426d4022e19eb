package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/upvn/procure/internal/procure/http"
	"github.com/upvn/procure/internal/procure/notify"
	"github.com/upvn/procure/internal/procure/service"
	"github.com/upvn/procure/internal/procure/store"
	"github.com/upvn/procure/internal/procure/store/drivers/sqlite"
	"github.com/upvn/procure/pkg/cryptox"
	"github.com/upvn/procure/pkg/jwtx"
	"github.com/upvn/procure/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the procurement service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   *jwtx.Signer
	notifier notify.Notifier

	// Services
	identityService  *service.IdentityService
	bootstrapService *service.BootstrapService
	userService      *service.UserService
	categoryService  *service.CategoryService
	projectService   *service.ProjectService
	bidService       *service.BidService
	openingService   *service.OpeningService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "procure-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	// Signing keys are ephemeral: tokens do not survive a restart
	signer, err := jwtx.NewSigner(cfg.Issuer, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.signer = signer

	app.initNotifier()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("procure service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down procure service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("procure service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	db, err := sqlite.New(app.cfg.DatabaseFile)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initNotifier wires the SMTP relay, or the noop sink when unconfigured
func (app *Application) initNotifier() {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP not configured, email delivery disabled")
		app.notifier = notify.Noop{}
		return
	}
	app.notifier = notify.NewSMTP(notify.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
		BaseURL:  app.cfg.BaseURL,
	})
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.identityService = &service.IdentityService{
		Store:           app.db,
		Signer:          app.signer,
		Notifier:        app.notifier,
		VerificationTTL: app.cfg.VerificationTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}
	app.userService = &service.UserService{
		Store:    app.db,
		Notifier: app.notifier,
	}
	app.categoryService = &service.CategoryService{Store: app.db}
	app.projectService = &service.ProjectService{
		Store:    app.db,
		Notifier: app.notifier,
	}
	app.bidService = &service.BidService{Store: app.db}
	app.openingService = &service.OpeningService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.IdentityService = app.identityService
	router.BootstrapService = app.bootstrapService
	router.UserService = app.userService
	router.CategoryService = app.categoryService
	router.ProjectService = app.projectService
	router.BidService = app.bidService
	router.OpeningService = app.openingService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
