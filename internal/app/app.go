// Package app assembles configuration, store, services and HTTP server into
// a runnable application.
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

	httpapi "github.com/Chris-Devine/codecamp/internal/http"
	"github.com/Chris-Devine/codecamp/internal/service"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/internal/store/drivers/sqlite"
	"github.com/Chris-Devine/codecamp/pkg/cryptox"
	"github.com/Chris-Devine/codecamp/pkg/jwtx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	signer   *jwtx.HS256Signer
	verifier *jwtx.HS256Verifier

	authService         *service.AuthService
	sessionService      *service.SessionService
	campService         *service.CampService
	seedService         *service.SeedService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized. A weak
// signing key or unreachable database fails here, before anything listens.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "codecamp",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(cfg.PepperFile)

	signer, err := jwtx.NewHS256Signer([]byte(cfg.TokenKey), cfg.TokenIssuer, cfg.TokenAudience, cfg.TokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	verifier, err := jwtx.NewHS256Verifier([]byte(cfg.TokenKey), cfg.TokenIssuer, cfg.TokenAudience)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	app.signer = signer
	app.verifier = verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if app.cfg.SeedDemoData {
		ctx := slogx.WithContext(context.Background(), app.logger)
		if err := app.seedService.Seed(ctx); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	app.housekeepingService.Start()

	app.logger.Info("codecamp service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			// Release resources the same way the signal path does.
			app.housekeepingService.Stop()
			if cerr := app.db.Close(); cerr != nil {
				app.logger.Error("error closing database", "error", cerr)
			}
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down codecamp service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("codecamp service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
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

func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:  app.db,
		Signer: app.signer,
	}
	app.sessionService = &service.SessionService{Store: app.db}
	app.campService = &service.CampService{Store: app.db}
	app.seedService = &service.SeedService{
		Store:        app.db,
		DemoUsername: app.cfg.DemoUsername,
		DemoPassword: app.cfg.DemoPassword,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.CORSAllowedOrigin,
	)

	router.CookieName = app.cfg.CookieName
	router.SecureCookies = app.cfg.SecureCookies
	router.LockoutOnFailure = app.cfg.LockoutOnFailure
	router.AuthService = app.authService
	router.SessionService = app.sessionService
	router.CampService = app.campService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
