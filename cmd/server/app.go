package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/vsconnect-api/internal/config"
	"github.com/phrazzld/vsconnect-api/internal/platform/postgres"
	"github.com/phrazzld/vsconnect-api/internal/service"
	"github.com/phrazzld/vsconnect-api/internal/service/auth"
	"github.com/phrazzld/vsconnect-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	serviceStore store.ServiceStore

	// Authentication
	tokenCodec       auth.TokenCodec
	identityResolver auth.IdentityResolver
	passwordVerifier *auth.BcryptVerifier
	loginService     *auth.LoginService

	// Services
	userService          service.UserService
	serviceRecordService service.ServiceRecordService
}

// newApplication creates the application backed by PostgreSQL stores on db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:       cfg,
		logger:       logger,
		db:           db,
		userStore:    postgres.NewPostgresUserStore(db, logger),
		serviceStore: postgres.NewPostgresServiceStore(db, logger),
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// initServices builds the authentication components and services on top of
// the already assigned stores.
func (app *application) initServices() error {
	authCfg := app.config.Auth

	codec, err := auth.NewTokenCodec(authCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.tokenCodec = codec
	app.logger.Info("Token codec initialized",
		"token_lifetime_minutes", authCfg.TokenLifetimeMinutes)

	lookupTimeout := time.Duration(authCfg.IdentityLookupTimeoutMS) * time.Millisecond
	app.identityResolver = auth.NewIdentityResolver(app.userStore, lookupTimeout)
	app.passwordVerifier = auth.NewBcryptVerifier(authCfg.BCryptCost)

	app.loginService = auth.NewLoginService(
		auth.NewAuthenticator(app.userStore, app.passwordVerifier),
		app.tokenCodec,
		app.logger,
	)

	app.userService = service.NewUserService(app.userStore, app.passwordVerifier, app.db, app.logger)
	app.serviceRecordService = service.NewServiceRecordService(
		app.serviceStore,
		app.userStore,
		app.db,
		app.logger,
	)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
