// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "minivenmo/internal/api"
	"minivenmo/internal/api/handler"
	"minivenmo/internal/cardnetwork"
	"minivenmo/internal/config"
	"minivenmo/internal/repository"
	"minivenmo/internal/repository/sqlite"
	"minivenmo/internal/service"
	"minivenmo/internal/util"
	"minivenmo/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Collaborators
	Charger cardnetwork.Charger
	Archive repository.PaymentArchive

	// Services
	Ledger service.LedgerService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()

	// 2. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Open the in-memory payment archive database
	database, err := db.NewSQLiteDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to open archive database: %w", err)
	}
	app.DB = database

	archive, err := sqlite.NewPaymentArchive(database)
	if err != nil {
		return fmt.Errorf("failed to initialize payment archive: %w", err)
	}
	app.Archive = archive
	app.Logger.Info("Payment archive initialized.")

	// 4. Initialize the card network collaborator
	app.Charger = cardnetwork.NewGateway(app.Config.DeclinedCards...)

	// 5. Initialize Services
	app.Ledger = service.NewLedgerService(
		app.Logger,
		app.Charger,
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.Archive,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	ledgerHandler := handler.NewLedgerHandler(app.Ledger, app.Logger)
	app.HTTPHandler = router.NewRouter(ledgerHandler, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close archive database", "error", err)
			return fmt.Errorf("failed to close archive database: %w", err)
		}
		app.Logger.Info("Archive database closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
