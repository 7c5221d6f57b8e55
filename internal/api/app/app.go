// Package app loads configuration and wires the quiz API together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/devsphere/quizapi/internal/api/http"
	"github.com/devsphere/quizapi/internal/api/quizgen"
	"github.com/devsphere/quizapi/internal/api/service"
	"github.com/devsphere/quizapi/internal/api/store"
	"github.com/devsphere/quizapi/internal/api/store/drivers/sqlite"
	"github.com/devsphere/quizapi/pkg/jwtx"
	"github.com/devsphere/quizapi/pkg/mailx"
	"github.com/devsphere/quizapi/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the quiz API with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.Tokens
	sender mailx.Sender

	accountService *service.AccountService
	resetService   *service.ResetService
	quizService    *service.QuizService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "quizapi",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		// Boot anyway so health endpoints work, but flag it loudly. Any
		// route that needs a token answers 500 until this is fixed.
		app.logger.Error("token secrets not configured",
			"access_set", cfg.AccessSecret != "",
			"refresh_set", cfg.RefreshSecret != "",
		)
	} else if cfg.AccessSecret == cfg.RefreshSecret {
		// A shared secret would let a refresh token pass as an access token.
		return nil, errors.New("access and refresh token secrets must differ")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.tokens = &jwtx.Tokens{
		Issuer:        cfg.Issuer,
		AccessSecret:  []byte(cfg.AccessSecret),
		RefreshSecret: []byte(cfg.RefreshSecret),
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
	}

	app.initMail()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("quiz api starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down quiz api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("quiz api stopped")
	return nil
}

// initDatabase opens the sqlite store and applies migrations.
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

// initMail picks the SMTP sender when configured, otherwise a logging no-op
// so the reset flow still works in dev.
func (app *Application) initMail() {
	if app.cfg.SMTPHost == "" {
		app.logger.Info("smtp not configured, reset emails will be logged only")
		app.sender = &mailx.LogSender{Logger: app.logger}
		return
	}

	sender, err := mailx.NewSMTPSender(mailx.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
	if err != nil {
		app.logger.Error("smtp client init failed, falling back to log sender", "error", err)
		app.sender = &mailx.LogSender{Logger: app.logger}
		return
	}
	app.sender = sender
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:  app.db,
		Tokens: app.tokens,
	}

	app.resetService = &service.ResetService{
		Store:  app.db,
		Sender: app.sender,
		OTPTTL: app.cfg.OTPTTL,
	}

	generator := &quizgen.Generator{}
	if app.cfg.LLMBaseURL != "" && app.cfg.LLMAPIKey != "" {
		generator.LLM = quizgen.NewLLMClient(quizgen.LLMConfig{
			BaseURL: app.cfg.LLMBaseURL,
			APIKey:  app.cfg.LLMAPIKey,
			Model:   app.cfg.LLMModel,
		})
		app.logger.Info("llm quiz generation enabled", "model", app.cfg.LLMModel)
	}
	app.quizService = &service.QuizService{Generator: generator}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens.AccessVerifier(),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AccountService = app.accountService
	router.ResetService = app.resetService
	router.QuizService = app.quizService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
