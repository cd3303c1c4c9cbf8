// Package server wires the gigbook backend together: configuration,
// database, object storage, the assistant chain and the gRPC server, and
// handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gigbook/internal/finance"
	"github.com/dmitrijs2005/gigbook/internal/logging"
	"github.com/dmitrijs2005/gigbook/internal/money"
	"github.com/dmitrijs2005/gigbook/internal/server/assistant"
	"github.com/dmitrijs2005/gigbook/internal/server/config"
	"github.com/dmitrijs2005/gigbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gigbook/internal/server/services"
	"github.com/dmitrijs2005/gigbook/internal/server/storage"

	gs "github.com/dmitrijs2005/gigbook/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	services gs.Services
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, os.Stdout, c.LogDebug)
	if err != nil {
		return nil, err
	}

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := storage.NewS3Store(ctx, storage.Options{
		User:     c.S3RootUser,
		Password: c.S3RootPassword,
		Bucket:   c.S3Bucket,
		Region:   c.S3Region,
		Endpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("s3 init error: %w", err)
	}

	analyzer := finance.NewAnalyzer(logger, loc)
	asst := assistant.New(assistant.Options{
		Logger:   logger,
		Location: loc,
		Timeout:  c.AssistantTimeout,
		Money:    money.Default,
	}, completers(ctx, c, logger)...)

	reports := services.NewReportService(db, rm, analyzer)
	jobs := services.NewJobService(db, rm, analyzer, logger)

	svc := gs.Services{
		Users:     services.NewUserService(db, rm, c, logger),
		Clients:   services.NewClientService(db, rm, logger),
		Jobs:      jobs,
		Reports:   reports,
		Settings:  services.NewSettingsService(db, rm),
		Calendar:  services.NewCalendarService(db, rm),
		Drafts:    services.NewDraftService(db, rm),
		Files:     services.NewFileService(store, logger),
		Assistant: services.NewAssistantService(db, rm, asst),
		Export:    services.NewExportService(db, rm, reports, jobs, store, logger),
	}

	return &App{config: c, logger: logger, db: db, services: svc}, nil
}

// completers builds the assistant backends that have credentials
// configured, Gemini first.
func completers(ctx context.Context, c *config.Config, logger logging.Logger) []assistant.Completer {
	var out []assistant.Completer

	if c.GeminiAPIKey != "" {
		g, err := assistant.NewGeminiCompleter(ctx, c.GeminiAPIKey, c.GeminiModel)
		if err != nil {
			logger.Warn(ctx, "gemini disabled", "error", err.Error())
		} else {
			out = append(out, g)
		}
	}

	if c.OpenRouterAPIKey != "" {
		o, err := assistant.NewOpenRouterCompleter(assistant.OpenRouterOptions{
			URL:     c.OpenRouterURL,
			APIKey:  c.OpenRouterAPIKey,
			Models:  c.OpenRouterModels,
			Timeout: c.AssistantTimeout,
		})
		if err != nil {
			logger.Warn(ctx, "openrouter disabled", "error", err.Error())
		} else {
			out = append(out, o)
		}
	}

	if len(out) == 0 {
		logger.Info(ctx, "no assistant backend configured, keyword answers only")
	}
	return out
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
	// stdout may refuse fsync; there is nowhere left to report it.
	_ = logging.Sync(app.logger)
}
