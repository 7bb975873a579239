package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/analysis"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/config"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/confluence"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/db"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/github"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/llm"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/queue"
	"github.com/KOFI-GYIMAH/handoff-assistant/internal/service"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

// * App holds the services shared by the HTTP server and the CLI
type App struct {
	Config        *config.Config
	Collaborators *service.CollaboratorService
	Documents     *service.DocumentService
	Publisher     *service.PublishService
	History       *service.HistoryService

	// * Queue is nil unless RABBITMQ_URL is set
	Queue *queue.RabbitMQ

	database *db.PostgresDB
}

type Options struct {
	// * WithQueue connects to RabbitMQ when it is configured
	WithQueue bool
	// * MigrationsPath overrides db.DefaultMigrationsPath
	MigrationsPath string
}

// * New wires every component from cfg. The database and the broker are optional.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	gh, err := github.NewClient(cfg.GitHubToken, cfg.GitHubAPIURL)
	if err != nil {
		return nil, err
	}

	generator, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("initialize %s client: %w", cfg.LLM.Provider, err)
	}

	a := &App{Config: cfg}

	var runs models.RunStore = db.NopStore{}
	if cfg.DBURL != "" {
		database, err := db.NewPostgresDB(cfg.DBURL)
		if err != nil {
			return nil, err
		}

		migrations := opts.MigrationsPath
		if migrations == "" {
			migrations = db.DefaultMigrationsPath
		}
		if err := database.Migrate(migrations); err != nil {
			database.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("Successfully ran migrations")

		a.database = database
		runs = database
	} else {
		logger.Warn("DB_URL is not set, run history will not be recorded")
	}

	var jobs service.JobPublisher
	if opts.WithQueue && cfg.RabbitMQURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("initialize RabbitMQ: %w", err)
		}
		a.Queue = rabbitMQ
		jobs = rabbitMQ
	}

	analyzer := analysis.NewAnalyzer(gh, gh, generator, analysis.Options{
		DetailWorkers: cfg.Analysis.DetailWorkers,
		DetailTimeout: cfg.Analysis.DetailTimeout,
	})

	a.Collaborators = service.NewCollaboratorService(analyzer, runs)
	a.Documents = service.NewDocumentService(gh, generator, runs, cfg.Analysis.DetailWorkers)
	a.Publisher = service.NewPublishService(a.Documents, confluence.NewClient(cfg.Confluence), jobs, runs)
	a.History = service.NewHistoryService(runs)

	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Queue != nil {
		errs = append(errs, a.Queue.Close())
	}
	if a.database != nil {
		errs = append(errs, a.database.Close())
	}
	return errors.Join(errs...)
}
