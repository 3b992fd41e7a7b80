package cli

import (
	"fmt"

	"github.com/diegoclair/advice-rotation-bot/internal/catalog"
	"github.com/diegoclair/advice-rotation-bot/internal/config"
	"github.com/diegoclair/advice-rotation-bot/internal/database"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/contract"
	"github.com/diegoclair/advice-rotation-bot/internal/domain/service"
	"github.com/diegoclair/advice-rotation-bot/internal/logger"
	"github.com/diegoclair/advice-rotation-bot/internal/metrics"
	"github.com/diegoclair/advice-rotation-bot/internal/notifier"
	"github.com/diegoclair/advice-rotation-bot/migrator"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
)

// app is the composition root shared by the commands
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *database.DB
	repos    contract.DataManager
	slack    *slack.Client
	registry *prometheus.Registry
	metrics  *metrics.Collector
	services *service.Instance
}

func newApp(cfg *config.Config) (*app, error) {
	log := logger.New(cfg.LogLevel, cfg.Environment)

	db, err := openDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(cfg.CatalogPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	slackClient := slack.New(cfg.SlackBotToken)
	repos := database.NewInstance(db)
	n := notifier.New(repos.Notification(), slackClient, cfg.SlackChannelID, log)

	services := service.NewInstance(repos, cat, n, collector, log, service.Options{
		QueueDepth:      cfg.QueueDepth,
		DefaultTimezone: cfg.Timezone,
	})

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		repos:    repos,
		slack:    slackClient,
		registry: registry,
		metrics:  collector,
		services: services,
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close database")
	}
}

func openDatabase(cfg *config.Config, log logrus.FieldLogger) (*database.DB, error) {
	db, err := database.New(cfg.DatabaseDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.WithField("driver", cfg.DatabaseDriver).Info("Running migrations...")
	if err := migrator.Migrate(db.DB(), cfg.DatabaseDriver); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Migrations completed successfully")

	return db, nil
}
