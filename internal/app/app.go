// Package app assembles the bot: configuration, storage, the conversation
// engine, the review channel relay and the operational HTTP surface.
package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/bagrikeng/tanlovbot/core/bootstrap"
	coreconfig "github.com/bagrikeng/tanlovbot/core/config"
	coredatabase "github.com/bagrikeng/tanlovbot/core/database"
	"github.com/bagrikeng/tanlovbot/internal/flow"
	"github.com/bagrikeng/tanlovbot/internal/ops"
	"github.com/bagrikeng/tanlovbot/internal/regions"
	"github.com/bagrikeng/tanlovbot/internal/relay"
	"github.com/bagrikeng/tanlovbot/internal/report"
	"github.com/bagrikeng/tanlovbot/internal/session"
	"github.com/bagrikeng/tanlovbot/internal/storage"
)

// App owns the long-lived pieces of the service.
type App struct {
	cfg       *coreconfig.Config
	store     storage.TxStore
	relay     *relay.Telegram
	engine    *flow.Engine
	metrics   *ops.Metrics
	readiness *ops.Readiness
	registry  *prometheus.Registry
}

// DatabaseConfig converts the application config into the database
// package's settings.
func DatabaseConfig(cfg *coreconfig.Config) coredatabase.Config {
	return coredatabase.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Name:           cfg.Database.Name,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: cfg.Database.MaxConnections,
	}
}

// New runs the bootstrap pipeline (logger, database, migrations) and wires
// the application graph.
func New(cfg *coreconfig.Config) (*App, error) {
	boot, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg,
		Database: DatabaseConfig(cfg),
	})
	if err != nil {
		return nil, err
	}

	store := storage.NewPostgres(boot.DB)
	loader := regions.NewLoader(cfg.Contest.RegionsFile)
	channelRelay := relay.NewTelegram(cfg.Contest.ChannelID)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := ops.NewMetrics(promRegistry)

	engine := flow.New(
		session.NewStore(),
		store,
		channelRelay,
		loader,
		report.NewGenerator(store, loader),
		metrics,
		cfg.Contest.AdminIDs,
	)

	return &App{
		cfg:       cfg,
		store:     store,
		relay:     channelRelay,
		engine:    engine,
		metrics:   metrics,
		readiness: &ops.Readiness{},
		registry:  promRegistry,
	}, nil
}

// NewReporter builds just the pieces the offline export needs. The
// returned cleanup closes the database connection.
func NewReporter(cfg *coreconfig.Config) (*report.Generator, func(), error) {
	boot, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg,
		Database: DatabaseConfig(cfg),
	})
	if err != nil {
		return nil, nil, err
	}
	store := storage.NewPostgres(boot.DB)
	loader := regions.NewLoader(cfg.Contest.RegionsFile)
	cleanup := func() { _ = boot.DB.Close() }
	return report.NewGenerator(store, loader), cleanup, nil
}

// Run serves the bot and the ops endpoint until ctx is cancelled or either
// of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	opsServer := ops.NewServer(a.cfg.Contest.OpsListen, a.readiness, a.registry)
	g.Go(func() error { return opsServer.Run(ctx) })
	g.Go(func() error { return a.runBot(ctx) })

	return g.Wait()
}
