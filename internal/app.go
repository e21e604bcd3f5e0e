package internal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/s-larionov/process-manager"
	"gorm.io/gorm"

	"github.com/dealflow-labs/sponsorship-board/internal/api"
	"github.com/dealflow-labs/sponsorship-board/internal/config"
	"github.com/dealflow-labs/sponsorship-board/internal/events"
	"github.com/dealflow-labs/sponsorship-board/internal/metrics"
	"github.com/dealflow-labs/sponsorship-board/internal/persistence"
	"github.com/dealflow-labs/sponsorship-board/internal/secrets"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
	"github.com/dealflow-labs/sponsorship-board/pkg/health"
	"github.com/dealflow-labs/sponsorship-board/pkg/prometheus"
)

type Application struct {
	sigChan <-chan os.Signal
	manager *process.Manager
	cfg     config.App
	db      *gorm.DB
	nc      *nats.Conn

	repo  *persistence.Repo
	store *store.Store
}

func NewApplication(cfg config.App) (*Application, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a := &Application{
		sigChan: sigChan,
		cfg:     cfg,
		manager: process.NewManager(),
	}

	err := a.bootstrap()
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Application) Run() {
	a.manager.StartAll()
	a.registerShutdown()
}

func (a *Application) bootstrap() error {
	initializers := []func() error{
		a.initDB,

		// Init Dependencies
		a.initStore,
		a.initEvents,

		// Init Workers: Application
		a.initSyncer,
		a.initAPI,

		// Init Workers: System
		a.initPrometheusWorker,
		a.initHealthWorker,
	}

	for _, initializer := range initializers {
		if err := initializer(); err != nil {
			return err
		}
	}

	return nil
}

func (a *Application) initDB() error {
	dsn, err := secrets.ResolveDSN(a.cfg.DB, a.cfg.Vault, secrets.VaultReader)
	if err != nil {
		return err
	}

	cfg := a.cfg.DB
	cfg.DSN = dsn

	db, err := persistence.Open(cfg)
	if err != nil {
		return err
	}

	if err = persistence.Migrate(db); err != nil {
		return err
	}

	a.db = db
	a.repo = persistence.NewRepo(db)

	return nil
}

func (a *Application) initStore() error {
	st, err := OpenStore(context.Background(), a.repo, a.cfg.Fixtures.Path)
	if err != nil {
		return err
	}

	watcher := metrics.NewStoreWatcher(st)
	st.Subscribe(watcher.Listen)
	watcher.Refresh()

	a.store = st

	return nil
}

func (a *Application) initEvents() error {
	if !a.cfg.Nats.Enabled {
		log.Info().Msg("nats is disabled, events are not published")

		return nil
	}

	nc, err := nats.Connect(
		a.cfg.Nats.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(a.cfg.Nats.MaxReconnects),
		nats.ReconnectWait(a.cfg.Nats.ReconnectTimeout),
	)
	if err != nil {
		return err
	}
	a.nc = nc

	pb := events.NewPublisher(nc, a.cfg.Nats.SubjectPrefix)
	a.store.Subscribe(pb.Listen)

	cs := events.NewConsumer(nc, a.store, a.cfg.Nats.SubjectPrefix)
	a.manager.AddWorker(process.NewCallbackWorker("notification-consumer", cs.Start))

	return nil
}

func (a *Application) initSyncer() error {
	syncer := persistence.NewSyncer(a.repo, a.store, a.cfg.Persist.FlushInterval)
	a.manager.AddWorker(process.NewCallbackWorker("persistence-syncer", syncer.Start))

	return nil
}

func (a *Application) initAPI() error {
	srv := api.NewHTTPServer(a.cfg.API, api.NewServer(a.store).Router())
	a.manager.AddWorker(process.NewServerWorker("API", srv))

	return nil
}

func (a *Application) initPrometheusWorker() error {
	srv := prometheus.NewServer(a.cfg.Prometheus.Listen, "/metrics")
	a.manager.AddWorker(process.NewServerWorker("prometheus", srv))

	return nil
}

func (a *Application) initHealthWorker() error {
	srv := health.NewHealthCheckServer(a.cfg.Health.Listen, "/status", health.DefaultHandler(a.manager))
	a.manager.AddWorker(process.NewServerWorker("health", srv))

	return nil
}

func (a *Application) registerShutdown() {
	go func(manager *process.Manager) {
		<-a.sigChan

		manager.StopAll()
	}(a.manager)

	a.manager.AwaitAll()

	if a.nc != nil {
		a.nc.Close()
	}

	if ps, err := a.db.DB(); err == nil {
		if err = ps.Close(); err != nil {
			log.Error().Err(err).Msg("close database")
		}
	}
}
