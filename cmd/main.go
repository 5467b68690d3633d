package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"global-terrorism-dashboard/internal/auth"
	"global-terrorism-dashboard/internal/client"
	"global-terrorism-dashboard/internal/config"
	"global-terrorism-dashboard/internal/controller"
	"global-terrorism-dashboard/internal/db"
	"global-terrorism-dashboard/internal/effects"
	httpserver "global-terrorism-dashboard/internal/http"
	"global-terrorism-dashboard/internal/logger"
	"global-terrorism-dashboard/internal/metrics"
	"global-terrorism-dashboard/internal/model"
	"global-terrorism-dashboard/internal/repository"
	"global-terrorism-dashboard/internal/service"
	"global-terrorism-dashboard/internal/store"
	"global-terrorism-dashboard/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("global-terrorism-dashboard", "error").WithError(err).Fatal("load config")
	}

	log := logger.New("global-terrorism-dashboard", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	st := store.New(store.InitialState(time.Now()),
		store.WithLogger(log.Component("store")),
		store.WithMetrics(m),
	)

	authClient := client.NewAuthClient(client.NewFastHTTP(client.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Metrics: m,
	}))
	session := auth.NewSession(authClient, auth.NewFileStorage(cfg.SessionFile), log.Component("auth"))
	defer session.Close()
	service.ResetStoreOnLogout(session, st)

	eventClient := client.NewEventClient(client.NewFastHTTP(client.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Tokens:  session,
		Metrics: m,
	}), cfg.APIPageSize)

	eff := effects.New(eventClient, st, log.Component("effects"), cfg.EffectsBufferSize, cfg.APITimeout)
	effectsSub := st.Subscribe(eff.Listen)

	var (
		journalRepo repository.ActionRepository
		journal     service.JournalWorker
		journalSub  *store.Subscription
		conn        clickhouse.Conn
	)
	if cfg.JournalEnabled() {
		conn, err = db.NewConnection(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("connect clickhouse")
		}
		if err := db.RunMigrations(ctx, conn); err != nil {
			log.WithError(err).Fatal("migrate")
		}
		journalRepo = repository.NewActionRepository(conn)
		journal = service.NewBatchJournalWorker(journalRepo, log.Component("journal"), m,
			cfg.JournalBufferSize, cfg.JournalBatchSize, cfg.JournalFlushEvery)
		journalSub = st.Subscribe(journal.Listen)
	} else {
		log.Info("CLICKHOUSE_ADDR not set, action journal disabled")
	}

	location := service.StaticLocation(model.Coordinates{
		Latitude:  cfg.OriginLatitude,
		Longitude: cfg.OriginLongitude,
	})
	dashboard := service.NewDashboardService(st, validation.NewEventValidator(), session, location,
		journalRepo, log.Component("service"))
	server := httpserver.NewServer(cfg, controller.NewDashboardController(dashboard), reg, log.Component("http"))

	if _, err := session.AutoLogin(); err == nil {
		st.Dispatch(store.FetchEvents{})
	} else if !errors.Is(err, auth.ErrNotAuthenticated) {
		log.WithError(err).Warn("restore session")
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPPort).Info("starting server")
		serverErr <- server.Listen(cfg.HTTPPort)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.WithError(err).Error("server stopped")
		exitCode = 1
	}

	if err := server.Shutdown(); err != nil {
		log.WithError(err).Warn("server shutdown")
	}

	effectsSub.Unsubscribe()
	eff.Shutdown()

	if journal != nil {
		journalSub.Unsubscribe()
		journal.Shutdown()
		if err := conn.Close(); err != nil {
			log.WithError(err).Warn("close clickhouse")
		}
	}

	log.Info("bye")
	if exitCode != 0 {
		session.Close()
		os.Exit(exitCode)
	}
}
