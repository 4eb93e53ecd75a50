package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/api"
	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/catalog"
	"github.com/Kerhoff/familycart/internal/config"
	"github.com/Kerhoff/familycart/internal/metrics"
	"github.com/Kerhoff/familycart/internal/notify"
	"github.com/Kerhoff/familycart/internal/repository"
	"github.com/Kerhoff/familycart/internal/repository/firestore"
	"github.com/Kerhoff/familycart/internal/repository/memory"
	"github.com/Kerhoff/familycart/internal/repository/postgres"
	"github.com/Kerhoff/familycart/internal/service"
	"github.com/Kerhoff/familycart/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	mainLog := logger.Component(l, "main")
	mainLog.WithField("store", cfg.Store).Info("Starting FamilyCart...")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		mainLog.Info("Received shutdown signal...")
		cancel()
	}()

	// Firebase: auth always, Firestore only when it is the store
	fb, err := config.NewFirebase(ctx, cfg, cfg.Store == config.StoreFirestore, l)
	if err != nil {
		mainLog.Fatalf("Failed to initialize Firebase: %v", err)
	}
	defer fb.Close()

	store, closeStore, err := openStore(ctx, cfg, fb, l)
	if err != nil {
		mainLog.Fatalf("Failed to open %s store: %v", cfg.Store, err)
	}
	defer closeStore()

	provider, err := auth.NewFirebaseProvider(ctx, fb.Auth, cfg.FirebaseAPIKey)
	if err != nil {
		mainLog.Fatalf("Failed to create auth provider: %v", err)
	}

	m := metrics.New()

	// Catalog
	client, err := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, m)
	if err != nil {
		mainLog.Fatalf("Failed to create catalog client: %v", err)
	}
	products := catalog.NewRepository(client, cfg.CatalogRefreshInterval, l)
	go products.StartRefresher(ctx, cfg.CatalogRefreshInterval)

	notifier, closeNotifiers := openNotifiers(cfg, l)
	defer closeNotifiers()

	// Service layer
	svc := service.New(l, store, provider, products, notifier, m, cfg.ResolveConcurrency)

	apiServer := api.NewServer(svc, products, m, l)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              ":" + cfg.PrometheusPort,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		mainLog.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLog.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	go func() {
		mainLog.Infof("Metrics server listening on :%s", cfg.PrometheusPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			mainLog.Errorf("Metrics server error: %v", err)
		}
	}()

	mainLog.Info("FamilyCart started successfully")

	<-ctx.Done()

	mainLog.Info("Shutting down HTTP servers...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		mainLog.WithError(err).Warn("HTTP server did not shut down cleanly")
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		mainLog.WithError(err).Warn("Metrics server did not shut down cleanly")
	}

	mainLog.Info("FamilyCart stopped")
}

func openStore(ctx context.Context, cfg *config.Config, fb *config.Firebase, l *logrus.Logger) (repository.Store, func(), error) {
	switch cfg.Store {
	case config.StoreFirestore:
		return firestore.NewStore(fb.Firestore), func() {}, nil

	case config.StorePostgres:
		db, err := config.NewDatabase(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, l)
		if err != nil {
			return repository.Store{}, nil, err
		}
		if err := db.Migrate(cfg.MigrationsPath); err != nil {
			db.Close()
			return repository.Store{}, nil, err
		}
		return postgres.NewStore(db.DB), func() { db.Close() }, nil

	default:
		l.Warn("Using in-memory store, data is lost on restart")
		return memory.NewStore(memory.NewDatabase()), func() {}, nil
	}
}

// openNotifiers builds the configured purchase notifiers. A channel that
// fails to connect is logged and skipped.
func openNotifiers(cfg *config.Config, l *logrus.Logger) (notify.Notifier, func()) {
	notifyLog := logger.Component(l, "notify")
	var (
		notifiers notify.Multi
		closers   []func() error
	)

	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, l)
		if err != nil {
			notifyLog.WithError(err).Error("Failed to create Telegram notifier")
		} else {
			notifiers = append(notifiers, tg)
		}
	}

	if cfg.RabbitMQURL != "" {
		mq, err := notify.NewRabbitMQ(cfg.RabbitMQURL, l)
		if err != nil {
			notifyLog.WithError(err).Error("Failed to connect to RabbitMQ")
		} else {
			notifiers = append(notifiers, mq)
			closers = append(closers, mq.Close)
		}
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				notifyLog.WithError(err).Warn("Failed to close notifier")
			}
		}
	}
	if len(notifiers) == 0 {
		return notify.Nop{}, closeAll
	}
	return notifiers, closeAll
}
