package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ChartFeed/internal/cache"
	"ChartFeed/internal/catalog"
	"ChartFeed/internal/collector"
	"ChartFeed/internal/config"
	"ChartFeed/internal/datafeed"
	"ChartFeed/internal/logging"
	"ChartFeed/internal/notifier"
	"ChartFeed/internal/scheduler"
	"ChartFeed/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ChartFeed starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("[FATAL] init logger: %v", err)
	}
	defer logger.Sync()

	// Catalog
	cat := catalog.Default()
	if cfg.Catalog.File != "" {
		cat, err = catalog.Load(cfg.Catalog.File)
		if err != nil {
			logger.Fatal("load catalog", zap.String("file", cfg.Catalog.File), zap.Error(err))
		}
	}
	logger.Info("catalog loaded", zap.Int("symbols", len(cat.Symbols())))

	// Cache
	var backend cache.Backend
	if cfg.Cache.SQLitePath != "" {
		sb, err := cache.NewSQLiteBackend(cfg.Cache.SQLitePath, logger)
		if err != nil {
			logger.Warn("init sqlite cache failed, using memory", zap.Error(err))
			backend = cache.NewMemoryBackend()
		} else {
			backend = sb
		}
	} else {
		backend = cache.NewMemoryBackend()
	}
	store := cache.NewStore(backend,
		cache.WithTTL(cfg.Cache.TTL),
		cache.WithNamespace(cfg.Cache.Namespace),
		cache.WithLogger(logger.Named("cache")))
	defer store.Close()

	// Fetcher
	fetcher := collector.NewHTTPFetcher(cfg.DataSource.BaseURL, cfg.Proxy,
		collector.WithTimeout(cfg.DataSource.Timeout),
		collector.WithRateLimit(cfg.DataSource.RequestsPerSecond),
		collector.WithLogger(logger.Named("collector")))
	logger.Info("data source", zap.String("fetcher", fetcher.Name()), zap.String("baseURL", cfg.DataSource.BaseURL))

	feed, err := datafeed.New(cat, store, fetcher, cfg.Policy(), logger.Named("datafeed"))
	if err != nil {
		logger.Fatal("init datafeed", zap.Error(err))
	}
	logger.Info("synthesis policy", zap.String("policy", string(feed.Policy)))

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Notifier
	var tn *notifier.TelegramNotifier
	var n notifier.Notifier = notifier.Noop{}
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, logger.Named("telegram"))
		n = tn
	}

	// Scheduler
	sched := scheduler.NewScheduler(ctx, feed, n, cfg.Schedule.WarmSymbols, logger.Named("scheduler"))
	if err := sched.Register(cfg.Schedule.WarmCron); err != nil {
		logger.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, warming cache now")
		go sched.RunWarmNow()
	}

	// HTTP server
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.NewRouter(feed, logger.Named("http")),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}
	cancel()
	log.Println("[INFO] ChartFeed stopped")
}
