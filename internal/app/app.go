package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/linkshelf/linkshelf/internal/config"
	"github.com/linkshelf/linkshelf/internal/domain"
	"github.com/linkshelf/linkshelf/internal/enrich"
	"github.com/linkshelf/linkshelf/internal/httpserver"
	"github.com/linkshelf/linkshelf/internal/httpserver/deps"
	"github.com/linkshelf/linkshelf/internal/index"
	"github.com/linkshelf/linkshelf/internal/links"
	"github.com/linkshelf/linkshelf/internal/logger"
	"github.com/linkshelf/linkshelf/internal/metadata"
	"github.com/linkshelf/linkshelf/internal/redis"
	"github.com/linkshelf/linkshelf/internal/scheduler"
	"github.com/linkshelf/linkshelf/internal/sources/rules"
	redisstore "github.com/linkshelf/linkshelf/internal/store/redis"
	"github.com/linkshelf/linkshelf/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	enricher    *enrich.Enricher
	pending     *scheduler.PendingConsumer
	sweeper     *scheduler.EnrichmentSweeper
	reminders   *scheduler.ReminderScheduler
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	store := redisstore.NewStore(redisClient)
	widget := redisstore.NewWidgetStore(redisClient)
	memIndex := index.NewMemoryIndex()

	// Classifiers: built-in rules, optionally extended from a yaml file.
	classifier := domain.DefaultClassifier()
	groups := domain.DefaultGroupClassifier()
	if cfg.RulesFile != "" {
		rulesCfg, err := rules.NewLoader(cfg.RulesFile).Load()
		if err != nil {
			loggerClient.Errorf("Failed to load rules file: %v", err)
			os.Exit(1)
		}
		if err := rules.NewMapper().Apply(rulesCfg, classifier, groups); err != nil {
			loggerClient.Errorf("Failed to apply rules file: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("classifier rules extended",
			logger.String("file", cfg.RulesFile))
	}

	metaCfg := metadata.DefaultConfig()
	metaCfg.UserAgent = cfg.UserAgent
	metaCfg.PageTimeout = cfg.PageTimeout
	metaCfg.VideoTimeout = cfg.VideoTimeout
	metaSvc := metadata.New(metaCfg, classifier, loggerClient)

	enricher := enrich.New(metaSvc, store, widget, memIndex, loggerClient)

	linkSvc := links.New(store, memIndex, widget, enricher, classifier, groups, cfg.PreviewDebounce, loggerClient)

	// Warm the memory index and the widget projection from Redis.
	if _, err := linkSvc.Resync(context.Background()); err != nil {
		loggerClient.Warn("failed to load links from redis on startup",
			logger.Error(err))
	}

	drainTrigger := make(chan struct{}, 1)
	pending := scheduler.NewPendingConsumer(
		store,
		linkSvc,
		loggerClient,
		cfg.PendingDrainInterval,
		drainTrigger,
	)

	sweeper := scheduler.NewEnrichmentSweeper(
		memIndex,
		enricher,
		loggerClient,
		cfg.SweepInterval,
	)

	reminders := scheduler.NewReminderScheduler(
		store,
		loggerClient,
		cfg.ReminderTick,
	)

	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Version:      version.Version,
		Commit:       version.Commit,
		BuildDate:    version.BuildDate,
		GoVersion:    version.GoVersion,
		TimeNow:      time.Now,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		RedisClient:  redisClient,
		MemoryIndex:  memIndex,
		Links:        linkSvc,
		Metadata:     metaSvc,
		DrainTrigger: drainTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		enricher:    enricher,
		pending:     pending,
		sweeper:     sweeper,
		reminders:   reminders,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Linkshelf v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Linkshelf %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start pending consumer (drains the share inbox immediately, then periodically)
	if err := a.pending.Start(ctx); err != nil {
		return fmt.Errorf("failed to start pending consumer: %w", err)
	}
	a.logger.Info("pending consumer started",
		logger.Duration("interval", a.cfg.PendingDrainInterval))

	// Start enrichment sweeper
	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start enrichment sweeper: %w", err)
	}
	a.logger.Info("enrichment sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	// Start reminder scheduler and its event consumer
	if err := a.reminders.Start(ctx); err != nil {
		return fmt.Errorf("failed to start reminder scheduler: %w", err)
	}
	a.logger.Info("reminder scheduler started",
		logger.Duration("tick", a.cfg.ReminderTick))
	go a.consumeReminders(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.pending.Stop()
	a.sweeper.Stop()
	a.reminders.Stop()

	// Let in-flight enrichment passes finish before closing the store.
	a.enricher.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Linkshelf stopped cleanly")
	return nil
}

// consumeReminders logs fired reminders with their deep link. A
// notification transport can hang off this later.
func (a *App) consumeReminders(ctx context.Context) {
	for {
		select {
		case event := <-a.reminders.Events():
			a.logger.Info("reminder due",
				logger.String("link_id", event.LinkID),
				logger.String("title", event.Title),
				logger.String("deep_link", domain.DeepLinkFor(event.LinkID)),
				logger.Time("fire_at", event.FireAt))
		case <-ctx.Done():
			return
		}
	}
}
