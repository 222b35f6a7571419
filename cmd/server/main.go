package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/api"
	"github.com/expertgati/movers-web/internal/admin"
	"github.com/expertgati/movers-web/internal/blog"
	"github.com/expertgati/movers-web/internal/lead"
	"github.com/expertgati/movers-web/internal/media"
	"github.com/expertgati/movers-web/internal/pages"
	"github.com/expertgati/movers-web/internal/platform/config"
	"github.com/expertgati/movers-web/internal/platform/database"
	"github.com/expertgati/movers-web/internal/platform/health"
	"github.com/expertgati/movers-web/internal/platform/logger"
	"github.com/expertgati/movers-web/internal/platform/shutdown"
	"github.com/expertgati/movers-web/internal/platform/startup"
	"github.com/expertgati/movers-web/internal/seo"
	"github.com/expertgati/movers-web/internal/sitemap"
	"github.com/expertgati/movers-web/internal/team"
	"github.com/expertgati/movers-web/pkg/lifecycle"
	"github.com/expertgati/movers-web/pkg/token"
)

const flashTTL = 10 * time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	rdb, err := database.OpenRedis(ctx, cfg.Database.Redis, log)
	if err != nil {
		return err
	}
	redisStatus := database.NewRedisStatus(log)
	if rdb == nil {
		redisStatus.Update(false)
	}

	brand := seo.BrandFromConfig(cfg.Site)

	metaRepo := seo.NewRepository(db)
	leadRepo := lead.NewRepository(db)
	blogRepo := blog.NewRepository(db)
	blogSvc := blog.NewService(blogRepo)
	teamSvc := team.NewService(db, media.NewStore(cfg.Server.MediaDir, "/media"), log)

	var limiter *lead.IPLimiter
	if rdb != nil && cfg.Lead.MaxPerIPPerDay > 0 {
		limiter = lead.NewIPLimiter(rdb, redisStatus, log)
	}
	leadSvc := lead.NewService(leadRepo, limiter, cfg.Lead.MaxPerIPPerDay, log)

	var cache sitemap.Cache = sitemap.NewMemoryCache()
	if rdb != nil {
		cache = sitemap.NewRedisCache(rdb, redisStatus, log)
	}
	sitemapGen := sitemap.NewGenerator(brand.BaseURL, blogSvc, cache)

	initializer := &startup.Initializer{
		Migrators: []startup.Migrator{metaRepo, leadRepo, blogRepo, teamSvc},
		Sitemap:   sitemapGen,
		Leads:     leadSvc,
		Log:       log,
	}
	if err := initializer.InitializeApplication(ctx); err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	manager := lifecycle.NewManager(log)
	var checker *health.Checker
	if rdb != nil {
		checker = health.NewChecker(rdb, redisStatus, cfg.Database.Redis.CheckInterval, initializer.RebuildCache, log)
		if err := checker.Init(ctx); err != nil {
			return fmt.Errorf("read redis run id: %w", err)
		}
		checker.Check(ctx)
		handle, err := manager.NewServiceHandle("redis-health")
		if err != nil {
			return err
		}
		go checker.Run(handle)
	}

	signer, err := token.NewSigner(cfg.Server.FlashSecret, flashTTL)
	if err != nil {
		return err
	}
	if cfg.Server.FlashSecret == "" {
		log.Warn("server.flashSecret not set, notices will not survive a restart")
	}
	renderer, err := pages.NewRenderer()
	if err != nil {
		return err
	}

	gin.SetMode(cfg.Server.Mode)
	r, err := api.NewEngine(log, cfg.Server.TrustedProxies)
	if err != nil {
		return err
	}
	api.SetupRoutes(r, api.Handlers{
		Pages: pages.NewHandler(pages.Deps{
			Metadata: metaRepo,
			Leads:    leadSvc,
			Blog:     blogSvc,
			Team:     teamSvc,
			Flash:    pages.NewFlash(signer, cfg.Server.SecureCookie),
			Brand:    brand,
			Log:      log,
		}),
		Renderer: renderer,
		Sitemap:  sitemap.NewHandler(sitemapGen, log),
		Health:   health.NewHandler(db, checker),
		Admin: admin.NewHandler(admin.Deps{
			Config:   cfg.Admin,
			Metadata: metaRepo,
			Leads:    leadRepo,
			Blog:     blogSvc,
			Team:     teamSvc,
			Sitemap:  sitemapGen,
			Log:      log,
		}),
		StaticDir: cfg.Server.StaticDir,
		MediaDir:  cfg.Server.MediaDir,
	})

	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	closers := []func() error{func() error { return database.Close(db) }}
	if rdb != nil {
		closers = append(closers, rdb.Close)
	}
	shutdown.NewCoordinator(manager, log, closers...).ListenForSignalsAndShutdown(server, serverErr)
	return nil
}
