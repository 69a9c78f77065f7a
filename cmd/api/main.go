package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/projects-miniapp/config"
	httpapi "github.com/GoSim-25-26J-441/projects-miniapp/internal/api/http"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/bootstrap"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/logging"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/cache"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/cronjob"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/repository"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/service"
)

const serviceName = "projects-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{Config: &cfg.Database})
	if err != nil {
		logger.Error("startup", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		logger.Error("startup", err)
		os.Exit(1)
	}

	var (
		pageCache service.PageCache
		cachePing httpapi.Pinger
		scheduler *cronjob.Scheduler
	)
	if rdb != nil {
		defer rdb.Close()

		pc := cache.NewPageCache(rdb, cfg.Cache.PageTTL)
		pageCache = pc
		cachePing = httpapi.PingFunc(pc.Ping)

		scheduler = cronjob.NewScheduler(cfg.Cache.PurgeCron, pc, logger)
		if err := scheduler.Start(); err != nil {
			logger.Error("startup", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("startup", "REDIS_ADDR not set, page cache disabled")
	}

	svc := service.NewProjectService(repository.NewProjectRepository(db.SQL), pageCache, logger)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		CORSOrigins:    cfg.Server.CORSOrigins,
		BotToken:       cfg.Telegram.BotToken,
		InitDataMaxAge: cfg.Telegram.InitDataMaxAge,
		DB:             db,
		Cache:          cachePing,
		Projects:       svc,
		Metrics:        httpapi.NewMetrics(),
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("startup", "listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", err)
	}
}
