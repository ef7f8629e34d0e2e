package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/harborview-interiors/schedule-planner/internal/backend"
	"github.com/harborview-interiors/schedule-planner/internal/config"
	"github.com/harborview-interiors/schedule-planner/internal/handler"
	"github.com/harborview-interiors/schedule-planner/internal/planner"
	"github.com/harborview-interiors/schedule-planner/internal/poller"
	"github.com/harborview-interiors/schedule-planner/internal/taxonomy"
)

func main() {
	/**********************************************
	 * create logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * load configuration
	 **********************************************/
	// a missing .env is fine, the environment may be set directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("cannot load configuration", "error", err)
		return
	}

	/**********************************************
	 * pick the taxonomy store
	 **********************************************/
	var store taxonomy.Store
	switch cfg.Taxonomy.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       0,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Error("cannot connect to redis", "error", err)
			return
		}
		store = taxonomy.NewRedisStore(rdb)
	case "file":
		store = taxonomy.NewFileStore(cfg.Taxonomy.Dir)
	default:
		logger.Error("unknown taxonomy store", "store", cfg.Taxonomy.Store)
		return
	}
	lists := taxonomy.NewLists(store)

	/**********************************************
	 * create the CRM client and the planner
	 **********************************************/
	client := backend.NewClient(cfg)
	p := planner.New(client)

	/**********************************************
	 * create handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, client, p, lists)
	if err != nil {
		logger.Error("cannot create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * start the background pollers
	 **********************************************/
	notificationPoller := poller.New(time.Duration(cfg.Poll.NotificationInterval)*time.Second, handler.RefreshNotifications)
	metricsPoller := poller.New(time.Duration(cfg.Poll.MetricsInterval)*time.Second, handler.RefreshMetrics)

	if cfg.Backend.ServiceToken != "" {
		notificationPoller.Start(context.Background())
		metricsPoller.Start(context.Background())
		defer notificationPoller.Stop()
		defer metricsPoller.Stop()
	} else {
		logger.Warn("no service token configured, notification and metric polling disabled")
	}

	/**********************************************
	 * start the HTTP server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("cannot start server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
