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

	"github.com/evotodo/todo-backend/internal/api"
	"github.com/evotodo/todo-backend/internal/core/service"
	"github.com/evotodo/todo-backend/internal/infrastructure/config"
	mongodb "github.com/evotodo/todo-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/evotodo/todo-backend/internal/infrastructure/db/redis"
	"github.com/evotodo/todo-backend/internal/infrastructure/queue"
	"github.com/evotodo/todo-backend/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		logg.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	taskRepo := mongodb.NewTaskRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	if err := taskRepo.EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("task indexes")
	}
	if err := activityRepo.EnsureIndexes(ctx); err != nil {
		logg.Fatal().Err(err).Msg("activity indexes")
	}

	activityService := service.NewActivityService(activityRepo, logg)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, logg)
	dispatcherCtx, stopDispatcher := context.WithCancel(ctx)
	dispatcher.Start(dispatcherCtx)
	defer stopDispatcher()

	taskService := service.NewTaskService(taskRepo, redisdb.NewStatsCache(rdb), dispatcher, logg)

	e := api.NewRouter(api.Deps{
		Mongo:       db,
		Redis:       rdb,
		Tasks:       taskService,
		Activity:    activityService,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logg,
	})

	go func() {
		logg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("todo-backend listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("shutdown error")
	}
}
