package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classifieds/pkg/config"
	"classifieds/pkg/logger"
	app "classifieds/services/listing/internal/app"
	"classifieds/services/listing/internal/scheduler"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}).With("component", "expirer")
	defer log.Sync()

	infra, err := app.NewInfra(cfg, log)
	if err != nil {
		log.Error("Failed to initialize infrastructure: %v", err)
		panic(err)
	}
	defer func() {
		if infra.Publisher != nil {
			infra.Publisher.Close()
		}
		if infra.Redis != nil {
			infra.Redis.Close()
		}
		if sqlDB, err := infra.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	uc := app.NewUseCases(cfg, log, infra)
	sched := scheduler.New(uc.Lifecycle, log, 5*time.Minute)

	if *once {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := sched.RunOnce(ctx); err != nil {
			log.Error("Sweep failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := sched.Start(cfg.ExpireSchedule); err != nil {
		log.Error("Failed to start scheduler: %v", err)
		panic(err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
	log.Info("Expirer exited")
}
