package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/starclub-backend/internal/config"
	"github.com/sefazor/starclub-backend/internal/job"
	"github.com/sefazor/starclub-backend/internal/service"
	"github.com/sefazor/starclub-backend/pkg/database"
	"github.com/sefazor/starclub-backend/pkg/logger"
	"github.com/sefazor/starclub-backend/pkg/mq"
	"github.com/sefazor/starclub-backend/pkg/storage"
)

func main() {
	cfg, dotenv, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	if !dotenv {
		zl.Info("no .env file found, using process environment")
	}

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Options{
		Driver:   cfg.Database.Driver,
		URL:      cfg.Database.URL,
		Attempts: cfg.Database.ConnectAttempts,
	}, zl)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.RunMigrations(ctx, db); err != nil {
		return err
	}

	// Restaurant image uploads need R2.
	var images service.ImageStorage
	if cfg.R2.Enabled() {
		r2, err := storage.NewCloudflareStorage(ctx, cfg.R2, zl)
		if err != nil {
			return err
		}
		images = r2
	} else {
		zl.Warn("R2 storage is not configured, restaurant image uploads are disabled")
	}

	var publisher interface {
		service.EventPublisher
		Close() error
	} = mq.NopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := mq.NewPublisher(cfg.RabbitURL, cfg.VisitExchange)
		if err != nil {
			return err
		}
		publisher = p
	}
	defer publisher.Close()

	api, err := InitializeAPI(cfg, db, images, publisher, zl)
	if err != nil {
		return fmt.Errorf("initialize api: %w", err)
	}

	scheduler, err := job.NewScheduler(cfg.StatsReportSpec, api.StatsJob)
	if err != nil {
		return fmt.Errorf("schedule stats report: %w", err)
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("port", cfg.Port))
		errCh <- api.App.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	if err := api.App.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
