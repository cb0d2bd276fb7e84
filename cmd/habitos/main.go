package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"habitos/internal/amqp"
	"habitos/internal/backend"
	"habitos/internal/cli"
	"habitos/internal/core"
	apphttp "habitos/internal/http"
	"habitos/internal/notify"
	"habitos/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting habitos server")

	cfg := cli.LoadAndValidateConfig(logger)

	// Choose data backend (default: sqlite).
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	// AMQP is optional: without it records stay local and reminders are off.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPSyncQueue, cfg.AMQPReminderQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync and reminders", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized",
				"exchange", cfg.AMQPExchange,
				"sync_queue", cfg.AMQPSyncQueue,
				"reminder_queue", cfg.AMQPReminderQueue)
		}
	} else {
		logger.Info("AMQP disabled - records will not mirror to the backup")
	}

	var syncPublisher services.SyncPublisher
	var reminderPublisher notify.ReminderPublisher
	if amqpClient != nil {
		syncPublisher = amqpClient
		reminderPublisher = amqpClient
	}

	recordService := services.NewRecordService(result.Backend, syncPublisher)
	reportService := services.NewReportService(result.Backend, core.DefaultGoals())
	notifier := notify.NewAMQPNotifier(reminderPublisher, cfg.NotificationsEnabled)

	srv := apphttp.NewServer(":"+cfg.Port, recordService, reportService, notifier)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting habitos server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
