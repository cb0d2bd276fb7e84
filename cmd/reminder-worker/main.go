package main

import (
	"context"
	"errors"
	"time"

	"habitos/internal/amqp"
	"habitos/internal/cli"
	"habitos/internal/core"
	"habitos/internal/notify"
	"habitos/internal/scheduler"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting reminder-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// SQLite holds the record log and the per-day dispatch flags.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Reminders go out through the reminders queue; without a broker there is
	// nowhere to deliver them.
	var reminderPublisher notify.ReminderPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPSyncQueue, cfg.AMQPReminderQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, reminders will not be delivered", "error", err)
		} else {
			defer amqpClient.Close()
			reminderPublisher = amqpClient
			logger.Info("AMQP client initialized", "reminder_queue", cfg.AMQPReminderQueue)
		}
	} else {
		logger.Info("AMQP disabled - reminders will not be delivered")
	}

	notifier := notify.NewAMQPNotifier(reminderPublisher, cfg.NotificationsEnabled)

	reminders := scheduler.NewReminderScheduler(repo, repo, notifier, core.DefaultGoals(), cfg.NotificationHours)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	logger.Info("Reminder scheduler configured",
		"hours", cfg.NotificationHours,
		"tick_interval", cfg.ReminderTickInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	if err := reminders.Run(ctx, cfg.ReminderTickInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Reminder scheduler stopped with error", "error", err)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Reminder-worker shutdown complete")
}
