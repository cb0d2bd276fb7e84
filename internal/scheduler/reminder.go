// Package scheduler runs the per-day idempotent reminder state machine: at
// each configured hour of the day, at most one notification fires while any
// goal remains unmet.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"habitos/internal/core"
	"habitos/internal/notify"
	"habitos/internal/storage"
)

// ReminderTitle is the notification headline.
const ReminderTitle = "Metas diárias pendentes"

// ReminderScheduler checks today's totals against the goals and dispatches
// reminders at the configured hours. It holds no per-day state of its own;
// everything lives in the sent-flag store, so restarts are safe.
type ReminderScheduler struct {
	records  storage.RecordStore
	flags    storage.SentFlagStore
	notifier notify.Notifier
	goals    core.GoalTable
	hours    []int // ascending, local 24h clock
}

func NewReminderScheduler(records storage.RecordStore, flags storage.SentFlagStore, notifier notify.Notifier, goals core.GoalTable, hours []int) *ReminderScheduler {
	return &ReminderScheduler{
		records:  records,
		flags:    flags,
		notifier: notifier,
		goals:    goals,
		hours:    hours,
	}
}

// Tick runs one scheduling pass for the given instant. Each trigger-hour
// index fires at most once per day regardless of how many ticks occur after
// its threshold, as long as the goals stay unmet. Dispatch failures leave
// the index unmarked so a later tick retries.
func (s *ReminderScheduler) Tick(ctx context.Context, now time.Time) error {
	// Permission is a precondition, not part of the state machine.
	if s.notifier.PermissionState() != notify.PermissionGranted {
		return nil
	}

	todayKey := core.LocalDateKey(now)
	currentHour := now.Hour()

	records, err := s.records.LoadAllRecords(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	summary := core.AggregateOneDay(records, todayKey)

	missed := s.goals.Missed(summary)
	if len(missed) == 0 {
		// All goals met: garbage-collect the day's flags.
		if err := s.flags.ClearSentHours(ctx, todayKey); err != nil {
			return fmt.Errorf("clear sent hours: %w", err)
		}
		return nil
	}

	sent, err := s.flags.SentHourIndices(ctx, todayKey)
	if err != nil {
		return fmt.Errorf("load sent hours: %w", err)
	}
	sentSet := make(map[int]struct{}, len(sent))
	for _, idx := range sent {
		sentSet[idx] = struct{}{}
	}

	labels := make([]string, len(missed))
	for i, a := range missed {
		labels[i] = a.ReminderLabel()
	}
	body := fmt.Sprintf("Você ainda não alcançou: %s.", strings.Join(labels, ", "))

	for i, hour := range s.hours {
		if currentHour < hour {
			continue
		}
		if _, alreadySent := sentSet[i]; alreadySent {
			continue
		}
		if err := s.notifier.Notify(ctx, ReminderTitle, body); err != nil {
			// Not marked as sent; the next tick retries this index.
			slog.ErrorContext(ctx, "Reminder dispatch failed",
				"error", err,
				"date_key", todayKey,
				"hour_index", i,
				"hour", hour)
			continue
		}
		if err := s.flags.MarkHourSent(ctx, todayKey, i); err != nil {
			return fmt.Errorf("mark hour %d sent: %w", i, err)
		}
		slog.InfoContext(ctx, "Reminder dispatched",
			"date_key", todayKey,
			"hour_index", i,
			"hour", hour,
			"missed", labels)
	}

	return nil
}

// Run ticks on the given interval until ctx is done. Tick errors are logged
// and do not stop the loop; every tick is a self-contained unit of work.
func (s *ReminderScheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(ctx, time.Now()); err != nil {
				slog.ErrorContext(ctx, "Reminder tick failed", "error", err)
			}
		}
	}
}
