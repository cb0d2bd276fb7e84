package worker

import (
	"context"
	"fmt"
	"log/slog"

	"habitos/internal/amqp"
	"habitos/internal/core"
	"habitos/internal/sheets"
)

// SyncStore is the slice of the repository the backup worker needs.
type SyncStore interface {
	GetRecord(ctx context.Context, id int64) (core.Record, error)
	GetPendingSyncRecords(ctx context.Context, limit int) ([]core.Record, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

// SyncWorker mirrors habit records from SQLite to the Google Sheets backup.
type SyncWorker struct {
	storage   SyncStore
	backup    sheets.RecordWriter
	batchSize int
}

func NewSyncWorker(storage SyncStore, backup sheets.RecordWriter, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		backup:    backup,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single record sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	rec, err := w.storage.GetRecord(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get record from storage: %w", err)
	}

	if err := w.mirrorRecord(ctx, rec.ID, rec); err != nil {
		return fmt.Errorf("mirror record to backup: %w", err)
	}

	return nil
}

// ProcessPendingRecords mirrors any records that haven't been backed up yet.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingRecords(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncRecords(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", len(pending))

	for _, rec := range pending {
		if err := w.mirrorRecord(ctx, rec.ID, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror record", "id", rec.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck mirrors records missed while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncRecords(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending records for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending records found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending records on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0
	for _, rec := range pending {
		if err := w.mirrorRecord(ctx, rec.ID, rec); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror record during startup",
				"id", rec.ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) mirrorRecord(ctx context.Context, id int64, rec core.Record) error {
	rowRef, err := w.backup.AppendRecord(ctx, rec)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark record sync error",
				"id", id, "error", markErr)
		}
		return fmt.Errorf("append record to backup: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to mark record synced", "id", id, "error", err)
		// The mirror itself worked, so don't surface this as a failure
	}

	slog.InfoContext(ctx, "Record mirrored to backup", "id", id, "row", rowRef)
	return nil
}
