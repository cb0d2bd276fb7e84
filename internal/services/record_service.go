package services

import (
	"context"
	"fmt"
	"log/slog"

	"habitos/internal/core"
	"habitos/internal/storage"
)

// SyncPublisher publishes record sync messages for the backup worker.
type SyncPublisher interface {
	PublishRecordSync(ctx context.Context, id int64) error
}

// RecordService appends habit records and publishes sync messages so the
// backup worker can mirror them.
type RecordService struct {
	store     storage.RecordStore
	publisher SyncPublisher
}

func NewRecordService(store storage.RecordStore, publisher SyncPublisher) *RecordService {
	return &RecordService{
		store:     store,
		publisher: publisher,
	}
}

// CreateRecord validates and appends one record, then publishes the sync
// message. The local append is authoritative: a publish failure is logged
// and never fails the request.
func (s *RecordService) CreateRecord(ctx context.Context, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("validate record: %w", err)
	}

	id, err := s.store.AppendRecord(ctx, rec)
	if err != nil {
		return 0, fmt.Errorf("append record: %w", err)
	}

	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message", "id", id)
		return id, nil
	}
	if err := s.publisher.PublishRecordSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}

	return id, nil
}
