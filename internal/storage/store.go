package storage

import (
	"context"

	"habitos/internal/core"
)

// Ports for the persisted state. The record log is append-only: no update or
// delete exists on purpose, trading storage growth for crash-safety.
type (
	// RecordStore owns the habit record log.
	RecordStore interface {
		// AppendRecord adds one immutable record to the end of the log and
		// returns its ID.
		AppendRecord(ctx context.Context, rec core.Record) (int64, error)
		// LoadAllRecords returns every record in insertion order. A missing
		// log reads as empty, not as an error.
		LoadAllRecords(ctx context.Context) ([]core.Record, error)
	}

	// SentFlagStore owns the per-day set of reminder hour indices already
	// dispatched.
	SentFlagStore interface {
		SentHourIndices(ctx context.Context, key core.DateKey) ([]int, error)
		MarkHourSent(ctx context.Context, key core.DateKey, index int) error
		ClearSentHours(ctx context.Context, key core.DateKey) error
	}
)
