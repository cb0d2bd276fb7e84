package sheets

import (
	"context"

	"habitos/internal/core"
)

// Ports for the record backup adapters.
type (
	// RecordWriter mirrors one habit record to the backup medium and
	// returns an opaque row reference.
	RecordWriter interface {
		AppendRecord(ctx context.Context, rec core.Record) (rowRef string, err error)
	}
)
