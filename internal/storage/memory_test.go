package storage

import (
	"context"
	"reflect"
	"testing"
	"time"

	"habitos/internal/core"
)

func TestMemoryStoreAppendAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	records, err := store.LoadAllRecords(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("fresh store has %d records, want 0", len(records))
	}

	rec := core.NewRecord(time.Date(2024, 3, 1, 10, 0, 0, 0, time.Local))
	rec.Running = core.Entry{Done: true, Amount: 25}
	id, err := store.AppendRecord(ctx, rec)
	if err != nil {
		t.Fatalf("AppendRecord: %v", err)
	}
	if id != rec.ID {
		t.Errorf("id = %d, want %d", id, rec.ID)
	}

	records, err = store.LoadAllRecords(ctx)
	if err != nil {
		t.Fatalf("LoadAllRecords: %v", err)
	}
	if len(records) != 1 || records[0].ID != rec.ID {
		t.Fatalf("records = %+v, want the appended record", records)
	}
}

func TestMemoryStoreRejectsInvalidRecord(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.AppendRecord(context.Background(), core.Record{}); err == nil {
		t.Fatal("expected validation error for zero record")
	}
}

func TestMemoryStoreSentFlags(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := core.DateKey("2024-03-01")

	indices, err := store.SentHourIndices(ctx, key)
	if err != nil {
		t.Fatalf("SentHourIndices: %v", err)
	}
	if len(indices) != 0 {
		t.Fatalf("fresh day has %v sent, want none", indices)
	}

	for _, idx := range []int{1, 0, 1} { // duplicate mark is a no-op
		if err := store.MarkHourSent(ctx, key, idx); err != nil {
			t.Fatalf("MarkHourSent(%d): %v", idx, err)
		}
	}
	indices, _ = store.SentHourIndices(ctx, key)
	if !reflect.DeepEqual(indices, []int{0, 1}) {
		t.Fatalf("indices = %v, want [0 1]", indices)
	}

	if err := store.ClearSentHours(ctx, key); err != nil {
		t.Fatalf("ClearSentHours: %v", err)
	}
	indices, _ = store.SentHourIndices(ctx, key)
	if len(indices) != 0 {
		t.Fatalf("after clear indices = %v, want none", indices)
	}
}
