package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"habitos/internal/amqp"
	"habitos/internal/core"
	"habitos/internal/sheets/memory"
)

type fakeStore struct {
	records   map[int64]core.Record
	pending   []int64
	synced    []int64
	syncErred []int64
}

func newFakeStore(recs ...core.Record) *fakeStore {
	s := &fakeStore{records: make(map[int64]core.Record)}
	for _, rec := range recs {
		s.records[rec.ID] = rec
		s.pending = append(s.pending, rec.ID)
	}
	return s
}

func (s *fakeStore) GetRecord(_ context.Context, id int64) (core.Record, error) {
	rec, ok := s.records[id]
	if !ok {
		return core.Record{}, errors.New("record not found")
	}
	return rec, nil
}

func (s *fakeStore) GetPendingSyncRecords(_ context.Context, limit int) ([]core.Record, error) {
	var out []core.Record
	for _, id := range s.pending {
		if len(out) == limit {
			break
		}
		out = append(out, s.records[id])
	}
	return out, nil
}

func (s *fakeStore) MarkSynced(_ context.Context, id int64) error {
	s.synced = append(s.synced, id)
	return nil
}

func (s *fakeStore) MarkSyncError(_ context.Context, id int64) error {
	s.syncErred = append(s.syncErred, id)
	return nil
}

type failingWriter struct{}

func (failingWriter) AppendRecord(context.Context, core.Record) (string, error) {
	return "", errors.New("spreadsheet unavailable")
}

func testRecord(t *testing.T) core.Record {
	t.Helper()
	rec := core.NewRecord(time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local))
	rec.Running = core.Entry{Done: true, Amount: 20}
	return rec
}

func TestHandleSyncMessage(t *testing.T) {
	rec := testRecord(t)
	store := newFakeStore(rec)
	backup := memory.New()
	w := NewSyncWorker(store, backup, 10)

	msg := &amqp.RecordSyncMessage{ID: rec.ID}
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandleSyncMessage() error = %v", err)
	}

	if got := backup.Records(); len(got) != 1 || got[0].ID != rec.ID {
		t.Errorf("backup records = %v, want the mirrored record", got)
	}
	if len(store.synced) != 1 || store.synced[0] != rec.ID {
		t.Errorf("synced = %v, want [%d]", store.synced, rec.ID)
	}
}

func TestHandleSyncMessageUnknownRecord(t *testing.T) {
	store := newFakeStore()
	w := NewSyncWorker(store, memory.New(), 10)

	msg := &amqp.RecordSyncMessage{ID: 42}
	if err := w.HandleSyncMessage(context.Background(), msg); err == nil {
		t.Fatal("HandleSyncMessage() error = nil, want error for unknown record")
	}
}

func TestMirrorFailureMarksSyncError(t *testing.T) {
	rec := testRecord(t)
	store := newFakeStore(rec)
	w := NewSyncWorker(store, failingWriter{}, 10)

	msg := &amqp.RecordSyncMessage{ID: rec.ID}
	if err := w.HandleSyncMessage(context.Background(), msg); err == nil {
		t.Fatal("HandleSyncMessage() error = nil, want error when backup append fails")
	}
	if len(store.syncErred) != 1 || store.syncErred[0] != rec.ID {
		t.Errorf("syncErred = %v, want [%d]", store.syncErred, rec.ID)
	}
	if len(store.synced) != 0 {
		t.Errorf("synced = %v, want none after failed mirror", store.synced)
	}
}

func TestProcessPendingRecords(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	var recs []core.Record
	for i := 0; i < 3; i++ {
		rec := core.NewRecord(base.Add(time.Duration(i) * time.Minute))
		rec.Meditation = core.Entry{Done: true, Amount: 5}
		recs = append(recs, rec)
	}
	store := newFakeStore(recs...)
	backup := memory.New()
	w := NewSyncWorker(store, backup, 2)

	if err := w.ProcessPendingRecords(context.Background()); err != nil {
		t.Fatalf("ProcessPendingRecords() error = %v", err)
	}
	// batchSize caps one pass.
	if got := len(backup.Records()); got != 2 {
		t.Errorf("mirrored records = %d, want 2 (batch size)", got)
	}
}

func TestStartupSyncCheck(t *testing.T) {
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	var recs []core.Record
	for i := 0; i < 4; i++ {
		recs = append(recs, core.NewRecord(base.Add(time.Duration(i)*time.Minute)))
	}
	store := newFakeStore(recs...)
	backup := memory.New()
	w := NewSyncWorker(store, backup, 1)

	// Startup uses a widened batch (batchSize*5), so all four go through.
	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("StartupSyncCheck() error = %v", err)
	}
	if got := len(backup.Records()); got != 4 {
		t.Errorf("mirrored records = %d, want 4", got)
	}
	if len(store.synced) != 4 {
		t.Errorf("synced = %d, want 4", len(store.synced))
	}
}
