package storage

import (
	"context"
	"sort"
	"sync"

	"habitos/internal/core"
)

// MemoryStore is an in-memory implementation of the storage ports, used by
// the `memory` backend and by tests.
type MemoryStore struct {
	mu      sync.Mutex
	records []core.Record
	sent    map[core.DateKey]map[int]struct{}
}

var (
	_ RecordStore   = (*MemoryStore)(nil)
	_ SentFlagStore = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sent: make(map[core.DateKey]map[int]struct{})}
}

// AppendRecord implements RecordStore.
func (s *MemoryStore) AppendRecord(_ context.Context, rec core.Record) (int64, error) {
	if err := rec.Validate(); err != nil {
		return 0, err
	}
	if rec.ID == 0 {
		rec.ID = rec.CreatedAt.UnixMilli()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec.ID, nil
}

// LoadAllRecords implements RecordStore.
func (s *MemoryStore) LoadAllRecords(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

// SentHourIndices implements SentFlagStore.
func (s *MemoryStore) SentHourIndices(_ context.Context, key core.DateKey) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	indices := make([]int, 0, len(s.sent[key]))
	for idx := range s.sent[key] {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices, nil
}

// MarkHourSent implements SentFlagStore.
func (s *MemoryStore) MarkHourSent(_ context.Context, key core.DateKey, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sent[key] == nil {
		s.sent[key] = make(map[int]struct{})
	}
	s.sent[key][index] = struct{}{}
	return nil
}

// ClearSentHours implements SentFlagStore.
func (s *MemoryStore) ClearSentHours(_ context.Context, key core.DateKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sent, key)
	return nil
}
