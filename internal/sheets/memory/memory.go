// Package memory is an in-memory stand-in for the Google Sheets backup,
// used in tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"habitos/internal/core"
	ports "habitos/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	items []core.Record
}

var _ ports.RecordWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// AppendRecord stores the record and returns a synthetic row reference.
func (s *Store) AppendRecord(_ context.Context, rec core.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rec)
	return fmt.Sprintf("mem:%d", len(s.items)), nil
}

// Records returns a copy of everything appended so far.
func (s *Store) Records() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, len(s.items))
	copy(out, s.items)
	return out
}
