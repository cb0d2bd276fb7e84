package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"habitos/internal/core"
	"habitos/internal/storage"
)

func seedStore(t *testing.T, now time.Time) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	rec := core.NewRecord(now)
	rec.Running = core.Entry{Done: true, Amount: 25}
	if _, err := store.AppendRecord(context.Background(), rec); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestReportServiceDaily(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.Local)
	svc := NewReportService(seedStore(t, now), core.DefaultGoals())

	report, err := svc.Daily(context.Background(), now)
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if report.Rows[0].Status != core.StatusMet {
		t.Errorf("running status = %q, want %q", report.Rows[0].Status, core.StatusMet)
	}
}

func TestReportServiceGenerate(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.Local)
	svc := NewReportService(seedStore(t, now), core.DefaultGoals())
	ctx := context.Background()

	for _, kind := range []string{core.ReportDaily, core.ReportWeekly, core.ReportMonthly} {
		report, err := svc.Generate(ctx, kind, now)
		if err != nil {
			t.Fatalf("Generate(%q): %v", kind, err)
		}
		if report.Kind != kind {
			t.Errorf("Kind = %q, want %q", report.Kind, kind)
		}
		if kind == core.ReportDaily && report.Daily == nil {
			t.Error("daily report missing")
		}
		if kind != core.ReportDaily && report.Range == nil {
			t.Errorf("range report missing for %q", kind)
		}
	}

	if _, err := svc.Generate(ctx, "anual", now); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestReportServiceEmptyLog(t *testing.T) {
	now := time.Date(2024, 3, 1, 18, 0, 0, 0, time.Local)
	svc := NewReportService(storage.NewMemoryStore(), core.DefaultGoals())

	if _, err := svc.Daily(context.Background(), now); !errors.Is(err, core.ErrNoRecords) {
		t.Errorf("Daily on empty log: err = %v, want ErrNoRecords", err)
	}
}
