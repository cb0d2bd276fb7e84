package services

import (
	"context"
	"fmt"
	"time"

	"habitos/internal/core"
	"habitos/internal/storage"
)

// Report is the union of the daily and range report shapes, for callers that
// select the kind at runtime.
type Report struct {
	Kind  string
	Daily *core.DailyReport
	Range *core.RangeReport
}

// ReportService reads the record log and builds goal-comparison reports.
// Summaries are derived fresh on every call; nothing is cached or persisted.
type ReportService struct {
	store storage.RecordStore
	goals core.GoalTable
}

func NewReportService(store storage.RecordStore, goals core.GoalTable) *ReportService {
	return &ReportService{
		store: store,
		goals: goals,
	}
}

// Daily builds the report for the local day of now.
func (s *ReportService) Daily(ctx context.Context, now time.Time) (core.DailyReport, error) {
	records, err := s.store.LoadAllRecords(ctx)
	if err != nil {
		return core.DailyReport{}, fmt.Errorf("load records: %w", err)
	}
	return core.BuildDailyReport(records, s.goals, now)
}

// Weekly builds the trailing seven-day report ending at now's local day.
func (s *ReportService) Weekly(ctx context.Context, now time.Time) (core.RangeReport, error) {
	records, err := s.store.LoadAllRecords(ctx)
	if err != nil {
		return core.RangeReport{}, fmt.Errorf("load records: %w", err)
	}
	return core.BuildWeeklyReport(records, s.goals, now)
}

// Monthly builds the trailing thirty-day report ending at now's local day.
func (s *ReportService) Monthly(ctx context.Context, now time.Time) (core.RangeReport, error) {
	records, err := s.store.LoadAllRecords(ctx)
	if err != nil {
		return core.RangeReport{}, fmt.Errorf("load records: %w", err)
	}
	return core.BuildMonthlyReport(records, s.goals, now)
}

// Generate builds the report for a UI-selected kind.
func (s *ReportService) Generate(ctx context.Context, kind string, now time.Time) (Report, error) {
	switch kind {
	case core.ReportDaily:
		daily, err := s.Daily(ctx, now)
		if err != nil {
			return Report{}, err
		}
		return Report{Kind: kind, Daily: &daily}, nil
	case core.ReportWeekly:
		weekly, err := s.Weekly(ctx, now)
		if err != nil {
			return Report{}, err
		}
		return Report{Kind: kind, Range: &weekly}, nil
	case core.ReportMonthly:
		monthly, err := s.Monthly(ctx, now)
		if err != nil {
			return Report{}, err
		}
		return Report{Kind: kind, Range: &monthly}, nil
	default:
		return Report{}, fmt.Errorf("unknown report kind %q", kind)
	}
}

// Goals exposes the static goal table for rendering.
func (s *ReportService) Goals() core.GoalTable {
	return s.goals
}
