package core

import (
	"errors"
	"sort"
	"strconv"
	"time"
)

// Report kinds as selected by the UI.
const (
	ReportDaily   = "diario"
	ReportWeekly  = "semanal"
	ReportMonthly = "mensal"
)

// User-facing status strings.
const (
	StatusMet         = "Atingido"
	StatusNotMet      = "Não Atingido"
	StatusRangeMet    = "Atingiu"
	StatusRangeNotMet = "Não"
)

// Empty data conditions. These are explicit empty states, not failures: a
// zero-valued summary would falsely claim goals were checked and missed.
var (
	ErrNoRecords         = errors.New("Nenhum registro encontrado.")
	ErrNoRecordsToday    = errors.New("Nenhum registro de hoje.")
	ErrNoRecordsInPeriod = errors.New("Nenhum registro no período selecionado.")
)

type (
	// DailyRow is one activity line in the daily report.
	DailyRow struct {
		Activity Activity
		Label    string
		Realized float64
		Goal     float64
		Met      bool
		Status   string
	}

	// DailyReport compares one day's totals against the goal table.
	DailyReport struct {
		Key   DateKey
		Title string
		Rows  []DailyRow
	}

	// RangeCell is one activity's realized value and status for one day of
	// a weekly or monthly report.
	RangeCell struct {
		Activity Activity
		Realized float64
		Met      bool
		Status   string
	}

	// RangeRow is one day of a weekly or monthly report.
	RangeRow struct {
		Key     DateKey
		Display string
		Cells   []RangeCell
	}

	// RangeReport lists per-day rows for a trailing window, sparse: only
	// days with at least one record appear.
	RangeReport struct {
		Kind  string
		Title string
		Start time.Time
		End   time.Time
		Rows  []RangeRow
	}
)

// BuildDailyReport compares today's totals against the goals. It returns
// ErrNoRecords when the log is empty and ErrNoRecordsToday when nothing was
// logged on the current local day.
func BuildDailyReport(records []Record, goals GoalTable, now time.Time) (DailyReport, error) {
	if len(records) == 0 {
		return DailyReport{}, ErrNoRecords
	}
	todayKey := LocalDateKey(now)
	var todays []Record
	for _, rec := range records {
		if rec.Key() == todayKey {
			todays = append(todays, rec)
		}
	}
	if len(todays) == 0 {
		return DailyReport{}, ErrNoRecordsToday
	}
	summary := AggregateOneDay(todays, todayKey)
	report := DailyReport{
		Key:   todayKey,
		Title: "Relatório diário de " + todayKey.Display(),
	}
	for _, a := range TrackedActivities {
		met := goals.Met(a, summary[a])
		status := StatusNotMet
		if met {
			status = StatusMet
		}
		report.Rows = append(report.Rows, DailyRow{
			Activity: a,
			Label:    a.Label(),
			Realized: summary[a],
			Goal:     goals[a],
			Met:      met,
			Status:   status,
		})
	}
	return report, nil
}

// BuildWeeklyReport covers the trailing seven local days, both endpoints
// inclusive.
func BuildWeeklyReport(records []Record, goals GoalTable, now time.Time) (RangeReport, error) {
	return buildRangeReport(records, goals, now, 7, ReportWeekly, "Relatório semanal")
}

// BuildMonthlyReport covers the trailing thirty local days, both endpoints
// inclusive.
func BuildMonthlyReport(records []Record, goals GoalTable, now time.Time) (RangeReport, error) {
	return buildRangeReport(records, goals, now, 30, ReportMonthly, "Relatório mensal")
}

func buildRangeReport(records []Record, goals GoalTable, now time.Time, days int, kind, title string) (RangeReport, error) {
	if len(records) == 0 {
		return RangeReport{}, ErrNoRecords
	}
	// Day boundaries at local calendar granularity: start at 00:00:00 of the
	// earliest day, end at 23:59:59 of today.
	year, month, day := now.Date()
	start := time.Date(year, month, day-(days-1), 0, 0, 0, 0, now.Location())
	end := time.Date(year, month, day, 23, 59, 59, 0, now.Location())

	var relevant []Record
	for _, rec := range records {
		// Compare via the key's local date, never a raw string-to-date parse,
		// which would reinterpret the key as UTC.
		recDate, err := rec.Key().LocalDate()
		if err != nil {
			continue
		}
		if !recDate.Before(start) && !recDate.After(end) {
			relevant = append(relevant, rec)
		}
	}
	if len(relevant) == 0 {
		return RangeReport{}, ErrNoRecordsInPeriod
	}

	aggregated := AggregateByDate(relevant)
	keys := make([]DateKey, 0, len(aggregated))
	for key := range aggregated {
		keys = append(keys, key)
	}
	// String sort is chronological because the key format is zero-padded.
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	report := RangeReport{Kind: kind, Title: title, Start: start, End: end}
	for _, key := range keys {
		summary := aggregated[key]
		row := RangeRow{Key: key, Display: key.Display()}
		for _, a := range TrackedActivities {
			met := goals.Met(a, summary[a])
			status := StatusRangeNotMet
			if met {
				status = StatusRangeMet
			}
			row.Cells = append(row.Cells, RangeCell{
				Activity: a,
				Realized: summary[a],
				Met:      met,
				Status:   status,
			})
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// FormatAmount renders a realized or goal value without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
