package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"habitos/internal/core"

	_ "modernc.org/sqlite"
)

// Sync states for the Google Sheets backup.
const (
	SyncPending = "pending"
	SyncSynced  = "synced"
	SyncError   = "error"
)

// SQLiteRepository persists the record log and the reminder sent-flags.
type SQLiteRepository struct {
	db *sql.DB
}

var (
	_ RecordStore   = (*SQLiteRepository)(nil)
	_ SentFlagStore = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const recordColumns = `id, created_at, date_key,
	running_done, running_time,
	home_done, home_flexoes, home_abdominais, home_elevacao, home_agachamento,
	weights_done, weights_time,
	study_ti_done, study_ti_time,
	study_concurso_done, study_concurso_time,
	meditation_done, meditation_time`

// AppendRecord implements RecordStore.
func (r *SQLiteRepository) AppendRecord(ctx context.Context, rec core.Record) (int64, error) {
	if rec.ID == 0 {
		rec.ID = rec.CreatedAt.UnixMilli()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO habit_records (`+recordColumns+`, sync_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(time.RFC3339Nano), string(rec.DateKey),
		rec.Running.Done, rec.Running.Amount,
		rec.Home.Done, rec.Home.Flexoes, rec.Home.Abdominais, rec.Home.Elevacao, rec.Home.Agachamento,
		rec.Weights.Done, rec.Weights.Amount,
		rec.StudyTI.Done, rec.StudyTI.Amount,
		rec.StudyConcurso.Done, rec.StudyConcurso.Amount,
		rec.Meditation.Done, rec.Meditation.Amount,
		SyncPending,
	)
	if err != nil {
		return 0, fmt.Errorf("insert habit record: %w", err)
	}

	slog.InfoContext(ctx, "Habit record saved",
		"id", rec.ID,
		"date_key", rec.DateKey)

	return rec.ID, nil
}

// LoadAllRecords implements RecordStore. Records come back in insertion
// order; order among same-day records is irrelevant for aggregation.
func (r *SQLiteRepository) LoadAllRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM habit_records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load habit records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habit records: %w", err)
	}
	return records, nil
}

// GetRecord retrieves a single record by ID, for the backup worker.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (core.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM habit_records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		return core.Record{}, fmt.Errorf("get habit record %d: %w", id, err)
	}
	return rec, nil
}

// GetPendingSyncRecords returns records not yet mirrored to the backup.
func (r *SQLiteRepository) GetPendingSyncRecords(ctx context.Context, limit int) ([]core.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM habit_records
		WHERE sync_status = ? ORDER BY id LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending sync records: %w", err)
	}
	return records, nil
}

// MarkSynced marks a record as successfully mirrored to the backup.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habit_records SET sync_status = ?, synced_at = ? WHERE id = ?`,
		SyncSynced, time.Now().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}
	slog.InfoContext(ctx, "Record marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a record as having failed its backup sync.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habit_records SET sync_status = ? WHERE id = ?`, SyncError, id)
	if err != nil {
		return fmt.Errorf("mark record sync error: %w", err)
	}
	slog.WarnContext(ctx, "Record marked with sync error", "id", id)
	return nil
}

// SentHourIndices implements SentFlagStore.
func (r *SQLiteRepository) SentHourIndices(ctx context.Context, key core.DateKey) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT hour_index FROM sent_hours WHERE date_key = ? ORDER BY hour_index`, string(key))
	if err != nil {
		return nil, fmt.Errorf("load sent hours for %s: %w", key, err)
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var idx int
		if err := rows.Scan(&idx); err != nil {
			return nil, fmt.Errorf("scan sent hour: %w", err)
		}
		indices = append(indices, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sent hours: %w", err)
	}
	return indices, nil
}

// MarkHourSent implements SentFlagStore. Re-marking an already sent index is
// a no-op.
func (r *SQLiteRepository) MarkHourSent(ctx context.Context, key core.DateKey, index int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sent_hours (date_key, hour_index, sent_at) VALUES (?, ?, ?)`,
		string(key), index, time.Now().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("mark hour sent for %s: %w", key, err)
	}
	return nil
}

// ClearSentHours implements SentFlagStore. Used once all goals for the day
// are met.
func (r *SQLiteRepository) ClearSentHours(ctx context.Context, key core.DateKey) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sent_hours WHERE date_key = ?`, string(key))
	if err != nil {
		return fmt.Errorf("clear sent hours for %s: %w", key, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.Record, error) {
	var (
		rec       core.Record
		createdAt string
		dateKey   string
	)
	err := row.Scan(
		&rec.ID, &createdAt, &dateKey,
		&rec.Running.Done, &rec.Running.Amount,
		&rec.Home.Done, &rec.Home.Flexoes, &rec.Home.Abdominais, &rec.Home.Elevacao, &rec.Home.Agachamento,
		&rec.Weights.Done, &rec.Weights.Amount,
		&rec.StudyTI.Done, &rec.StudyTI.Amount,
		&rec.StudyConcurso.Done, &rec.StudyConcurso.Amount,
		&rec.Meditation.Done, &rec.Meditation.Amount,
	)
	if err != nil {
		return core.Record{}, fmt.Errorf("scan habit record: %w", err)
	}
	rec.DateKey = core.DateKey(dateKey)
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return core.Record{}, fmt.Errorf("parse record timestamp %q: %w", createdAt, err)
	}
	return rec, nil
}
