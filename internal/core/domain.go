package core

import (
	"errors"
	"fmt"
	"time"
)

// Activity names one trackable habit. The set is fixed; goals and report
// columns are keyed by it.
type Activity string

const (
	ActivityRunning       Activity = "running"
	ActivityFlexoes       Activity = "flexoes"
	ActivityAbdominais    Activity = "abdominais"
	ActivityAgachamento   Activity = "agachamento"
	ActivityStudyTI       Activity = "studyTi"
	ActivityStudyConcurso Activity = "studyConcurso"
	ActivityMeditation    Activity = "meditation"
)

// TrackedActivities lists the goal-checked activities in report column order.
// Weight training and elevação are recorded but never aggregated.
var TrackedActivities = []Activity{
	ActivityRunning,
	ActivityFlexoes,
	ActivityAbdominais,
	ActivityAgachamento,
	ActivityStudyTI,
	ActivityStudyConcurso,
	ActivityMeditation,
}

var activityLabels = map[Activity]string{
	ActivityRunning:       "Corrida (min)",
	ActivityFlexoes:       "Flexões",
	ActivityAbdominais:    "Abdominais",
	ActivityAgachamento:   "Agachamento (min)",
	ActivityStudyTI:       "Estudo TI (min)",
	ActivityStudyConcurso: "Estudo Concurso (min)",
	ActivityMeditation:    "Meditação (min)",
}

var reminderLabels = map[Activity]string{
	ActivityRunning:       "corrida",
	ActivityFlexoes:       "flexões",
	ActivityAbdominais:    "abdominais",
	ActivityAgachamento:   "agachamento",
	ActivityStudyTI:       "estudo TI",
	ActivityStudyConcurso: "estudo Concurso",
	ActivityMeditation:    "meditação",
}

var statusLabels = map[Activity]string{
	ActivityRunning:       "Status Corrida",
	ActivityFlexoes:       "Status Flexões",
	ActivityAbdominais:    "Status Abdominais",
	ActivityAgachamento:   "Status Agachamento",
	ActivityStudyTI:       "Status TI",
	ActivityStudyConcurso: "Status Concurso",
	ActivityMeditation:    "Status Meditação",
}

// Label returns the report column label for the activity.
func (a Activity) Label() string {
	return activityLabels[a]
}

// StatusLabel returns the status column header for the activity in range
// reports.
func (a Activity) StatusLabel() string {
	return statusLabels[a]
}

// ReminderLabel returns the short name used in reminder notifications.
func (a Activity) ReminderLabel() string {
	return reminderLabels[a]
}

type (
	// Entry is one checkable activity with a numeric amount (minutes or
	// count). The amount counts toward totals only while Done is true.
	Entry struct {
		Done   bool    `json:"done"`
		Amount float64 `json:"amount"`
	}

	// HomeWorkout groups the home exercise sub-activities behind a single
	// done flag. Elevação is stored but excluded from aggregation.
	HomeWorkout struct {
		Done        bool    `json:"done"`
		Flexoes     float64 `json:"flexoes"`
		Abdominais  float64 `json:"abdominais"`
		Elevacao    float64 `json:"elevacao"`
		Agachamento float64 `json:"agachamento"`
	}

	// Record is one logged observation. Records are immutable once created;
	// the store is append-only.
	Record struct {
		ID            int64       `json:"id"`
		CreatedAt     time.Time   `json:"dateTime"`
		DateKey       DateKey     `json:"dateKey"`
		Running       Entry       `json:"running"`
		Home          HomeWorkout `json:"home"`
		Weights       Entry       `json:"weights"`
		StudyTI       Entry       `json:"studyTi"`
		StudyConcurso Entry       `json:"studyConcurso"`
		Meditation    Entry       `json:"meditation"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrMissingTimestamp = errors.New("missing creation timestamp")
)

// NewRecord stamps identity and day-key fields from the creation instant.
// The ID is the instant in Unix milliseconds, monotonic under the
// single-writer model.
func NewRecord(now time.Time) Record {
	return Record{
		ID:        now.UnixMilli(),
		CreatedAt: now,
		DateKey:   LocalDateKey(now),
	}
}

// Key resolves the day the record belongs to. The stored key is preferred;
// records written before the field existed fall back to the UTC rendering of
// the creation timestamp, which can disagree with the local day near
// midnight. The fallback is kept for compatibility with old data.
func (r Record) Key() DateKey {
	if r.DateKey != "" {
		return r.DateKey
	}
	return DateKey(r.CreatedAt.UTC().Format("2006-01-02"))
}

func (r Record) Validate() error {
	if r.CreatedAt.IsZero() {
		return ErrMissingTimestamp
	}
	if r.DateKey != "" {
		if err := r.DateKey.Validate(); err != nil {
			return err
		}
	}
	amounts := []float64{
		r.Running.Amount,
		r.Home.Flexoes, r.Home.Abdominais, r.Home.Elevacao, r.Home.Agachamento,
		r.Weights.Amount,
		r.StudyTI.Amount, r.StudyConcurso.Amount,
		r.Meditation.Amount,
	}
	for _, v := range amounts {
		if v < 0 {
			return fmt.Errorf("%w: negative value %v", ErrInvalidAmount, v)
		}
	}
	return nil
}
