package core

import (
	"math/rand"
	"reflect"
	"testing"
	"time"
)

func recordOn(key DateKey) Record {
	d, _ := key.LocalDate()
	return Record{
		ID:        d.UnixMilli(),
		CreatedAt: d,
		DateKey:   key,
	}
}

func TestAggregateByDateCountsOnlyDoneActivities(t *testing.T) {
	rec := recordOn("2024-03-01")
	rec.Running = Entry{Done: true, Amount: 25}
	rec.StudyTI = Entry{Done: false, Amount: 90} // unchecked, must not count
	rec.Meditation = Entry{Done: true, Amount: 5}

	summary := AggregateByDate([]Record{rec})["2024-03-01"]
	if summary[ActivityRunning] != 25 {
		t.Errorf("running = %v, want 25", summary[ActivityRunning])
	}
	if summary[ActivityStudyTI] != 0 {
		t.Errorf("studyTi = %v, want 0 (not done)", summary[ActivityStudyTI])
	}
	if summary[ActivityMeditation] != 5 {
		t.Errorf("meditation = %v, want 5", summary[ActivityMeditation])
	}
}

func TestAggregateByDateHomeFlagGatesSubActivities(t *testing.T) {
	rec := recordOn("2024-03-01")
	rec.Home = HomeWorkout{Done: false, Flexoes: 20, Abdominais: 50, Agachamento: 2}

	summary := AggregateByDate([]Record{rec})["2024-03-01"]
	for _, a := range []Activity{ActivityFlexoes, ActivityAbdominais, ActivityAgachamento} {
		if summary[a] != 0 {
			t.Errorf("%s = %v, want 0 when home not done", a, summary[a])
		}
	}
}

func TestAggregateByDateSumsAcrossRecordsOfSameDay(t *testing.T) {
	// Two records the same day, flexões 20 + 20: the summed total is 40.
	a := recordOn("2024-03-01")
	a.Home = HomeWorkout{Done: true, Flexoes: 20}
	b := recordOn("2024-03-01")
	b.ID++
	b.Home = HomeWorkout{Done: true, Flexoes: 20}

	summary := AggregateByDate([]Record{a, b})["2024-03-01"]
	if summary[ActivityFlexoes] != 40 {
		t.Fatalf("flexoes = %v, want 40", summary[ActivityFlexoes])
	}
	if !DefaultGoals().Met(ActivityFlexoes, summary[ActivityFlexoes]) {
		t.Error("expected summed flexões 40 to meet goal 36")
	}
}

func TestAggregateByDateIsOrderIndependent(t *testing.T) {
	var records []Record
	keys := []DateKey{"2024-03-01", "2024-03-02", "2024-03-03"}
	for i := 0; i < 30; i++ {
		rec := recordOn(keys[i%len(keys)])
		rec.ID += int64(i)
		rec.Running = Entry{Done: i%2 == 0, Amount: float64(i)}
		rec.Meditation = Entry{Done: true, Amount: float64(i % 7)}
		records = append(records, rec)
	}

	want := AggregateByDate(records)

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 5; trial++ {
		shuffled := append([]Record(nil), records...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		if got := AggregateByDate(shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("trial %d: shuffled input produced different aggregation", trial)
		}
	}
}

func TestAggregateByDateLegacyRecordFallsBackToTimestamp(t *testing.T) {
	rec := Record{CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	rec.Running = Entry{Done: true, Amount: 10}

	aggregated := AggregateByDate([]Record{rec})
	if _, ok := aggregated["2024-03-01"]; !ok {
		t.Fatalf("expected timestamp-derived key, got %v", aggregated)
	}
}

func TestAggregateOneDay(t *testing.T) {
	rec := recordOn("2024-03-01")
	rec.Running = Entry{Done: true, Amount: 25}
	other := recordOn("2024-03-02")
	other.Running = Entry{Done: true, Amount: 99}

	summary := AggregateOneDay([]Record{rec, other}, "2024-03-01")
	if summary[ActivityRunning] != 25 {
		t.Errorf("running = %v, want 25", summary[ActivityRunning])
	}
}

func TestAggregateOneDayNoMatchesReturnsZeroSummary(t *testing.T) {
	summary := AggregateOneDay(nil, "2024-03-01")
	if len(summary) != len(TrackedActivities) {
		t.Fatalf("summary has %d entries, want %d", len(summary), len(TrackedActivities))
	}
	for a, v := range summary {
		if v != 0 {
			t.Errorf("%s = %v, want 0", a, v)
		}
	}
}
