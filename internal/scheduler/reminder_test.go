package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"habitos/internal/core"
	"habitos/internal/notify"
	"habitos/internal/storage"
)

type fakeNotifier struct {
	state     notify.Permission
	calls     []string // bodies, in dispatch order
	failNext  int      // number of upcoming calls to fail
	lastTitle string
}

func (f *fakeNotifier) RequestPermission(context.Context) (notify.Permission, error) {
	f.state = notify.PermissionGranted
	return f.state, nil
}

func (f *fakeNotifier) PermissionState() notify.Permission { return f.state }

func (f *fakeNotifier) Notify(_ context.Context, title, body string) error {
	if f.failNext > 0 {
		f.failNext--
		return errors.New("bridge unavailable")
	}
	f.lastTitle = title
	f.calls = append(f.calls, body)
	return nil
}

var triggerHours = []int{12, 17, 21}

func newScheduler(store *storage.MemoryStore, n *fakeNotifier) *ReminderScheduler {
	return NewReminderScheduler(store, store, n, core.DefaultGoals(), triggerHours)
}

func at(hour int) time.Time {
	return time.Date(2024, 3, 1, hour, 5, 0, 0, time.Local)
}

func TestTickDispatchesPerElapsedTriggerHour(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	n := &fakeNotifier{state: notify.PermissionGranted}
	s := newScheduler(store, n)

	// Hour 18, goals unmet, no prior flags: indices 0 (12h) and 1 (17h)
	// fire; index 2 (21h) does not.
	if err := s.Tick(ctx, at(18)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 2 {
		t.Fatalf("dispatched %d notifications, want 2", len(n.calls))
	}
	if n.lastTitle != ReminderTitle {
		t.Errorf("title = %q, want %q", n.lastTitle, ReminderTitle)
	}

	sent, _ := store.SentHourIndices(ctx, core.LocalDateKey(at(18)))
	if len(sent) != 2 || sent[0] != 0 || sent[1] != 1 {
		t.Fatalf("sent = %v, want [0 1]", sent)
	}
}

func TestTickIsIdempotentAcrossRepeats(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	n := &fakeNotifier{state: notify.PermissionGranted}
	s := newScheduler(store, n)

	for i := 0; i < 10; i++ {
		if err := s.Tick(ctx, at(18)); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if len(n.calls) != 2 {
		t.Fatalf("dispatched %d notifications over repeated ticks, want 2", len(n.calls))
	}

	// Crossing the final threshold fires exactly the remaining index.
	if err := s.Tick(ctx, at(22)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 3 {
		t.Fatalf("dispatched %d notifications, want 3", len(n.calls))
	}
}

func TestTickBeforeFirstTriggerHourDispatchesNothing(t *testing.T) {
	store := storage.NewMemoryStore()
	n := &fakeNotifier{state: notify.PermissionGranted}
	s := newScheduler(store, n)

	if err := s.Tick(context.Background(), at(9)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 0 {
		t.Fatalf("dispatched %d notifications before 12h, want 0", len(n.calls))
	}
}

func TestTickReminderBodyListsMissedGoals(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	// Meet everything except meditation.
	rec := core.NewRecord(at(10))
	rec.Running = core.Entry{Done: true, Amount: 20}
	rec.Home = core.HomeWorkout{Done: true, Flexoes: 36, Abdominais: 135, Agachamento: 3}
	rec.StudyTI = core.Entry{Done: true, Amount: 30}
	rec.StudyConcurso = core.Entry{Done: true, Amount: 60}
	if _, err := store.AppendRecord(ctx, rec); err != nil {
		t.Fatalf("AppendRecord: %v", err)
	}

	n := &fakeNotifier{state: notify.PermissionGranted}
	s := newScheduler(store, n)
	if err := s.Tick(ctx, at(13)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 1 {
		t.Fatalf("dispatched %d notifications, want 1", len(n.calls))
	}
	if want := "Você ainda não alcançou: meditação."; n.calls[0] != want {
		t.Errorf("body = %q, want %q", n.calls[0], want)
	}
}

func TestTickClearsFlagsOnceAllGoalsMet(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	key := core.LocalDateKey(at(12))
	store.MarkHourSent(ctx, key, 0)

	rec := core.NewRecord(at(10))
	rec.Running = core.Entry{Done: true, Amount: 25}
	rec.Home = core.HomeWorkout{Done: true, Flexoes: 40, Abdominais: 140, Agachamento: 4}
	rec.StudyTI = core.Entry{Done: true, Amount: 35}
	rec.StudyConcurso = core.Entry{Done: true, Amount: 65}
	rec.Meditation = core.Entry{Done: true, Amount: 10}
	store.AppendRecord(ctx, rec)

	n := &fakeNotifier{state: notify.PermissionGranted}
	s := newScheduler(store, n)
	if err := s.Tick(ctx, at(18)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 0 {
		t.Fatalf("dispatched %d notifications with all goals met, want 0", len(n.calls))
	}
	sent, _ := store.SentHourIndices(ctx, key)
	if len(sent) != 0 {
		t.Fatalf("sent flags = %v, want cleared", sent)
	}
}

func TestTickRetriesFailedDispatchOnNextTick(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	n := &fakeNotifier{state: notify.PermissionGranted, failNext: 2}
	s := newScheduler(store, n)

	// Both elapsed indices fail; neither may be marked sent.
	if err := s.Tick(ctx, at(18)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 0 {
		t.Fatalf("dispatched %d notifications despite failures, want 0", len(n.calls))
	}
	sent, _ := store.SentHourIndices(ctx, core.LocalDateKey(at(18)))
	if len(sent) != 0 {
		t.Fatalf("sent = %v, want none after failed dispatch", sent)
	}

	// The next tick retries the same indices.
	if err := s.Tick(ctx, at(18)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 2 {
		t.Fatalf("dispatched %d notifications on retry, want 2", len(n.calls))
	}
}

func TestTickWithoutPermissionIsNoOp(t *testing.T) {
	store := storage.NewMemoryStore()
	n := &fakeNotifier{state: notify.PermissionPending}
	s := newScheduler(store, n)

	if err := s.Tick(context.Background(), at(18)); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(n.calls) != 0 {
		t.Fatalf("dispatched %d notifications without permission, want 0", len(n.calls))
	}
}
