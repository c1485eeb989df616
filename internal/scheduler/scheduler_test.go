package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/brk3/flexhabits/internal/nudge"
	"github.com/brk3/flexhabits/internal/storage/bolt"
	"github.com/brk3/flexhabits/pkg/habit"
)

var fixedNow = time.Date(2026, 2, 12, 20, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type recordingNotifier struct {
	calls  int
	habits []nudge.AtRisk
}

func (r *recordingNotifier) SendNudge(habits []nudge.AtRisk, _ string) error {
	r.calls++
	r.habits = habits
	return nil
}

func newStore(t *testing.T) *bolt.Store {
	t.Helper()
	st, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func put(t *testing.T, st *bolt.Store, id string, status habit.Status, end string) {
	t.Helper()
	h := habit.Habit{
		Schedule: habit.Schedule{ID: id, Frequency: habit.Daily, Status: status, PauseEndDate: end},
		Name:     id,
	}
	if err := st.PutHabit(h); err != nil {
		t.Fatalf("PutHabit failed: %v", err)
	}
}

func TestResumeExpired(t *testing.T) {
	st := newStore(t)
	put(t, st, "ended", habit.Paused, "2026-02-11")
	put(t, st, "ends-today", habit.Paused, "2026-02-12")
	put(t, st, "open-ended", habit.Paused, "")
	put(t, st, "running", habit.Active, "")

	s := New(st, time.Hour, WithClock(clock))
	n, err := s.ResumeExpired(context.Background())
	if err != nil {
		t.Fatalf("ResumeExpired failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("resumed %d want 1", n)
	}

	want := map[string]habit.Status{
		"ended":      habit.Active,
		"ends-today": habit.Paused,
		"open-ended": habit.Paused,
		"running":    habit.Active,
	}
	for id, status := range want {
		h, err := st.GetHabit(id)
		if err != nil {
			t.Fatalf("GetHabit(%s) failed: %v", id, err)
		}
		if h.Status != status {
			t.Errorf("%s: status %s want %s", id, h.Status, status)
		}
	}
	h, _ := st.GetHabit("ended")
	if h.PauseEndDate != "" || h.UpdatedAt != fixedNow.Unix() {
		t.Fatalf("resumed habit not cleaned up: %+v", h)
	}
}

func TestSendNudges(t *testing.T) {
	st := newStore(t)
	put(t, st, "guitar", habit.Active, "")
	for _, d := range []string{"2026-02-10", "2026-02-11"} {
		c := habit.Completion{ID: d, HabitID: "guitar", Date: d, Status: habit.Completed}
		if _, err := st.PutCompletion(c); err != nil {
			t.Fatalf("PutCompletion failed: %v", err)
		}
	}

	rec := &recordingNotifier{}
	s := New(st, time.Hour, WithClock(clock), WithNudge(rec, "0 20 * * *", 365))
	n, err := s.SendNudges(context.Background())
	if err != nil {
		t.Fatalf("SendNudges failed: %v", err)
	}
	if n != 1 || rec.calls != 1 || rec.habits[0].Streak != 2 {
		t.Fatalf("n=%d notifier=%+v", n, rec)
	}
}

func TestSendNudges_NoNotifier(t *testing.T) {
	s := New(newStore(t), time.Hour)
	n, err := s.SendNudges(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}

func TestStart_Validation(t *testing.T) {
	st := newStore(t)
	if err := New(st, 0).Start(); err == nil {
		t.Fatal("expected error for zero interval")
	}
	bad := New(st, time.Hour, WithNudge(&recordingNotifier{}, "not a cron spec", 365))
	if err := bad.Start(); err == nil {
		t.Fatal("expected error for bad cron spec")
	}
}

func TestStartStop(t *testing.T) {
	st := newStore(t)
	put(t, st, "ended", habit.Paused, "2026-02-01")

	s := New(st, time.Hour, WithClock(clock))
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	s.Stop()

	// The startup resume has finished by the time Start returns.
	h, err := st.GetHabit("ended")
	if err != nil {
		t.Fatalf("GetHabit failed: %v", err)
	}
	if h.Status != habit.Active {
		t.Fatalf("status=%s want active after Start", h.Status)
	}
}
