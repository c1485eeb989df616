package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/brk3/flexhabits/internal/analytics"
	"github.com/brk3/flexhabits/internal/calendar"
	"github.com/brk3/flexhabits/internal/logger"
	"github.com/brk3/flexhabits/internal/nudge"
	"github.com/brk3/flexhabits/internal/storage"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 5 * time.Minute

// Scheduler runs the periodic jobs: flipping habits whose pause has ended
// back to active and, when a notifier is set, nudging about streaks at risk.
type Scheduler struct {
	store          storage.Store
	notifier       nudge.Notifier
	lookbackDays   int
	resumeInterval time.Duration
	nudgeSpec      string
	now            func() time.Time
	cron           *cron.Cron
}

type Option func(*Scheduler)

func WithNudge(n nudge.Notifier, spec string, lookbackDays int) Option {
	return func(s *Scheduler) {
		s.notifier = n
		s.nudgeSpec = spec
		s.lookbackDays = lookbackDays
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

func New(store storage.Store, resumeInterval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:          store,
		resumeInterval: resumeInterval,
		now:            time.Now,
		cron:           cron.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scheduler) Start() error {
	if s.resumeInterval <= 0 {
		return fmt.Errorf("resume interval must be positive, got %s", s.resumeInterval)
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.resumeInterval), s.runResume); err != nil {
		return fmt.Errorf("failed to add resume job: %w", err)
	}
	if s.notifier != nil {
		if _, err := s.cron.AddFunc(s.nudgeSpec, s.runNudge); err != nil {
			return fmt.Errorf("failed to add nudge job %q: %w", s.nudgeSpec, err)
		}
	}

	// Catch pauses that expired while nothing was running. This runs before
	// the cron starts so Stop never races it.
	s.runResume()

	s.cron.Start()
	logger.Info("Scheduler started", "resume_interval", s.resumeInterval, "nudge", s.notifier != nil)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Scheduler stopped")
}

// ResumeExpired persists every paused habit whose end date has passed and
// returns how many were resumed.
func (s *Scheduler) ResumeExpired(ctx context.Context) (int, error) {
	habits, err := s.store.ListHabits()
	if err != nil {
		return 0, fmt.Errorf("listing habits: %w", err)
	}
	resumed, err := analytics.ResumeExpired(habits, s.now())
	if err != nil {
		return 0, err
	}
	for i, h := range resumed {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.store.PutHabit(h); err != nil {
			return i, fmt.Errorf("resuming %s: %w", h.ID, err)
		}
		logger.InfoContext(ctx, "Habit pause expired, resumed", "habit_id", h.ID, "habit_name", h.Name)
	}
	return len(resumed), nil
}

// SendNudges runs the at-risk check for today against the store.
func (s *Scheduler) SendNudges(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}
	q := &nudge.StoreQuerier{Store: s.store, LookbackDays: s.lookbackDays}
	return nudge.Nudge(ctx, q, s.notifier, calendar.Today(s.now()))
}

func (s *Scheduler) runResume() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	log := logger.With("job", "resume")
	n, err := s.ResumeExpired(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Auto-resume failed", "error", err)
		return
	}
	log.DebugContext(ctx, "Auto-resume finished", "resumed", n)
}

func (s *Scheduler) runNudge() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	log := logger.With("job", "nudge")
	n, err := s.SendNudges(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Nudge job failed", "error", err)
		return
	}
	log.InfoContext(ctx, "Nudge job finished", "at_risk", n)
}
