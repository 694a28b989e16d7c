// file: internals/features/labs/scheduler/status_sweeper.go
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"

	"easypeasy_backend/internals/helpers/dbtime"
)

const sweepTimeout = 30 * time.Second

// StatusStore moves labs between lifecycle states by calendar day.
type StatusStore interface {
	ActivateStarted(ctx context.Context, today dbtime.Date) (int64, error)
	CompleteEnded(ctx context.Context, today dbtime.Date) (int64, error)
}

// StatusSweeper runs once a day in the business time zone:
// planned labs that have started become active, active labs past their
// last meeting become completed.
type StatusSweeper struct {
	store StatusStore
	loc   *time.Location
	at    string
	now   func() time.Time
	cron  *gocron.Scheduler
}

type Option func(*StatusSweeper)

// WithClock overrides time.Now; used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *StatusSweeper) { s.now = now }
}

func NewStatusSweeper(store StatusStore, loc *time.Location, at string, opts ...Option) *StatusSweeper {
	if loc == nil {
		loc = dbtime.LoadBusinessLocation("")
	}
	if at == "" {
		at = "02:00"
	}
	s := &StatusSweeper{store: store, loc: loc, at: at, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the business calendar day used by the sweep.
func (s *StatusSweeper) Today() dbtime.Date {
	return dbtime.Today(s.now(), s.loc)
}

func (s *StatusSweeper) Sweep(ctx context.Context) (activated, completed int64, err error) {
	today := s.Today()
	if activated, err = s.store.ActivateStarted(ctx, today); err != nil {
		return 0, 0, fmt.Errorf("activate started labs: %w", err)
	}
	if completed, err = s.store.CompleteEnded(ctx, today); err != nil {
		return activated, 0, fmt.Errorf("complete ended labs: %w", err)
	}
	return activated, completed, nil
}

func (s *StatusSweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	activated, completed, err := s.Sweep(ctx)
	if err != nil {
		log.WithError(err).Error("[LabSweep] failed")
		return
	}
	log.Infof("[LabSweep] today=%s activated=%d completed=%d", s.Today(), activated, completed)
}

// Start runs one sweep right away, then schedules the daily job.
func (s *StatusSweeper) Start() error {
	cron := gocron.NewScheduler(s.loc)
	cron.SingletonModeAll()
	if _, err := cron.Every(1).Day().At(s.at).Do(s.run); err != nil {
		return fmt.Errorf("schedule lab sweep at %q: %w", s.at, err)
	}

	s.run()
	cron.StartAsync()
	s.cron = cron
	log.Infof("⏱ lab status sweep scheduled daily at %s (%s)", s.at, s.loc)
	return nil
}

func (s *StatusSweeper) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}
