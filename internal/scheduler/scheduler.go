// Package scheduler runs the daily portfolio snapshot on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// Capturer captures today's snapshot for every owner.
type Capturer interface {
	CaptureSnapshots(ctx context.Context) (model.CaptureReport, error)
}

// Scheduler triggers Capturer.CaptureSnapshots on a cron spec in server-local time.
// A run that is still going when the next one is due causes that one to be skipped.
type Scheduler struct {
	cron     *cron.Cron
	capturer Capturer
	log      zerolog.Logger
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// New parses spec (standard five field cron syntax) and registers the snapshot job.
// A non-positive timeout leaves runs unbounded.
func New(spec string, capturer Capturer, timeout time.Duration, log zerolog.Logger) (*Scheduler, error) {
	logger := cronLogger{log: log}
	c := cron.New(
		cron.WithLocation(time.Local),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	s := &Scheduler{
		cron:     c,
		capturer: capturer,
		log:      log,
		timeout:  timeout,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	if _, err := c.AddFunc(spec, func() { s.Run(s.ctx) }); err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins dispatching scheduled runs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Time("next", s.Next()).Msg("snapshot scheduler started")
}

// Stop cancels a running capture and waits for it to return, or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the time of the next scheduled run, or the zero time when stopped.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if entries[0].Next.IsZero() {
		return entries[0].Schedule.Next(time.Now())
	}
	return entries[0].Next
}

// Run performs one capture immediately.
func (s *Scheduler) Run(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	report, err := s.capturer.CaptureSnapshots(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled snapshot capture failed")
		return
	}
	s.log.Info().
		Str("date", report.Date).
		Int("captured", report.Captured).
		Int("failed", len(report.Failed)).
		Dur("duration", time.Since(start)).
		Msg("scheduled snapshot capture completed")
}

// cronLogger routes cron's key/value logging to zerolog.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
