package scheduler

import (
	"adaptivequiz/pkg/logger"
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Hook is a periodic task of an activity module. It reports whether it
// did any work.
type Hook interface {
	Cron(ctx context.Context) bool
}

type Scheduler struct {
	cronEngine *cron.Cron
	timeout    time.Duration
}

// New returns a scheduler whose runs are each bounded by timeout. A run
// still going when the next one is due is not overlapped.
func New(loc *time.Location, timeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cronLogger := cron.PrintfLogger(zap.NewStdLog(logger.Log.Named("cron")))
	return &Scheduler{
		cronEngine: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		timeout: timeout,
	}
}

// Add registers hook to run on the standard five-field cron spec.
func (s *Scheduler) Add(spec, name string, hook Hook) error {
	_, err := s.cronEngine.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		RunOnce(ctx, name, hook)
	})
	if err != nil {
		return fmt.Errorf("schedule %s cron %q: %w", name, spec, err)
	}
	logger.Log.Info("Cron hook scheduled", zap.String("module", name), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) Start() {
	s.cronEngine.Start()
}

// Stop prevents new runs and waits for running ones until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cronEngine.Stop()
	select {
	case <-done.Done():
		logger.Log.Info("Scheduler stopped")
	case <-ctx.Done():
		logger.Log.Warn("Scheduler stop timed out", zap.Error(ctx.Err()))
	}
}

// Entries returns how many hooks are registered.
func (s *Scheduler) Entries() int {
	return len(s.cronEngine.Entries())
}

// RunOnce runs hook immediately and logs the outcome.
func RunOnce(ctx context.Context, name string, hook Hook) bool {
	start := time.Now()
	worked := hook.Cron(ctx)
	logger.Log.Debug("Cron hook finished",
		zap.String("module", name),
		zap.Bool("worked", worked),
		zap.Duration("duration", time.Since(start)),
	)
	return worked
}
