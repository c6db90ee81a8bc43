// Package cleanup purges expired refresh sessions so that the sessions
// table does not grow without bound as users log in from new devices.
package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type sessionPurger interface {
	DeleteExpiredSessions(ctx context.Context, cutoff int64) (int64, error)
}

type Job struct {
	sessions sessionPurger
	now      func() time.Time
	logger   *zap.Logger
}

func New(sessions sessionPurger, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		sessions: sessions,
		now:      time.Now,
		logger:   logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.sessions == nil {
		return nil
	}

	deleted, err := j.sessions.DeleteExpiredSessions(ctx, j.now().Unix())
	if err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	if deleted > 0 {
		j.logger.Info("expired sessions purged", zap.Int64("deleted", deleted))
	}
	return nil
}

// RunLoop executes the job immediately, then on every interval tick until
// the context is cancelled.
func (j *Job) RunLoop(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	if err := j.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				return err
			}
		}
	}
}
