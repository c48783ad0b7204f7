package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ico-admin.backend/pkg/logger"
)

const defaultCleanupInterval = time.Hour

type expiredSessionPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionTokenCleanupJob purges expired admin sessions
type SessionTokenCleanupJob struct {
	repo     expiredSessionPurger
	interval time.Duration
	now      func() time.Time
	stop     chan struct{}
}

func NewSessionTokenCleanupJob(repo expiredSessionPurger, interval time.Duration) *SessionTokenCleanupJob {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return &SessionTokenCleanupJob{
		repo:     repo,
		interval: interval,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

func (j *SessionTokenCleanupJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting session token cleanup job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(context.Background(), "Session token cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(context.Background(), "Session token cleanup job stopped")
			return
		case <-ticker.C:
			j.purgeExpired(ctx)
		}
	}
}

func (j *SessionTokenCleanupJob) Stop() {
	close(j.stop)
}

func (j *SessionTokenCleanupJob) purgeExpired(ctx context.Context) {
	purged, err := j.repo.DeleteExpired(ctx, j.now().UTC())
	if err != nil {
		logger.Error(ctx, "Error purging expired session tokens", zap.Error(err))
		return
	}
	if purged > 0 {
		logger.Info(ctx, "Purged expired session tokens", zap.Int64("count", purged))
	}
}
