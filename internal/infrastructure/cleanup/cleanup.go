// Package cleanup runs the background sweep deleting unconfirmed
// registrations whose confirmation window has passed.
package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Phadec/Harmony-Chat-sub000/internal/dao/mysql"
	"github.com/Phadec/Harmony-Chat-sub000/pkg/constants"
)

// PendingUserSweeper deletes expired PendingUser rows on a fixed
// interval. It runs on its own schedule and touches nothing else.
type PendingUserSweeper struct {
	repo     mysql.PendingUserRepository
	interval time.Duration
	ttl      time.Duration
}

func NewPendingUserSweeper(repo mysql.PendingUserRepository) *PendingUserSweeper {
	return &PendingUserSweeper{
		repo:     repo,
		interval: constants.PENDING_USER_SWEEP,
		ttl:      constants.PENDING_USER_TTL,
	}
}

// Run sweeps once immediately, then on every tick until ctx is done.
func (s *PendingUserSweeper) Run(ctx context.Context) {
	s.sweep(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *PendingUserSweeper) sweep(ctx context.Context) {
	deleted, err := s.repo.DeleteExpired(ctx, time.Now().Add(-s.ttl))
	if err != nil {
		zap.L().Error("pending user sweep failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		zap.L().Info("expired pending registrations removed", zap.Int64("count", deleted))
	}
}
