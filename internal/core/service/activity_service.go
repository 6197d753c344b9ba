package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tinyboard/account-registry/internal/api/metrics"
	"github.com/tinyboard/account-registry/internal/core/ports"
)

type activityService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that advances last_seen_at on
// the write path. Touches for accounts that no longer exist are dropped
// silently: the registry is append-only, so a missing row means the touch was
// enqueued for a name that never completed registration.
func NewActivityService(repo ports.AccountRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

// Process applies a single activity touch. The repository only ever moves
// last_seen_at forward, so replayed or out-of-order touches cannot violate
// created_at <= last_seen_at.
func (s *activityService) Process(ctx context.Context, touch ports.ActivityTouch) error {
	if err := s.repo.TouchLastSeen(ctx, touch.Username, touch.Timestamp); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("touch_failed").Inc()
		return fmt.Errorf("process touch: %w", err)
	}

	s.log.Debug().Str("username", touch.Username).Time("seen_at", touch.Timestamp).Msg("activity touch applied")
	metrics.ActivityTouchesTotal.Inc()
	return nil
}
