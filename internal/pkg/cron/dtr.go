package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
)

// staleAfter is how long a time record may sit pending before it is
// counted in the digest.
const staleAfter = 7 * 24 * time.Hour

type DtrJobs struct {
	dtrRepo      dtr.Repository
	activityRepo activity.Repository
}

func NewDtrJobs(dtrRepo dtr.Repository, activityRepo activity.Repository) *DtrJobs {
	return &DtrJobs{
		dtrRepo:      dtrRepo,
		activityRepo: activityRepo,
	}
}

func (j *DtrJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Register("stale_pending_dtr_digest", 24*time.Hour, j.StalePendingDigest)
}

// StalePendingDigest records how many time records have been waiting for
// review for more than a week, so approvers can see the backlog.
func (j *DtrJobs) StalePendingDigest(ctx context.Context) error {
	cutoff := time.Now().Add(-staleAfter)

	count, err := j.dtrRepo.CountPendingOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to count stale pending time records: %w", err)
	}

	if count == 0 {
		slog.Debug("Cron: no stale pending time records")
		return nil
	}

	slog.Info("Cron: stale pending time records found", "count", count)
	return j.activityRepo.Create(ctx, activity.Activity{
		Action:      activity.ActionPendingDtrDigest,
		Description: fmt.Sprintf("%d time records pending review for more than 7 days", count),
	})
}
