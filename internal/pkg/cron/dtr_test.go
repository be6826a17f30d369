package cron

import (
	"context"
	"testing"
	"time"

	"github.com/peoplekit/payroll-backend-go/internal/domain/activity"
	"github.com/peoplekit/payroll-backend-go/internal/domain/dtr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDtrRepo struct {
	dtr.Repository
	pending int64
}

func (s *stubDtrRepo) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.pending, nil
}

type stubActivityRepo struct {
	entries []activity.Activity
}

func (s *stubActivityRepo) Create(ctx context.Context, a activity.Activity) error {
	s.entries = append(s.entries, a)
	return nil
}

func (s *stubActivityRepo) List(ctx context.Context, filter activity.Filter) ([]activity.Activity, int64, error) {
	return s.entries, int64(len(s.entries)), nil
}

func TestStalePendingDigest(t *testing.T) {
	activityRepo := &stubActivityRepo{}
	jobs := NewDtrJobs(&stubDtrRepo{pending: 3}, activityRepo)

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	require.NoError(t, scheduler.RunOnce(context.Background()))

	require.Len(t, activityRepo.entries, 1)
	entry := activityRepo.entries[0]
	assert.Equal(t, activity.ActionPendingDtrDigest, entry.Action)
	// Digest entries have no acting user.
	assert.Empty(t, entry.UserID)
	assert.Contains(t, entry.Description, "3 time records")
}

func TestStalePendingDigest_NoBacklog(t *testing.T) {
	activityRepo := &stubActivityRepo{}
	jobs := NewDtrJobs(&stubDtrRepo{pending: 0}, activityRepo)

	require.NoError(t, jobs.StalePendingDigest(context.Background()))
	assert.Empty(t, activityRepo.entries)
}
