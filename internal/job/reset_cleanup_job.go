package job

import (
	"context"
	"time"

	"github.com/classboard/classboard/internal/pkg/timeutil"
	"github.com/classboard/classboard/internal/repo"
)

// ResetCleanupJob clears reset codes whose expiry is far in the past. It is
// housekeeping for the users table; consumption checks expiry itself, so
// correctness never depends on this job having run.
type ResetCleanupJob struct {
	users  *repo.UserRepo
	maxAge time.Duration
}

func NewResetCleanupJob(users *repo.UserRepo, maxAge time.Duration) *ResetCleanupJob {
	return &ResetCleanupJob{users: users, maxAge: maxAge}
}

func (j *ResetCleanupJob) Name() string {
	return "reset_cleanup"
}

func (j *ResetCleanupJob) Run(ctx context.Context) error {
	maxAge := j.maxAge
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	cutoff := time.Now().Add(-maxAge).Unix()
	_, err := j.users.ClearExpiredResets(ctx, cutoff, timeutil.NowUnix())
	return err
}
