package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"fintrack/internal/domain/archive"
	"fintrack/internal/domain/notification"
	"fintrack/internal/domain/transaction"
)

// CloseMonthJob closes one user's previous month. Users whose month is
// already closed pass through silently; a push notification goes out
// only when the job actually created an archive.
type CloseMonthJob struct {
	userID   string
	month    int
	year     int
	closer   *archive.Closer
	notifier *notification.Service
}

func NewCloseMonthJob(userID string, month, year int, closer *archive.Closer, notifier *notification.Service) *CloseMonthJob {
	return &CloseMonthJob{
		userID:   userID,
		month:    month,
		year:     year,
		closer:   closer,
		notifier: notifier,
	}
}

// Execute runs the close for the job's period.
func (j *CloseMonthJob) Execute(ctx context.Context) error {
	arch, err := j.closer.CloseForUser(ctx, j.userID, j.month, j.year)
	if err != nil {
		return fmt.Errorf("close failed: %w", err)
	}
	if arch == nil {
		log.Printf("Month %02d/%d already closed for user %s", j.month, j.year, j.userID)
		return nil
	}

	log.Printf("Closed %02d/%d for user %s: carryover out %s", j.month, j.year, j.userID, arch.CarryoverOut)

	if j.notifier != nil {
		j.notifier.NotifyMonthClosed(ctx, j.userID, j.month, j.year)
	}
	return nil
}

func (j *CloseMonthJob) UserID() string {
	return j.userID
}

func (j *CloseMonthJob) Description() string {
	return fmt.Sprintf("Monthly close %02d/%d", j.month, j.year)
}

// CloseJobProvider builds one close job per transaction owner for the
// month preceding the trigger time.
func CloseJobProvider(repo transaction.Repository, closer *archive.Closer, notifier *notification.Service, now func() time.Time) func(context.Context) ([]Job, error) {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context) ([]Job, error) {
		owners, err := repo.ListOwners(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list owners: %w", err)
		}

		month, year := archive.PreviousPeriod(now())

		jobs := make([]Job, 0, len(owners))
		for _, userID := range owners {
			jobs = append(jobs, NewCloseMonthJob(userID, month, year, closer, notifier))
		}
		return jobs, nil
	}
}
