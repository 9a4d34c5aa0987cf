package service

import (
	"context"
	"fmt"
	"time"

	"go-task-scheduler/core/cache"
	"go-task-scheduler/core/constants"
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/logger"
	"go-task-scheduler/modules/availability/entity"
	"go-task-scheduler/modules/availability/repository"
	taskrepository "go-task-scheduler/modules/task/repository"

	"github.com/google/uuid"
)

// ProjectorInterface maintains the availability ledger for a user's date
// range.
type ProjectorInterface interface {
	Refresh(ctx context.Context, q database.Querier, userID uuid.UUID, fromDay, toDay time.Time) error
}

// Projector rewrites the availability rows a mutation touched. It is the
// only writer of the availabilities table. Refresh is a full replace of the
// affected (user, date range): it deletes the user's rows in the range and
// regenerates them from every task of that user intersecting the range, so
// tasks sharing a calendar day never clobber each other. The full-replace
// shape also makes Refresh idempotent, which the reconcile worker relies on.
type Projector struct {
	availRepo repository.AvailabilityRepositoryInterface
	taskRepo  taskrepository.TaskRepositoryInterface
	splitter  *DaySplitter
	cache     *cache.Cache
}

// NewProjector creates the availability projector.
func NewProjector(availRepo repository.AvailabilityRepositoryInterface, taskRepo taskrepository.TaskRepositoryInterface, c *cache.Cache) *Projector {
	return &Projector{
		availRepo: availRepo,
		taskRepo:  taskRepo,
		splitter:  NewDaySplitter(),
		cache:     c,
	}
}

// Refresh must run inside the same transaction as the task mutation it
// follows, so the ledger is never observably stale relative to committed
// task state. fromDay/toDay are inclusive midnight-truncated dates.
func (p *Projector) Refresh(ctx context.Context, q database.Querier, userID uuid.UUID, fromDay, toDay time.Time) error {
	if toDay.Before(fromDay) {
		return nil
	}

	fromDate := fromDay.Format(constants.DateFormat)
	toDate := toDay.Format(constants.DateFormat)

	if err := p.availRepo.DeleteByUserDateRange(ctx, q, userID, fromDate, toDate); err != nil {
		return err
	}

	toExclusive := toDay.AddDate(0, 0, 1)
	tasks, err := p.taskRepo.ListOverlappingRange(ctx, q, userID, fromDay, toExclusive)
	if err != nil {
		return err
	}

	rows := make([]entity.Availability, 0, len(tasks))
	for _, task := range tasks {
		for _, seg := range p.splitter.SplitByDay(task.Interval()) {
			// a task may extend past the refreshed range; those days
			// keep their existing rows
			if seg.Date < fromDate || seg.Date > toDate {
				continue
			}
			rows = append(rows, entity.Availability{
				UserID:    userID,
				TaskID:    task.ID,
				Date:      seg.Date,
				StartTime: seg.StartTime,
				EndTime:   seg.EndTime,
			})
		}
	}

	if err := p.availRepo.BulkInsert(ctx, q, rows); err != nil {
		return err
	}

	p.cache.Bump(ctx, versionKey(userID))
	logger.Debug("Projector:Refresh",
		"user_id", userID,
		"from", fromDate,
		"to", toDate,
		"segments", len(rows),
	)
	return nil
}

func versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("availability:ver:%s", userID)
}
