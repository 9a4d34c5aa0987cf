package repository

import (
	"context"

	"go-task-scheduler/core/database"
	"go-task-scheduler/core/logger"
	"go-task-scheduler/modules/availability/entity"

	"github.com/google/uuid"
)

// AvailabilityRepository handles availability ledger database operations.
type AvailabilityRepository struct{}

// NewAvailabilityRepository creates a new repository instance
func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{}
}

// AvailabilityRepositoryInterface defines the repository contract
type AvailabilityRepositoryInterface interface {
	DeleteByUserDateRange(ctx context.Context, q database.Querier, userID uuid.UUID, fromDate, toDate string) error
	DeleteByTaskID(ctx context.Context, q database.Querier, taskID uuid.UUID) error
	BulkInsert(ctx context.Context, q database.Querier, rows []entity.Availability) error
	ListByUserDateRange(ctx context.Context, q database.Querier, userID uuid.UUID, fromDate, toDate string) ([]entity.Availability, error)
}

const availabilityColumns = `
	id, user_id, task_id,
	to_char(date, 'YYYY-MM-DD') AS date,
	to_char(start_time, 'HH24:MI:SS') AS start_time,
	to_char(end_time, 'HH24:MI:SS') AS end_time,
	created_at, updated_at
`

func (r *AvailabilityRepository) DeleteByUserDateRange(ctx context.Context, q database.Querier, userID uuid.UUID, fromDate, toDate string) error {
	query := `DELETE FROM availabilities WHERE user_id = $1 AND date BETWEEN $2 AND $3`

	_, err := q.ExecContext(ctx, query, userID, fromDate, toDate)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteByUserDateRange", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) DeleteByTaskID(ctx context.Context, q database.Querier, taskID uuid.UUID) error {
	query := `DELETE FROM availabilities WHERE task_id = $1`

	_, err := q.ExecContext(ctx, query, taskID)
	if err != nil {
		logger.Error("AvailabilityRepository:DeleteByTaskID", err)
		return err
	}
	return nil
}

func (r *AvailabilityRepository) BulkInsert(ctx context.Context, q database.Querier, rows []entity.Availability) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO availabilities (user_id, task_id, date, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
	`

	for _, row := range rows {
		_, err := q.ExecContext(ctx, query,
			row.UserID, row.TaskID, row.Date, row.StartTime, row.EndTime)
		if err != nil {
			logger.Error("AvailabilityRepository:BulkInsert", err)
			return err
		}
	}

	return nil
}

func (r *AvailabilityRepository) ListByUserDateRange(ctx context.Context, q database.Querier, userID uuid.UUID, fromDate, toDate string) ([]entity.Availability, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availabilities
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_time
	`

	var rows []entity.Availability
	if err := q.SelectContext(ctx, &rows, query, userID, fromDate, toDate); err != nil {
		logger.Error("AvailabilityRepository:ListByUserDateRange", err)
		return nil, err
	}

	return rows, nil
}
