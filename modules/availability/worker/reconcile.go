package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"go-task-scheduler/core/cache"
	"go-task-scheduler/core/constants"
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/logger"
	"go-task-scheduler/core/queue"
	availrepository "go-task-scheduler/modules/availability/repository"
	availservice "go-task-scheduler/modules/availability/service"
	taskrepository "go-task-scheduler/modules/task/repository"
)

// ReconcileHandler re-runs the availability projector for a (user, date
// range). The transactional refresh already ran at commit time; this job is
// an at-least-once safety net and is safe to repeat because Refresh is a
// full range replace.
type ReconcileHandler struct {
	db        database.Database
	projector availservice.ProjectorInterface
}

// NewReconcileHandler creates the handler with its own projector wiring.
func NewReconcileHandler(db database.Database, c *cache.Cache) *ReconcileHandler {
	availRepo := availrepository.NewAvailabilityRepository()
	taskRepo := taskrepository.NewTaskRepository()
	return &ReconcileHandler{
		db:        db,
		projector: availservice.NewProjector(availRepo, taskRepo, c),
	}
}

// Register attaches the handler to the asynq mux.
func (h *ReconcileHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskTypeAvailabilityReconcile, h.ProcessTask)
}

// ProcessTask rebuilds the availability rows for the payload's range.
func (h *ReconcileHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.ReconcilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("ReconcileHandler:ProcessTask:Unmarshal", err)
		return fmt.Errorf("invalid reconcile payload: %w: %w", err, asynq.SkipRetry)
	}

	from, err := time.Parse(constants.DateFormat, payload.FromDate)
	if err != nil {
		return fmt.Errorf("invalid from_date: %w: %w", err, asynq.SkipRetry)
	}
	to, err := time.Parse(constants.DateFormat, payload.ToDate)
	if err != nil {
		return fmt.Errorf("invalid to_date: %w: %w", err, asynq.SkipRetry)
	}

	txErr := h.db.Transaction(ctx, func(q database.Querier) error {
		return h.projector.Refresh(ctx, q, payload.UserID, from, to)
	})
	if txErr != nil {
		logger.Error("ReconcileHandler:ProcessTask:Refresh", txErr)
		return txErr
	}

	logger.Debug("ReconcileHandler:ProcessTask:Done",
		"user_id", payload.UserID,
		"from", payload.FromDate,
		"to", payload.ToDate,
	)
	return nil
}
