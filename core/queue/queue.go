package queue

import (
	"encoding/json"
	"time"

	"go-task-scheduler/core/config"
	"go-task-scheduler/core/constants"
	"go-task-scheduler/core/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// ReconcilePayload identifies the (user, date range) whose availability
// ledger should be rebuilt. The rebuild is a full range replace, so
// at-least-once delivery is safe.
type ReconcilePayload struct {
	UserID   uuid.UUID `json:"user_id"`
	FromDate string    `json:"from_date"` // YYYY-MM-DD
	ToDate   string    `json:"to_date"`   // YYYY-MM-DD
}

// Client enqueues background jobs. A nil *Client is a no-op.
type Client struct {
	inner *asynq.Client
}

// NewClient creates the asynq producer. Returns nil when the queue is
// disabled in config.
func NewClient(cfg *config.Config) *Client {
	if !cfg.Queue.Enabled {
		return nil
	}
	return &Client{
		inner: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}),
	}
}

// EnqueueReconcile schedules an availability reconciliation job. Failures
// are logged, not propagated: the transactional refresh already ran, the
// job is only a safety net.
func (c *Client) EnqueueReconcile(payload ReconcilePayload) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Queue:EnqueueReconcile:Marshal", err)
		return
	}
	task := asynq.NewTask(constants.TaskTypeAvailabilityReconcile, raw)
	if _, err := c.inner.Enqueue(task,
		asynq.Queue(constants.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	); err != nil {
		logger.Error("Queue:EnqueueReconcile:Enqueue", err)
		return
	}
	logger.Debug("Queue:EnqueueReconcile:Enqueued",
		"user_id", payload.UserID,
		"from", payload.FromDate,
		"to", payload.ToDate,
	)
}

// Close releases the producer connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.inner.Close()
}

// NewServer creates the asynq consumer. The caller registers handlers on a
// ServeMux and passes both to Run.
func NewServer(cfg *config.Config) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Queue.Concurrency,
			Queues:      map[string]int{constants.QueueDefault: 1},
		},
	)
}
