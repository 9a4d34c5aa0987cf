package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"go-task-scheduler/core/cache"
	"go-task-scheduler/core/config"
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/logger"
	"go-task-scheduler/core/middleware"
	"go-task-scheduler/core/queue"
	"go-task-scheduler/modules/availability"
	availworker "go-task-scheduler/modules/availability/worker"
	"go-task-scheduler/modules/task"
	"go-task-scheduler/modules/user"
)

// Run wires every module and serves until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	c := cache.Init(cfg)
	qc := queue.NewClient(cfg)
	defer qc.Close()

	mw := middleware.New(cfg.JWT.Secret)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(mw.RequestID())

	e.GET("/healthz", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	task.Init(e, db, mw, c, qc)
	availability.Init(e, db, mw, c)
	user.Init(e, db, mw)

	// background availability reconciliation
	var queueServer *asynq.Server
	if cfg.Queue.Enabled {
		queueServer = queue.NewServer(cfg)
		mux := asynq.NewServeMux()
		availworker.NewReconcileHandler(db, c).Register(mux)
		go func() {
			if err := queueServer.Run(mux); err != nil {
				logger.Error("Server:QueueRun", err)
			}
		}()
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server shutting down...")

	if queueServer != nil {
		queueServer.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
