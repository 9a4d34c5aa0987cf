package main

import (
	"go-task-scheduler/core/logger"
	"go-task-scheduler/core/server"
)

// @title Task Scheduler API
// @version 1.0
// @description Assigns time-bounded tasks to users, guarantees no user holds two overlapping tasks, and maintains a per-user per-day availability ledger.

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
