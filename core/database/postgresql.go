package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-task-scheduler/core/config"
	"go-task-scheduler/core/constants"
	"go-task-scheduler/core/logger"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Querier is the subset of sqlx satisfied by both *sqlx.DB and *sqlx.Tx.
// Repositories take a Querier so the same method can run standalone or
// inside a transaction scope; no ambient session state is held anywhere.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Transactioner runs a function inside a database transaction.
type Transactioner interface {
	Transaction(ctx context.Context, fn func(q Querier) error) error
}

type Database struct {
	sqlx *sqlx.DB
}

// New wraps an existing sqlx handle. Used by tests with sqlmock.
func New(db *sqlx.DB) Database {
	return Database{sqlx: db}
}

// InitDB opens the Postgres connection pool.
func InitDB(cfg config.DatabaseConfig) (Database, error) {
	logger.Info("Initializing database...")

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	sqlxDB, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return Database{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB := sqlxDB.DB
	sqlDB.SetMaxOpenConns(constants.DatabaseMaxOpenConns)
	sqlDB.SetMaxIdleConns(constants.DatabaseMaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(constants.DatabaseConnMaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		return Database{}, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database initialized successfully",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
		"user", cfg.User,
		"maxOpenConns", constants.DatabaseMaxOpenConns,
		"maxIdleConns", constants.DatabaseMaxIdleConns,
		"connMaxLifetime", constants.DatabaseConnMaxLifetime,
	)

	return Database{sqlx: sqlxDB}, nil
}

// Querier exposes the pool itself for non-transactional reads.
func (d *Database) Querier() Querier {
	return d.sqlx
}

// SQLx returns the underlying handle.
func (d *Database) SQLx() *sqlx.DB {
	return d.sqlx
}

// Close releases the connection pool.
func (d *Database) Close() error {
	return d.sqlx.Close()
}

// Transaction executes fn inside a transaction. Rolls back on error or
// panic, commits otherwise.
func (d *Database) Transaction(ctx context.Context, fn func(q Querier) error) error {
	tx, err := d.sqlx.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Database:Transaction:Rollback", rbErr)
		}
		return err
	}

	return tx.Commit()
}
