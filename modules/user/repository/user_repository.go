package repository

import (
	"context"
	"database/sql"

	"go-task-scheduler/core/database"
	"go-task-scheduler/core/logger"
	"go-task-scheduler/core/params"
	"go-task-scheduler/modules/user/entity"

	"github.com/google/uuid"
)

// UserRepository handles user database operations.
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// UserRepositoryInterface defines the repository contract
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.User, error)
	LockForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.User, error)
	List(ctx context.Context, q database.Querier, p params.QueryParams) ([]entity.User, int, error)
}

const userColumns = `id, email, username, name, password_hash, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", err)
		return nil, err
	}

	return &user, nil
}

// LockForUpdate reads the user row with FOR UPDATE, serializing all
// concurrent task mutations for this user behind the row lock until the
// surrounding transaction commits. Returns nil when the user does not
// exist, which doubles as the assignee-exists check.
func (r *UserRepository) LockForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`

	var user entity.User
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:LockForUpdate", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, q database.Querier, p params.QueryParams) ([]entity.User, int, error) {
	var totalItems int
	if err := q.GetContext(ctx, &totalItems, `SELECT COUNT(*) FROM users`); err != nil {
		logger.Error("UserRepository:List:Count", err)
		return nil, 0, err
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var users []entity.User
	if err := q.SelectContext(ctx, &users, query, p.PageSize, p.Offset()); err != nil {
		logger.Error("UserRepository:List", err)
		return nil, 0, err
	}

	return users, totalItems, nil
}
