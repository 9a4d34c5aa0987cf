package service

import (
	"context"

	"go-task-scheduler/core/database"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/core/params"
	"go-task-scheduler/modules/user/dto"
	"go-task-scheduler/modules/user/repository"

	"github.com/google/uuid"
)

// UserService serves the read-only users surface.
type UserService struct {
	db       database.Database
	userRepo repository.UserRepositoryInterface
}

// UserServiceInterface defines the service contract
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError)
	List(ctx context.Context, p params.QueryParams) (*dto.PaginatedUserResponse, *errors.AppError)
}

// NewUserService creates a new user service
func NewUserService(db database.Database, userRepo repository.UserRepositoryInterface) UserServiceInterface {
	return &UserService{
		db:       db,
		userRepo: userRepo,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	user, err := s.userRepo.GetByID(ctx, s.db.Querier(), id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	return dto.ToUserResponse(user), nil
}

func (s *UserService) List(ctx context.Context, p params.QueryParams) (*dto.PaginatedUserResponse, *errors.AppError) {
	users, totalItems, err := s.userRepo.List(ctx, s.db.Querier(), p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list users", err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *dto.ToUserResponse(&u))
	}

	return &dto.PaginatedUserResponse{
		Items:      items,
		TotalItems: totalItems,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
	}, nil
}
