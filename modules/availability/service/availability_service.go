package service

import (
	"context"
	"fmt"
	"time"

	"go-task-scheduler/core/cache"
	"go-task-scheduler/core/constants"
	"go-task-scheduler/core/database"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/modules/availability/dto"
	"go-task-scheduler/modules/availability/repository"

	"github.com/google/uuid"
)

// AvailabilityService serves read-only ledger queries.
type AvailabilityService struct {
	db        database.Database
	availRepo repository.AvailabilityRepositoryInterface
	cache     *cache.Cache
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	ListRange(ctx context.Context, userID uuid.UUID, fromDate, toDate string) (*dto.AvailabilityResponse, *errors.AppError)
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(db database.Database, availRepo repository.AvailabilityRepositoryInterface, c *cache.Cache) AvailabilityServiceInterface {
	return &AvailabilityService{
		db:        db,
		availRepo: availRepo,
		cache:     c,
	}
}

// ListRange returns the user's availability segments with date in
// [fromDate, toDate]. Results are cached per (user, version, range); the
// projector bumps the version on every refresh, so stale entries are never
// served.
func (s *AvailabilityService) ListRange(ctx context.Context, userID uuid.UUID, fromDate, toDate string) (*dto.AvailabilityResponse, *errors.AppError) {
	from, err := time.Parse(constants.DateFormat, fromDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "from must be a YYYY-MM-DD date", err)
	}
	to, err := time.Parse(constants.DateFormat, toDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "to must be a YYYY-MM-DD date", err)
	}
	if to.Before(from) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "to must not be before from", nil)
	}

	ver := s.cache.Version(ctx, versionKey(userID))
	cacheKey := fmt.Sprintf("availability:%s:v%d:%s:%s", userID, ver, fromDate, toDate)

	var cached dto.AvailabilityResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	rows, listErr := s.availRepo.ListByUserDateRange(ctx, s.db.Querier(), userID, fromDate, toDate)
	if listErr != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list availability", listErr)
	}

	resp := dto.ToAvailabilityResponse(userID.String(), fromDate, toDate, rows)
	s.cache.Set(ctx, cacheKey, resp, time.Duration(constants.AvailabilityCacheTTLSeconds)*time.Second)
	return resp, nil
}
