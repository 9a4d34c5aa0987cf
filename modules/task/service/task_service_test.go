package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-scheduler/core/database"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/modules/task/dto"
	"go-task-scheduler/modules/task/entity"
	"go-task-scheduler/modules/task/repository"
	userentity "go-task-scheduler/modules/user/entity"
	userrepository "go-task-scheduler/modules/user/repository"
)

type conflictCall struct {
	assigneeID uuid.UUID
	iv         entity.Interval
	exclude    *uuid.UUID
}

type stubTaskRepo struct {
	repository.TaskRepositoryInterface

	byID     map[uuid.UUID]*entity.Task
	conflict *entity.Task

	conflictCalls []conflictCall
	created       *entity.Task
	updated       *entity.Task
	deleted       []uuid.UUID
}

func (s *stubTaskRepo) GetByID(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Task, error) {
	if t, ok := s.byID[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, nil
}

func (s *stubTaskRepo) Create(ctx context.Context, q database.Querier, task *entity.Task) (*entity.Task, error) {
	created := *task
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubTaskRepo) Update(ctx context.Context, q database.Querier, task *entity.Task) error {
	copied := *task
	s.updated = &copied
	return nil
}

func (s *stubTaskRepo) Delete(ctx context.Context, q database.Querier, id uuid.UUID) (bool, error) {
	s.deleted = append(s.deleted, id)
	return true, nil
}

func (s *stubTaskRepo) FindConflicting(ctx context.Context, q database.Querier, assigneeID uuid.UUID, iv entity.Interval, excludeTaskID *uuid.UUID) (*entity.Task, error) {
	s.conflictCalls = append(s.conflictCalls, conflictCall{assigneeID, iv, excludeTaskID})
	return s.conflict, nil
}

type stubUserRepo struct {
	userrepository.UserRepositoryInterface

	users  map[uuid.UUID]*userentity.User
	locked []uuid.UUID
}

func (s *stubUserRepo) LockForUpdate(ctx context.Context, q database.Querier, id uuid.UUID) (*userentity.User, error) {
	s.locked = append(s.locked, id)
	return s.users[id], nil
}

type refreshCall struct {
	userID  uuid.UUID
	fromDay time.Time
	toDay   time.Time
}

type stubProjector struct {
	calls []refreshCall
}

func (s *stubProjector) Refresh(ctx context.Context, q database.Querier, userID uuid.UUID, fromDay, toDay time.Time) error {
	s.calls = append(s.calls, refreshCall{userID, fromDay, toDay})
	return nil
}

type fixture struct {
	svc       TaskServiceInterface
	taskRepo  *stubTaskRepo
	userRepo  *stubUserRepo
	projector *stubProjector
	mock      sqlmock.Sqlmock
}

func newFixture(t *testing.T) *fixture {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := database.New(sqlx.NewDb(mockDB, "sqlmock"))
	taskRepo := &stubTaskRepo{byID: map[uuid.UUID]*entity.Task{}}
	userRepo := &stubUserRepo{users: map[uuid.UUID]*userentity.User{}}
	projector := &stubProjector{}

	return &fixture{
		svc:       NewTaskService(db, taskRepo, userRepo, projector, nil),
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		projector: projector,
		mock:      mock,
	}
}

func (f *fixture) addUser() uuid.UUID {
	id := uuid.New()
	f.userRepo.users[id] = &userentity.User{ID: id}
	return id
}

func (f *fixture) addTask(assigneeID uuid.UUID, start, end time.Time) *entity.Task {
	task := &entity.Task{
		ID:         uuid.New(),
		Title:      "Existing task",
		Slug:       "existing-task",
		Status:     entity.TaskStatusPending,
		AssigneeID: assigneeID,
		StartAt:    start,
		EndAt:      end,
	}
	f.taskRepo.byID[task.ID] = task
	return task
}

func at(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
}

func midnight(day int) time.Time {
	return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestCreateRejectsInvalidInterval(t *testing.T) {
	f := newFixture(t)

	_, appErr := f.svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:      "Backwards",
		AssigneeID: uuid.New(),
		StartAt:    at(1, 17),
		EndAt:      at(1, 9),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInterval, appErr.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateRejectsUnknownAssignee(t *testing.T) {
	f := newFixture(t)
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, appErr := f.svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:      "Orphan",
		AssigneeID: uuid.New(),
		StartAt:    at(1, 9),
		EndAt:      at(1, 17),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateConflictRollsBack(t *testing.T) {
	f := newFixture(t)
	assignee := f.addUser()
	blocking := &entity.Task{
		ID:      uuid.New(),
		Title:   "Standup",
		StartAt: at(1, 10),
		EndAt:   at(1, 11),
	}
	f.taskRepo.conflict = blocking

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, appErr := f.svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:      "Overlapping",
		AssigneeID: assignee,
		StartAt:    at(1, 9),
		EndAt:      at(1, 17),
	})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
	details, ok := appErr.Details.(*dto.ConflictDetails)
	require.True(t, ok)
	assert.Equal(t, blocking.ID.String(), details.TaskID)
	assert.Equal(t, "Standup", details.Title)

	assert.Nil(t, f.taskRepo.created, "conflicting task must not be written")
	assert.Empty(t, f.projector.calls, "availability must not change on conflict")
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestCreateCommitsTaskAndRefreshesAvailability(t *testing.T) {
	f := newFixture(t)
	assignee := f.addUser()

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, appErr := f.svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title:       "Night shift",
		Description: "covers the late window",
		AssigneeID:  assignee,
		StartAt:     at(1, 22),
		EndAt:       at(3, 2),
	})

	require.Nil(t, appErr)
	assert.Equal(t, "Night shift", resp.Title)
	assert.Equal(t, "night-shift", resp.Slug)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, assignee.String(), resp.AssigneeID)

	require.Len(t, f.userRepo.locked, 1)
	assert.Equal(t, assignee, f.userRepo.locked[0])

	require.Len(t, f.taskRepo.conflictCalls, 1)
	assert.Nil(t, f.taskRepo.conflictCalls[0].exclude)

	require.Len(t, f.projector.calls, 1)
	assert.Equal(t, refreshCall{assignee, midnight(1), midnight(3)}, f.projector.calls[0])
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateTimeChangeExcludesSelfAndRefreshesUnion(t *testing.T) {
	f := newFixture(t)
	assignee := f.addUser()
	task := f.addTask(assignee, at(1, 9), at(1, 17))

	newStart, newEnd := at(3, 9), at(3, 17)
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, appErr := f.svc.Update(context.Background(), task.ID, &dto.UpdateTaskRequest{
		StartAt: &newStart,
		EndAt:   &newEnd,
	})

	require.Nil(t, appErr)
	assert.Equal(t, newStart, resp.StartAt)
	assert.Equal(t, newEnd, resp.EndAt)

	require.Len(t, f.taskRepo.conflictCalls, 1)
	require.NotNil(t, f.taskRepo.conflictCalls[0].exclude)
	assert.Equal(t, task.ID, *f.taskRepo.conflictCalls[0].exclude)

	// union of the old (Mar 1) and new (Mar 3) spans, so the vacated day
	// is cleared in the same refresh
	require.Len(t, f.projector.calls, 1)
	assert.Equal(t, refreshCall{assignee, midnight(1), midnight(3)}, f.projector.calls[0])
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateNonTemporalSkipsOverlapCheckAndRefresh(t *testing.T) {
	f := newFixture(t)
	assignee := f.addUser()
	task := f.addTask(assignee, at(1, 9), at(1, 17))

	title := "Renamed"
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, appErr := f.svc.Update(context.Background(), task.ID, &dto.UpdateTaskRequest{Title: &title})

	require.Nil(t, appErr)
	assert.Equal(t, "Renamed", resp.Title)
	assert.Equal(t, "renamed", resp.Slug)

	assert.Empty(t, f.userRepo.locked)
	assert.Empty(t, f.taskRepo.conflictCalls)
	assert.Empty(t, f.projector.calls)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestUpdateMissingTaskReturnsNotFound(t *testing.T) {
	f := newFixture(t)
	title := "whatever"
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, appErr := f.svc.Update(context.Background(), uuid.New(), &dto.UpdateTaskRequest{Title: &title})

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReassignRefreshesBothOwners(t *testing.T) {
	f := newFixture(t)
	oldOwner := f.addUser()
	newOwner := f.addUser()
	task := f.addTask(oldOwner, at(1, 9), at(1, 17))

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, appErr := f.svc.Reassign(context.Background(), task.ID, newOwner)

	require.Nil(t, appErr)
	assert.Equal(t, newOwner.String(), resp.AssigneeID)

	assert.ElementsMatch(t, []uuid.UUID{oldOwner, newOwner}, f.userRepo.locked)

	require.Len(t, f.projector.calls, 2)
	assert.Equal(t, refreshCall{oldOwner, midnight(1), midnight(1)}, f.projector.calls[0])
	assert.Equal(t, refreshCall{newOwner, midnight(1), midnight(1)}, f.projector.calls[1])
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReassignToCurrentAssigneeIsNoop(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser()
	task := f.addTask(owner, at(1, 9), at(1, 17))

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, appErr := f.svc.Reassign(context.Background(), task.ID, owner)

	require.Nil(t, appErr)
	assert.Equal(t, owner.String(), resp.AssigneeID)
	assert.Empty(t, f.userRepo.locked)
	assert.Empty(t, f.projector.calls)
	assert.Nil(t, f.taskRepo.updated)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReassignConflictWithNewAssignee(t *testing.T) {
	f := newFixture(t)
	oldOwner := f.addUser()
	newOwner := f.addUser()
	task := f.addTask(oldOwner, at(1, 9), at(1, 17))
	f.taskRepo.conflict = &entity.Task{ID: uuid.New(), Title: "Busy", StartAt: at(1, 10), EndAt: at(1, 12)}

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()

	_, appErr := f.svc.Reassign(context.Background(), task.ID, newOwner)

	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrConflict, appErr.Code)
	assert.Nil(t, f.taskRepo.updated)
	assert.Empty(t, f.projector.calls)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDeleteRefreshesFormerOwner(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser()
	task := f.addTask(owner, at(1, 22), at(3, 2))

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	appErr := f.svc.Delete(context.Background(), task.ID)

	require.Nil(t, appErr)
	assert.Equal(t, []uuid.UUID{task.ID}, f.taskRepo.deleted)
	require.Len(t, f.projector.calls, 1)
	assert.Equal(t, refreshCall{owner, midnight(1), midnight(3)}, f.projector.calls[0])
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDeleteMissingTaskIsNoop(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	appErr := f.svc.Delete(context.Background(), uuid.New())

	require.Nil(t, appErr)
	assert.Empty(t, f.taskRepo.deleted)
	assert.Empty(t, f.projector.calls)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
