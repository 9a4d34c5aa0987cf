package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-scheduler/core/database"
	"go-task-scheduler/core/errors"
	"go-task-scheduler/modules/availability/entity"
)

func TestListRangeRejectsMalformedDates(t *testing.T) {
	svc := NewAvailabilityService(database.New(nil), &fakeAvailRepo{}, nil)

	cases := []struct {
		name string
		from string
		to   string
	}{
		{"bad from", "01-03-2024", "2024-03-05"},
		{"bad to", "2024-03-01", "next tuesday"},
		{"inverted range", "2024-03-05", "2024-03-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, appErr := svc.ListRange(context.Background(), uuid.New(), tc.from, tc.to)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
		})
	}
}

func TestListRangeMapsLedgerRows(t *testing.T) {
	userID := uuid.New()
	taskID := uuid.New()
	repo := &fakeAvailRepo{listRows: []entity.Availability{
		{UserID: userID, TaskID: taskID, Date: "2024-03-01", StartTime: "22:00:00", EndTime: "23:59:59"},
		{UserID: userID, TaskID: taskID, Date: "2024-03-02", StartTime: "00:00:00", EndTime: "02:00:00"},
	}}
	svc := NewAvailabilityService(database.New(nil), repo, nil)

	resp, appErr := svc.ListRange(context.Background(), userID, "2024-03-01", "2024-03-02")
	require.Nil(t, appErr)

	assert.Equal(t, userID.String(), resp.UserID)
	assert.Equal(t, "2024-03-01", resp.FromDate)
	assert.Equal(t, "2024-03-02", resp.ToDate)
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, taskID.String(), resp.Segments[0].TaskID)
	assert.Equal(t, "22:00:00", resp.Segments[0].StartTime)
	assert.Equal(t, "02:00:00", resp.Segments[1].EndTime)
}

func TestListRangeEmptyLedger(t *testing.T) {
	svc := NewAvailabilityService(database.New(nil), &fakeAvailRepo{}, nil)

	resp, appErr := svc.ListRange(context.Background(), uuid.New(), "2024-03-01", "2024-03-01")
	require.Nil(t, appErr)
	assert.Empty(t, resp.Segments)
}
