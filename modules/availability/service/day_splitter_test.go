package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-scheduler/modules/availability/entity"
	taskentity "go-task-scheduler/modules/task/entity"
)

func mustInterval(t *testing.T, start, end string) taskentity.Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	iv, appErr := taskentity.NewInterval(s, e)
	require.Nil(t, appErr)
	return iv
}

func TestSplitByDay(t *testing.T) {
	ds := NewDaySplitter()

	tests := []struct {
		name  string
		start string
		end   string
		want  []entity.DaySegment
	}{
		{
			name:  "single day interval",
			start: "2024-01-01T09:00:00Z",
			end:   "2024-01-01T17:00:00Z",
			want: []entity.DaySegment{
				{Date: "2024-01-01", StartTime: "09:00:00", EndTime: "17:00:00"},
			},
		},
		{
			name:  "spans three days",
			start: "2024-01-01T22:00:00Z",
			end:   "2024-01-03T02:00:00Z",
			want: []entity.DaySegment{
				{Date: "2024-01-01", StartTime: "22:00:00", EndTime: "23:59:59"},
				{Date: "2024-01-02", StartTime: "00:00:00", EndTime: "23:59:59"},
				{Date: "2024-01-03", StartTime: "00:00:00", EndTime: "02:00:00"},
			},
		},
		{
			name:  "ends exactly at midnight emits no trailing segment",
			start: "2024-01-01T22:00:00Z",
			end:   "2024-01-02T00:00:00Z",
			want: []entity.DaySegment{
				{Date: "2024-01-01", StartTime: "22:00:00", EndTime: "23:59:59"},
			},
		},
		{
			name:  "starts at midnight",
			start: "2024-01-01T00:00:00Z",
			end:   "2024-01-01T08:00:00Z",
			want: []entity.DaySegment{
				{Date: "2024-01-01", StartTime: "00:00:00", EndTime: "08:00:00"},
			},
		},
		{
			name:  "full midnight to midnight day",
			start: "2024-01-01T00:00:00Z",
			end:   "2024-01-02T00:00:00Z",
			want: []entity.DaySegment{
				{Date: "2024-01-01", StartTime: "00:00:00", EndTime: "23:59:59"},
			},
		},
		{
			name:  "two day span crossing month boundary",
			start: "2024-01-31T23:00:00Z",
			end:   "2024-02-01T01:00:00Z",
			want: []entity.DaySegment{
				{Date: "2024-01-31", StartTime: "23:00:00", EndTime: "23:59:59"},
				{Date: "2024-02-01", StartTime: "00:00:00", EndTime: "01:00:00"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ds.SplitByDay(mustInterval(t, tt.start, tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitByDaySegmentCountMatchesSpan(t *testing.T) {
	ds := NewDaySplitter()

	iv := mustInterval(t, "2024-03-01T12:00:00Z", "2024-03-10T12:00:00Z")
	segments := ds.SplitByDay(iv)
	assert.Len(t, segments, 10)

	// ordered, one segment per distinct date
	seen := map[string]bool{}
	prev := ""
	for _, seg := range segments {
		assert.False(t, seen[seg.Date], "duplicate date %s", seg.Date)
		seen[seg.Date] = true
		assert.Greater(t, seg.Date, prev)
		prev = seg.Date
	}
}

func TestDateSpan(t *testing.T) {
	ds := NewDaySplitter()

	from, to := ds.DateSpan(mustInterval(t, "2024-01-01T22:00:00Z", "2024-01-03T02:00:00Z"))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), to)

	// midnight end excludes the final date
	from, to = ds.DateSpan(mustInterval(t, "2024-01-01T22:00:00Z", "2024-01-03T00:00:00Z"))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), to)
}
