package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-task-scheduler/core/errors"
)

func ts(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid range", ts(9, 0), ts(17, 0), false},
		{"zero length", ts(9, 0), ts(9, 0), true},
		{"inverted", ts(17, 0), ts(9, 0), true},
		{"one second", ts(9, 0), ts(9, 0).Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iv, appErr := NewInterval(tt.start, tt.end)
			if tt.wantErr {
				require.NotNil(t, appErr)
				assert.Equal(t, errors.ErrInvalidInterval, appErr.Code)
				return
			}
			require.Nil(t, appErr)
			assert.Equal(t, tt.start, iv.Start)
			assert.Equal(t, tt.end, iv.End)
		})
	}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{"disjoint", Interval{ts(9, 0), ts(10, 0)}, Interval{ts(11, 0), ts(12, 0)}, false},
		{"touching endpoints", Interval{ts(9, 0), ts(10, 0)}, Interval{ts(10, 0), ts(11, 0)}, false},
		{"touching reversed", Interval{ts(10, 0), ts(11, 0)}, Interval{ts(9, 0), ts(10, 0)}, false},
		{"partial overlap", Interval{ts(9, 0), ts(10, 30)}, Interval{ts(10, 0), ts(11, 0)}, true},
		{"contained", Interval{ts(10, 0), ts(11, 0)}, Interval{ts(10, 30), ts(10, 45)}, true},
		{"containing", Interval{ts(10, 30), ts(10, 45)}, Interval{ts(10, 0), ts(11, 0)}, true},
		{"identical", Interval{ts(10, 0), ts(11, 0)}, Interval{ts(10, 0), ts(11, 0)}, true},
		{"one instant shared", Interval{ts(9, 0), ts(10, 0).Add(time.Second)}, Interval{ts(10, 0), ts(11, 0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}
