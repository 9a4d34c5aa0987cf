package service

import (
	"time"

	"go-task-scheduler/core/constants"
	"go-task-scheduler/modules/availability/entity"
	taskentity "go-task-scheduler/modules/task/entity"
)

// DaySplitter decomposes a task interval into one segment per calendar day
// it touches. All calendar math runs in a single canonical location.
type DaySplitter struct {
	loc *time.Location
}

// NewDaySplitter creates a splitter using UTC as the canonical calendar.
func NewDaySplitter() *DaySplitter {
	return &DaySplitter{loc: time.UTC}
}

// SplitByDay returns the ordered day-segments of iv. Each segment covers
// [max(start, 00:00:00), min(end, 23:59:59)] of its date. When the interval
// ends exactly at midnight the midnight date is excluded: the previous day
// closes at 23:59:59 and no zero-length trailing segment is emitted.
func (ds *DaySplitter) SplitByDay(iv taskentity.Interval) []entity.DaySegment {
	start := iv.Start.In(ds.loc)
	end := iv.End.In(ds.loc)

	firstDay := ds.truncateToDay(start)
	lastDay := ds.lastIncludedDay(end)

	segments := make([]entity.DaySegment, 0, int(lastDay.Sub(firstDay).Hours()/24)+1)
	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		dayEnd := day.AddDate(0, 0, 1).Add(-time.Second) // 23:59:59

		segStart := day
		if start.After(segStart) {
			segStart = start
		}
		segEnd := dayEnd
		if end.Before(segEnd) {
			segEnd = end
		}

		segments = append(segments, entity.DaySegment{
			Date:      day.Format(constants.DateFormat),
			StartTime: segStart.Format(constants.TimeFormat),
			EndTime:   segEnd.Format(constants.TimeFormat),
		})
	}

	return segments
}

// DateSpan returns the first and last calendar dates (midnight-truncated)
// that iv contributes segments to.
func (ds *DaySplitter) DateSpan(iv taskentity.Interval) (time.Time, time.Time) {
	return ds.truncateToDay(iv.Start.In(ds.loc)), ds.lastIncludedDay(iv.End.In(ds.loc))
}

// lastIncludedDay excludes the end date when the interval stops exactly at
// its midnight; the interval is half-open so that day holds no time at all.
func (ds *DaySplitter) lastIncludedDay(end time.Time) time.Time {
	day := ds.truncateToDay(end)
	if end.Equal(day) {
		return day.AddDate(0, 0, -1)
	}
	return day
}

func (ds *DaySplitter) truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ds.loc)
}
