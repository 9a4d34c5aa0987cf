package dto

import (
	"go-task-scheduler/modules/availability/entity"
)

// AvailabilitySegmentResponse is one committed day-segment of a user.
type AvailabilitySegmentResponse struct {
	UserID    string `json:"user_id"`
	TaskID    string `json:"task_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailabilityResponse is a user's ledger over a date range.
type AvailabilityResponse struct {
	UserID   string                        `json:"user_id"`
	FromDate string                        `json:"from_date"`
	ToDate   string                        `json:"to_date"`
	Segments []AvailabilitySegmentResponse `json:"segments"`
}

// ToAvailabilityResponse maps ledger rows to the response DTO.
func ToAvailabilityResponse(userID, fromDate, toDate string, rows []entity.Availability) *AvailabilityResponse {
	segments := make([]AvailabilitySegmentResponse, 0, len(rows))
	for _, row := range rows {
		segments = append(segments, AvailabilitySegmentResponse{
			UserID:    row.UserID.String(),
			TaskID:    row.TaskID.String(),
			Date:      row.Date,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		})
	}
	return &AvailabilityResponse{
		UserID:   userID,
		FromDate: fromDate,
		ToDate:   toDate,
		Segments: segments,
	}
}
