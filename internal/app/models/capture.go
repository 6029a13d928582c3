package models

import (
	"time"

	"github.com/google/uuid"
)

// Interval bounds of a capture schedule, in minutes.
const (
	MinCaptureInterval = 1
	MaxCaptureInterval = 1440
)

type CaptureSchedule struct {
	ID                uuid.UUID
	Active            bool
	IntervalMin       int
	RetentionMaxItems int
	RetentionMaxDays  int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CaptureScheduleResponse struct {
	ID          string `json:"id"`
	Active      bool   `json:"active"`
	IntervalMin int    `json:"interval_min"`
}

func (s CaptureSchedule) ToResponse() CaptureScheduleResponse {
	return CaptureScheduleResponse{
		ID:          s.ID.String(),
		Active:      s.Active,
		IntervalMin: s.IntervalMin,
	}
}
