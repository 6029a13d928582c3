package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format of goal start and end dates.
const DateLayout = "2006-01-02"

type GoalStatus string

const (
	GoalActive GoalStatus = "active"
	GoalPaused GoalStatus = "paused"
	GoalDone   GoalStatus = "done"
)

// ParseGoalStatus accepts only the three known statuses.
func ParseGoalStatus(s string) (GoalStatus, bool) {
	switch GoalStatus(s) {
	case GoalActive, GoalPaused, GoalDone:
		return GoalStatus(s), true
	default:
		return "", false
	}
}

type Goal struct {
	ID          uuid.UUID
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	KPIName     *string // nil when the goal has no KPI
	KPITarget   *float64
	KPIUnit     *string
	Status      GoalStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGoal carries the validated fields of a goal to be inserted.
type NewGoal struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	KPIName     *string
	KPITarget   *float64
	KPIUnit     *string
	Status      GoalStatus
}

type GoalResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	KPIName     *string  `json:"kpi_name"`
	KPITarget   *float64 `json:"kpi_target"`
	KPIUnit     *string  `json:"kpi_unit"`
	Status      string   `json:"status"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ToResponse formats dates as YYYY-MM-DD and timestamps as RFC 3339 in loc.
func (g Goal) ToResponse(loc *time.Location) GoalResponse {
	return GoalResponse{
		ID:          g.ID.String(),
		Title:       g.Title,
		Description: g.Description,
		StartDate:   g.StartDate.Format(DateLayout),
		EndDate:     g.EndDate.Format(DateLayout),
		KPIName:     g.KPIName,
		KPITarget:   g.KPITarget,
		KPIUnit:     g.KPIUnit,
		Status:      string(g.Status),
		CreatedAt:   g.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}
