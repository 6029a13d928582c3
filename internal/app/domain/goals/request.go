package goals

import (
	"strings"
	"time"

	"github.com/ano333333/llm-time-manager/internal/app/models"
	"github.com/ano333333/llm-time-manager/internal/pkg/validation"
)

// CreateGoalRequest is the body of POST /api/goal. Every field is a pointer
// so a missing key is told apart from a zero value.
type CreateGoalRequest struct {
	Title       *string  `json:"title" validate:"required,min=1,max=255,notblank"`
	Description *string  `json:"description" validate:"required"`
	StartDate   *string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	KPIName     *string  `json:"kpi_name" validate:"required_with_all=KPITarget KPIUnit"`
	KPITarget   *float64 `json:"kpi_target" validate:"required_with_all=KPIName KPIUnit"`
	KPIUnit     *string  `json:"kpi_unit" validate:"required_with_all=KPIName KPITarget"`
	Status      *string  `json:"status" validate:"required,oneof=active paused done"`
}

// Validate checks every rule and converts the request to a NewGoal. The
// error is a *validation.FieldError naming the first offending field.
func (r CreateGoalRequest) Validate() (models.NewGoal, error) {
	errs, err := validation.Violations(r)
	if err != nil {
		return models.NewGoal{}, err
	}

	startDate, startOK := parseDate(r.StartDate)
	endDate, endOK := parseDate(r.EndDate)
	if startOK && endOK && startDate.After(endDate) {
		errs = append(errs, validation.Invalid("end_date", "gtefield=start_date"))
	}
	if r.KPIName != nil && strings.TrimSpace(*r.KPIName) == "" {
		errs = append(errs, validation.Invalid("kpi_name", "notblank"))
	}
	if r.KPIUnit != nil && strings.TrimSpace(*r.KPIUnit) == "" {
		errs = append(errs, validation.Invalid("kpi_unit", "notblank"))
	}
	if target := inconsistentKPIField(r); target != "" {
		errs = append(errs, validation.Invalid(target, "kpi_all_or_none"))
	}
	if err := validation.First(r, errs...); err != nil {
		return models.NewGoal{}, err
	}

	status, _ := models.ParseGoalStatus(*r.Status)
	return models.NewGoal{
		Title:       *r.Title,
		Description: *r.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		KPIName:     r.KPIName,
		KPITarget:   r.KPITarget,
		KPIUnit:     r.KPIUnit,
		Status:      status,
	}, nil
}

// Check reports the first rule the request breaks.
func (r CreateGoalRequest) Check() error {
	_, err := r.Validate()
	return err
}

// parseDate reports false for a missing or malformed date; the datetime tag
// already names that field.
func parseDate(s *string) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(models.DateLayout, *s)
	return t, err == nil
}

// inconsistentKPIField names the kpi field that breaks the all or none rule
// relative to kpi_name, preferring kpi_unit when both disagree.
func inconsistentKPIField(r CreateGoalRequest) string {
	target := ""
	named := r.KPIName != nil
	if (r.KPITarget != nil) != named {
		target = "kpi_target"
	}
	if (r.KPIUnit != nil) != named {
		target = "kpi_unit"
	}
	return target
}
