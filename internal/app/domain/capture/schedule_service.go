package capture

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/models"
	"github.com/ano333333/llm-time-manager/internal/pkg/validation"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Active(ctx context.Context) (*models.CaptureSchedule, error)
	Update(ctx context.Context, req UpdateScheduleRequest) (*models.CaptureSchedule, error)
}

type ServiceImpl struct {
	logger *zap.Logger
	repo   Repository
}

func NewService(repo Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// UpdateScheduleRequest is the body of PUT /api/capture/schedule.
type UpdateScheduleRequest struct {
	Active      *bool `json:"active" validate:"required"`
	IntervalMin *int  `json:"interval_min" validate:"required,min=1,max=1440"`
}

func (s *ServiceImpl) Active(ctx context.Context) (*models.CaptureSchedule, error) {
	ctx, span := otel.Tracer("CaptureService").Start(ctx, "Active")
	defer span.End()

	schedule, err := s.repo.GetActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read capture schedule")
		return nil, fmt.Errorf("failed to read capture schedule: %w", err)
	}
	span.SetAttributes(attribute.Bool("capture.found", schedule != nil))
	return schedule, nil
}

func (s *ServiceImpl) Update(ctx context.Context, req UpdateScheduleRequest) (*models.CaptureSchedule, error) {
	ctx, span := otel.Tracer("CaptureService").Start(ctx, "Update")
	defer span.End()

	if err := validation.Struct(req); err != nil {
		span.SetStatus(codes.Error, "invalid schedule")
		return nil, err
	}
	span.SetAttributes(
		attribute.Bool("capture.active", *req.Active),
		attribute.Int("capture.interval_min", *req.IntervalMin),
	)

	schedule, err := s.repo.UpdateActive(ctx, *req.Active, *req.IntervalMin)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update capture schedule")
		if errors.Is(err, models.ErrNoActiveSchedule) {
			s.logger.Info("No active capture schedule to update")
			return nil, err
		}
		return nil, fmt.Errorf("failed to update capture schedule: %w", err)
	}
	span.SetAttributes(attribute.Bool("capture.still_active", schedule != nil))
	return schedule, nil
}
