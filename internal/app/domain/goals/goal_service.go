package goals

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/models"
	"github.com/ano333333/llm-time-manager/internal/pkg/validation"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// List parses a comma separated status filter. An empty filter yields no
	// goals without touching the database.
	List(ctx context.Context, statusFilter string) ([]models.Goal, error)
	Create(ctx context.Context, req CreateGoalRequest) (models.Goal, error)
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

// ParseStatusFilter splits and trims raw; every part must be a known status.
func ParseStatusFilter(raw string) ([]models.GoalStatus, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]models.GoalStatus, 0, len(parts))
	for _, p := range parts {
		s, ok := models.ParseGoalStatus(strings.TrimSpace(p))
		if !ok {
			return nil, validation.Invalid("status", "oneof=active paused done")
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (s *ServiceImpl) List(ctx context.Context, statusFilter string) ([]models.Goal, error) {
	ctx, span := otel.Tracer("GoalService").Start(ctx, "List", trace.WithAttributes(
		attribute.String("goals.status_filter", statusFilter),
	))
	defer span.End()

	statuses, err := ParseStatusFilter(statusFilter)
	if err != nil {
		span.SetStatus(codes.Error, "invalid status filter")
		return nil, err
	}
	if len(statuses) == 0 {
		return []models.Goal{}, nil
	}

	goals, err := s.repo.ListByStatus(ctx, statuses)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list goals")
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	span.SetAttributes(attribute.Int("goals.count", len(goals)))
	return goals, nil
}

func (s *ServiceImpl) Create(ctx context.Context, req CreateGoalRequest) (models.Goal, error) {
	ctx, span := otel.Tracer("GoalService").Start(ctx, "Create")
	defer span.End()

	goal, err := req.Validate()
	if err != nil {
		span.SetStatus(codes.Error, "invalid goal")
		return models.Goal{}, err
	}

	created, err := s.repo.Create(ctx, goal)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create goal")
		return models.Goal{}, fmt.Errorf("failed to create goal: %w", err)
	}
	span.SetAttributes(attribute.String("goal.id", created.ID.String()))
	return created, nil
}
