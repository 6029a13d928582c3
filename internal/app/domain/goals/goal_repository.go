package goals

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/models"
	database "github.com/ano333333/llm-time-manager/internal/db"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	// ListByStatus returns the goals in any of statuses, ordered by id.
	ListByStatus(ctx context.Context, statuses []models.GoalStatus) ([]models.Goal, error)
	// Create inserts goal under a fresh id and returns the stored row.
	Create(ctx context.Context, goal models.NewGoal) (models.Goal, error)
}

type RepositoryImpl struct {
	logger *zap.Logger
	pgpool database.Pool
}

func NewRepository(pgpool database.Pool, logger *zap.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var goalColumns = []string{
	"id", "title", "description", "start_date", "end_date",
	"kpi_name", "kpi_target", "kpi_unit", "status", "created_at", "updated_at",
}

func scanGoal(row pgx.Row) (models.Goal, error) {
	var g models.Goal
	var status string
	err := row.Scan(
		&g.ID, &g.Title, &g.Description, &g.StartDate, &g.EndDate,
		&g.KPIName, &g.KPITarget, &g.KPIUnit, &status, &g.CreatedAt, &g.UpdatedAt,
	)
	g.Status = models.GoalStatus(status)
	return g, err
}

func (r *RepositoryImpl) ListByStatus(ctx context.Context, statuses []models.GoalStatus) (goals []models.Goal, err error) {
	start := time.Now()
	defer func() { database.Observe(ctx, "goals.list_by_status", start, err) }()

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	query, args, err := psql.Select(goalColumns...).
		From("goals").
		Where(sq.Eq{"status": values}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build goals query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to query goals", zap.Error(err))
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals = []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			r.logger.Error("Failed to scan goal row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan goal row: %w", err)
		}
		goals = append(goals, g)
	}
	if err = rows.Err(); err != nil {
		r.logger.Error("Error iterating goal rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return goals, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, goal models.NewGoal) (created models.Goal, err error) {
	start := time.Now()
	defer func() { database.Observe(ctx, "goals.create", start, err) }()

	id := uuid.New()
	query, args, err := psql.Insert("goals").
		Columns("id", "title", "description", "start_date", "end_date", "kpi_name", "kpi_target", "kpi_unit", "status").
		Values(id, goal.Title, goal.Description, goal.StartDate, goal.EndDate, goal.KPIName, goal.KPITarget, goal.KPIUnit, string(goal.Status)).
		Suffix("RETURNING " + strings.Join(goalColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to build goal insert: %w", err)
	}

	created, err = scanGoal(r.pgpool.QueryRow(ctx, query, args...))
	if err != nil {
		r.logger.Error("Failed to insert goal", zap.String("goal_id", id.String()), zap.Error(err))
		return models.Goal{}, fmt.Errorf("failed to insert goal: %w", err)
	}
	r.logger.Info("Goal created", zap.String("goal_id", created.ID.String()))
	return created, nil
}
