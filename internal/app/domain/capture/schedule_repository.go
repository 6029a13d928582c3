package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/models"
	database "github.com/ano333333/llm-time-manager/internal/db"
)

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	// GetActive returns the active schedule, or nil when none is active.
	GetActive(ctx context.Context) (*models.CaptureSchedule, error)
	// UpdateActive rewrites the active schedule and returns the schedule that
	// is active afterwards, nil when it was deactivated.
	UpdateActive(ctx context.Context, active bool, intervalMin int) (*models.CaptureSchedule, error)
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

var scheduleColumns = []string{
	"id", "active", "interval_min", "retention_max_items", "retention_max_days", "created_at", "updated_at",
}

// selectActive reads the active row through q. Two or more active rows are
// reported as ErrMultipleActiveSchedules.
func selectActive(ctx context.Context, q database.Querier) (*models.CaptureSchedule, error) {
	query, args, err := psql.Select(scheduleColumns...).
		From("capture_schedules").
		Where(sq.Eq{"active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build capture schedule query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query capture schedules: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var s models.CaptureSchedule
	if err := rows.Scan(&s.ID, &s.Active, &s.IntervalMin, &s.RetentionMaxItems, &s.RetentionMaxDays, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan capture schedule: %w", err)
	}
	if rows.Next() {
		return nil, models.ErrMultipleActiveSchedules
	}
	return &s, rows.Err()
}

func (r *RepositoryImpl) GetActive(ctx context.Context) (schedule *models.CaptureSchedule, err error) {
	start := time.Now()
	defer func() { database.Observe(ctx, "capture.get_active", start, err) }()

	schedule, err = selectActive(ctx, r.pgpool)
	if err != nil {
		r.logger.Error("Failed to read active capture schedule", zap.Error(err))
		return nil, err
	}
	return schedule, nil
}

func (r *RepositoryImpl) UpdateActive(ctx context.Context, active bool, intervalMin int) (schedule *models.CaptureSchedule, err error) {
	start := time.Now()
	defer func() { database.Observe(ctx, "capture.update_active", start, err) }()

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		r.logger.Error("Failed to begin transaction for capture schedule update", zap.Error(err))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	fail := func(err error) (*models.CaptureSchedule, error) {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			r.logger.Error("Failed to rollback transaction", zap.Error(rollbackErr))
		}
		return nil, err
	}

	current, err := selectActive(ctx, tx)
	if err != nil {
		r.logger.Error("Failed to read active capture schedule", zap.Error(err))
		return fail(err)
	}
	if current == nil {
		return fail(models.ErrNoActiveSchedule)
	}

	query, args, err := psql.Update("capture_schedules").
		Set("active", active).
		Set("interval_min", intervalMin).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": current.ID}).
		ToSql()
	if err != nil {
		return fail(fmt.Errorf("failed to build capture schedule update: %w", err))
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		r.logger.Error("Failed to update capture schedule",
			zap.String("schedule_id", current.ID.String()), zap.Error(err))
		return fail(fmt.Errorf("failed to update capture schedule: %w", err))
	}

	schedule, err = selectActive(ctx, tx)
	if err != nil {
		r.logger.Error("Failed to re-read capture schedule", zap.Error(err))
		return fail(err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error("Failed to commit capture schedule update", zap.Error(err))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Capture schedule updated",
		zap.String("schedule_id", current.ID.String()),
		zap.Bool("active", active),
		zap.Int("interval_min", intervalMin))
	return schedule, nil
}
