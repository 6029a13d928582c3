package capture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/models"
)

const (
	selectActiveSQL = `SELECT id, active, interval_min, retention_max_items, retention_max_days, created_at, updated_at FROM capture_schedules WHERE active = \$1`
	updateSQL       = `UPDATE capture_schedules SET active = \$1, interval_min = \$2, updated_at = now\(\) WHERE id = \$3`
)

var (
	scheduleID = uuid.MustParse("8a1e2f3c-4b5d-4e6f-9a0b-1c2d3e4f5a6b")
	createdAt  = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func scheduleRows(intervals ...int) *pgxmock.Rows {
	rows := pgxmock.NewRows(scheduleColumns)
	for _, interval := range intervals {
		rows.AddRow(scheduleID, true, interval, 1000, 30, createdAt, createdAt)
	}
	return rows
}

func TestRepositoryGetActive(t *testing.T) {
	t.Run("one active row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10))

		s, err := NewRepository(mock, zap.NewNop()).GetActive(context.Background())
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, scheduleID, s.ID)
		assert.True(t, s.Active)
		assert.Equal(t, 10, s.IntervalMin)
		assert.Equal(t, 1000, s.RetentionMaxItems)
		assert.Equal(t, 30, s.RetentionMaxDays)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows())

		s, err := NewRepository(mock, zap.NewNop()).GetActive(context.Background())
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("several active rows", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10, 20))

		_, err := NewRepository(mock, zap.NewNop()).GetActive(context.Background())
		assert.ErrorIs(t, err, models.ErrMultipleActiveSchedules)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnError(errors.New("connection refused"))

		_, err := NewRepository(mock, zap.NewNop()).GetActive(context.Background())
		assert.ErrorContains(t, err, "failed to query capture schedules")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryUpdateActive(t *testing.T) {
	t.Run("keeps the schedule active", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10))
		mock.ExpectExec(updateSQL).WithArgs(true, 5, scheduleID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(5))
		mock.ExpectCommit()

		s, err := NewRepository(mock, zap.NewNop()).UpdateActive(context.Background(), true, 5)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, 5, s.IntervalMin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deactivating returns no schedule", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10))
		mock.ExpectExec(updateSQL).WithArgs(false, 15, scheduleID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows())
		mock.ExpectCommit()

		s, err := NewRepository(mock, zap.NewNop()).UpdateActive(context.Background(), false, 15)
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no active schedule rolls back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows())
		mock.ExpectRollback()

		_, err := NewRepository(mock, zap.NewNop()).UpdateActive(context.Background(), true, 5)
		assert.ErrorIs(t, err, models.ErrNoActiveSchedule)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("several active schedules roll back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10, 20))
		mock.ExpectRollback()

		_, err := NewRepository(mock, zap.NewNop()).UpdateActive(context.Background(), true, 5)
		assert.ErrorIs(t, err, models.ErrMultipleActiveSchedules)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update failure rolls back", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10))
		mock.ExpectExec(updateSQL).WithArgs(true, 5, scheduleID).WillReturnError(errors.New("check constraint"))
		mock.ExpectRollback()

		_, err := NewRepository(mock, zap.NewNop()).UpdateActive(context.Background(), true, 5)
		assert.ErrorContains(t, err, "failed to update capture schedule")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errors.New("pool closed"))

		_, err := NewRepository(mock, zap.NewNop()).UpdateActive(context.Background(), true, 5)
		assert.ErrorContains(t, err, "failed to begin transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
