package capture

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(mock pgxmock.PgxPoolIface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	h := NewHandler(NewService(NewRepository(mock, log), log), log)
	r := gin.New()
	r.GET("/api/capture/schedule", h.Get)
	r.PUT("/api/capture/schedule", h.Update)
	return r
}

func serve(r *gin.Engine, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/capture/schedule", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetSchedule(t *testing.T) {
	t.Run("active schedule", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10))

		w := serve(newRouter(mock), http.MethodGet, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"schedule":{"id":"8a1e2f3c-4b5d-4e6f-9a0b-1c2d3e4f5a6b","active":true,"interval_min":10}}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no schedule", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows())

		w := serve(newRouter(mock), http.MethodGet, "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"schedule":null}`, w.Body.String())
	})

	t.Run("several active schedules", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10, 20))

		w := serve(newRouter(mock), http.MethodGet, "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"message":"internal server error"}`, w.Body.String())
	})
}

func TestPutScheduleRejectsInvalidBodies(t *testing.T) {
	cases := []struct {
		name   string
		body   map[string]any
		target string
	}{
		{"missing active", map[string]any{"interval_min": 5}, "active"},
		{"missing interval", map[string]any{"active": true}, "interval_min"},
		{"string active", map[string]any{"active": "true", "interval_min": 5}, "active"},
		{"string interval", map[string]any{"active": true, "interval_min": "5"}, "interval_min"},
		{"fractional interval", map[string]any{"active": true, "interval_min": 1.5}, "interval_min"},
		{"negative interval", map[string]any{"active": true, "interval_min": -1}, "interval_min"},
		{"zero interval", map[string]any{"active": true, "interval_min": 0}, "interval_min"},
		{"missing active before string interval", map[string]any{"interval_min": "5"}, "active"},
		{"string active before zero interval", map[string]any{"active": "yes", "interval_min": 0}, "active"},
		{"interval above a day", map[string]any{"active": true, "interval_min": 1441}, "interval_min"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := newMock(t)
			body, err := json.Marshal(tc.body)
			require.NoError(t, err)

			w := serve(newRouter(mock), http.MethodPut, string(body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "invalid parameter", resp["message"])
			assert.Equal(t, tc.target, resp["target"])
			assert.NoError(t, mock.ExpectationsWereMet(), "the database must not be touched")
		})
	}
}

func TestPutSchedule(t *testing.T) {
	t.Run("updates the active schedule", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10))
		mock.ExpectExec(updateSQL).WithArgs(true, 5, scheduleID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(5))
		mock.ExpectCommit()

		w := serve(newRouter(mock), http.MethodPut, `{"active": true, "interval_min": 5}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"schedule":{"id":"8a1e2f3c-4b5d-4e6f-9a0b-1c2d3e4f5a6b","active":true,"interval_min":5}}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deactivating answers null", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows(10))
		mock.ExpectExec(updateSQL).WithArgs(false, 10, scheduleID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows())
		mock.ExpectCommit()

		w := serve(newRouter(mock), http.MethodPut, `{"active": false, "interval_min": 10}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"schedule":null}`, w.Body.String())
	})

	t.Run("no active schedule", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(selectActiveSQL).WithArgs(true).WillReturnRows(scheduleRows())
		mock.ExpectRollback()

		w := serve(newRouter(mock), http.MethodPut, `{"active": true, "interval_min": 5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"no active capture schedule found"}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed body", func(t *testing.T) {
		w := serve(newRouter(newMock(t)), http.MethodPut, `{"active": tru`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":"invalid JSON format"}`, w.Body.String())
	})
}
