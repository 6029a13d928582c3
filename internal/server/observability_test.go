package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMetricsServer(t *testing.T) {
	assert.Nil(t, NewMetricsServer("", zap.NewNop()))

	srv := NewMetricsServer("127.0.0.1:0", zap.NewNop())
	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)

	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShutdownWithinHasADeadline(t *testing.T) {
	blocking := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	start := time.Now()
	err := shutdownWithin(20*time.Millisecond, blocking)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), time.Second)

	assert.NoError(t, ShutdownObservability(func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "shutdown context must carry a deadline")
		assert.WithinDuration(t, time.Now().Add(ShutdownTimeout), deadline, time.Second)
		return nil
	}))
}

func TestGracefulShutdownStopsEveryServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	first := httptest.NewServer(http.NotFoundHandler())
	defer first.Close()
	second := httptest.NewServer(http.NotFoundHandler())
	defer second.Close()

	require.NoError(t, GracefulShutdown(ctx, zap.NewNop(), first.Config, nil, second.Config))

	_, err := http.Get(first.URL)
	assert.Error(t, err)
	_, err = http.Get(second.URL)
	assert.Error(t, err)
}
