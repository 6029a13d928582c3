package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewPprofServer returns the pprof server for addr, or nil when addr is
// empty. It should only be reachable internally or via SSH tunnel.
func NewPprofServer(addr string, logger *zap.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	pprofRouter := gin.New()
	pprofRouter.Use(gin.Recovery())
	pprof.Register(pprofRouter)

	logger.Info("pprof server configured", zap.String("addr", addr))
	return &http.Server{
		Addr:              addr,
		Handler:           pprofRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ListenAndServe runs srv until it is shut down.
func ListenAndServe(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
