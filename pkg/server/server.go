// Package server wires the symbol store into an HTTP/JSON surface: health,
// batch ingest, and windowed stats. It owns no business logic — every
// handler validates its own inputs and delegates to pkg/symbolstore.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"

	"github.com/melatron/hft-service/pkg/health"
	"github.com/melatron/hft-service/pkg/symbolstore"
)

var log = logging.Logger("server")

// MinBodyLimit is the smallest request body size the wire contract
// requires add_batch to accept.
const MinBodyLimit = "15MB"

// NewServer builds the echo instance that serves the stats service, wiring
// the default middleware stack, health checks, and the three public routes.
func NewServer(store *symbolstore.Store, checker *health.Checker, maxBatchSize int) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	for _, mw := range DefaultMiddleware() {
		e.Use(mw)
	}

	health.NewHandler(checker).RegisterRoutes(e)

	h := NewHandler(store, maxBatchSize)
	e.POST("/add_batch/", h.AddBatch)
	e.GET("/stats/", h.Stats)

	return e
}

// ListenAndServe starts the echo server on addr and blocks until ctx is
// canceled, at which point it shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, e *echo.Echo) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("serving: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		return e.Shutdown(context.Background())
	}
}
