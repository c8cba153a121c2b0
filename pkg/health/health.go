// Package health provides the service's liveness/readiness surface. The
// wire contract's GET /health only ever reports {"status":"ok"} once the
// process is serving traffic; Checker also tracks the richer
// liveness/readiness split used by the deeper diagnostic endpoints.
package health

import (
	"sync"
	"time"

	"github.com/melatron/hft-service/pkg/build"
)

// Status represents the health status.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// Response represents a health check response.
type Response struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Version   string    `json:"version,omitempty"`
	Checks    []Check   `json:"checks,omitempty"`
}

// Check represents an individual health check result.
type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
}

// Checker tracks whether the symbol store is wired up and serving.
type Checker struct {
	mu    sync.RWMutex
	ready bool
}

// NewChecker creates a new health checker. It starts unready; the serve
// command flips it once the symbol store is built, before the HTTP listener
// starts.
func NewChecker() *Checker {
	return &Checker{}
}

// SetReady sets the readiness state.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns the readiness state.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// LivenessCheck reports whether the process is alive at all, independent of
// readiness.
func (c *Checker) LivenessCheck() Response {
	return Response{
		Status:    StatusOK,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
	}
}

// ReadinessCheck reports whether the service is ready to accept traffic.
func (c *Checker) ReadinessCheck() Response {
	status := StatusOK
	if !c.IsReady() {
		status = StatusFailed
	}
	return Response{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
	}
}

// HealthCheck performs a combined health check, used by GET /health, which
// reports only its overall status.
func (c *Checker) HealthCheck() Response {
	liveness := c.LivenessCheck()
	readiness := c.ReadinessCheck()

	status := StatusOK
	if readiness.Status != StatusOK {
		status = StatusFailed
	}

	return Response{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Version:   build.Version,
		Checks: []Check{
			{Name: "liveness", Status: liveness.Status},
			{Name: "readiness", Status: readiness.Status},
		},
	}
}
