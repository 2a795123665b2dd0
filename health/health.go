// Package health provides the liveness/readiness report for the admin API.
package health

import (
	"context"
	"time"
)

// Pinger is the slice of the database handle health checks need.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Status is the health report returned by the /healthz endpoint.
type Status struct {
	Healthy   bool      `json:"healthy"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// Checker produces health statuses for the running service.
type Checker struct {
	db        Pinger
	startedAt time.Time
}

// NewChecker creates a Checker. A nil db skips the database probe.
func NewChecker(db Pinger) *Checker {
	return &Checker{db: db, startedAt: time.Now()}
}

// Check probes the service dependencies and reports the aggregate status.
func (c *Checker) Check(ctx context.Context) Status {
	status := Status{
		Healthy:   true,
		Status:    "healthy",
		Uptime:    time.Since(c.startedAt).Round(time.Second).String(),
		Timestamp: time.Now(),
	}

	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := c.db.PingContext(pingCtx); err != nil {
			status.Healthy = false
			status.Status = "unhealthy"
			status.Message = "database unreachable"
		}
	}
	return status
}
