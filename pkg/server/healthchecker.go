package server

import (
	"context"
	"log/slog"
)

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHealthChecker reports healthy while the wrapped backend answers Ping.
type PingHealthChecker struct {
	name   string
	pinger Pinger
}

func NewPingHealthChecker(name string, p Pinger) *PingHealthChecker {
	return &PingHealthChecker{name: name, pinger: p}
}

func (hc *PingHealthChecker) Healthy(ctx context.Context) bool {
	if err := hc.pinger.Ping(ctx); err != nil {
		slog.Warn("Health check failed", "component", hc.name, "error", err)
		return false
	}
	return true
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}
